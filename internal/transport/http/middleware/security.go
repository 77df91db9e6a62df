package middleware

import "github.com/gin-gonic/gin"

// contentSecurityPolicy allows the inline style and script blocks the pages
// ship with, and remote images for AniList covers and profile avatars.
const contentSecurityPolicy = "default-src 'self'; img-src 'self' https: data:; " +
	"style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; " +
	"connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"

func Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		c.Header("Content-Security-Policy", contentSecurityPolicy)
		c.Next()
	}
}
