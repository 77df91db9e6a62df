package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const errUnauthorized = "Unauthorized"

// Context keys set by Auth.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

// Auth validates a Supabase-issued HS256 Bearer JWT and sets "userID" (the
// sub claim) and "email" in the gin context.
func Auth(jwtSecret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := claims.GetSubject()
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		email, _ := claims["email"].(string)

		c.Set(UserIDKey, userID)
		c.Set(EmailKey, email)
		c.Request = c.Request.WithContext(requestid.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
