package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"
)

// render writes a gomponents node as an HTML response.
func render(c *gin.Context, status int, node g.Node) error {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if c.Request.Method == http.MethodHead {
		return nil
	}
	return node.Render(c.Writer)
}
