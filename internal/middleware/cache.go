package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl sets Cache-Control on GET responses. Used on the doctor
// roster, which never changes within a process lifetime.
func CacheControl(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
		c.Next()
	}
}
