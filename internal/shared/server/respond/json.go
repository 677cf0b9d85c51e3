package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 JSON response. Results carry generated media URLs, so they are not cached.
func OK(c *gin.Context, payload any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, payload)
}
