package respond

import "github.com/gin-gonic/gin"

// JSON writes the payload with the given status. Success bodies are written
// as-is; error bodies go through Error so they always carry the envelope.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}
