package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondData writes the uniform success envelope.
func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// RespondError writes the uniform failure envelope. The message is what the
// client sees; detail belongs in the logs.
func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
