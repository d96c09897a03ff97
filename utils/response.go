package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorCode attaches a machine-readable code next to the message, used
// by the auth layer (TOKEN_EXPIRED, INVALID_TOKEN) so clients can branch.
func JSONErrorCode(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"success": false, "code": errCode, "error": message})
}
