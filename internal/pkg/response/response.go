// Package response renders the API's single JSON envelope. Every endpoint,
// public or admin, answers through one of these helpers so clients can
// parse success and failure uniformly.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error renders a machine-readable code plus a human-readable message.
// The enquiry endpoints only ever pass their fixed visitor-facing
// messages here; internal causes stay in the logs.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails adds a per-field breakdown, used for validation failures.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
