package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
)

// Ack is the generic acknowledgment body returned by onboarding operations
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Acknowledge sends {success: true, message}
func Acknowledge(c *gin.Context, status int, message string) {
	c.JSON(status, Ack{Success: true, Message: message})
}

// Error sends an error response. Anything that is not an AppError is rendered
// as internal without leaking its message.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// AbortWithError sends an error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
