package util

import (
	"time"

	"auth-service/internal/models"

	"github.com/gin-gonic/gin"
)

// UserResponse is the public view of an account. The password hash is
// never part of any response.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message,omitempty"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(user *models.User, message string) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		Message:   message,
	}
}

// Error writes the uniform error envelope {message, status_code}.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"message":     msg,
		"status_code": httpStatus,
	})
}
