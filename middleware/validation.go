package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/mail"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// ValidateRegistrationInput rejects malformed registration payloads before
// they reach the handler. The body is restored so the handler can bind it
// again.
func ValidateRegistrationInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.Unmarshal(body, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			c.Abort()
			return
		}

		if _, err := mail.ParseAddress(input.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			c.Abort()
			return
		}
		if !utils.ValidatePassword(input.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters with a number and a special character"})
			c.Abort()
			return
		}

		c.Next()
	}
}
