package handler

import (
	"strings"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// LogoutHandler blacklists the caller's tokens and ends their sessions.
func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")

	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	var req logoutRequest
	_ = c.ShouldBindJSON(&req)
	refreshToken := req.Refresh
	if refreshToken == "" {
		refreshToken = accessToken
	}

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		utils.TrackError("auth", "logout_blacklist_failed")
		utils.InternalError(c, "failed to log out")
		return
	}

	if sessionRepo != nil {
		if _, err := sessionRepo.EndAllSessions(c.Request.Context(), userID); err != nil {
			utils.TrackError("session", "end_failed")
		}
	}

	utils.Success(c, gin.H{"message": "Logged out"})
}
