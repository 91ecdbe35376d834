package handler

import (
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoginHandler authenticates a user and issues an access/refresh token pair.
// A session record is written for the account activity view; login does not
// depend on it succeeding.
func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "invalid request")
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		respondError(c, err)
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	if sessionRepo != nil {
		session := &model.Session{
			SessionID:  uuid.New().String(),
			UserID:     user.UserID,
			DeviceInfo: utils.DescribeDevice(c.Request.UserAgent()),
			IPAddress:  c.ClientIP(),
			CreatedAt:  time.Now(),
			ExpiresAt:  time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second),
			IsActive:   true,
		}
		if err := sessionRepo.CreateSession(c.Request.Context(), session); err != nil {
			utils.TrackError("session", "create_failed")
		}
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"token":   token,
		"refresh": refreshToken,
		"user":    dto.ToUserProfileResponse(user),
	})
}
