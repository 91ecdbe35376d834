package handler

import (
	"main/dto"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler stores a pending registration and mails the
// verification token. No account exists until the token is presented.
func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		utils.BadRequest(c, "invalid request")
		return
	}

	if err := userService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		respondError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"message": "Registration received, check your email to verify your account",
	})
}

// VerifyHandler promotes a pending registration and logs the new account in.
func VerifyHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	user, err := userService.Verify(c.Request.Context(), req.Token)
	if err != nil {
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

	utils.Created(c, gin.H{
		"message": "account verified",
		"token":   token,
		"refresh": refreshToken,
		"user":    dto.ToUserProfileResponse(user),
	})
}
