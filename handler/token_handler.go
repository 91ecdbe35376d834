package handler

import (
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshTokenHandler exchanges a valid refresh token for a fresh pair. The
// old refresh token is blacklisted so it cannot be replayed.
func RefreshTokenHandler(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "refresh token is required")
		return
	}

	if services.IsTokenBlacklisted(req.Refresh) {
		utils.Unauthorized(c, "token has been invalidated")
		return
	}

	token, err := jwt.Parse(req.Refresh, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		utils.Unauthorized(c, "invalid refresh token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		utils.Unauthorized(c, "invalid token claims")
		return
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		utils.Unauthorized(c, "not a refresh token")
		return
	}
	if iss, _ := claims["iss"].(string); iss != services.TokenIssuer {
		utils.Unauthorized(c, "invalid token issuer")
		return
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		utils.Unauthorized(c, "invalid token claims")
		return
	}

	newToken, err := services.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}
	newRefresh, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	// One refresh, one use.
	if err := services.BlacklistTokens(req.Refresh, req.Refresh); err != nil {
		utils.TrackError("auth", "refresh_blacklist_failed")
	}

	utils.Success(c, gin.H{
		"token":   newToken,
		"refresh": newRefresh,
	})
}
