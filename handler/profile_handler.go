package handler

import (
	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetProfileHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	user, err := userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToUserProfileResponse(user))
}

func AddCategoryHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "category is required")
		return
	}

	if err := userService.AddCategory(c.Request.Context(), userID, req.Category); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Category added"})
}

func RemoveCategoryHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")
	category := c.Param("category")

	if err := userService.RemoveCategory(c.Request.Context(), userID, category); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Category removed"})
}

// GetSessionsHandler lists the caller's active sessions for the account
// activity view.
func GetSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")

	sessions, err := sessionRepo.GetActiveSessions(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "failed to list sessions")
		return
	}

	utils.Success(c, sessions)
}
