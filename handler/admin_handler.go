package handler

import (
	"strings"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// requireAdmin loads the caller and rejects non-admin accounts. Returns false
// after writing the response when the gate fails.
func requireAdmin(c *gin.Context, userService *usecase.UserService) bool {
	userID := c.GetString("user_id")

	user, err := userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !user.IsAdmin {
		utils.Forbidden(c, "admin access required")
		return false
	}
	return true
}

// BanUserHandler bans an account: the flag is set, the user disappears from
// every collaborator list and their sessions end.
func BanUserHandler(c *gin.Context, userService *usecase.UserService) {
	if !requireAdmin(c, userService) {
		return
	}

	targetID := c.Param("userId")
	if targetID == c.GetString("user_id") {
		utils.BadRequest(c, "cannot ban yourself")
		return
	}

	if err := userService.BanUser(c.Request.Context(), targetID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "User banned"})
}

// GetAnnouncementHandler returns the current banner. Public: no admin gate.
func GetAnnouncementHandler(c *gin.Context, announcementsRepo *repository.AnnouncementsRepo) {
	announcement, err := announcementsRepo.Get(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "failed to load announcement")
		return
	}

	utils.Success(c, announcement)
}

// SetAnnouncementHandler updates the banner. An empty message clears it.
func SetAnnouncementHandler(c *gin.Context, userService *usecase.UserService, announcementsRepo *repository.AnnouncementsRepo) {
	if !requireAdmin(c, userService) {
		return
	}

	var req dto.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	message := strings.TrimSpace(req.Message)
	if len(message) > 500 {
		utils.BadRequest(c, "announcement too long")
		return
	}

	if err := announcementsRepo.Set(c.Request.Context(), message, c.GetString("user_id")); err != nil {
		utils.InternalError(c, "failed to save announcement")
		return
	}

	utils.Success(c, gin.H{"message": "Announcement updated"})
}
