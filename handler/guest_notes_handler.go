package handler

import (
	"strings"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateGuestNoteHandler persists a note for an unauthenticated visitor and
// hands back a share link. The record expires after the guest TTL window.
func CreateGuestNoteHandler(c *gin.Context, guestRepo *repository.GuestNotesRepo) {
	var req dto.CreateGuestNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		utils.BadRequest(c, "title and content are required")
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = model.ContentTypePlain
	}

	note := &model.GuestNote{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		ContentType: contentType,
		Tags:        req.Tags,
		ShareID:     uuid.New().String(),
	}

	if err := guestRepo.CreateGuestNote(c.Request.Context(), note); err != nil {
		utils.InternalError(c, "Failed to save guest note")
		return
	}

	utils.Created(c, gin.H{
		"id":       note.ID,
		"share_id": note.ShareID,
	})
}

// GetGuestNoteHandler resolves a guest note by its share link. No auth.
func GetGuestNoteHandler(c *gin.Context, guestRepo *repository.GuestNotesRepo) {
	shareID := c.Param("shareId")

	note, err := guestRepo.FindByShareID(c.Request.Context(), shareID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			utils.NotFound(c, "note not found")
			return
		}
		utils.InternalError(c, "Failed to load guest note")
		return
	}

	utils.Success(c, note)
}
