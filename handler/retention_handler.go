package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// DeleteNoteHandler soft-deletes: the note moves to the recycle bin and stays
// restorable for the retention window.
func DeleteNoteHandler(c *gin.Context, retentionService *usecase.RetentionService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	if err := retentionService.SoftDelete(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note moved to bin"})
}

func RestoreNoteHandler(c *gin.Context, retentionService *usecase.RetentionService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	if err := retentionService.Restore(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note restored"})
}

func PermanentDeleteHandler(c *gin.Context, retentionService *usecase.RetentionService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	if err := retentionService.PermanentDelete(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note permanently deleted"})
}

func GetBinHandler(c *gin.Context, retentionService *usecase.RetentionService) {
	userID := c.GetString("user_id")

	entries, err := retentionService.ListBin(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, entries)
}

func EmptyBinHandler(c *gin.Context, retentionService *usecase.RetentionService) {
	userID := c.GetString("user_id")

	deleted, err := retentionService.EmptyBin(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "Bin emptied",
		"deleted": deleted,
	})
}
