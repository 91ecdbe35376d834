package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	userID := c.GetString("user_id")
	note, err := notesService.CreateNote(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	note, err := notesService.GetNote(c.Request.Context(), noteID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ToNoteResponse(note)
	resp.Permission = usecase.ResolvePermission(note, userID)
	utils.Success(c, resp)
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := notesService.UpdateNote(c.Request.Context(), noteID, userID, &req); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note updated successfully"})
}

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	notes, err := notesService.ListOwned(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func GetCollaborationsHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	notes, err := notesService.ListCollaborating(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func GetSharedByMeHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	notes, err := notesService.ListSharedByMe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func SetPrivacyHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.SetPrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := notesService.SetPrivacy(c.Request.Context(), noteID, userID, &req); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note privacy updated"})
}

func UnlockNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.UnlockNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.Unlock(c.Request.Context(), noteID, userID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func ShareNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.ShareNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	shareID, err := notesService.Share(c.Request.Context(), noteID, userID, req.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message":  "Note shared successfully",
		"share_id": shareID,
	})
}

func UnshareNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	if err := notesService.Unshare(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Share link revoked"})
}

// GetSharedNoteHandler serves the anonymous share-link read. No auth.
func GetSharedNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	shareID := c.Param("shareId")

	note, err := notesService.GetShared(c.Request.Context(), shareID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}
