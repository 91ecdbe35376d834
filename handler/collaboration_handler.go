package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func AddCollaboratorHandler(c *gin.Context, collabService *usecase.CollaborationService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	collab, err := collabService.AddCollaborator(c.Request.Context(), noteID, userID, req.Email, req.Permission)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message":      "Collaborator added",
		"collaborator": collab,
	})
}

func RemoveCollaboratorHandler(c *gin.Context, collabService *usecase.CollaborationService) {
	noteID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.RemoveCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := collabService.RemoveCollaborator(c.Request.Context(), noteID, userID, req.Email); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Collaborator removed"})
}
