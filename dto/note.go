package dto

import (
	"time"

	"main/model"
)

type CreateNoteRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	ContentType string   `json:"content_type"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPinned    bool     `json:"is_pinned"`
	IsFavorite  bool     `json:"is_favorite"`
}

// UpdateNoteRequest carries an edit. Version, when non-zero, is the version
// the client last saw; the write is rejected with a conflict if it moved.
type UpdateNoteRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	ContentType string   `json:"content_type"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	IsPinned    *bool    `json:"is_pinned"`
	IsFavorite  *bool    `json:"is_favorite"`
	Version     int      `json:"version"`
}

type AddCollaboratorRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

type RemoveCollaboratorRequest struct {
	Email string `json:"email"`
}

type SetPrivacyRequest struct {
	IsPrivate    bool   `json:"is_private"`
	Password     string `json:"password"`
	PasswordHint string `json:"password_hint"`
}

type UnlockNoteRequest struct {
	Password string `json:"password" binding:"required"`
}

type ShareNoteRequest struct {
	Permissions string `json:"permissions"`
}

type CreateGuestNoteRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	ContentType string   `json:"content_type"`
	Tags        []string `json:"tags"`
}

// NoteResponse is the wire shape of a note. Password material never leaves
// the server; the hint only travels to callers who can see the note.
type NoteResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	Title            string               `json:"title"`
	Content          string               `json:"content"`
	ContentType      string               `json:"content_type"`
	Category         string               `json:"category,omitempty"`
	Tags             []string             `json:"tags,omitempty"`
	IsPinned         bool                 `json:"is_pinned"`
	IsFavorite       bool                 `json:"is_favorite"`
	IsShared         bool                 `json:"is_shared"`
	IsDeleted        bool                 `json:"is_deleted"`
	IsPrivate        bool                 `json:"is_private"`
	ShareID          string               `json:"share_id,omitempty"`
	SharePermissions string               `json:"share_permissions,omitempty"`
	Collaborators    []model.Collaborator `json:"collaborators,omitempty"`
	PasswordHint     string               `json:"password_hint,omitempty"`
	Version          int                  `json:"version"`
	LastEditedBy     string               `json:"last_edited_by,omitempty"`
	Permission       string               `json:"permission,omitempty"` // caller's effective permission, set on single-note reads
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        *time.Time           `json:"deleted_at,omitempty"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:               note.ID,
		UserID:           note.UserID,
		Title:            note.Title,
		Content:          note.Content,
		ContentType:      note.ContentType,
		Category:         note.Category,
		Tags:             note.Tags,
		IsPinned:         note.IsPinned,
		IsFavorite:       note.IsFavorite,
		IsShared:         note.IsShared,
		IsDeleted:        note.IsDeleted,
		IsPrivate:        note.IsPrivate,
		ShareID:          note.ShareID,
		SharePermissions: note.SharePermissions,
		Collaborators:    note.Collaborators,
		PasswordHint:     note.PasswordHint,
		Version:          note.Version,
		LastEditedBy:     note.LastEditedBy,
		CreatedAt:        note.CreatedAt,
		UpdatedAt:        note.UpdatedAt,
		DeletedAt:        note.DeletedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, ToNoteResponse(note))
	}
	return responses
}
