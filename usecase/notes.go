package usecase

import (
	"context"
	"fmt"
	"strings"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const maxNotesPerUser = 100

type NotesService struct {
	NotesRepo  *repository.NotesRepo
	ShareCache *services.ShareCache
}

func (svc *NotesService) validateNote(title, content, contentType string, tags []string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: note title is required", ErrValidation)
	}
	if len(title) > 200 {
		return fmt.Errorf("%w: note title exceeds maximum length", ErrValidation)
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: note content is required", ErrValidation)
	}
	if len(content) > 50000 {
		return fmt.Errorf("%w: note content exceeds maximum length", ErrValidation)
	}

	if contentType != "" && contentType != model.ContentTypePlain && contentType != model.ContentTypeMarkdown {
		return fmt.Errorf("%w: unknown content type %q", ErrValidation, contentType)
	}

	if len(tags) > 10 {
		return fmt.Errorf("%w: maximum 10 tags allowed", ErrValidation)
	}

	return nil
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}

func (svc *NotesService) CreateNote(ctx context.Context, userID string, req *dto.CreateNoteRequest) (*model.Note, error) {
	req.Tags = normalizeTags(req.Tags)
	if err := svc.validateNote(req.Title, req.Content, req.ContentType, req.Tags); err != nil {
		return nil, err
	}

	count, err := svc.NotesRepo.CountUserNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxNotesPerUser {
		return nil, fmt.Errorf("%w: user has reached maximum note limit", ErrValidation)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = model.ContentTypePlain
	}

	note := &model.Note{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		ContentType:  contentType,
		Category:     req.Category,
		Tags:         req.Tags,
		IsPinned:     req.IsPinned,
		IsFavorite:   req.IsFavorite,
		LastEditedBy: userID,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote returns a note visible to the caller. Private note content stays
// hidden behind Unlock; only the hint travels back.
func (svc *NotesService) GetNote(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if note.IsPrivate {
		note.Content = ""
	}
	return note, nil
}

// UpdateNote applies an edit on behalf of the owner or an edit-collaborator.
// Writes are guarded by the note version; a stale version is a conflict.
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, callerID string, req *dto.UpdateNoteRequest) error {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return ErrNotFound
		}
		return err
	}

	switch ResolvePermission(note, callerID) {
	case PermissionOwner, model.PermissionEdit:
	default:
		return fmt.Errorf("%w: edit permission required", ErrForbidden)
	}

	req.Tags = normalizeTags(req.Tags)
	if err := svc.validateNote(req.Title, req.Content, req.ContentType, req.Tags); err != nil {
		return err
	}

	expectedVersion := note.Version
	if req.Version > 0 {
		expectedVersion = req.Version
	}

	set := bson.M{
		"title":          strings.TrimSpace(req.Title),
		"content":        req.Content,
		"tags":           req.Tags,
		"last_edited_by": callerID,
	}
	if req.ContentType != "" {
		set["content_type"] = req.ContentType
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.IsPinned != nil {
		set["is_pinned"] = *req.IsPinned
	}
	if req.IsFavorite != nil {
		set["is_favorite"] = *req.IsFavorite
	}

	matched, err := svc.NotesRepo.UpdateNote(ctx, noteID, expectedVersion, set)
	if err != nil {
		return err
	}
	if matched == 0 {
		// The note exists and is visible, so the guard that failed was the
		// version: someone else saved first.
		return fmt.Errorf("%w: note was modified by someone else", ErrConflict)
	}

	svc.invalidateShareCache(ctx, note)
	return nil
}

func (svc *NotesService) ListOwned(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.ListOwned(ctx, userID)
	return redactPrivateContent(notes), err
}

func (svc *NotesService) ListCollaborating(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.ListCollaborating(ctx, userID)
	return redactPrivateContent(notes), err
}

func (svc *NotesService) ListSharedByMe(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.ListSharedByMe(ctx, userID)
	return redactPrivateContent(notes), err
}

// redactPrivateContent blanks the body of locked notes. List views show that
// a private note exists (title, hint); the content only travels via Unlock.
func redactPrivateContent(notes []*model.Note) []*model.Note {
	for _, note := range notes {
		if note.IsPrivate {
			note.Content = ""
		}
	}
	return notes
}

// SetPrivacy turns the private gate on or off. Enabling privacy revokes the
// public link in the same store write. Disabling it does NOT bring the link
// back; the owner has to share again.
func (svc *NotesService) SetPrivacy(ctx context.Context, noteID, callerID string, req *dto.SetPrivacyRequest) error {
	note, err := svc.ownedNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}

	if !req.IsPrivate {
		return svc.NotesRepo.ClearPrivacy(ctx, noteID)
	}

	if strings.TrimSpace(req.Password) == "" {
		return fmt.Errorf("%w: password is required for a private note", ErrValidation)
	}

	hash, err := services.HashNoteSecret(req.Password)
	if err != nil {
		return err
	}

	if err := svc.NotesRepo.SetPrivacy(ctx, noteID, hash, req.PasswordHint); err != nil {
		return err
	}

	svc.invalidateShareCache(ctx, note)
	return nil
}

// Unlock verifies the private-note password and returns the full note.
func (svc *NotesService) Unlock(ctx context.Context, noteID, callerID, password string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !note.IsPrivate {
		return note, nil
	}

	if !services.ComparePasswords(note.PasswordHash, password) {
		return nil, fmt.Errorf("%w: incorrect note password", ErrForbidden)
	}
	return note, nil
}

// Share enables the anonymous read link. Private notes cannot be shared.
func (svc *NotesService) Share(ctx context.Context, noteID, callerID, permissions string) (string, error) {
	note, err := svc.ownedNote(ctx, noteID, callerID)
	if err != nil {
		return "", err
	}
	if note.IsPrivate {
		return "", fmt.Errorf("%w: private notes cannot be shared", ErrConflict)
	}
	if note.IsDeleted {
		return "", fmt.Errorf("%w: deleted notes cannot be shared", ErrConflict)
	}

	if permissions == "" {
		permissions = model.PermissionView
	}
	if !model.IsValidPermission(permissions) {
		return "", fmt.Errorf("%w: share permission must be view or edit", ErrValidation)
	}

	shareID := uuid.New().String()
	if err := svc.NotesRepo.SetShare(ctx, noteID, shareID, permissions); err != nil {
		return "", err
	}
	return shareID, nil
}

// Unshare revokes the anonymous read link and drops it from the cache.
func (svc *NotesService) Unshare(ctx context.Context, noteID, callerID string) error {
	note, err := svc.ownedNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}

	if err := svc.NotesRepo.ClearShare(ctx, noteID); err != nil {
		return err
	}

	svc.invalidateShareCache(ctx, note)
	return nil
}

// GetShared resolves a public share link for anonymous readers, consulting
// the cache first.
func (svc *NotesService) GetShared(ctx context.Context, shareID string) (*model.Note, error) {
	if svc.ShareCache != nil {
		if note, ok := svc.ShareCache.Get(ctx, shareID); ok {
			return note, nil
		}
	}

	note, err := svc.NotesRepo.FindByShareID(ctx, shareID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Strip everything an anonymous reader has no business seeing.
	note.Collaborators = nil
	note.PasswordHash = ""
	note.PasswordHint = ""

	if svc.ShareCache != nil {
		svc.ShareCache.Set(ctx, shareID, note)
	}
	return note, nil
}

func (svc *NotesService) ownedNote(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if note.UserID != callerID {
		return nil, fmt.Errorf("%w: only the owner may do this", ErrForbidden)
	}
	return note, nil
}

func (svc *NotesService) invalidateShareCache(ctx context.Context, note *model.Note) {
	if svc.ShareCache != nil && note.ShareID != "" {
		svc.ShareCache.Invalidate(ctx, note.ShareID)
	}
}
