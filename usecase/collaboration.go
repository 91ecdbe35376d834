package usecase

import (
	"context"
	"fmt"
	"strings"

	"main/model"
	"main/repository"
)

// PermissionOwner is the effective permission of a note's creator; collaborators
// hold model.PermissionView or model.PermissionEdit.
const PermissionOwner = "owner"

// ResolvePermission computes the caller's effective permission on a note:
// "owner", "edit", "view", or "" when access is denied.
func ResolvePermission(note *model.Note, callerID string) string {
	if callerID == "" {
		return ""
	}
	if note.UserID == callerID {
		return PermissionOwner
	}
	if c := note.FindCollaborator(callerID); c != nil {
		return c.Permission
	}
	return ""
}

type CollaborationService struct {
	NotesRepo *repository.NotesRepo
	UsersRepo *repository.UserRepo
}

// AddCollaborator grants an account view or edit access to a note. Owner-only.
// The target's name and email are snapshotted onto the entry at add-time.
func (svc *CollaborationService) AddCollaborator(ctx context.Context, noteID, callerID, email, permission string) (*model.Collaborator, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || permission == "" {
		return nil, fmt.Errorf("%w: email and permission are required", ErrValidation)
	}
	if !model.IsValidPermission(permission) {
		return nil, fmt.Errorf("%w: permission must be view or edit", ErrValidation)
	}

	note, err := svc.visibleNote(ctx, noteID, callerID)
	if err != nil {
		return nil, err
	}
	if note.UserID != callerID {
		return nil, fmt.Errorf("%w: only the owner may manage collaborators", ErrForbidden)
	}

	target, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: no account with that email", ErrNotFound)
	}
	if target.IsBanned {
		return nil, fmt.Errorf("%w: that account is banned", ErrForbidden)
	}
	if target.UserID == note.UserID {
		return nil, fmt.Errorf("%w: the owner is already on the note", ErrConflict)
	}
	if note.CollaboratorByEmail(email) != nil || note.FindCollaborator(target.UserID) != nil {
		return nil, fmt.Errorf("%w: already a collaborator", ErrConflict)
	}

	collab := model.Collaborator{
		UserID:     target.UserID,
		Permission: permission,
		Name:       target.Username,
		Email:      target.Email,
	}
	if err := svc.NotesRepo.AddCollaborator(ctx, noteID, collab); err != nil {
		return nil, err
	}
	return &collab, nil
}

// RemoveCollaborator revokes a collaborator's access, matched by email. Owner-only.
func (svc *CollaborationService) RemoveCollaborator(ctx context.Context, noteID, callerID, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	note, err := svc.visibleNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}
	if note.UserID != callerID {
		return fmt.Errorf("%w: only the owner may manage collaborators", ErrForbidden)
	}

	entry := note.CollaboratorByEmail(email)
	if entry == nil {
		return fmt.Errorf("%w: not a collaborator on this note", ErrValidation)
	}

	return svc.NotesRepo.RemoveCollaborator(ctx, noteID, entry.UserID)
}

// RemoveUserFromAllCollaborations strips a user out of every collaborator
// list. Called on ban; returns the number of notes touched.
func (svc *CollaborationService) RemoveUserFromAllCollaborations(ctx context.Context, userID string) (int64, error) {
	return svc.NotesRepo.RemoveUserFromAllCollaborations(ctx, userID)
}

func (svc *CollaborationService) visibleNote(ctx context.Context, noteID, callerID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetVisibleNote(ctx, noteID, callerID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}
