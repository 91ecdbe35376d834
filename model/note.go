package model

import (
	"time"
)

// Permission levels a collaborator can hold on a note.
const (
	PermissionView = "view"
	PermissionEdit = "edit"
)

// Content types a note can carry.
const (
	ContentTypePlain    = "plain"
	ContentTypeMarkdown = "markdown"
)

// Collaborator is a denormalized snapshot of an account granted access to a
// note. Name and email are copied at add-time and refreshed only on re-add.
type Collaborator struct {
	UserID     string `bson:"user_id" json:"user_id"`
	Permission string `bson:"permission" json:"permission"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
}

type Note struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	UserID      string   `bson:"user_id" json:"user_id"`
	Title       string   `bson:"title" json:"title"`
	Content     string   `bson:"content" json:"content"`
	ContentType string   `bson:"content_type" json:"content_type"`
	Category    string   `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`

	IsPinned   bool `bson:"is_pinned" json:"is_pinned"`
	IsFavorite bool `bson:"is_favorite" json:"is_favorite"`
	IsShared   bool `bson:"is_shared" json:"is_shared"`
	IsDeleted  bool `bson:"is_deleted" json:"is_deleted"`
	IsPrivate  bool `bson:"is_private" json:"is_private"`

	ShareID          string         `bson:"share_id,omitempty" json:"share_id,omitempty"`
	SharePermissions string         `bson:"share_permissions,omitempty" json:"share_permissions,omitempty"`
	SharedWith       []string       `bson:"shared_with,omitempty" json:"shared_with,omitempty"` // legacy, superseded by Collaborators
	Collaborators    []Collaborator `bson:"collaborators,omitempty" json:"collaborators,omitempty"`

	// Private-note gate. Stored as an argon2 hash; the hint is returned to
	// the owner alongside unlock prompts.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	PasswordHint string `bson:"password_hint,omitempty" json:"password_hint,omitempty"`

	Version      int    `bson:"version" json:"version"`
	LastEditedBy string `bson:"last_edited_by,omitempty" json:"last_edited_by,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// FindCollaborator returns the collaborator entry for userID, if any.
func (n *Note) FindCollaborator(userID string) *Collaborator {
	for i := range n.Collaborators {
		if n.Collaborators[i].UserID == userID {
			return &n.Collaborators[i]
		}
	}
	return nil
}

// CollaboratorByEmail returns the collaborator entry matching email, if any.
func (n *Note) CollaboratorByEmail(email string) *Collaborator {
	for i := range n.Collaborators {
		if n.Collaborators[i].Email == email {
			return &n.Collaborators[i]
		}
	}
	return nil
}

// IsValidPermission reports whether p is a recognized collaborator permission.
func IsValidPermission(p string) bool {
	return p == PermissionView || p == PermissionEdit
}
