package model

import "time"

// GuestNote is a note persisted by an unauthenticated visitor, primarily so a
// share link can be handed out without an account. It carries no ownership and
// expires wholesale after the guest retention window.
type GuestNote struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	ContentType string    `bson:"content_type" json:"content_type"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	ShareID     string    `bson:"share_id" json:"share_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
