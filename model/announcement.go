package model

import "time"

// Announcement is the single admin-managed banner message. Persisted so it
// survives process restarts.
type Announcement struct {
	ID        string    `bson:"_id" json:"-"`
	Message   string    `bson:"message" json:"message"`
	UpdatedBy string    `bson:"updated_by" json:"updated_by"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
