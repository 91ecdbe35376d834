package model

import "time"

type User struct {
	UserID      string    `bson:"user_id" json:"user_id"`
	Username    string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email       string    `bson:"email" json:"email" validate:"required,email"`
	Password    string    `bson:"password" json:"-"` // argon2 hash
	IsBanned    bool      `bson:"is_banned" json:"is_banned"`
	IsAdmin     bool      `bson:"is_admin" json:"is_admin"`
	Categories  []string  `bson:"categories" json:"categories"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	LastLoginAt time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// PendingUser holds a registration awaiting email verification. Promoted to a
// User once the emailed token is presented; swept after ExpiresAt.
type PendingUser struct {
	Email     string    `bson:"email" json:"email"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"` // argon2 hash
	Token     string    `bson:"token" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
