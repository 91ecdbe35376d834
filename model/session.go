package model

import "time"

// Session records a successful login for the account activity view. Identity
// itself is carried by the bearer token; sessions are bookkeeping only.
type Session struct {
	SessionID  string    `bson:"session_id" json:"session_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	DeviceInfo string    `bson:"device_info" json:"device_info"`
	IPAddress  string    `bson:"ip_address" json:"ip_address"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expires_at"`
	IsActive   bool      `bson:"is_active" json:"is_active"`
}
