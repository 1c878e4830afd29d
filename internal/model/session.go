package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a persisted bearer-token session. The token itself is a signed
// JWT; the row is the revocation and expiry source of truth.
type Session struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	SessionToken string    `json:"-"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}
