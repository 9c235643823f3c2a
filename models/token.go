package models

import "time"

// TokenResponse is returned by POST /auth/token
type TokenResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
