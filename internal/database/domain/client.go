package domain

import "time"

// Client is a customer account with time-boxed access to the demo catalog.
type Client struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
	ExpiresAt    time.Time
	CreatedBy    string // admin id
	CreatedAt    time.Time
}

// IsActive reports whether now falls inside the client's access window.
func (c Client) IsActive(now time.Time) bool {
	return !now.Before(c.RegisteredAt) && !now.After(c.ExpiresAt)
}

// ClientPatch carries the fields of a partial client update. Nil fields are
// left untouched.
type ClientPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	ExpiresAt    *time.Time
}

func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.ExpiresAt == nil
}
