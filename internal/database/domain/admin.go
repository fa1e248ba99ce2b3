package domain

import "time"

// Admin is a platform operator. Admins are provisioned out-of-band and are
// referenced as the creator of clients and demos and as the manager of
// resolved requests.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Contact      *string
	CreatedAt    time.Time
}
