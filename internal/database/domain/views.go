package domain

import "time"

// Access states reported for clients inside their access window.
const (
	AccessActive   = "ativo"
	AccessExpiring = "a_expirar"
)

// ExpiringWithinDays is how close to expiry a client is reported as
// AccessExpiring.
const ExpiringWithinDays = 7

// ActiveClient is a client whose access window contains now.
type ActiveClient struct {
	ID            string
	Name          string
	Email         string
	RegisteredAt  time.Time
	ExpiresAt     time.Time
	DaysRemaining int
	AccessStatus  string
}

// ActiveDemo is an active demo with its creator.
type ActiveDemo struct {
	ID           string
	Name         string
	Description  *string
	URL          *string
	Vertical     *string
	Horizontal   *string
	ProjectCode  *string
	CreatedAt    time.Time
	CreatorName  string
	CreatorEmail string
}

// ClientStats summarises a client's activity from the audit log.
type ClientStats struct {
	ClientID     string
	Name         string
	Email        string
	DemosOpened  int
	TotalOpens   int
	TotalLogins  int
	LastActivity *time.Time
}
