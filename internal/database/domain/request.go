package domain

import "time"

// RequestKind is what a client asks an administrator to do with its access.
type RequestKind string

const (
	RequestRenewal    RequestKind = "renovação"
	RequestRevocation RequestKind = "revogação"
)

func (k RequestKind) Valid() bool {
	return k == RequestRenewal || k == RequestRevocation
}

// RequestStatus is the lifecycle state of a request. Only pending requests
// can be resolved, and resolution happens exactly once.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pendente"
	RequestApproved RequestStatus = "aprovado"
	RequestRejected RequestStatus = "rejeitado"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Request is a client-submitted ask for renewal or revocation of access.
type Request struct {
	ID        string
	ClientID  string
	Kind      RequestKind
	Status    RequestStatus
	CreatedAt time.Time
	ManagedBy *string // admin id, set once the request is resolved
}

// PendingRequest is a pending request joined with the requesting client.
type PendingRequest struct {
	Request

	ClientName      string
	ClientEmail     string
	ClientExpiresAt time.Time
}
