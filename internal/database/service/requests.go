package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// RenewalPeriodDays is how far an approved renewal pushes the client's
// expiration when no explicit date is given.
const RenewalPeriodDays = 30

type RequestService struct {
	Store store.Store
}

func (s *RequestService) List(ctx context.Context) ([]domain.Request, error) {
	return s.Store.Requests().ListRequests(ctx)
}

func (s *RequestService) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error) {
	if !status.Valid() {
		return nil, invalid("unknown estado %q", status)
	}
	return s.Store.Requests().ListRequestsByStatus(ctx, status)
}

func (s *RequestService) ListByClient(ctx context.Context, clientID string) ([]domain.Request, error) {
	return s.Store.Requests().ListRequestsByClient(ctx, clientID)
}

func (s *RequestService) Get(ctx context.Context, id string) (domain.Request, error) {
	req, err := s.Store.Requests().GetRequestByID(ctx, id)
	return req, mapStoreErr(err, ErrRequestNotFound)
}

// Pending returns the pending queue joined with client details.
func (s *RequestService) Pending(ctx context.Context) ([]domain.PendingRequest, error) {
	return s.Store.Requests().ListPendingWithClient(ctx)
}

// Create opens a new pending request for an existing client.
func (s *RequestService) Create(ctx context.Context, clientID string, kind domain.RequestKind) (domain.Request, error) {
	log := slogx.FromContext(ctx)

	if !kind.Valid() {
		return domain.Request{}, ErrInvalidRequestKind
	}

	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("request for unknown client", slog.String("client_id", clientID))
			return domain.Request{}, ErrInvalidClient
		}
		log.Error("failed to fetch client", slog.Any("error", err))
		return domain.Request{}, err
	}

	req := domain.Request{
		ID:       idx.New().String(),
		ClientID: clientID,
		Kind:     kind,
		Status:   domain.RequestPending,
	}
	if err := s.Store.Requests().CreateRequest(ctx, req); err != nil {
		log.Error("failed to create request", slog.String("client_id", clientID), slog.Any("error", err))
		return domain.Request{}, mapStoreErr(err, ErrInvalidClient)
	}

	log.Info("request created",
		slog.String("request_id", req.ID),
		slog.String("client_id", clientID),
		slog.String("kind", string(kind)),
	)
	return s.Get(ctx, req.ID)
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Requests().DeleteRequest(ctx, id), ErrRequestNotFound)
}
