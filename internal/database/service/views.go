package service

import (
	"context"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
)

// ViewService serves the reporting views.
type ViewService struct {
	Store store.Store
}

func (s *ViewService) ActiveClients(ctx context.Context) ([]domain.ActiveClient, error) {
	return s.Store.Views().ActiveClients(ctx)
}

func (s *ViewService) ActiveDemos(ctx context.Context) ([]domain.ActiveDemo, error) {
	return s.Store.Views().ActiveDemos(ctx)
}

func (s *ViewService) ClientStats(ctx context.Context) ([]domain.ClientStats, error) {
	return s.Store.Views().ClientStats(ctx)
}

// ClientStatsByID returns one client's activity. The view has a row for
// every client, so a miss means the client does not exist.
func (s *ViewService) ClientStatsByID(ctx context.Context, clientID string) (domain.ClientStats, error) {
	st, err := s.Store.Views().ClientStatsByID(ctx, clientID)
	return st, mapStoreErr(err, ErrClientNotFound)
}
