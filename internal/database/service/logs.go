package service

import (
	"context"
	"strings"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
)

const (
	DefaultLogLimit       = 100
	DefaultFilterLogLimit = 50
	MaxLogLimit           = 1000
)

type LogService struct {
	Store store.Store
}

// NewLog is the input of LogService.Create. A zero Timestamp lets the
// store stamp the entry.
type NewLog struct {
	ClientID  *string
	DemoID    *string
	Kind      domain.LogKind
	Message   *string
	Timestamp time.Time
}

// clampLimit applies def when limit is unset and caps it at MaxLogLimit.
func clampLimit(limit, def int) int {
	switch {
	case limit <= 0:
		return def
	case limit > MaxLogLimit:
		return MaxLogLimit
	default:
		return limit
	}
}

func (s *LogService) List(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	return s.Store.Logs().ListLogs(ctx, clampLimit(limit, DefaultLogLimit))
}

func (s *LogService) Get(ctx context.Context, id string) (domain.LogEntry, error) {
	e, err := s.Store.Logs().GetLogByID(ctx, id)
	return e, mapStoreErr(err, ErrLogNotFound)
}

func (s *LogService) ListByClient(ctx context.Context, clientID string, limit int) ([]domain.LogEntry, error) {
	return s.Store.Logs().ListLogsByClient(ctx, clientID, clampLimit(limit, DefaultFilterLogLimit))
}

func (s *LogService) ListByDemo(ctx context.Context, demoID string, limit int) ([]domain.LogEntry, error) {
	return s.Store.Logs().ListLogsByDemo(ctx, demoID, clampLimit(limit, DefaultFilterLogLimit))
}

func (s *LogService) ListByKind(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	if !kind.Valid() {
		return nil, ErrInvalidLogKind
	}
	return s.Store.Logs().ListLogsByKind(ctx, kind, clampLimit(limit, DefaultFilterLogLimit))
}

func (s *LogService) Create(ctx context.Context, in NewLog) (domain.LogEntry, error) {
	if !in.Kind.Valid() {
		return domain.LogEntry{}, ErrInvalidLogKind
	}

	e := domain.LogEntry{
		ID:        idx.New().String(),
		ClientID:  blankToNil(in.ClientID),
		DemoID:    blankToNil(in.DemoID),
		Kind:      in.Kind,
		Message:   in.Message,
		Timestamp: in.Timestamp,
	}
	if err := s.Store.Logs().CreateLog(ctx, e); err != nil {
		return domain.LogEntry{}, mapStoreErr(err, ErrLogNotFound)
	}
	return s.Get(ctx, e.ID)
}

func (s *LogService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Logs().DeleteLog(ctx, id), ErrLogNotFound)
}

func (s *LogService) Stats(ctx context.Context) ([]domain.LogStats, error) {
	return s.Store.Logs().Stats(ctx)
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
