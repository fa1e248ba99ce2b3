package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type DemoService struct {
	Store store.Store
}

func (s *DemoService) List(ctx context.Context) ([]domain.Demo, error) {
	return s.Store.Demos().ListDemos(ctx)
}

func (s *DemoService) ListActive(ctx context.Context) ([]domain.Demo, error) {
	return s.Store.Demos().ListActiveDemos(ctx)
}

func (s *DemoService) ListByVertical(ctx context.Context, vertical string) ([]domain.Demo, error) {
	return s.Store.Demos().ListDemosByVertical(ctx, vertical)
}

func (s *DemoService) ListByHorizontal(ctx context.Context, horizontal string) ([]domain.Demo, error) {
	return s.Store.Demos().ListDemosByHorizontal(ctx, horizontal)
}

func (s *DemoService) Get(ctx context.Context, id string) (domain.Demo, error) {
	d, err := s.Store.Demos().GetDemoByID(ctx, id)
	return d, mapStoreErr(err, ErrDemoNotFound)
}

func (s *DemoService) Create(ctx context.Context, d domain.Demo) (domain.Demo, error) {
	log := slogx.FromContext(ctx)

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return domain.Demo{}, invalid("nome is required")
	}
	if d.Status == "" {
		d.Status = domain.DemoActive
	}
	if !d.Status.Valid() {
		return domain.Demo{}, ErrInvalidDemoStatus
	}
	code, err := normalizeProjectCode(d.ProjectCode)
	if err != nil {
		return domain.Demo{}, err
	}
	d.ProjectCode = code
	if err := validateURL(d.URL); err != nil {
		return domain.Demo{}, err
	}

	if _, err := s.Store.Admins().GetAdminByID(ctx, d.CreatedBy); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Demo{}, ErrInvalidAdmin
		}
		return domain.Demo{}, err
	}

	d.ID = idx.New().String()
	if err := s.Store.Demos().CreateDemo(ctx, d); err != nil {
		log.Warn("failed to create demo", slog.Any("error", err))
		return domain.Demo{}, mapStoreErr(err, ErrDemoNotFound)
	}

	log.Info("demo created", slog.String("demo_id", d.ID), slog.String("created_by", d.CreatedBy))
	return s.Get(ctx, d.ID)
}

func (s *DemoService) Update(ctx context.Context, id string, patch domain.DemoPatch) (domain.Demo, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Demo{}, invalid("nome must not be empty")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Demo{}, ErrInvalidDemoStatus
	}
	code, err := normalizeProjectCode(patch.ProjectCode)
	if err != nil {
		return domain.Demo{}, err
	}
	patch.ProjectCode = code
	if err := validateURL(patch.URL); err != nil {
		return domain.Demo{}, err
	}

	if err := s.Store.Demos().UpdateDemo(ctx, id, patch); err != nil {
		return domain.Demo{}, mapStoreErr(err, ErrDemoNotFound)
	}
	return s.Get(ctx, id)
}

func (s *DemoService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Demos().DeleteDemo(ctx, id), ErrDemoNotFound)
}

// normalizeProjectCode upper-cases a project code and enforces its length.
// Empty codes are stored as NULL.
func normalizeProjectCode(code *string) (*string, error) {
	if code == nil {
		return nil, nil
	}
	c := strings.ToUpper(strings.TrimSpace(*code))
	if c == "" {
		return nil, nil
	}
	if len([]rune(c)) != domain.ProjectCodeLength {
		return nil, invalid("codigo_projeto must have exactly %d characters", domain.ProjectCodeLength)
	}
	return &c, nil
}

func validateURL(u *string) error {
	if u == nil || *u == "" {
		return nil
	}
	if !strings.HasPrefix(*u, "http://") && !strings.HasPrefix(*u, "https://") {
		return invalid("url must start with http:// or https://")
	}
	return nil
}
