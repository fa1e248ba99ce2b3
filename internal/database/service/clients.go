package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type ClientService struct {
	Store store.Store
}

// NewClient is the input of ClientService.Create. The password arrives
// already hashed; hashing happens at the edge.
type NewClient struct {
	Name         string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
	ExpiresAt    time.Time
	CreatedBy    string
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

func (s *ClientService) ListActive(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListActiveClients(ctx)
}

func (s *ClientService) ListExpired(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListExpiredClients(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, id)
	return c, mapStoreErr(err, ErrClientNotFound)
}

// GetByEmail returns the client including its password hash. Callers decide
// whether the hash leaves the process.
func (s *ClientService) GetByEmail(ctx context.Context, email string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByEmail(ctx, strings.TrimSpace(email))
	return c, mapStoreErr(err, ErrClientNotFound)
}

func (s *ClientService) Create(ctx context.Context, in NewClient) (domain.Client, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate shape.
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return domain.Client{}, invalid("nome is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return domain.Client{}, err
	}
	if in.PasswordHash == "" {
		return domain.Client{}, invalid("password_hash is required")
	}
	if in.RegisteredAt.IsZero() {
		in.RegisteredAt = time.Now()
	}
	if in.ExpiresAt.IsZero() || in.ExpiresAt.Before(in.RegisteredAt) {
		return domain.Client{}, invalid("data_expiracao must not precede data_registo")
	}

	// 2. Validate the creating admin.
	if _, err := s.Store.Admins().GetAdminByID(ctx, in.CreatedBy); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrInvalidAdmin
		}
		log.Error("failed to fetch admin", slog.Any("error", err))
		return domain.Client{}, err
	}

	// 3. Insert.
	c := domain.Client{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		RegisteredAt: in.RegisteredAt.UTC(),
		ExpiresAt:    in.ExpiresAt.UTC(),
		CreatedBy:    in.CreatedBy,
	}
	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("client email already registered", slog.String("email", c.Email))
		} else {
			log.Error("failed to create client", slog.Any("error", err))
		}
		return domain.Client{}, mapStoreErr(err, ErrClientNotFound)
	}

	log.Info("client created", slog.String("client_id", c.ID), slog.String("created_by", c.CreatedBy))
	return s.Get(ctx, c.ID)
}

// Update applies a partial update. An empty patch returns the current client.
func (s *ClientService) Update(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Client{}, invalid("nome must not be empty")
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return domain.Client{}, err
		}
	}
	if patch.PasswordHash != nil && *patch.PasswordHash == "" {
		return domain.Client{}, invalid("password_hash must not be empty")
	}

	if err := s.Store.Clients().UpdateClient(ctx, id, patch); err != nil {
		return domain.Client{}, mapStoreErr(err, ErrClientNotFound)
	}
	return s.Get(ctx, id)
}

// Extend overwrites the client's expiration date.
func (s *ClientService) Extend(ctx context.Context, id string, expiresAt time.Time) (domain.Client, error) {
	if expiresAt.IsZero() {
		return domain.Client{}, invalid("nova_data_expiracao is required")
	}

	if err := s.Store.Clients().SetClientExpiration(ctx, id, expiresAt.UTC()); err != nil {
		return domain.Client{}, mapStoreErr(err, ErrClientNotFound)
	}

	slogx.FromContext(ctx).Info("client access extended",
		slog.String("client_id", id),
		slog.Time("expires_at", expiresAt),
	)
	return s.Get(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Clients().DeleteClient(ctx, id), ErrClientNotFound)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email %q is not a valid address", email)
	}
	return nil
}
