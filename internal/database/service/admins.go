package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/pkg/idx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type AdminService struct {
	Store store.Store
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return s.Store.Admins().ListAdmins(ctx)
}

func (s *AdminService) Get(ctx context.Context, id string) (domain.Admin, error) {
	a, err := s.Store.Admins().GetAdminByID(ctx, id)
	return a, mapStoreErr(err, ErrAdminNotFound)
}

// GetByEmail returns the admin including its password hash.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	a, err := s.Store.Admins().GetAdminByEmail(ctx, strings.TrimSpace(email))
	return a, mapStoreErr(err, ErrAdminNotFound)
}

// Create provisions an admin. passwordHash must already be hashed.
func (s *AdminService) Create(ctx context.Context, name, email, passwordHash string, contact *string) (domain.Admin, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return domain.Admin{}, invalid("nome is required")
	}
	if err := validateEmail(email); err != nil {
		return domain.Admin{}, err
	}
	if passwordHash == "" {
		return domain.Admin{}, invalid("password_hash is required")
	}

	a := domain.Admin{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Contact:      contact,
	}
	if err := s.Store.Admins().CreateAdmin(ctx, a); err != nil {
		return domain.Admin{}, mapStoreErr(err, ErrAdminNotFound)
	}

	slogx.FromContext(ctx).Info("admin created", slog.String("admin_id", a.ID), slog.String("email", a.Email))
	return s.Get(ctx, a.ID)
}
