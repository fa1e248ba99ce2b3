package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
	"github.com/ltplabs/ecatalog/internal/database/store/drivers/sqlite"
	"github.com/ltplabs/ecatalog/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := sqlite.DSN(filepath.Join(t.TempDir(), "catalog.db"), 5*time.Second)
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedAdmin(t *testing.T, st store.Store) domain.Admin {
	t.Helper()

	a := domain.Admin{
		ID:           idx.New().String(),
		Name:         "Ana Admin",
		Email:        idx.New().String() + "@ltplabs.com",
		PasswordHash: "$argon2id$dummy",
	}
	require.NoError(t, st.Admins().CreateAdmin(context.Background(), a))
	return a
}

func seedClient(t *testing.T, st store.Store, adminID string, expiresAt time.Time) domain.Client {
	t.Helper()

	c := domain.Client{
		ID:           idx.New().String(),
		Name:         "Cliente",
		Email:        idx.New().String() + "@example.com",
		PasswordHash: "$argon2id$dummy",
		RegisteredAt: expiresAt.AddDate(0, -1, 0),
		ExpiresAt:    expiresAt,
		CreatedBy:    adminID,
	}
	require.NoError(t, st.Clients().CreateClient(context.Background(), c))
	return c
}

func ptr[T any](v T) *T { return &v }
