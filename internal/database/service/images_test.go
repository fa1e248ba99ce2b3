package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

func TestImageService(t *testing.T) {
	ctx := context.Background()
	svc := &ImageService{Store: newTestStore(t)}

	img, err := svc.Create(ctx, domain.Image{
		Name:    " forecast ",
		Version: "1.0.0",
		URL:     "registry.ltplabs.com/forecast:1.0.0",
	})
	require.NoError(t, err)
	require.Equal(t, "forecast", img.Name)
	require.NotEmpty(t, img.ID)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.Image{Version: "1", URL: "x"})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Create(ctx, domain.Image{Name: "forecast", Version: "1.0.0", URL: "other"})
		require.ErrorIs(t, err, ErrAlreadyExists)

		_, err = svc.Update(ctx, img.ID, domain.ImagePatch{URL: ptr("  ")})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("update and lookup by name", func(t *testing.T) {
		got, err := svc.Update(ctx, img.ID, domain.ImagePatch{Version: ptr("1.0.1")})
		require.NoError(t, err)
		require.Equal(t, "1.0.1", got.Version)

		list, err := svc.ListByName(ctx, "forecast")
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, img.ID))
		require.ErrorIs(t, svc.Delete(ctx, img.ID), ErrImageNotFound)
		_, err := svc.Update(ctx, img.ID, domain.ImagePatch{})
		require.ErrorIs(t, err, ErrImageNotFound)
	})
}

func TestViewServiceClientStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ViewService{Store: st}
	admin := seedAdmin(t, st)
	client := seedClient(t, st, admin.ID, time.Now().UTC().Add(24*time.Hour))

	stats, err := svc.ClientStatsByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, client.ID, stats.ClientID)
	require.Zero(t, stats.TotalLogins)

	_, err = svc.ClientStatsByID(ctx, "missing")
	require.ErrorIs(t, err, ErrClientNotFound)

	active, err := svc.ActiveClients(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, domain.AccessExpiring, active[0].AccessStatus)
}
