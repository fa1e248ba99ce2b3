package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

func TestDemoService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &DemoService{Store: st}
	admin := seedAdmin(t, st)

	d, err := svc.Create(ctx, domain.Demo{
		Name:        "Forecasting",
		URL:         ptr("https://demo.ltplabs.com/forecast"),
		ProjectCode: ptr("abc123"),
		Vertical:    ptr("retail"),
		CreatedBy:   admin.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.DemoActive, d.Status)
	require.Equal(t, "ABC123", *d.ProjectCode)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.Demo{Name: "x", ProjectCode: ptr("abc"), CreatedBy: admin.ID})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Create(ctx, domain.Demo{Name: "x", URL: ptr("ftp://x"), CreatedBy: admin.ID})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Create(ctx, domain.Demo{Name: "x", CreatedBy: "nobody"})
		require.ErrorIs(t, err, ErrInvalidAdmin)

		_, err = svc.Create(ctx, domain.Demo{Name: "dup", ProjectCode: ptr("ABC123"), CreatedBy: admin.ID})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("update moves the demo out of the active list", func(t *testing.T) {
		status := domain.DemoMaintenance
		got, err := svc.Update(ctx, d.ID, domain.DemoPatch{Status: &status})
		require.NoError(t, err)
		require.Equal(t, domain.DemoMaintenance, got.Status)

		active, err := svc.ListActive(ctx)
		require.NoError(t, err)
		require.Empty(t, active)

		bad := domain.DemoStatus("archived")
		_, err = svc.Update(ctx, d.ID, domain.DemoPatch{Status: &bad})
		require.ErrorIs(t, err, ErrInvalidDemoStatus)
	})

	t.Run("filters", func(t *testing.T) {
		list, err := svc.ListByVertical(ctx, "retail")
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = svc.ListByHorizontal(ctx, "retail")
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, d.ID))
		_, err := svc.Get(ctx, d.ID)
		require.ErrorIs(t, err, ErrDemoNotFound)
	})
}
