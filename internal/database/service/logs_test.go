package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

func TestClampLimit(t *testing.T) {
	require.Equal(t, DefaultLogLimit, clampLimit(0, DefaultLogLimit))
	require.Equal(t, DefaultFilterLogLimit, clampLimit(-3, DefaultFilterLogLimit))
	require.Equal(t, 7, clampLimit(7, DefaultLogLimit))
	require.Equal(t, MaxLogLimit, clampLimit(5000, DefaultLogLimit))
}

func TestLogService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &LogService{Store: st}
	admin := seedAdmin(t, st)
	client := seedClient(t, st, admin.ID, time.Now().UTC().AddDate(0, 1, 0))

	e, err := svc.Create(ctx, NewLog{ClientID: &client.ID, Kind: domain.LogLogin, Message: ptr("login ok")})
	require.NoError(t, err)
	require.False(t, e.Timestamp.IsZero())

	_, err = svc.Create(ctx, NewLog{ClientID: ptr(""), Kind: domain.LogWarning})
	require.NoError(t, err)

	_, err = svc.Create(ctx, NewLog{Kind: domain.LogKind("debug")})
	require.ErrorIs(t, err, ErrInvalidLogKind)

	_, err = svc.Create(ctx, NewLog{ClientID: ptr("ghost"), Kind: domain.LogLogin})
	require.ErrorIs(t, err, ErrValidation)

	byClient, err := svc.ListByClient(ctx, client.ID, 0)
	require.NoError(t, err)
	require.Len(t, byClient, 1)

	byKind, err := svc.ListByKind(ctx, domain.LogWarning, 0)
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	require.Nil(t, byKind[0].ClientID)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.Get(ctx, e.ID)
	require.ErrorIs(t, err, ErrLogNotFound)
}
