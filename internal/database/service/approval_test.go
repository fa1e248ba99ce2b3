package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
)

func TestApprove(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RequestService{Store: st}
	admin := seedAdmin(t, st)

	t.Run("renewal extends expiration by thirty days", func(t *testing.T) {
		client := seedClient(t, st, admin.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
		require.NoError(t, err)

		got, err := svc.Approve(ctx, req.ID, admin.ID, nil)
		require.NoError(t, err)
		require.Equal(t, domain.RequestApproved, got.Status)
		require.NotNil(t, got.ManagedBy)
		require.Equal(t, admin.ID, *got.ManagedBy)

		c, err := st.Clients().GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		require.True(t, c.ExpiresAt.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)), c.ExpiresAt)

		logs, err := st.Logs().ListLogsByClient(ctx, client.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, domain.LogAccessGranted, logs[0].Kind)
		require.NotNil(t, logs[0].Message)
		require.Equal(t, "Pedido de renovação aprovado", *logs[0].Message)
	})

	t.Run("explicit expiration overrides the default period", func(t *testing.T) {
		client := seedClient(t, st, admin.ID, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
		require.NoError(t, err)

		want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err = svc.Approve(ctx, req.ID, admin.ID, &want)
		require.NoError(t, err)

		c, err := st.Clients().GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		require.True(t, c.ExpiresAt.Equal(want))
	})

	t.Run("revocation leaves the client untouched", func(t *testing.T) {
		exp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		client := seedClient(t, st, admin.ID, exp)
		req, err := svc.Create(ctx, client.ID, domain.RequestRevocation)
		require.NoError(t, err)

		got, err := svc.Approve(ctx, req.ID, admin.ID, nil)
		require.NoError(t, err)
		require.Equal(t, domain.RequestApproved, got.Status)

		c, err := st.Clients().GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		require.True(t, c.ExpiresAt.Equal(exp))
	})

	t.Run("resolved request is refused and unchanged", func(t *testing.T) {
		exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		client := seedClient(t, st, admin.ID, exp)
		req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
		require.NoError(t, err)

		_, err = svc.Reject(ctx, req.ID, admin.ID)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, req.ID, admin.ID, nil)
		require.ErrorIs(t, err, ErrInvalidState)

		got, err := svc.Get(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RequestRejected, got.Status)

		c, err := st.Clients().GetClientByID(ctx, client.ID)
		require.NoError(t, err)
		require.True(t, c.ExpiresAt.Equal(exp))
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := svc.Approve(ctx, "missing", admin.ID, nil)
		require.ErrorIs(t, err, ErrRequestNotFound)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown admin keeps the request pending", func(t *testing.T) {
		client := seedClient(t, st, admin.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, req.ID, "nobody", nil)
		require.ErrorIs(t, err, ErrInvalidAdmin)
		require.ErrorIs(t, err, ErrValidation)

		got, err := svc.Get(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RequestPending, got.Status)
		require.Nil(t, got.ManagedBy)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RequestService{Store: st}
	admin := seedAdmin(t, st)

	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	client := seedClient(t, st, admin.ID, exp)
	req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
	require.NoError(t, err)

	got, err := svc.Reject(ctx, req.ID, admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RequestRejected, got.Status)
	require.Equal(t, admin.ID, *got.ManagedBy)

	// A second rejection is refused.
	_, err = svc.Reject(ctx, req.ID, admin.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	c, err := st.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, c.ExpiresAt.Equal(exp))

	logs, err := st.Logs().ListLogsByClient(ctx, client.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, domain.LogAccessRevoked, logs[0].Kind)
	require.Equal(t, "Pedido de renovação rejeitado", *logs[0].Message)
}

func TestConcurrentApprovalsExtendOnce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RequestService{Store: st}
	admin := seedAdmin(t, st)

	client := seedClient(t, st, admin.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
	require.NoError(t, err)

	const n = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Approve(ctx, req.ID, admin.ID, nil)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, refused int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInvalidState):
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, refused)

	c, err := st.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, c.ExpiresAt.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)), c.ExpiresAt)

	logs, err := st.Logs().ListLogsByClient(ctx, client.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

// failingStore hands out transactions whose client update always fails.
type failingStore struct {
	store.Store
	failure error
}

func (s *failingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&failingTx{storeTx: tx, failure: s.failure})
	})
}

// storeTx lets failingTx embed the interface without its field name
// shadowing the Tx method.
type storeTx = store.Tx

type failingTx struct {
	storeTx
	failure error
}

func (tx *failingTx) Clients() store.Clients {
	return &failingClients{Clients: tx.storeTx.Clients(), failure: tx.failure}
}

type failingClients struct {
	store.Clients
	failure error
}

func (c *failingClients) SetClientExpiration(context.Context, string, time.Time) error {
	return c.failure
}

func TestApproveIsAtomic(t *testing.T) {
	ctx := context.Background()
	base := newTestStore(t)
	admin := seedAdmin(t, base)

	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	client := seedClient(t, base, admin.ID, exp)

	failure := errors.New("disk full")
	svc := &RequestService{Store: &failingStore{Store: base, failure: failure}}

	req, err := svc.Create(ctx, client.ID, domain.RequestRenewal)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, req.ID, admin.ID, nil)
	require.ErrorIs(t, err, failure)

	got, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RequestPending, got.Status)
	require.Nil(t, got.ManagedBy)

	c, err := base.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, c.ExpiresAt.Equal(exp))

	logs, err := base.Logs().ListLogsByClient(ctx, client.ID, 10)
	require.NoError(t, err)
	require.Empty(t, logs)

	// The same request can still be approved once the fault is gone.
	ok := &RequestService{Store: base}
	got, err = ok.Approve(ctx, req.ID, admin.ID, nil)
	require.NoError(t, err)
	require.Equal(t, domain.RequestApproved, got.Status)
}
