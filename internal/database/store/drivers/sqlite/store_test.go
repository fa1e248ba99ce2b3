package sqlite_test

import (
	"context"
	"errors"
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
		RegisteredAt: time.Now().UTC().Add(-24 * time.Hour),
		ExpiresAt:    expiresAt,
		CreatedBy:    adminID,
	}
	require.NoError(t, st.Clients().CreateClient(context.Background(), c))
	return c
}

func TestMigrations(t *testing.T) {
	st := newTestStore(t)

	// Applying twice is a no-op.
	require.NoError(t, st.ApplyMigrations())

	version, dirty, err := st.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 3, version)
}

func TestClientsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)

	t.Run("create and get round trips timestamps", func(t *testing.T) {
		exp := time.Date(2030, 1, 31, 12, 0, 0, 0, time.UTC)
		c := seedClient(t, st, admin.ID, exp)

		got, err := st.Clients().GetClientByID(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, c.Email, got.Email)
		require.Equal(t, exp, got.ExpiresAt)
		require.Equal(t, admin.ID, got.CreatedBy)

		byEmail, err := st.Clients().GetClientByEmail(ctx, c.Email)
		require.NoError(t, err)
		require.Equal(t, c.ID, byEmail.ID)
		require.Equal(t, "$argon2id$dummy", byEmail.PasswordHash)
	})

	t.Run("duplicate email is already exists", func(t *testing.T) {
		c := seedClient(t, st, admin.ID, time.Now().Add(time.Hour))
		dup := c
		dup.ID = idx.New().String()

		err := st.Clients().CreateClient(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown creator is a constraint violation", func(t *testing.T) {
		err := st.Clients().CreateClient(ctx, domain.Client{
			ID:           idx.New().String(),
			Name:         "x",
			Email:        "orphan@example.com",
			PasswordHash: "h",
			RegisteredAt: time.Now(),
			ExpiresAt:    time.Now().Add(time.Hour),
			CreatedBy:    "missing-admin",
		})
		require.ErrorIs(t, err, store.ErrConstraint)
	})

	t.Run("missing client is not found", func(t *testing.T) {
		_, err := st.Clients().GetClientByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Clients().SetClientExpiration(ctx, "nope", time.Now())
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Clients().UpdateClient(ctx, "nope", domain.ClientPatch{})
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Clients().DeleteClient(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("partial update only touches supplied fields", func(t *testing.T) {
		c := seedClient(t, st, admin.ID, time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC))
		name := "Renamed"

		require.NoError(t, st.Clients().UpdateClient(ctx, c.ID, domain.ClientPatch{Name: &name}))

		got, err := st.Clients().GetClientByID(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Name)
		require.Equal(t, c.Email, got.Email)
		require.Equal(t, c.ExpiresAt, got.ExpiresAt)
	})

	t.Run("active and expired are split on now", func(t *testing.T) {
		fresh := newTestStore(t)
		a := seedAdmin(t, fresh)
		active := seedClient(t, fresh, a.ID, time.Now().UTC().Add(48*time.Hour))
		expired := seedClient(t, fresh, a.ID, time.Now().UTC().Add(-time.Hour))

		act, err := fresh.Clients().ListActiveClients(ctx)
		require.NoError(t, err)
		require.Len(t, act, 1)
		require.Equal(t, active.ID, act[0].ID)

		exp, err := fresh.Clients().ListExpiredClients(ctx)
		require.NoError(t, err)
		require.Len(t, exp, 1)
		require.Equal(t, expired.ID, exp[0].ID)

		all, err := fresh.Clients().ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("delete cascades to requests and nulls log refs", func(t *testing.T) {
		c := seedClient(t, st, admin.ID, time.Now().Add(time.Hour))
		reqID := idx.New().String()
		logID := idx.New().String()
		require.NoError(t, st.Requests().CreateRequest(ctx, domain.Request{
			ID: reqID, ClientID: c.ID, Kind: domain.RequestRenewal,
		}))
		require.NoError(t, st.Logs().CreateLog(ctx, domain.LogEntry{
			ID: logID, ClientID: &c.ID, Kind: domain.LogLogin,
		}))

		require.NoError(t, st.Clients().DeleteClient(ctx, c.ID))

		_, err := st.Requests().GetRequestByID(ctx, reqID)
		require.ErrorIs(t, err, store.ErrNotFound)

		entry, err := st.Logs().GetLogByID(ctx, logID)
		require.NoError(t, err)
		require.Nil(t, entry.ClientID)
	})
}

func TestRequestsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	client := seedClient(t, st, admin.ID, time.Now().UTC().Add(24*time.Hour))

	t.Run("create then get is pending with no manager", func(t *testing.T) {
		id := idx.New().String()
		require.NoError(t, st.Requests().CreateRequest(ctx, domain.Request{
			ID: id, ClientID: client.ID, Kind: domain.RequestRevocation,
		}))

		got, err := st.Requests().GetRequestByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.RequestPending, got.Status)
		require.Equal(t, domain.RequestRevocation, got.Kind)
		require.Equal(t, client.ID, got.ClientID)
		require.Nil(t, got.ManagedBy)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("unknown kind is rejected by the schema", func(t *testing.T) {
		err := st.Requests().CreateRequest(ctx, domain.Request{
			ID: idx.New().String(), ClientID: client.ID, Kind: "upgrade",
		})
		require.ErrorIs(t, err, store.ErrConstraint)
	})

	t.Run("resolve is single shot", func(t *testing.T) {
		id := idx.New().String()
		require.NoError(t, st.Requests().CreateRequest(ctx, domain.Request{
			ID: id, ClientID: client.ID, Kind: domain.RequestRenewal,
		}))

		require.NoError(t, st.Requests().ResolveRequest(ctx, id, domain.RequestRejected, admin.ID))

		err := st.Requests().ResolveRequest(ctx, id, domain.RequestApproved, admin.ID)
		require.ErrorIs(t, err, store.ErrConflict)

		got, err := st.Requests().GetRequestByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.RequestRejected, got.Status)
		require.NotNil(t, got.ManagedBy)
		require.Equal(t, admin.ID, *got.ManagedBy)
	})

	t.Run("resolve of missing request is a conflict", func(t *testing.T) {
		err := st.Requests().ResolveRequest(ctx, "missing", domain.RequestApproved, admin.ID)
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("pending view joins client", func(t *testing.T) {
		pending, err := st.Requests().ListPendingWithClient(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, pending)
		for _, p := range pending {
			require.Equal(t, domain.RequestPending, p.Status)
			require.Equal(t, client.Email, p.ClientEmail)
			require.Equal(t, client.Name, p.ClientName)
		}

		byStatus, err := st.Requests().ListRequestsByStatus(ctx, domain.RequestPending)
		require.NoError(t, err)
		require.Len(t, byStatus, len(pending))

		byClient, err := st.Requests().ListRequestsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, byClient, 2)
	})

	t.Run("delete", func(t *testing.T) {
		id := idx.New().String()
		require.NoError(t, st.Requests().CreateRequest(ctx, domain.Request{
			ID: id, ClientID: client.ID, Kind: domain.RequestRenewal,
		}))
		require.NoError(t, st.Requests().DeleteRequest(ctx, id))
		require.ErrorIs(t, st.Requests().DeleteRequest(ctx, id), store.ErrNotFound)
	})
}

func TestLogsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)
	client := seedClient(t, st, admin.ID, time.Now().Add(time.Hour))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	kinds := []domain.LogKind{domain.LogLogin, domain.LogLogin, domain.LogLogout}
	for i, k := range kinds {
		require.NoError(t, st.Logs().CreateLog(ctx, domain.LogEntry{
			ID:        idx.New().String(),
			ClientID:  &client.ID,
			Kind:      k,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	t.Run("list is newest first and limited", func(t *testing.T) {
		entries, err := st.Logs().ListLogs(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, domain.LogLogout, entries[0].Kind)
		require.Equal(t, base.Add(2*time.Minute), entries[0].Timestamp)
	})

	t.Run("filters", func(t *testing.T) {
		byKind, err := st.Logs().ListLogsByKind(ctx, domain.LogLogin, 50)
		require.NoError(t, err)
		require.Len(t, byKind, 2)

		byClient, err := st.Logs().ListLogsByClient(ctx, client.ID, 50)
		require.NoError(t, err)
		require.Len(t, byClient, 3)

		byDemo, err := st.Logs().ListLogsByDemo(ctx, "no-demo", 50)
		require.NoError(t, err)
		require.Empty(t, byDemo)
	})

	t.Run("stats group by kind", func(t *testing.T) {
		stats, err := st.Logs().Stats(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		require.Equal(t, domain.LogLogin, stats[0].Kind)
		require.Equal(t, 2, stats[0].Total)
		require.Equal(t, 1, stats[0].DistinctClients)
		require.Equal(t, 0, stats[0].DistinctDemos)
	})

	t.Run("unset timestamp defaults to now", func(t *testing.T) {
		id := idx.New().String()
		require.NoError(t, st.Logs().CreateLog(ctx, domain.LogEntry{ID: id, Kind: domain.LogWarning}))

		got, err := st.Logs().GetLogByID(ctx, id)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now(), got.Timestamp, time.Minute)
		require.Nil(t, got.ClientID)

		require.NoError(t, st.Logs().DeleteLog(ctx, id))
		_, err = st.Logs().GetLogByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDemosRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)

	vertical := "retalho"
	code := "ABC123"
	demo := domain.Demo{
		ID:          idx.New().String(),
		Name:        "Forecasting",
		Vertical:    &vertical,
		ProjectCode: &code,
		CreatedBy:   admin.ID,
	}
	require.NoError(t, st.Demos().CreateDemo(ctx, demo))

	t.Run("defaults to active", func(t *testing.T) {
		got, err := st.Demos().GetDemoByID(ctx, demo.ID)
		require.NoError(t, err)
		require.Equal(t, domain.DemoActive, got.Status)
		require.Nil(t, got.URL)

		active, err := st.Demos().ListActiveDemos(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)

		byVertical, err := st.Demos().ListDemosByVertical(ctx, "retalho")
		require.NoError(t, err)
		require.Len(t, byVertical, 1)

		byHorizontal, err := st.Demos().ListDemosByHorizontal(ctx, "retalho")
		require.NoError(t, err)
		require.Empty(t, byHorizontal)
	})

	t.Run("duplicate project code", func(t *testing.T) {
		dup := demo
		dup.ID = idx.New().String()
		require.ErrorIs(t, st.Demos().CreateDemo(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update status", func(t *testing.T) {
		status := domain.DemoMaintenance
		require.NoError(t, st.Demos().UpdateDemo(ctx, demo.ID, domain.DemoPatch{Status: &status}))

		got, err := st.Demos().GetDemoByID(ctx, demo.ID)
		require.NoError(t, err)
		require.Equal(t, domain.DemoMaintenance, got.Status)
		require.Equal(t, "Forecasting", got.Name)

		active, err := st.Demos().ListActiveDemos(ctx)
		require.NoError(t, err)
		require.Empty(t, active)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Demos().DeleteDemo(ctx, demo.ID))
		require.ErrorIs(t, st.Demos().UpdateDemo(ctx, demo.ID, domain.DemoPatch{}), store.ErrNotFound)
	})
}

func TestImagesRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	newImage := func(name, version string) domain.Image {
		img := domain.Image{
			ID:      idx.New().String(),
			Name:    name,
			Version: version,
			URL:     "registry.ltplabs.com/" + name + ":" + version,
		}
		require.NoError(t, st.Images().CreateImage(ctx, img))
		return img
	}

	v1 := newImage("forecast", "1.0.0")
	v2 := newImage("forecast", "1.1.0")
	newImage("churn", "0.3.0")

	t.Run("list orders by name then newest version", func(t *testing.T) {
		all, err := st.Images().ListImages(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, "churn", all[0].Name)
		require.Equal(t, v2.ID, all[1].ID)
		require.Equal(t, v1.ID, all[2].ID)

		byName, err := st.Images().ListImagesByName(ctx, "forecast")
		require.NoError(t, err)
		require.Len(t, byName, 2)
		require.Equal(t, "1.1.0", byName[0].Version)
	})

	t.Run("name and version are unique together", func(t *testing.T) {
		dup := v1
		dup.ID = idx.New().String()
		require.ErrorIs(t, st.Images().CreateImage(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		desc := "modelo de previsão"
		require.NoError(t, st.Images().UpdateImage(ctx, v1.ID, domain.ImagePatch{Description: &desc}))

		got, err := st.Images().GetImageByID(ctx, v1.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		require.Equal(t, desc, *got.Description)
		require.Equal(t, "1.0.0", got.Version)
		require.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Images().DeleteImage(ctx, v1.ID))
		require.ErrorIs(t, st.Images().DeleteImage(ctx, v1.ID), store.ErrNotFound)
		_, err := st.Images().GetImageByID(ctx, v1.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Images().UpdateImage(ctx, v1.ID, domain.ImagePatch{}), store.ErrNotFound)
	})
}

func TestViews(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedAdmin(t, st)

	now := time.Now().UTC()
	healthy := seedClient(t, st, admin.ID, now.Add(60*24*time.Hour))
	expiring := seedClient(t, st, admin.ID, now.Add(3*24*time.Hour))
	expired := seedClient(t, st, admin.ID, now.Add(-24*time.Hour))

	t.Run("active clients", func(t *testing.T) {
		list, err := st.Views().ActiveClients(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)

		byID := map[string]domain.ActiveClient{}
		for _, c := range list {
			byID[c.ID] = c
		}
		require.NotContains(t, byID, expired.ID)
		require.Equal(t, domain.AccessActive, byID[healthy.ID].AccessStatus)
		require.Equal(t, domain.AccessExpiring, byID[expiring.ID].AccessStatus)
		require.InDelta(t, 2, byID[expiring.ID].DaysRemaining, 1)
	})

	t.Run("active demos carry the creator", func(t *testing.T) {
		inactive := domain.DemoInactive
		require.NoError(t, st.Demos().CreateDemo(ctx, domain.Demo{ID: idx.New().String(), Name: "Old", Status: inactive, CreatedBy: admin.ID}))
		live := domain.Demo{ID: idx.New().String(), Name: "Live", CreatedBy: admin.ID}
		require.NoError(t, st.Demos().CreateDemo(ctx, live))

		list, err := st.Views().ActiveDemos(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, live.ID, list[0].ID)
		require.Equal(t, admin.Name, list[0].CreatorName)
		require.Equal(t, admin.Email, list[0].CreatorEmail)
	})

	t.Run("client stats", func(t *testing.T) {
		demo := domain.Demo{ID: idx.New().String(), Name: "Stats", CreatedBy: admin.ID}
		require.NoError(t, st.Demos().CreateDemo(ctx, demo))

		for _, kind := range []domain.LogKind{domain.LogLogin, domain.LogDemoOpened, domain.LogDemoOpened} {
			require.NoError(t, st.Logs().CreateLog(ctx, domain.LogEntry{
				ID:       idx.New().String(),
				ClientID: &healthy.ID,
				DemoID:   &demo.ID,
				Kind:     kind,
			}))
		}

		stats, err := st.Views().ClientStatsByID(ctx, healthy.ID)
		require.NoError(t, err)
		require.Equal(t, 1, stats.DemosOpened)
		require.Equal(t, 2, stats.TotalOpens)
		require.Equal(t, 1, stats.TotalLogins)
		require.NotNil(t, stats.LastActivity)

		quiet, err := st.Views().ClientStatsByID(ctx, expired.ID)
		require.NoError(t, err)
		require.Zero(t, quiet.TotalOpens)
		require.Nil(t, quiet.LastActivity)

		all, err := st.Views().ClientStats(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, healthy.ID, all[0].ClientID)

		_, err = st.Views().ClientStatsByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	boom := errors.New("boom")

	adminID := idx.New().String()
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Admins().CreateAdmin(ctx, domain.Admin{
			ID: adminID, Name: "tx", Email: "tx@ltplabs.com", PasswordHash: "h",
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Admins().GetAdminByID(ctx, adminID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOptimize(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Optimize(context.Background()))
}
