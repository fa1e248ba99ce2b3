//go:build e2e

package database_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
)

func TestHealth(t *testing.T) {
	db := setupDatabaseContainer(t)

	live, err := db.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := db.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestApproveRenewsAccess(t *testing.T) {
	db := setupDatabaseContainer(t)
	expiresAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	admin, client := seedAdminAndClient(t, db, expiresAt)

	pedido, err := db.CreatePedido(t.Context(), dbsdk.CreatePedidoRequest{ClienteID: client.ID, TipoPedido: dbsdk.TipoRenovacao})
	require.NoError(t, err)
	require.Equal(t, dbsdk.EstadoPendente, pedido.Estado)

	approved, err := db.ApprovePedido(t.Context(), pedido.ID, dbsdk.ResolvePedidoRequest{AdminID: admin.ID})
	require.NoError(t, err)
	require.Equal(t, dbsdk.EstadoAprovado, approved.Estado)
	require.NotNil(t, approved.GeridoPor)
	require.Equal(t, admin.ID, *approved.GeridoPor)

	renewed, err := db.GetCliente(t.Context(), client.ID)
	require.NoError(t, err)
	got, err := dbsdk.ParseTime(renewed.DataExpiracao)
	require.NoError(t, err)
	require.True(t, got.Equal(expiresAt.AddDate(0, 0, 30)), "got %s", renewed.DataExpiracao)

	logs, err := db.ListLogsByCliente(t.Context(), client.ID)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	require.Equal(t, dbsdk.LogAcessoConcedido, logs[0].Tipo)

	// A resolved request cannot be resolved again.
	_, err = db.ApprovePedido(t.Context(), pedido.ID, dbsdk.ResolvePedidoRequest{AdminID: admin.ID})
	assertStatus(t, err, http.StatusBadRequest)
	_, err = db.RejectPedido(t.Context(), pedido.ID, dbsdk.ResolvePedidoRequest{AdminID: admin.ID})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestRejectKeepsExpiration(t *testing.T) {
	db := setupDatabaseContainer(t)
	expiresAt := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	admin, client := seedAdminAndClient(t, db, expiresAt)

	pedido, err := db.CreatePedido(t.Context(), dbsdk.CreatePedidoRequest{ClienteID: client.ID, TipoPedido: dbsdk.TipoRenovacao})
	require.NoError(t, err)

	rejected, err := db.RejectPedido(t.Context(), pedido.ID, dbsdk.ResolvePedidoRequest{AdminID: admin.ID})
	require.NoError(t, err)
	require.Equal(t, dbsdk.EstadoRejeitado, rejected.Estado)

	unchanged, err := db.GetCliente(t.Context(), client.ID)
	require.NoError(t, err)
	got, err := dbsdk.ParseTime(unchanged.DataExpiracao)
	require.NoError(t, err)
	require.True(t, got.Equal(expiresAt))
}

func TestResolveUnknownPedido(t *testing.T) {
	db := setupDatabaseContainer(t)
	admin, _ := seedAdminAndClient(t, db, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := db.ApprovePedido(t.Context(), "missing", dbsdk.ResolvePedidoRequest{AdminID: admin.ID})
	assertStatus(t, err, http.StatusNotFound)
}

func TestDuplicateClienteEmail(t *testing.T) {
	db := setupDatabaseContainer(t)
	admin, client := seedAdminAndClient(t, db, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := db.CreateCliente(t.Context(), dbsdk.CreateClienteRequest{
		Nome:          "Outro",
		Email:         client.Email,
		PasswordHash:  "x",
		DataExpiracao: dbsdk.FormatTime(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		CriadoPor:     admin.ID,
	})
	assertStatus(t, err, http.StatusConflict)
}
