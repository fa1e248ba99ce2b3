package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
)

type fakeDirectory struct {
	admins  map[string]dbsdk.AdminWithPassword
	clients map[string]dbsdk.ClienteWithPassword
	logs    []dbsdk.CreateLogRequest
	down    bool
}

func (d *fakeDirectory) GetAdminWithPassword(_ context.Context, email string) (*dbsdk.AdminWithPassword, error) {
	if d.down {
		return nil, &dbsdk.Error{StatusCode: http.StatusServiceUnavailable, Code: dbsdk.CodeServiceUnavailable}
	}
	a, ok := d.admins[email]
	if !ok {
		return nil, &dbsdk.Error{StatusCode: http.StatusNotFound, Code: dbsdk.CodeNotFound}
	}
	return &a, nil
}

func (d *fakeDirectory) GetClienteWithPassword(_ context.Context, email string) (*dbsdk.ClienteWithPassword, error) {
	c, ok := d.clients[email]
	if !ok {
		return nil, &dbsdk.Error{StatusCode: http.StatusNotFound, Code: dbsdk.CodeNotFound}
	}
	return &c, nil
}

func (d *fakeDirectory) CreateLog(_ context.Context, in dbsdk.CreateLogRequest) (*dbsdk.Log, error) {
	d.logs = append(d.logs, in)
	return &dbsdk.Log{ID: "log", Tipo: in.Tipo}, nil
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T) (*AuthService, *fakeDirectory, *jwtx.HS256) {
	t.Helper()

	hasher := cryptox.NewHasher("pepper")
	hasher.Params = cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}
	hash := func(p string) string {
		h, err := hasher.Hash(p)
		require.NoError(t, err)
		return h
	}

	dir := &fakeDirectory{
		admins: map[string]dbsdk.AdminWithPassword{
			"ana@ltplabs.com": {Admin: dbsdk.Admin{ID: "a1", Nome: "Ana", Email: "ana@ltplabs.com"}, PasswordHash: hash("admin-pass")},
		},
		clients: map[string]dbsdk.ClienteWithPassword{
			"rui@example.com": {
				Cliente:      dbsdk.Cliente{ID: "c1", Nome: "Rui", Email: "rui@example.com", DataExpiracao: "2025-12-31T00:00:00Z"},
				PasswordHash: hash("client-pass"),
			},
			"old@example.com": {
				Cliente:      dbsdk.Cliente{ID: "c2", Nome: "Old", Email: "old@example.com", DataExpiracao: "2025-01-01T00:00:00Z"},
				PasswordHash: hash("client-pass"),
			},
		},
	}

	signer, err := jwtx.NewHS256([]byte(strings.Repeat("k", 32)), "ecatalog-auth")
	require.NoError(t, err)

	return &AuthService{
		Directory: dir,
		Hasher:    hasher,
		Signer:    signer,
		Issuer:    "ecatalog-auth",
		AccessTTL: time.Hour,
		Now:       func() time.Time { return now },
	}, dir, signer
}

func TestLoginAdmin(t *testing.T) {
	svc, dir, signer := newAuthService(t)
	svc.Now = time.Now

	res, err := svc.Login(context.Background(), " ana@ltplabs.com ", "admin-pass")
	require.NoError(t, err)
	require.Equal(t, "bearer", res.TokenType)
	require.Equal(t, int64(3600), res.ExpiresIn)
	require.Equal(t, User{ID: "a1", Email: "ana@ltplabs.com", Name: "Ana", Role: jwtx.RoleAdmin}, res.User)
	require.Empty(t, dir.logs)

	claims, err := signer.Verify(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, res.User, UserFromClaims(claims))
}

func TestLoginClient(t *testing.T) {
	svc, dir, _ := newAuthService(t)

	res, err := svc.Login(context.Background(), "rui@example.com", "client-pass")
	require.NoError(t, err)
	require.Equal(t, jwtx.RoleClient, res.User.Role)
	require.Equal(t, "c1", res.User.ID)

	require.Len(t, dir.logs, 1)
	require.Equal(t, dbsdk.LogLogin, dir.logs[0].Tipo)
	require.Equal(t, "c1", *dir.logs[0].ClienteID)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "ghost@example.com", "whatever", ErrInvalidCredentials},
		{"wrong admin password", "ana@ltplabs.com", "nope", ErrInvalidCredentials},
		{"wrong client password", "rui@example.com", "nope", ErrInvalidCredentials},
		{"expired client", "old@example.com", "client-pass", ErrAccessExpired},
		{"empty password", "rui@example.com", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dir, _ := newAuthService(t)
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, tt.want)
			require.Empty(t, dir.logs)
		})
	}
}

func TestLoginDirectoryDown(t *testing.T) {
	svc, dir, _ := newAuthService(t)
	dir.down = true

	_, err := svc.Login(context.Background(), "rui@example.com", "client-pass")
	require.True(t, dbsdk.IsUnavailable(err))
}

func TestLogoutAuditsClientsOnly(t *testing.T) {
	svc, dir, _ := newAuthService(t)

	svc.Logout(context.Background(), jwtx.NewAccessClaims("a1", jwtx.RoleAdmin, "", "", "ecatalog-auth", time.Hour, now))
	require.Empty(t, dir.logs)

	svc.Logout(context.Background(), jwtx.NewAccessClaims("c1", jwtx.RoleClient, "", "", "ecatalog-auth", time.Hour, now))
	require.Len(t, dir.logs, 1)
	require.Equal(t, dbsdk.LogLogout, dir.logs[0].Tipo)
}
