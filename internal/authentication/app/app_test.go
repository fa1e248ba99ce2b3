package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/slogx"
)

func testConfig() Config {
	return Config{
		DatabaseURL:         "http://127.0.0.1:1",
		HTTPTimeout:         time.Second,
		JWTSecret:           strings.Repeat("s", 32),
		Issuer:              "ecatalog-auth",
		AccessTokenTTL:      time.Hour,
		ShutdownGracePeriod: time.Second,
		Log:                 slogx.Config{Level: "error", Format: "text"},
	}
}

func TestNewRejectsWeakSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "short"

	_, err := New(cfg)
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestNewMissingPepperFile(t *testing.T) {
	cfg := testConfig()
	cfg.PepperFile = t.TempDir() + "/missing"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestHealthWithoutDatabase(t *testing.T) {
	application, err := New(testConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 5*time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, "authentication-service", cfg.Log.Service)
}
