package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), "")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256RoundTrip(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "ecatalog-auth")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("admin-1", jwtx.RoleAdmin, "ana@ltplabs.com", "Ana",
		"ecatalog-auth", time.Hour, time.Now())
	raw, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "admin-1", got.Subject)
	require.Equal(t, jwtx.RoleAdmin, got.Role)
	require.Equal(t, "ana@ltplabs.com", got.Email)
	require.True(t, got.IsAdmin())
}

func TestHS256Rejects(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "ecatalog-auth")
	require.NoError(t, err)
	now := time.Now()

	t.Run("foreign secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", 32)), "ecatalog-auth")
		require.NoError(t, err)
		raw, err := other.Sign(jwtx.NewAccessClaims("u", jwtx.RoleClient, "", "", "ecatalog-auth", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := h.Sign(jwtx.NewAccessClaims("u", jwtx.RoleClient, "", "", "someone-else", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		raw, err := h.Sign(jwtx.NewAccessClaims("u", jwtx.RoleClient, "", "", "ecatalog-auth", time.Minute, now.Add(-2*time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing role", func(t *testing.T) {
		raw, err := h.Sign(jwtx.NewAccessClaims("u", "", "", "", "ecatalog-auth", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("alg none", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone,
			jwtx.NewAccessClaims("u", jwtx.RoleAdmin, "", "", "ecatalog-auth", time.Hour, now))
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
