package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ltplabs/ecatalog/pkg/jwtx"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "ecatalog-auth"}}

	require.NoError(t, c.ValidateIssuer("ecatalog-auth"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}

func TestValidateRole(t *testing.T) {
	c := &jwtx.Claims{Role: jwtx.RoleClient}

	require.NoError(t, c.ValidateRole())
	require.NoError(t, c.ValidateRole(jwtx.RoleAdmin, jwtx.RoleClient))
	require.ErrorIs(t, c.ValidateRole(jwtx.RoleAdmin), jwtx.ErrInvalidClaim)
	require.False(t, c.IsAdmin())
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid window", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", jwtx.RoleAdmin, "", "", "", time.Hour, now)
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", jwtx.RoleAdmin, "", "", "", time.Minute, now.Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", jwtx.RoleAdmin, "", "", "", time.Hour, now.Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway absorbs skew", func(t *testing.T) {
		c := jwtx.NewAccessClaims("u1", jwtx.RoleAdmin, "", "", "", time.Minute, now.Add(-61*time.Second))
		require.NoError(t, c.ValidateExpiryWithLeeway(5*time.Second))
	})
}
