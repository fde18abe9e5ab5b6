package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamingclub/internal/common"
)

func TestTokenIssuer_MintAndVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ti := NewTokenIssuer([]byte("secret"), func() time.Time { return now })

	tok, err := ti.Mint(7, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)

	uid, err := ti.UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, 7, uid)

	other, err := ti.Mint(7, now.Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, tok, other, "each token carries a fresh jti")
}

func TestTokenIssuer_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ti := NewTokenIssuer([]byte("secret"), func() time.Time { return now })

	tok, err := ti.Mint(1, now.Add(time.Minute))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = ti.UserID(tok)
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	now := time.Now()
	ti := NewTokenIssuer([]byte("right"), nil)

	foreign, err := NewTokenIssuer([]byte("wrong"), nil).Mint(1, now.Add(time.Hour))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		UserID:           1,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("right"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong secret": foreign,
		"alg none":     unsigned,
		"no expiry":    noExpiry,
		"legacy":       "gamingclub_token_1700000000000_abc123",
		"empty":        "",
	} {
		_, err := ti.UserID(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, name)
	}
}
