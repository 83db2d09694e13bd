package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/internal/testutil"
)

func TestTokenRoundTrip(t *testing.T) {
	clock := testutil.NewClock()
	iss, err := NewTokenIssuer([]byte("0123456789abcdef"), time.Hour, clock.Now)
	require.NoError(t, err)

	in := session.Session{UserID: 7, Username: "asha", Email: "asha@example.com", Role: session.RoleStudent}
	tok, expires, err := iss.Issue(in)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expires)

	out, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestTokenUniqueIDs(t *testing.T) {
	iss, err := NewTokenIssuer([]byte("0123456789abcdef"), time.Hour, nil)
	require.NoError(t, err)

	a, _, err := iss.Issue(session.Session{UserID: 1, Role: session.RoleStudent})
	require.NoError(t, err)
	b, _, err := iss.Issue(session.Session{UserID: 1, Role: session.RoleStudent})
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "jti should differ between tokens")
}

func TestTokenRejections(t *testing.T) {
	clock := testutil.NewClock()
	iss, err := NewTokenIssuer([]byte("0123456789abcdef"), time.Hour, clock.Now)
	require.NoError(t, err)
	other, err := NewTokenIssuer([]byte("fedcba9876543210"), time.Hour, clock.Now)
	require.NoError(t, err)

	forged, _, err := other.Issue(session.Session{UserID: 1, Role: session.RoleAdmin})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": 1, "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole, _, err := iss.Issue(session.Session{UserID: 1, Role: "root"})
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong key": forged,
		"alg none":  none,
		"bad role":  badRole,
		"garbage":   "a.b.c",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Parse(tok)
			assert.True(t, errors.Is(err, ErrInvalidToken), "Parse() error = %v", err)
		})
	}
}

func TestNewTokenIssuerValidation(t *testing.T) {
	_, err := NewTokenIssuer([]byte("short"), time.Hour, nil)
	assert.Error(t, err)
	_, err = NewTokenIssuer([]byte("0123456789abcdef"), 0, nil)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))

	_, err = HashPassword("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginLimiterPerKey(t *testing.T) {
	clock := testutil.NewClock()
	l := NewLoginLimiter(1, 1, clock.Now)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are limited independently")

	clock.Advance(time.Second)
	assert.True(t, l.Allow("a"))
}
