package credential

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, h.Compare("secret1", hash))
	assert.False(t, h.Compare("secret2", hash))
	assert.False(t, h.Compare("secret1", "not-a-hash"))

	_, err = h.Hash("")
	assert.Error(t, err)
}

func TestPasswordHasherFallsBackToDefaultCost(t *testing.T) {
	h := NewPasswordHasher(99)
	assert.Equal(t, DefaultCost, h.cost)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	userId := uuid.New()

	token, err := issuer.Issue(userId)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestTokenPayloadShape(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	userId := uuid.New()
	token, err := issuer.Issue(userId)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userId.String(), user["id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp.Time, time.Minute)
}

func TestTokenVerifyFailures(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userId := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenIssuer("other-secret", time.Hour).Issue(userId)
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenIssuer("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue(userId)
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenWithoutSecret(t *testing.T) {
	issuer := NewTokenIssuer("", 0)

	_, err := issuer.Issue(uuid.New())
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = issuer.Verify("anything")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
