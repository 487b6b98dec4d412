package auth

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/inventory-service/internal/domain"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, nil)
	user := &domain.User{ID: "user-1", Email: "user@example.com", EmailVerified: true}

	token, exp, err := tm.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	identity, err := tm.Verify(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
}

func TestTokenManagerRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60, nil)
	verifier := NewTokenManager("secret-b", 60, nil)

	token, _, err := issuer.GenerateToken(&domain.User{ID: "user-1", Email: "user@example.com"})
	assert.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestTokenManagerDenylistOutage(t *testing.T) {
	// a well-formed, well-signed token whose revocation check cannot complete
	// must fail with the infrastructure sentinel, not look like a bad credential
	denylist := NewDenylist(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	tm := NewTokenManager("test-secret", 60, denylist)

	token, _, err := tm.GenerateToken(&domain.User{ID: "user-1", Email: "user@example.com"})
	assert.NoError(t, err)

	_, err = tm.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrVerifyUnavailable)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, nil)

	_, err := tm.Verify(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
