package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ErrVerifyUnavailable marks verification failures caused by the verifier's
// own infrastructure rather than by the credential. Callers distinguish it
// from a rejected credential: the caller is not unauthenticated, the check
// could not be completed.
var ErrVerifyUnavailable = errors.New("identity verification unavailable")

// IdentityVerifier resolves a bearer credential to an identity. The evaluator
// treats the provider as opaque; only this contract matters to it. Errors
// wrapping ErrVerifyUnavailable signal an internal failure, any other error a
// rejected credential.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenManager handles issuing and validating JWT tokens. It implements
// IdentityVerifier, optionally consulting a denylist of revoked token ids.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	denylist *Denylist
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int, denylist *Denylist) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret:   []byte(secret),
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		denylist: denylist,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the signature and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Verify implements IdentityVerifier.
func (tm *TokenManager) Verify(ctx context.Context, tokenStr string) (*domain.Identity, error) {
	claims, err := tm.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if tm.denylist != nil {
		revoked, err := tm.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVerifyUnavailable, err)
		}
		if revoked {
			return nil, errors.New("token revoked")
		}
	}
	return &domain.Identity{
		ID:            claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// Revoke denylists the token until its natural expiry.
func (tm *TokenManager) Revoke(ctx context.Context, tokenStr string) error {
	if tm.denylist == nil {
		return nil
	}
	claims, err := tm.ParseToken(tokenStr)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return tm.denylist.Revoke(ctx, claims.ID, ttl)
}
