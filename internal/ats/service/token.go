package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/cryptox"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

// DefaultAccessTokenTTL is how long issued access tokens remain valid.
const DefaultAccessTokenTTL = 1 * time.Hour

var (
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrInvalidToken       = errors.New("service: invalid token")
)

// TokenService issues and verifies HS256 access tokens. The org and role
// ride in the claims so every request is tenant-scoped without a database
// round trip.
type TokenService struct {
	Store     store.Store
	Secret    []byte
	Issuer    string
	AccessTTL time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	OrgID string `json:"org_id"`
	Role  string `json:"role"`
}

// Login verifies the email/password pair and issues an access token.
// The error for a missing user and a wrong password is identical so the
// endpoint can't be used to probe which emails exist.
func (s *TokenService) Login(ctx context.Context, email, password string) (domain.User, string, int64, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", 0, ErrInvalidCredentials
		}
		return domain.User{}, "", 0, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, "", 0, ErrInvalidCredentials
		}
		return domain.User{}, "", 0, err
	}

	token, expiresIn, err := s.Issue(u)
	if err != nil {
		return domain.User{}, "", 0, err
	}
	return u, token, expiresIn, nil
}

// Issue mints an access token for the user. Returns the signed token and
// its lifetime in seconds.
func (s *TokenService) Issue(u domain.User) (string, int64, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		OrgID: u.OrgID,
		Role:  string(u.Role),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign access token: %w", err)
	}
	return token, int64(ttl.Seconds()), nil
}

// Verify implements httpx.TokenVerifier.
func (s *TokenService) Verify(token string) (httpx.SessionClaims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return httpx.SessionClaims{}, ErrInvalidToken
	}

	return httpx.SessionClaims{
		UserID: claims.Subject,
		OrgID:  claims.OrgID,
		Role:   claims.Role,
	}, nil
}
