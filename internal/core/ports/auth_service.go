package ports

import (
	"context"
	"time"

	"github.com/kki/product-catalog/internal/core/domain"
)

// Session is issued on a successful login.
type Session struct {
	Token     string
	User      *domain.User
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionClaims is what a valid session token proves about its bearer.
type SessionClaims struct {
	UserID    string
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*SessionClaims, error)
	Logout(ctx context.Context, token string) error
}

// SessionStore remembers session tokens revoked before their expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
