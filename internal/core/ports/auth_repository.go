package ports

import (
	"context"
	"time"

	"github.com/kki/product-catalog/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// TouchLastLogin records a successful login for the user.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}
