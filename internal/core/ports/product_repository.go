package ports

import (
	"context"

	"github.com/kki/product-catalog/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
//
// Wherever an ownerID is accepted, an empty value means "any owner" and a
// non-empty value scopes the query to that user's products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id, ownerID string) (*domain.Product, error)
	List(ctx context.Context, ownerID string) ([]*domain.Product, error)
	// Update overwrites name, price, description and updated_at of the
	// product matching p.ID and p.UserID.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id, ownerID string) error
}
