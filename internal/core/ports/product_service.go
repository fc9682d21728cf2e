package ports

import (
	"context"

	"github.com/kki/product-catalog/internal/core/domain"
)

// ProductInput carries the user-editable product fields. Price must lie
// within domain.PriceMin and domain.PriceMax.
type ProductInput struct {
	Name        string
	Price       int
	Description string
}

// ProductService defines use-case operations for products.
type ProductService interface {
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Create(ctx context.Context, ownerID string, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Product, error)
	Update(ctx context.Context, id, ownerID string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, ownerID string) error
	// Export returns every product when id is empty, otherwise the zero or
	// one products carrying that id.
	Export(ctx context.Context, id string) ([]*domain.Product, error)
}
