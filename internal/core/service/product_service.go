package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListForOwner returns the products owned by ownerID, oldest first.
func (s *ProductService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.List(ctx, ownerID)
}

// Create validates input and stores a new product owned by ownerID. Invalid
// input is reported as domain.ValidationErrors and nothing is written.
func (s *ProductService) Create(ctx context.Context, ownerID string, input ports.ProductInput) (*domain.Product, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	input = normalize(input)
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	now := s.now()
	product := &domain.Product{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("user_id", ownerID).Msg("product created")
	return product, nil
}

// Get returns the product only if ownerID owns it.
func (s *ProductService) Get(ctx context.Context, id, ownerID string) (*domain.Product, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	product, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(ownerID) {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Update replaces the editable fields of a product owned by ownerID. The id
// and owner never change.
func (s *ProductService) Update(ctx context.Context, id, ownerID string, input ports.ProductInput) (*domain.Product, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	product, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Description = input.Description
	product.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		}
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("user_id", ownerID).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthenticated
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		}
		return err
	}

	s.logger.Info().Str("product_id", id).Str("user_id", ownerID).Msg("product deleted")
	return nil
}

// Export returns all products for an empty id, otherwise a slice holding the
// matching product or nothing. An unknown id is not an error.
func (s *ProductService) Export(ctx context.Context, id string) ([]*domain.Product, error) {
	if id == "" {
		return s.repo.List(ctx, "")
	}

	product, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return []*domain.Product{}, nil
		}
		return nil, err
	}
	return []*domain.Product{product}, nil
}

func normalize(in ports.ProductInput) ports.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func validateProduct(in ports.ProductInput) error {
	errs := domain.ValidationErrors{}
	if in.Name == "" {
		errs.Add("name", "This field is required.")
	} else if utf8.RuneCountInString(in.Name) > domain.ProductNameMaxLen {
		errs.Add("name", "Ensure this value has at most 255 characters.")
	}
	if in.Price > domain.PriceMax {
		errs.Add("price", fmt.Sprintf("Ensure this value is less than or equal to %d.", domain.PriceMax))
	} else if in.Price < domain.PriceMin {
		errs.Add("price", fmt.Sprintf("Ensure this value is greater than or equal to %d.", domain.PriceMin))
	}
	if in.Description == "" {
		errs.Add("description", "This field is required.")
	}
	return errs.OrNil()
}
