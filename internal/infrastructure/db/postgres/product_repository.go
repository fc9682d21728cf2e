package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kki/product-catalog/internal/core/domain"
)

const tableProducts = "products"

var productColumns = []string{"id", "user_id", "name", "price", "description", "created_at", "updated_at"}

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := psql.Insert(tableProducts).
		SetMap(map[string]interface{}{
			"id":          p.ID,
			"user_id":     p.UserID,
			"name":        p.Name,
			"price":       p.Price,
			"description": p.Description,
			"created_at":  p.CreatedAt,
			"updated_at":  p.UpdatedAt,
		}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by id, scoped to ownerID when non-empty. Ids
// that are not UUIDs cannot exist and are reported as not found.
func (r *ProductRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Product, error) {
	if !isUUID(id) || (ownerID != "" && !isUUID(ownerID)) {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := selectProducts(ownerID).
		Where(squirrel.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// List returns products oldest first, scoped to ownerID when non-empty.
func (r *ProductRepository) List(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	if ownerID != "" && !isUUID(ownerID) {
		return []*domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := selectProducts(ownerID).
		OrderBy("created_at ASC", "id ASC").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if !isUUID(p.ID) || !isUUID(p.UserID) {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := psql.Update(tableProducts).
		SetMap(map[string]interface{}{
			"name":        p.Name,
			"price":       p.Price,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": p.ID, "user_id": p.UserID}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("executing update: %w", err)
	}
	return expectOneRow(res)
}

func (r *ProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !isUUID(id) || !isUUID(ownerID) {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := psql.Delete(tableProducts).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("executing delete: %w", err)
	}
	return expectOneRow(res)
}

func selectProducts(ownerID string) squirrel.SelectBuilder {
	q := psql.Select(productColumns...).From(tableProducts)
	if ownerID != "" {
		q = q.Where(squirrel.Eq{"user_id": ownerID})
	}
	return q
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var p domain.Product
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Price, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
