package domain

import (
	"errors"
	"math"
	"time"
)

// ProductNameMaxLen bounds the product name column.
const ProductNameMaxLen = 255

// Price is stored in a 32-bit integer column.
const (
	PriceMin = math.MinInt32
	PriceMax = math.MaxInt32
)

var ErrProductNotFound = errors.New("product not found")

// Product is the catalog entry owned by a single user.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user" bson:"user_id"`
	Name        string    `json:"name" bson:"name"`
	Price       int       `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the product belongs to userID.
func (p *Product) OwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}
