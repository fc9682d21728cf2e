package handler

import (
	"strconv"
	"strings"

	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

type productForm struct {
	Name        string `form:"name"        validate:"required,max=255"`
	Price       string `form:"price"       validate:"required,integer,intmin=-2147483648,intmax=2147483647"`
	Description string `form:"description" validate:"required"`
}

func (f *productForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	f.Description = strings.TrimSpace(f.Description)
}

// input assumes the form has passed validation.
func (f productForm) input() ports.ProductInput {
	price, _ := strconv.ParseInt(f.Price, 10, 32)
	return ports.ProductInput{Name: f.Name, Price: int(price), Description: f.Description}
}

func productFormFrom(p *domain.Product) productForm {
	return productForm{Name: p.Name, Price: strconv.Itoa(p.Price), Description: p.Description}
}

type registerForm struct {
	Username  string `form:"username"  validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8,notnumeric"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}
