package handler

import "github.com/kki/product-catalog/internal/core/domain"

// SiteInfo holds the labels shown on the home page.
type SiteInfo struct {
	AppName       string
	DeveloperName string
	ClassName     string
}

type homePage struct {
	AppName       string
	DeveloperName string
	ClassName     string
	Username      string
	Flash         string
	CSRFToken     string
	LastLogin     string
	Products      []*domain.Product
}

type productFormPage struct {
	Title     string
	Action    string
	Submit    string
	CSRFToken string
	Form      productForm
	Errors    domain.ValidationErrors
}

type registerPage struct {
	CSRFToken string
	Form      registerForm
	Errors    domain.ValidationErrors
}

type loginPage struct {
	Flash     string
	CSRFToken string
	Next      string
	Form      loginForm
	Errors    domain.ValidationErrors
}
