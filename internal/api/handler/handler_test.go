package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/middleware"
	"github.com/kki/product-catalog/internal/api/view"
	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.NewRenderer()
	e.Validator = NewValidator()
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// asUser marks the context as authenticated the way RequireLogin does.
func asUser(c echo.Context, id, username string) {
	c.Set(middleware.ContextUserID, id)
	c.Set(middleware.ContextUsername, username)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

type stubProductService struct {
	listFn   func(ctx context.Context, ownerID string) ([]*domain.Product, error)
	createFn func(ctx context.Context, ownerID string, in ports.ProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, id, ownerID string) (*domain.Product, error)
	updateFn func(ctx context.Context, id, ownerID string, in ports.ProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id, ownerID string) error
	exportFn func(ctx context.Context, id string) ([]*domain.Product, error)
}

func (s *stubProductService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubProductService) Create(ctx context.Context, ownerID string, in ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubProductService) Get(ctx context.Context, id, ownerID string) (*domain.Product, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *stubProductService) Update(ctx context.Context, id, ownerID string, in ports.ProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, ownerID, in)
}

func (s *stubProductService) Delete(ctx context.Context, id, ownerID string) error {
	return s.deleteFn(ctx, id, ownerID)
}

func (s *stubProductService) Export(ctx context.Context, id string) ([]*domain.Product, error) {
	return s.exportFn(ctx, id)
}

type stubAuthService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn        func(ctx context.Context, username, password string) (*ports.Session, error)
	authenticateFn func(ctx context.Context, token string) (*ports.SessionClaims, error)
	logoutFn       func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*ports.SessionClaims, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}
