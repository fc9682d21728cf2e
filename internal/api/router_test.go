package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/kki/product-catalog/internal/api/handler"
	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

const validToken = "valid-token"

type fakeProducts struct {
	items map[string]*domain.Product
}

func (f *fakeProducts) ListForOwner(_ context.Context, ownerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.items {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, ownerID string, in ports.ProductInput) (*domain.Product, error) {
	p := &domain.Product{ID: "new", UserID: ownerID, Name: in.Name, Price: in.Price, Description: in.Description}
	f.items[p.ID] = p
	return p, nil
}

func (f *fakeProducts) Get(_ context.Context, id, ownerID string) (*domain.Product, error) {
	p, ok := f.items[id]
	if !ok || p.UserID != ownerID {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProducts) Update(ctx context.Context, id, ownerID string, in ports.ProductInput) (*domain.Product, error) {
	p, err := f.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	p.Name, p.Price, p.Description = in.Name, in.Price, in.Description
	return p, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := f.Get(ctx, id, ownerID); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProducts) Export(_ context.Context, id string) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range f.items {
		if id == "" || p.ID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, username, _ string) (*domain.User, error) {
	return &domain.User{ID: "u-new", Username: username}, nil
}

func (fakeAuth) Login(_ context.Context, username, password string) (*ports.Session, error) {
	if username != "alice" || password != "secret" {
		return nil, domain.ErrInvalidCredentials
	}
	now := time.Now().UTC()
	return &ports.Session{Token: validToken, User: &domain.User{ID: "u-1", Username: "alice"}, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, nil
}

func (fakeAuth) Authenticate(_ context.Context, token string) (*ports.SessionClaims, error) {
	if token != validToken {
		return nil, domain.ErrUnauthenticated
	}
	return &ports.SessionClaims{UserID: "u-1", Username: "alice", TokenID: "jti"}, nil
}

func (fakeAuth) Logout(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) (*echo.Echo, *fakeProducts) {
	t.Helper()
	products := &fakeProducts{items: map[string]*domain.Product{
		"p-1": {ID: "p-1", UserID: "u-1", Name: "Lamp", Price: 25, Description: "Desk lamp"},
		"p-2": {ID: "p-2", UserID: "u-2", Name: "Chair", Price: 80, Description: "Office chair"},
	}}
	reg := prometheus.NewRegistry()
	e := NewRouter(Dependencies{
		Products:   products,
		Auth:       fakeAuth{},
		Checks:     map[string]handler.PingFunc{"storage": func(context.Context) error { return nil }},
		Site:       handler.SiteInfo{AppName: "E-Commerce App"},
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, products
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: validToken})
	return req
}

// csrfCookie fetches the login page and returns the CSRF cookie it sets.
func csrfCookie(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/accounts/login/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from login page, got %d", rec.Code)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "csrftoken" {
			return ck
		}
	}
	t.Fatalf("expected csrftoken cookie")
	return nil
}

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, path := range []string{"/", "/create-product/", "/edit-product/p-1/"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rec.Code)
		}
		want := "/accounts/login/?next=" + url.QueryEscape(path)
		if loc := rec.Header().Get(echo.HeaderLocation); loc != want {
			t.Fatalf("%s: expected redirect to %q, got %q", path, want, loc)
		}
	}
}

func TestRouter_AppendsTrailingSlash(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/json", nil))
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get(echo.HeaderLocation) != "/json/" {
		t.Fatalf("expected 301 to /json/, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to be served without redirect, got %d", rec.Code)
	}
}

func TestRouter_HomeShowsOnlyOwnProducts(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, authed(httptest.NewRequest(http.MethodGet, "/", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Lamp") {
		t.Fatalf("expected own product in body")
	}
	if strings.Contains(body, "Chair") {
		t.Fatalf("other user's product must not be listed")
	}
}

func TestRouter_EditOtherUsersProductIsNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, authed(httptest.NewRequest(http.MethodGet, "/edit-product/p-2/", nil)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("expected an HTML error page")
	}
}

func TestRouter_StateChangingRoutesRejectGet(t *testing.T) {
	e, products := newTestRouter(t)

	for _, path := range []string{"/delete-product/p-1/", "/logout/"} {
		rec := serve(e, authed(httptest.NewRequest(http.MethodGet, path, nil)))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", path, rec.Code)
		}
	}
	if _, ok := products.items["p-1"]; !ok {
		t.Fatalf("p-1 must survive a GET")
	}
}

func TestRouter_DeleteWithCSRFToken(t *testing.T) {
	e, products := newTestRouter(t)
	csrf := csrfCookie(t, e)

	form := url.Values{"csrfmiddlewaretoken": {csrf.Value}}
	req := authed(httptest.NewRequest(http.MethodPost, "/delete-product/p-1/", strings.NewReader(form.Encode())))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(csrf)

	rec := serve(e, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if _, ok := products.items["p-1"]; ok {
		t.Fatalf("expected p-1 to be deleted")
	}
}

func TestRouter_PostWithoutCSRFTokenIsRejected(t *testing.T) {
	e, products := newTestRouter(t)

	form := url.Values{"name": {"Desk"}, "price": {"10"}, "description": {"Oak"}}
	req := authed(httptest.NewRequest(http.MethodPost, "/create-product/", strings.NewReader(form.Encode())))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := serve(e, req)
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusForbidden {
		t.Fatalf("expected CSRF rejection, got %d", rec.Code)
	}
	if _, ok := products.items["new"]; ok {
		t.Fatalf("product must not be created without a CSRF token")
	}
}

func TestRouter_LoginFlowWithCSRF(t *testing.T) {
	e, _ := newTestRouter(t)
	csrf := csrfCookie(t, e)

	form := url.Values{
		"csrfmiddlewaretoken": {csrf.Value},
		"username":            {"alice"},
		"password":            {"secret"},
		"next":                {"/create-product/"},
	}
	req := httptest.NewRequest(http.MethodPost, "/accounts/login/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(csrf)

	rec := serve(e, req)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/create-product/" {
		t.Fatalf("expected redirect to next, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = true
	}
	if !names["sessionid"] || !names["last_login"] {
		t.Fatalf("expected session and last_login cookies, got %v", names)
	}
}

func TestRouter_Exports(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/json/", nil))
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
		t.Fatalf("unexpected json export response: %d %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
	var all []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil || len(all) != 2 {
		t.Fatalf("expected both products exported, got %v (%v)", all, err)
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/xml/missing/", nil))
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderContentType) != echo.MIMEApplicationXML {
		t.Fatalf("unexpected xml export response: %d %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
	if strings.Contains(rec.Body.String(), "<object") {
		t.Fatalf("expected empty export for unknown id")
	}
}

func TestRouter_UnknownExportRouteIsJSON404(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/json/a/b/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected JSON error envelope, got %s", rec.Body.String())
	}
}

func TestRouter_ReadinessAndMetrics(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "catalog_http_requests_total") {
		t.Fatalf("expected request metrics in exposition")
	}
}
