package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kki/product-catalog/docs"
	"github.com/kki/product-catalog/internal/api/handler"
	"github.com/kki/product-catalog/internal/api/middleware"
	"github.com/kki/product-catalog/internal/api/view"
	"github.com/kki/product-catalog/internal/core/ports"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Products ports.ProductService
	Auth     ports.AuthService
	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks  map[string]handler.PingFunc
	Site    handler.SiteInfo
	Cookies handler.CookieOptions
	Logger  zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// unslashedPrefixes are served as-is; every other path gets a trailing slash.
var unslashedPrefixes = []string{"/health", "/metrics", "/swagger"}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = view.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.AddTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper:      func(c echo.Context) bool { return hasAnyPrefix(c.Request().URL.Path, unslashedPrefixes) },
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "catalog",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper:    func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:csrfmiddlewaretoken",
		ContextKey:     handler.CSRFContextKey,
		CookieName:     "csrftoken",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   deps.Cookies.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// --- Handlers ---
	products := handler.NewProductHandler(deps.Products, deps.Site)
	exports := handler.NewExportHandler(deps.Products)
	auth := handler.NewAuthHandler(deps.Auth, deps.Cookies)
	health := handler.NewHealthHandler(deps.Checks)
	requireLogin := middleware.RequireLogin(deps.Auth)

	// --- Catalog pages (session required) ---
	e.GET("/", products.Home, requireLogin)
	e.GET("/create-product/", products.CreateForm, requireLogin)
	e.POST("/create-product/", products.Create, requireLogin)
	e.GET("/edit-product/:id/", products.EditForm, requireLogin)
	e.POST("/edit-product/:id/", products.Edit, requireLogin)
	e.POST("/delete-product/:id/", products.Delete, requireLogin)

	// --- Exports (public, read-only) ---
	e.GET("/xml/", exports.XML)
	e.GET("/json/", exports.JSON)
	e.GET("/xml/:id/", exports.XMLByID)
	e.GET("/json/:id/", exports.JSONByID)

	// --- Accounts ---
	e.GET("/register/", auth.RegisterForm)
	e.POST("/register/", auth.Register)
	e.GET("/accounts/login/", auth.LoginForm)
	e.POST("/accounts/login/", auth.Login)
	e.POST("/logout/", auth.Logout)

	// --- Health probes, metrics and docs ---
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
