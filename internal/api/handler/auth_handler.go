package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/metrics"
	"github.com/kki/product-catalog/internal/api/middleware"
	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

const (
	msgRegistered   = "Your account has been successfully created!"
	msgLoginFailed  = "Invalid username or password. Please try again."
	msgUsernameUsed = "A user with that username already exists."
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterForm handles GET /register/.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", registerPage{CSRFToken: csrfToken(c)})
}

// Register handles POST /register/.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.Username = strings.TrimSpace(form.Username)

	rerender := func(errs domain.ValidationErrors) error {
		metrics.AuthEventsTotal.WithLabelValues("register", "failure").Inc()
		page := registerPage{
			CSRFToken: csrfToken(c),
			Form:      registerForm{Username: form.Username},
			Errors:    errs,
		}
		return c.Render(http.StatusBadRequest, "register", page)
	}

	if err := c.Validate(&form); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return rerender(verrs)
		}
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Username, form.Password1); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return rerender(domain.ValidationErrors{"username": msgUsernameUsed})
		}
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("register", "success").Inc()
	setFlash(c, msgRegistered)
	return c.Redirect(http.StatusFound, middleware.LoginURL)
}

// LoginForm handles GET /accounts/login/.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", loginPage{
		Flash:     popFlash(c),
		CSRFToken: csrfToken(c),
		Next:      c.QueryParam("next"),
	})
}

// Login handles POST /accounts/login/. On success it sets the session and
// last_login cookies and redirects to next, or / when next is not a local path.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.Username = strings.TrimSpace(form.Username)

	page := loginPage{
		CSRFToken: csrfToken(c),
		Next:      form.Next,
		Form:      loginForm{Username: form.Username},
	}

	if err := c.Validate(&form); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			page.Errors = verrs
			return c.Render(http.StatusBadRequest, "login", page)
		}
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthEventsTotal.WithLabelValues("login", "failure").Inc()
			page.Flash = msgLoginFailed
			return c.Render(http.StatusOK, "login", page)
		}
		return err
	}

	metrics.AuthEventsTotal.WithLabelValues("login", "success").Inc()
	c.SetCookie(h.cookies.session(session.Token, session.ExpiresAt))
	c.SetCookie(h.cookies.lastLogin(session.IssuedAt))
	return c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout handles POST /logout/. It revokes the session and removes
// the session and last_login cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			metrics.AuthEventsTotal.WithLabelValues("logout", "failure").Inc()
			return err
		}
	}

	metrics.AuthEventsTotal.WithLabelValues("logout", "success").Inc()
	middleware.ClearCookie(c, middleware.SessionCookie)
	middleware.ClearCookie(c, LastLoginCookie)
	return c.Redirect(http.StatusFound, middleware.LoginURL)
}

// safeNext only allows redirects to paths on this host.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}
