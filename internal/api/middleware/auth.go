package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "sessionid"
	// LoginURL is where anonymous visitors of protected pages are sent.
	LoginURL = "/accounts/login/"

	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// SessionAuthenticator resolves a session token to its claims.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*ports.SessionClaims, error)
}

// RequireLogin validates the session cookie and injects the user into the
// context. Visitors without a valid session are redirected to the login page
// with the requested path in ?next=.
func RequireLogin(auth SessionAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}

			claims, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					ClearCookie(c, SessionCookie)
					return redirectToLogin(c)
				}
				return err
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUsername, claims.Username)

			return next(c)
		}
	}
}

// ClearCookie instructs the browser to drop the named cookie.
func ClearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func redirectToLogin(c echo.Context) error {
	target := LoginURL + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
	return c.Redirect(http.StatusFound, target)
}
