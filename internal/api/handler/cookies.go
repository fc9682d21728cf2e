package handler

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/middleware"
)

const (
	// LastLoginCookie records when the browser last logged in.
	LastLoginCookie = "last_login"
	// FlashCookie carries a single message to the next rendered page.
	FlashCookie = "messages"
	// CSRFContextKey is where the CSRF middleware stores the form token.
	CSRFContextKey = "csrf"
)

// CookieOptions controls the attributes of the cookies set on login.
type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) session(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) lastLogin(at time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     LastLoginCookie,
		Value:    at.UTC().Format(time.RFC3339),
		Path:     "/",
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func setFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message and clears it.
func popFlash(c echo.Context) string {
	cookie, err := c.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	middleware.ClearCookie(c, FlashCookie)

	msg, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}
