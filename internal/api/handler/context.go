package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/middleware"
	"github.com/kki/product-catalog/internal/core/domain"
)

// currentUser reads the identity injected by middleware.RequireLogin. A
// missing user id means the route was registered without the middleware.
func currentUser(c echo.Context) (userID, username string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", "", domain.ErrUnauthenticated
	}
	username, _ = c.Get(middleware.ContextUsername).(string)
	return userID, username, nil
}

// csrfToken returns the token set by Echo's CSRF middleware, if any.
func csrfToken(c echo.Context) string {
	token, _ := c.Get(CSRFContextKey).(string)
	return token
}
