package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/metrics"
	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

// ProductHandler serves the HTML pages that manage the current user's products.
type ProductHandler struct {
	products ports.ProductService
	site     SiteInfo
}

func NewProductHandler(products ports.ProductService, site SiteInfo) *ProductHandler {
	return &ProductHandler{products: products, site: site}
}

// Home handles GET / and lists the products owned by the current user.
func (h *ProductHandler) Home(c echo.Context) error {
	userID, username, err := currentUser(c)
	if err != nil {
		return err
	}

	products, err := h.products.ListForOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	page := homePage{
		AppName:       h.site.AppName,
		DeveloperName: h.site.DeveloperName,
		ClassName:     h.site.ClassName,
		Username:      username,
		Flash:         popFlash(c),
		CSRFToken:     csrfToken(c),
		Products:      products,
	}
	if cookie, err := c.Cookie(LastLoginCookie); err == nil {
		page.LastLogin = cookie.Value
	}

	return c.Render(http.StatusOK, "home", page)
}

// CreateForm handles GET /create-product/.
func (h *ProductHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "product_form", h.createPage(c, productForm{}, nil))
}

// Create handles POST /create-product/. Invalid input re-renders the form
// with field errors and writes nothing.
func (h *ProductHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	form, verrs, err := bindProductForm(c)
	if err != nil {
		return err
	}
	if verrs != nil {
		metrics.ProductValidationFailuresTotal.Inc()
		return c.Render(http.StatusBadRequest, "product_form", h.createPage(c, form, verrs))
	}

	if _, err := h.products.Create(c.Request().Context(), userID, form.input()); err != nil {
		if errors.As(err, &verrs) {
			metrics.ProductValidationFailuresTotal.Inc()
			return c.Render(http.StatusBadRequest, "product_form", h.createPage(c, form, verrs))
		}
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// EditForm handles GET /edit-product/:id/. Products that do not exist or
// belong to someone else are reported as not found.
func (h *ProductHandler) EditForm(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	product, err := h.products.Get(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "product_form", h.editPage(c, id, productFormFrom(product), nil))
}

// Edit handles POST /edit-product/:id/. A missing or foreign product is
// reported as not found even when the submitted form is invalid.
func (h *ProductHandler) Edit(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	form, verrs, err := bindProductForm(c)
	if err != nil {
		return err
	}
	if verrs != nil {
		if _, err := h.products.Get(ctx, id, userID); err != nil {
			return err
		}
		metrics.ProductValidationFailuresTotal.Inc()
		return c.Render(http.StatusBadRequest, "product_form", h.editPage(c, id, form, verrs))
	}

	if _, err := h.products.Update(ctx, id, userID, form.input()); err != nil {
		if errors.As(err, &verrs) {
			metrics.ProductValidationFailuresTotal.Inc()
			return c.Render(http.StatusBadRequest, "product_form", h.editPage(c, id, form, verrs))
		}
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Delete handles POST /delete-product/:id/.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	return c.Redirect(http.StatusFound, "/")
}

func (h *ProductHandler) createPage(c echo.Context, form productForm, errs domain.ValidationErrors) productFormPage {
	return productFormPage{
		Title:     "Add New Product",
		Action:    "/create-product/",
		Submit:    "Add Product",
		CSRFToken: csrfToken(c),
		Form:      form,
		Errors:    errs,
	}
}

func (h *ProductHandler) editPage(c echo.Context, id string, form productForm, errs domain.ValidationErrors) productFormPage {
	return productFormPage{
		Title:     "Edit Product",
		Action:    "/edit-product/" + id + "/",
		Submit:    "Save Changes",
		CSRFToken: csrfToken(c),
		Form:      form,
		Errors:    errs,
	}
}

// bindProductForm binds and validates the submitted product form. Field
// errors are returned separately from transport errors.
func bindProductForm(c echo.Context) (productForm, domain.ValidationErrors, error) {
	var form productForm
	if err := c.Bind(&form); err != nil {
		return form, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.normalize()

	if err := c.Validate(&form); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return form, verrs, nil
		}
		return form, nil, err
	}
	return form, nil, nil
}
