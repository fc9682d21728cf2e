package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kki/product-catalog/internal/api/export"
	"github.com/kki/product-catalog/internal/api/metrics"
	"github.com/kki/product-catalog/internal/core/domain"
	"github.com/kki/product-catalog/internal/core/ports"
)

// ExportHandler serves the read-only catalog exports.
type ExportHandler struct {
	products ports.ProductService
}

func NewExportHandler(products ports.ProductService) *ExportHandler {
	return &ExportHandler{products: products}
}

// XML handles GET /xml/.
//
// @Summary      Export every product as XML
// @Tags         export
// @Produce      xml
// @Success      200  {string}  string  "django-objects document"
// @Failure      500  {object}  errorResponse
// @Router       /xml/ [get]
func (h *ExportHandler) XML(c echo.Context) error {
	return h.serve(c, "", "xml", "all")
}

// XMLByID handles GET /xml/:id/.
//
// @Summary      Export one product as XML
// @Description  An unknown id yields an empty document.
// @Tags         export
// @Produce      xml
// @Param        id   path      string  true  "Product ID"
// @Success      200  {string}  string  "django-objects document"
// @Failure      500  {object}  errorResponse
// @Router       /xml/{id}/ [get]
func (h *ExportHandler) XMLByID(c echo.Context) error {
	return h.serve(c, c.Param("id"), "xml", "by_id")
}

// JSON handles GET /json/.
//
// @Summary      Export every product as JSON
// @Tags         export
// @Produce      json
// @Success      200  {array}   exportedObject
// @Failure      500  {object}  errorResponse
// @Router       /json/ [get]
func (h *ExportHandler) JSON(c echo.Context) error {
	return h.serve(c, "", "json", "all")
}

// JSONByID handles GET /json/:id/.
//
// @Summary      Export one product as JSON
// @Description  An unknown id yields an empty array.
// @Tags         export
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {array}   exportedObject
// @Failure      500  {object}  errorResponse
// @Router       /json/{id}/ [get]
func (h *ExportHandler) JSONByID(c echo.Context) error {
	return h.serve(c, c.Param("id"), "json", "by_id")
}

func (h *ExportHandler) serve(c echo.Context, id, format, scope string) error {
	products, err := h.products.Export(c.Request().Context(), id)
	if err != nil {
		return err
	}

	body, contentType, err := encode(products, format)
	if err != nil {
		return err
	}

	metrics.ExportsTotal.WithLabelValues(format, scope).Inc()
	metrics.ExportedProducts.WithLabelValues(format).Observe(float64(len(products)))
	return c.Blob(http.StatusOK, contentType, body)
}

func encode(products []*domain.Product, format string) ([]byte, string, error) {
	if format == "xml" {
		body, err := export.XML(products)
		return body, echo.MIMEApplicationXML, err
	}
	body, err := export.JSON(products)
	return body, echo.MIMEApplicationJSON, err
}

// exportedObject documents one element of the JSON export.
type exportedObject struct {
	Model  string `json:"model" example:"main.product"`
	PK     string `json:"pk"`
	Fields struct {
		User        string `json:"user"`
		Name        string `json:"name"`
		Price       int    `json:"price"`
		Description string `json:"description"`
	} `json:"fields"`
}

// errorResponse documents the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}
