package handler

import (
	"net/http"

	"sliceco/internal/delivery/http/response"
	"sliceco/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the static product table.
type CatalogHandler struct {
	catalog *entity.Catalog
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog *entity.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns every product in the catalog.
func (h *CatalogHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.Products(), "")
}
