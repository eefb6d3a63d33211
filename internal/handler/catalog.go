package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// CatalogHandler serves the public menu.
type CatalogHandler struct {
	Catalog *catalog.Catalog
}

// filterFrom reads ?size=&ingredient=&q=.
func filterFrom(c echo.Context) catalog.FilterState {
	return catalog.FilterState{
		Size:       c.QueryParam("size"),
		Ingredient: c.QueryParam("ingredient"),
		Search:     c.QueryParam("q"),
	}.Normalized()
}

// List handles GET /v1/catalog.  The response carries the ingredient
// options and whether any filter is active, for the "clear filters" control.
func (h *CatalogHandler) List(c echo.Context) error {
	f := filterFrom(c)
	if err := h.Catalog.CheckFilter(f); err != nil {
		return writeError(c, err)
	}
	items := h.Catalog.Filter(f)
	if items == nil {
		items = []model.CatalogItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":          items,
		"count":          len(items),
		"filter":         f,
		"filters_active": f.Active(),
		"sizes":          catalog.SizeTokens,
		"ingredients":    h.Catalog.IngredientTokens(),
	})
}

// Popular handles GET /v1/catalog/popular.
func (h *CatalogHandler) Popular(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Popular()})
}
