package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blackmouth-booking/internal/catalog"
)

// CartHandler exposes the session's order.  Every response is the full
// cart so views never keep a private copy.
type CartHandler struct {
	Sessions Sessions
}

func itemName(c echo.Context) string {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return c.Param("name")
	}
	return name
}

// Get handles GET /v1/cart.
func (h *CartHandler) Get(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Cart())
}

// Add handles POST /v1/cart/items/:name.  Adding at the cap is not an
// error; the response shows the unchanged quantity.
func (h *CartHandler) Add(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	view, err := s.AddItem(itemName(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Remove handles DELETE /v1/cart/items/:name.
func (h *CartHandler) Remove(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.RemoveItem(itemName(c)))
}

// AddFiltered handles POST /v1/cart/add-filtered: one unit of every item
// the given filter shows.
func (h *CartHandler) AddFiltered(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	var body struct {
		Size       string `json:"size"`
		Ingredient string `json:"ingredient"`
		Search     string `json:"q"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	f := catalog.FilterState{Size: body.Size, Ingredient: body.Ingredient, Search: body.Search}
	added, view, err := s.AddFiltered(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"added": added, "cart": view})
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c echo.Context) error {
	s, err := currentSession(c, h.Sessions)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.ClearCart())
}
