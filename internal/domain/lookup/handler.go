package lookup

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Dictionaries are harmless reference data; no role gate.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/lookup/provinces", h.Provinces)
	api.GET("/lookup/insurers", h.Insurers)
}

func (h *Handler) Provinces(c echo.Context) error {
	provinces, err := h.svc.Provinces(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if provinces == nil {
		provinces = []Province{}
	}
	return c.JSON(http.StatusOK, provinces)
}

func (h *Handler) Insurers(c echo.Context) error {
	insurers, err := h.svc.Insurers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	items := make([]Insurer, 0, len(insurers))
	for code, name := range insurers {
		items = append(items, Insurer{Code: code, Name: name})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return c.JSON(http.StatusOK, items)
}
