package claims

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/owc/owc/internal/platform/auth"
	"github.com/owc/owc/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleClerk, auth.RoleClaimsOfficer, auth.RoleRegistrar, auth.RoleDeputyRegistrar))
	g.GET("/claims/search", h.Search)
	g.GET("/claims/:irn", h.GetSummary)
	g.GET("/claims/:irn/worker", h.ResolveWorker)
}

// ParseIRN converts a path parameter to a positive IRN.
func ParseIRN(c echo.Context) (int64, error) {
	irn, err := strconv.ParseInt(c.Param("irn"), 10, 64)
	if err != nil || irn <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid irn")
	}
	return irn, nil
}

func (h *Handler) ResolveWorker(c echo.Context) error {
	irn, err := ParseIRN(c)
	if err != nil {
		return err
	}
	var hint int64
	if v := c.QueryParam("worker_id"); v != "" {
		hint, _ = strconv.ParseInt(v, 10, 64)
	}

	workerID, err := h.svc.Resolve(c.Request().Context(), irn, hint)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no worker mapping for claim")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"irn": irn, "worker_id": workerID})
}

func (h *Handler) GetSummary(c echo.Context) error {
	irn, err := ParseIRN(c)
	if err != nil {
		return err
	}
	summary, err := h.svc.GetSummary(c.Request().Context(), irn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "claim not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) Search(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchByName(c.Request().Context(), c.QueryParam("name"), pg.Limit, pg.Offset)
	if err != nil {
		if IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
