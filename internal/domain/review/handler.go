package review

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleClaimsOfficer, auth.RoleRegistrar, auth.RoleDeputyRegistrar))
	read.GET("/claims/:irn/review", h.GetPrescreening)

	// Decisions are reserved for the registrar bench.
	write := api.Group("", auth.RequireRole(auth.RoleRegistrar, auth.RoleDeputyRegistrar))
	write.POST("/claims/:irn/decision", h.Decide)
}

type decisionRequest struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason"`
}

func (h *Handler) Decide(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.svc.Transition(c.Request().Context(), irn, req.Decision, req.Reason)
	if err != nil {
		switch {
		case claims.IsValidation(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, claims.ErrMissingRow):
			return echo.NewHTTPError(http.StatusConflict, "no prescreening row to decide on")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, outcome)
}

func (h *Handler) GetPrescreening(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	row, err := h.svc.GetPrescreening(c.Request().Context(), irn)
	if err != nil {
		if errors.Is(err, claims.ErrMissingRow) {
			return echo.NewHTTPError(http.StatusNotFound, "no prescreening row for claim")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, row)
}
