package claimform

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owc/owc/internal/domain/attachments"
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
	g := api.Group("", auth.RequireRole(auth.RoleClerk, auth.RoleClaimsOfficer, auth.RoleRegistrar, auth.RoleDeputyRegistrar))
	g.GET("/claims/:irn/draft", h.LoadDraft)
	g.POST("/claims/:irn/diff", h.Diff)
	g.POST("/claims/:irn/save", h.Save)
}

func (h *Handler) LoadDraft(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	draft, err := h.svc.Load(c.Request().Context(), irn)
	if err != nil {
		if errors.Is(err, claims.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "claim not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, draft)
}

type diffRequest struct {
	Original *Draft `json:"original"`
	Current  *Draft `json:"current"`
}

type diffResponse struct {
	Rows      []DiffRow `json:"rows"`
	NoChanges bool      `json:"no_changes"`
}

func (h *Handler) Diff(c echo.Context) error {
	if _, err := claims.ParseIRN(c); err != nil {
		return err
	}
	var req diffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Original == nil || req.Current == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "original and current snapshots are required")
	}
	if err := ValidateRequired(req.Current); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := ComputeDiff(req.Original, req.Current)
	if errors.Is(err, claims.ErrNoChanges) {
		return c.JSON(http.StatusOK, diffResponse{Rows: []DiffRow{}, NoChanges: true})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, diffResponse{Rows: rows})
}

type saveRequest struct {
	WorkerID int64                `json:"worker_id"`
	Draft    *Draft               `json:"draft"`
	Uploads  []attachments.Upload `json:"uploads"`
}

func (h *Handler) Save(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Draft == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "draft is required")
	}

	savedIRN, err := h.svc.SaveClaim(c.Request().Context(), irn, req.WorkerID, req.Draft, req.Uploads)
	if err != nil {
		switch {
		case claims.IsValidation(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, claims.ErrNotFound), errors.Is(err, claims.ErrMissingRow):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]int64{"irn": savedIRN})
}
