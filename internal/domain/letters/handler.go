package letters

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/domain/review"
	"github.com/owc/owc/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleRegistrar, auth.RoleDeputyRegistrar, auth.RoleClaimsOfficer))
	g.GET("/claims/:irn/letter", h.Letter)
}

func (h *Handler) Letter(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	formType := claims.FormType(c.QueryParam("form_type"))
	if !formType.Valid() {
		formType = claims.Form3
	}

	body, err := h.svc.Render(c.Request().Context(), review.LetterRef{IRN: irn, FormType: formType})
	if err != nil {
		if errors.Is(err, claims.ErrNotFound) || errors.Is(err, claims.ErrMissingRow) {
			return echo.NewHTTPError(http.StatusNotFound, "claim or decision not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", body)
}
