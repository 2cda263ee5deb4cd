package attachments

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/platform/auth"
	"github.com/owc/owc/internal/platform/blobstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleClerk, auth.RoleClaimsOfficer, auth.RoleRegistrar, auth.RoleDeputyRegistrar))
	g.GET("/claims/:irn/attachments", h.List)
	g.POST("/claims/:irn/attachments/:category", h.Replace)
}

func (h *Handler) List(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListWithURLs(c.Request().Context(), irn)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Attachment{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Replace(c echo.Context) error {
	irn, err := claims.ParseIRN(c)
	if err != nil {
		return err
	}
	category := Category(c.Param("category"))
	if !category.Known() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown attachment category")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open uploaded file")
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, blobstore.MaxFileSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if int64(len(content)) > blobstore.MaxFileSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, blobstore.ErrFileTooLarge.Error())
	}

	row, err := h.svc.Persist(c.Request().Context(), irn, Upload{
		Category:    category,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		if claims.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, row)
}
