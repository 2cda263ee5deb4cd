package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func call(t *testing.T, mw []echo.MiddlewareFunc, header string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RolesHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h(c)
}

func TestRequireRole_Allows(t *testing.T) {
	err := call(t, []echo.MiddlewareFunc{Middleware(false), RequireRole(RoleRegistrar)}, "registrar")
	if err != nil {
		t.Errorf("expected registrar to pass, got %v", err)
	}
}

func TestRequireRole_AdminAlwaysPasses(t *testing.T) {
	err := call(t, []echo.MiddlewareFunc{Middleware(false), RequireRole(RoleDeputyRegistrar)}, "admin")
	if err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	err := call(t, []echo.MiddlewareFunc{Middleware(false), RequireRole(RoleDeputyRegistrar)}, "clerk")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestMiddleware_DevModeGrantsDeputyRegistrar(t *testing.T) {
	err := call(t, []echo.MiddlewareFunc{Middleware(true), RequireRole(RoleDeputyRegistrar)}, "")
	if err != nil {
		t.Errorf("expected dev mode to pass, got %v", err)
	}
}

func TestMiddleware_NoHeaderForbidden(t *testing.T) {
	err := call(t, []echo.MiddlewareFunc{Middleware(false), RequireRole(RoleClerk)}, "")
	if err == nil {
		t.Error("expected forbidden without roles header")
	}
}
