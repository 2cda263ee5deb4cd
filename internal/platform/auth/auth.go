// Package auth carries caller roles through the request context and gates
// routes on them. Token validation happens upstream at the gateway; this
// service trusts the forwarded role header, or grants registrar in dev mode.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const rolesKey contextKey = "roles"

// RolesHeader is set by the gateway after it validates the caller's token.
const RolesHeader = "X-OWC-Roles"

// Known roles, in increasing order of authority for review decisions.
const (
	RoleClerk           = "clerk"
	RoleClaimsOfficer   = "claims-officer"
	RoleRegistrar       = "registrar"
	RoleDeputyRegistrar = "deputy-registrar"
	RoleAdmin           = "admin"
)

// Middleware extracts roles from the forwarded header. In dev mode every
// request is granted the deputy-registrar role.
func Middleware(devMode bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var roles []string
			if devMode {
				roles = []string{RoleDeputyRegistrar}
			} else if h := c.Request().Header.Get(RolesHeader); h != "" {
				for _, r := range strings.Split(h, ",") {
					if r = strings.TrimSpace(r); r != "" {
						roles = append(roles, r)
					}
				}
			}
			ctx := context.WithValue(c.Request().Context(), rolesKey, roles)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RolesFromContext returns the caller's roles, or nil.
func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}

// RequireRole returns middleware that checks the caller holds one of the
// given roles. Admin always passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == RoleAdmin {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
