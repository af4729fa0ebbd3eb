package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaffOnly restricts a route to staff accounts. Staff status always wins:
// the role claim is not consulted.
func StaffOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			staff, _ := c.Get("staff").(bool)
			if !staff {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// StaffOrRoles admits staff accounts plus any account whose role claim is in
// the allowed set.
func StaffOrRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if staff, _ := c.Get("staff").(bool); staff {
				return next(c)
			}
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
