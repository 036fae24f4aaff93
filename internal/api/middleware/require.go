package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
	"github.com/velora/commerce-system/internal/session"
)

// RequireUser guards routes that need an authenticated storefront caller.
// The principal is re-fetched on every request; an admin identity riding a
// user-namespace session is treated as not authenticated. Store outages
// fail closed.
func RequireUser(auth ports.AuthService) echo.MiddlewareFunc {
	return requirePrincipal(auth, false)
}

// RequireAdmin guards the admin surface: the session must carry an
// identity whose current role is admin.
func RequireAdmin(auth ports.AuthService) echo.MiddlewareFunc {
	return requirePrincipal(auth, true)
}

func requirePrincipal(auth ports.AuthService, admin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := SessionFromContext(c)
			if err != nil {
				// An authenticated route cannot proceed on a broken store.
				return err
			}
			if !sess.Record.Authenticated() {
				return domain.ErrUnauthenticated
			}

			user, err := auth.CurrentPrincipal(c.Request().Context(), sess.Record.AuthIdentity)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrUnauthenticated
				}
				return err
			}
			if !user.Active {
				return domain.ErrUnauthenticated
			}

			if admin {
				if !user.IsAdmin() {
					return domain.ErrForbidden
				}
			} else {
				// Admins are invisible to the storefront; their session
				// never satisfies a user-namespace guard.
				if user.IsAdmin() && NamespaceFromContext(c) == session.NamespaceUser {
					return domain.ErrUnauthenticated
				}
			}

			c.Set(ctxKeyPrincipal, user)
			return next(c)
		}
	}
}
