package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// IdentityFrom returns the identity installed by the Identity middleware,
// or nil when the request is unauthenticated.
func IdentityFrom(c echo.Context) *domain.AuthenticatedIdentity {
	identity, _ := c.Get(identityKey).(*domain.AuthenticatedIdentity)
	return identity
}

// SetIdentity installs an identity into the request context. Intended for
// tests exercising handlers without the full middleware chain.
func SetIdentity(c echo.Context, identity *domain.AuthenticatedIdentity) {
	c.Set(identityKey, identity)
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireAuthority rejects requests whose identity lacks the given
// authority with 403. Unauthenticated requests still get 401.
func RequireAuthority(authority string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return domain.ErrUnauthenticated
			}
			if !identity.HasAuthority(authority) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
