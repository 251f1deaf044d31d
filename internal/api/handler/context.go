package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sserranom/virtualpets-api/internal/api/middleware"
	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// ctxIdentity extracts the identity installed by the Identity middleware and
// performs a fast-fail check before any service call: a route that reaches a
// pet handler without an identity means the authorization chain was
// misconfigured, so reject rather than proceed unscoped.
func ctxIdentity(c echo.Context) (*domain.AuthenticatedIdentity, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil || identity.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}
