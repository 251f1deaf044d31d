package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sserranom/virtualpets-api/internal/core/ports"
)

// identityKey is the echo context key under which the request identity is
// stored. The context is request-scoped, so the identity never outlives the
// request.
const identityKey = "identity"

// Identity extracts the bearer token, validates it and loads the caller's
// identity into the request context. It never rejects a request on its own:
// a missing, malformed, expired or tampered token, or a token whose subject
// no longer resolves to a user, all degrade to an unauthenticated request.
// Rejection is left to the authorization middleware downstream.
func Identity(codec ports.TokenCodec, loader ports.IdentityLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			subject, err := codec.Validate(parts[1])
			if err != nil {
				return next(c)
			}

			identity, err := loader.LoadIdentity(c.Request().Context(), subject)
			if err != nil {
				return next(c)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}
