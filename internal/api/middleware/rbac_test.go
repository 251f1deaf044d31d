package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth_Anonymous(t *testing.T) {
	c := newTestContext()

	err := RequireAuth()(okHandler)(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireAuth_Authenticated(t *testing.T) {
	c := newTestContext()
	SetIdentity(c, &domain.AuthenticatedIdentity{Username: "alice"})

	if err := RequireAuth()(okHandler)(c); err != nil {
		t.Fatalf("authenticated request must pass, got %v", err)
	}
}

func TestRequireAuthority_Allowed(t *testing.T) {
	c := newTestContext()
	SetIdentity(c, &domain.AuthenticatedIdentity{
		Username:    "root",
		Authorities: []string{"ROLE_ADMIN", "CREATE", "READ"},
	})

	if err := RequireAuthority("ROLE_ADMIN")(okHandler)(c); err != nil {
		t.Fatalf("admin must pass, got %v", err)
	}
}

func TestRequireAuthority_Forbidden(t *testing.T) {
	c := newTestContext()
	SetIdentity(c, &domain.AuthenticatedIdentity{
		Username:    "alice",
		Authorities: []string{"ROLE_USER", "READ"},
	})

	err := RequireAuthority("ROLE_ADMIN")(okHandler)(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAuthority_Anonymous(t *testing.T) {
	c := newTestContext()

	// Missing identity is 401, not 403.
	err := RequireAuthority("ROLE_ADMIN")(okHandler)(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
