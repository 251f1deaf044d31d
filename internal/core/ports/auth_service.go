package ports

import (
	"context"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// AuthService defines registration, login and identity loading.
type AuthService interface {
	Register(ctx context.Context, username, password string, roles []string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	IdentityLoader
}

// IdentityLoader resolves a username to its request-scoped identity. The
// authority list is derived fresh from the stored user on every call.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, username string) (*domain.AuthenticatedIdentity, error)
}

// TokenCodec issues and validates signed bearer tokens.
type TokenCodec interface {
	// Issue produces a signed, time-bounded token binding the subject and
	// its authority list.
	Issue(subject string, authorities []string) (string, error)
	// Validate verifies signature and expiry and returns the token subject.
	// Any verification failure yields domain.ErrInvalidToken.
	Validate(token string) (string, error)
}
