package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
	"github.com/sserranom/virtualpets-api/internal/core/ports"
)

const maxRolesPerUser = 3

// AuthService implements registration, login and identity loading.
type AuthService struct {
	repo   ports.AuthRepository
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Register creates a user with the given role names and returns the created
// user together with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, username, password string, roles []string) (*domain.User, string, error) {
	if username == "" || password == "" || len(roles) == 0 {
		return nil, "", domain.ErrInvalidCredentials
	}
	if len(roles) > maxRolesPerUser {
		return nil, "", domain.ErrUnknownRole
	}

	roleNames := make([]domain.RoleName, 0, len(roles))
	for _, r := range roles {
		name := domain.RoleName(r)
		if !domain.ValidRole(name) {
			return nil, "", domain.ErrUnknownRole
		}
		roleNames = append(roleNames, name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:              username,
		PasswordHash:          string(hash),
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Roles:                 roleNames,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Issue(created.Username, created.DeriveAuthorities())
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return created, token, nil
}

// Login verifies the credentials and returns a signed token on success.
// A missing user and a wrong password are both invalid credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.Active() {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Username, user.DeriveAuthorities())
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return token, user, nil
}

// LoadIdentity rebuilds the request-scoped identity from the stored user.
// Disabled or locked accounts load as ErrAccountDisabled so the caller
// treats them as unauthenticated.
func (s *AuthService) LoadIdentity(ctx context.Context, username string) (*domain.AuthenticatedIdentity, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, domain.ErrAccountDisabled
	}
	return user.Identity(), nil
}
