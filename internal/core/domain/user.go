package domain

import (
	"errors"
	"time"
)

// RoleName is an enumerated role assignable to a user.
type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleUser  RoleName = "USER"
)

// Permission is an enumerated fine-grained authority attached to a role.
type Permission string

const (
	PermissionCreate Permission = "CREATE"
	PermissionRead   Permission = "READ"
	PermissionUpdate Permission = "UPDATE"
	PermissionDelete Permission = "DELETE"
)

// rolePermissions is the static role catalog. Roles and permissions are
// reference data, not user-editable.
var rolePermissions = map[RoleName][]Permission{
	RoleAdmin: {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
	RoleUser:  {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
}

// ValidRole reports whether name is a known role.
func ValidRole(name RoleName) bool {
	_, ok := rolePermissions[name]
	return ok
}

// RolePrefix is prepended to role names when deriving authority strings.
const RolePrefix = "ROLE_"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUnknownRole = errors.New("unknown role")
var ErrAccountDisabled = errors.New("account disabled or locked")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid token")

// User models a registered account.
type User struct {
	ID                    string     `json:"id"`
	Username              string     `json:"username"`
	PasswordHash          string     `json:"-"`
	Enabled               bool       `json:"enabled"`
	AccountNonExpired     bool       `json:"-"`
	AccountNonLocked      bool       `json:"-"`
	CredentialsNonExpired bool       `json:"-"`
	Roles                 []RoleName `json:"roles"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Active reports whether the account may authenticate at all.
func (u *User) Active() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}

// DeriveAuthorities flattens the user's roles into authority strings: one
// ROLE_<name> entry per role in role order, then every permission reachable
// through each role in role-then-permission order. Duplicate permissions
// granted by multiple roles are kept as-is.
func (u *User) DeriveAuthorities() []string {
	out := make([]string, 0, len(u.Roles)*2)
	for _, r := range u.Roles {
		out = append(out, RolePrefix+string(r))
	}
	for _, r := range u.Roles {
		for _, p := range rolePermissions[r] {
			out = append(out, string(p))
		}
	}
	return out
}

// Identity builds the request-scoped identity for the user.
func (u *User) Identity() *AuthenticatedIdentity {
	return &AuthenticatedIdentity{
		Username:    u.Username,
		Authorities: u.DeriveAuthorities(),
	}
}

// AuthenticatedIdentity is the per-request view of a user: the username plus
// the flat authority list derived from its roles. It is rebuilt on every
// request and never persisted.
type AuthenticatedIdentity struct {
	Username    string
	Authorities []string
}

// HasAuthority reports whether the identity carries the given authority.
func (i *AuthenticatedIdentity) HasAuthority(authority string) bool {
	for _, a := range i.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity carries ROLE_ADMIN.
func (i *AuthenticatedIdentity) IsAdmin() bool {
	return i.HasAuthority(RolePrefix + string(RoleAdmin))
}
