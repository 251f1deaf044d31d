package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// TokenCodec issues and validates HS256 JWTs. The authority list travels in
// a single comma-joined "authorities" claim.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenCodec(secret, issuer string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue produces a signed, time-bounded token binding subject and authorities.
func (tc *TokenCodec) Issue(subject string, authorities []string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":         subject,
		"authorities": strings.Join(authorities, ","),
		"iss":         tc.issuer,
		"iat":         now.Unix(),
		"exp":         now.Add(tc.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Validate verifies signature and expiry and returns the token subject.
// It fails closed: every verification problem collapses into ErrInvalidToken.
func (tc *TokenCodec) Validate(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidToken
	}
	return subject, nil
}
