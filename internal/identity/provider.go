// Package identity adapts the external auth collaborator: it reads the
// current user's id, name and role out of the backend-issued access
// token. Signature verification is the backend's responsibility; the
// board only displays and filters by what the token claims, and every
// privileged action is still authorized server-side.
package identity

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// Claims describes the JWT payload the backend issues.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// FromToken decodes the current user from an access token without
// verifying the signature.
func FromToken(raw string) (domain.User, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return domain.User{}, err
	}

	if claims.Subject == "" {
		return domain.User{}, errors.New("token missing subject")
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.User{}, errors.New("token carries unknown role")
	}

	user := domain.User{
		ID:       claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		Role:     role,
		IsActive: true,
	}
	if claims.IssuedAt != nil {
		user.CreatedAt = claims.IssuedAt.Time
	} else {
		user.CreatedAt = time.Now()
	}
	return user, nil
}
