package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"
)

// Roles a token can carry. New registrations default to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims is the signed token payload: the user id (Subject) plus their role.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string { return c.Subject }

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool { return c.Role == RoleAdmin }

type contextKey struct{}

// NewContext returns ctx carrying the authenticated claims.
func NewContext(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext extracts the authenticated claims, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}

// Service defines the interface for token issuance. Credential verification
// lives with the user module, which owns the password hash.
type Service interface {
	IssueToken(userID, role string) (string, error)
}
