package auth

import (
	"net/http"
	"strings"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Middleware gates routes behind a bearer token.
type Middleware struct {
	secret []byte
}

// NewMiddleware creates middleware verifying tokens signed with secret.
func NewMiddleware(secret []byte) *Middleware {
	return &Middleware{secret: secret}
}

// Authenticate parses the Authorization header and stores the claims on the
// request context. Requests without a valid token get 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			web.Error(w, "Not authorized, no token", apperror.ErrUnauthorized)
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), m.secret)
		if err != nil {
			web.Error(w, "Not authorized, token failed", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
	})
}

// RequireAdmin rejects authenticated requests whose token is not an admin's.
// Must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok || !claims.IsAdmin() {
			web.Error(w, "Not authorized as an admin", apperror.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
