package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService(testSecret)
	userID := uuid.New().String()

	token, err := svc.IssueToken(userID, RoleAdmin)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.True(t, claims.IsAdmin())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc := NewService(testSecret)
	token, err := svc.IssueToken(uuid.New().String(), RoleUser)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthenticateMiddleware(t *testing.T) {
	mw := NewMiddleware(testSecret)
	svc := NewService(testSecret)
	userID := uuid.New().String()
	token, err := svc.IssueToken(userID, RoleUser)
	require.NoError(t, err)

	var seen *Claims
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID())
}

func TestRequireAdmin(t *testing.T) {
	mw := NewMiddleware(testSecret)
	svc := NewService(testSecret)

	handler := mw.Authenticate(mw.RequireAdmin(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })))

	userToken, err := svc.IssueToken(uuid.New().String(), RoleUser)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := svc.IssueToken(uuid.New().String(), RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
