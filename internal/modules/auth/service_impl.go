package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

const tokenTTL = 7 * 24 * time.Hour

type service struct {
	secret []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(secret []byte) Service {
	return &service{secret: secret}
}

func (s *service) IssueToken(userID, role string) (string, error) {
	claims := &Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a bearer token and returns its claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token failed: %w", apperror.ErrUnauthorized)
	}
	return claims, nil
}
