package newsletter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

// SubscribeRequest is the signup payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Service defines newsletter business logic.
type Service interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error)
	List(ctx context.Context) ([]*Subscriber, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new newsletter service.
func NewService(repo Repository) Service {
	return &service{repo: repo, validate: validator.New()}
}

func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}
	sub := &Subscriber{
		ID:            uuid.New(),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive:      true,
		SubscribeDate: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) List(ctx context.Context) ([]*Subscriber, error) {
	return s.repo.List(ctx)
}
