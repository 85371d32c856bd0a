package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

// SubmitRequest is the contact-form payload.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// Service defines contact-form business logic.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Message, error)
	List(ctx context.Context) ([]*Message, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new contact service.
func NewService(repo Repository) Service {
	return &service{repo: repo, validate: validator.New()}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}
	m := &Message{
		ID:     uuid.New(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Body:   req.Message,
		Status: StatusNew,
		Date:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]*Message, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) error {
	switch status {
	case StatusNew, StatusRead, StatusReplied, StatusClosed:
	default:
		return fmt.Errorf("invalid message status %q: %w", status, apperror.ErrValidation)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
