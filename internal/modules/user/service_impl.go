package user

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
)

type service struct {
	repo     Repository
	tokens   auth.Service
	validate *validator.Validate
}

// NewService creates a new user service.
func NewService(repo Repository, tokens auth.Service) Service {
	return &service{repo: repo, tokens: tokens, validate: validator.New()}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	u, err := s.register(ctx, req, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.IssueToken(u.ID.String(), u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) RegisterAdmin(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.register(ctx, req, auth.RoleAdmin)
}

func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}
	token, err := s.tokens.IssueToken(u.ID.String(), u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) register(ctx context.Context, req RegisterRequest, role string) (*User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Avatar:       avatarURL(req.FirstName + " " + req.LastName),
		Phone:        req.Phone,
		Role:         role,
		Addresses:    []Address{},
		Cart:         []CartItem{},
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) AddAddress(ctx context.Context, id string, addr Address) ([]Address, error) {
	if addr.AddressLine1 == "" || addr.City == "" {
		return nil, fmt.Errorf("addressLine1 and city are required: %w", apperror.ErrValidation)
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Addresses = append(u.Addresses, addr)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.Addresses, nil
}

func (s *service) SetCart(ctx context.Context, id string, items []CartItem) error {
	for _, it := range items {
		if it.Quantity <= 0 {
			return fmt.Errorf("cart quantity must be positive: %w", apperror.ErrValidation)
		}
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Cart = items
	return s.repo.Update(ctx, u)
}

func (s *service) Notify(ctx context.Context, userID string, message string) error {
	if message == "" {
		return fmt.Errorf("message is required: %w", apperror.ErrValidation)
	}
	return s.repo.AddNotification(ctx, userID, message)
}

func (s *service) NotifyAdmins(ctx context.Context, message string) error {
	return s.repo.NotifyAdmins(ctx, message)
}

func (s *service) Notifications(ctx context.Context, userID string) ([]*Notification, error) {
	return s.repo.ListNotifications(ctx, userID)
}

func (s *service) MarkNotificationsRead(ctx context.Context, userID string) error {
	return s.repo.MarkNotificationsRead(ctx, userID)
}

// avatarURL builds a UI Avatars profile image URL from the user's name.
func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&size=128&background=random"
}
