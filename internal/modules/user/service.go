package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)

	// Login verifies the credential and returns the account plus a signed token.
	Login(ctx context.Context, email, password string) (*User, string, error)

	// RegisterAdmin creates an account with the admin role. Admin-only route.
	RegisterAdmin(ctx context.Context, req RegisterRequest) (*User, error)

	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error

	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)

	// AddAddress appends a new entry to the user's address book.
	AddAddress(ctx context.Context, id string, addr Address) ([]Address, error)

	// SetCart replaces the user's server-side cart.
	SetCart(ctx context.Context, id string, items []CartItem) error

	// Notify appends a notification to one user's inbox. Returns a typed
	// not-found error when the user is absent rather than swallowing it.
	Notify(ctx context.Context, userID string, message string) error

	// NotifyAdmins fans the message out to every admin inbox.
	NotifyAdmins(ctx context.Context, message string) error

	Notifications(ctx context.Context, userID string) ([]*Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone"`
}

// UpdateProfileRequest is the payload for a partial profile update. Empty
// fields keep their current value.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
}
