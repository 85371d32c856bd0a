package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
)

// Address is one saved entry in a user's address book.
type Address struct {
	HouseNumber  string `json:"houseNumber,omitempty"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	District     string `json:"district,omitempty"`
	Province     string `json:"province,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
}

// CartItem is a product reference plus quantity in the server-side cart.
type CartItem struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
}

// Notification statuses.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification is one entry in a user's inbox.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// User represents an account: identity, credential, address book, cart and
// notification inbox. Order references live on the orders table and are
// resolved through the order module.
type User struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Avatar       string     `json:"avatar,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	Addresses    []Address  `json:"address"`
	Cart         []CartItem `json:"cart,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == auth.RoleAdmin }
