package user

import "context"

// InboxCap is the maximum number of notifications retained per user. Inserts
// beyond the cap evict the oldest entries.
const InboxCap = 100

// Repository defines data access for users and their notification inboxes.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error

	// AddNotification appends to one user's inbox and trims it to InboxCap.
	AddNotification(ctx context.Context, userID string, message string) error

	// NotifyAdmins appends the message to the inbox of every admin user.
	NotifyAdmins(ctx context.Context, message string) error

	ListNotifications(ctx context.Context, userID string) ([]*Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
}
