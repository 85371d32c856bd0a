package user

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
)

type fakeRepo struct {
	users         map[uuid.UUID]*User
	notifications map[string][]*Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         map[uuid.UUID]*User{},
		notifications: map[string][]*Notification{},
	}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email %s: %w", u.Email, apperror.ErrConflict)
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", apperror.ErrValidation)
	}
	u, ok := r.users[uid]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperror.ErrNotFound)
}

func (r *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := []*User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, apperror.ErrNotFound)
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("user id: %w", apperror.ErrValidation)
	}
	if _, ok := r.users[uid]; !ok {
		return fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}
	delete(r.users, uid)
	return nil
}

func (r *fakeRepo) AddNotification(_ context.Context, userID, message string) error {
	if _, err := r.GetByID(context.Background(), userID); err != nil {
		return err
	}
	inbox := append(r.notifications[userID], &Notification{
		ID:      uuid.New(),
		Message: message,
		Status:  NotificationUnread,
	})
	if len(inbox) > InboxCap {
		inbox = inbox[len(inbox)-InboxCap:]
	}
	r.notifications[userID] = inbox
	return nil
}

func (r *fakeRepo) NotifyAdmins(_ context.Context, message string) error {
	for _, u := range r.users {
		if u.Role == auth.RoleAdmin {
			if err := r.AddNotification(context.Background(), u.ID.String(), message); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeRepo) ListNotifications(_ context.Context, userID string) ([]*Notification, error) {
	return r.notifications[userID], nil
}

func (r *fakeRepo) MarkNotificationsRead(_ context.Context, userID string) error {
	for _, n := range r.notifications[userID] {
		n.Status = NotificationRead
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) IssueToken(userID, role string) (string, error) {
	return "token:" + userID + ":" + role, nil
}

func registerRequest(email string) RegisterRequest {
	return RegisterRequest{
		FirstName: "Thandiwe",
		LastName:  "Phiri",
		Email:     email,
		Password:  "hunter22",
	}
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})

	u, token, err := svc.Register(context.Background(), registerRequest("thandiwe@example.com"))
	require.NoError(t, err)

	assert.Equal(t, auth.RoleUser, u.Role)
	assert.True(t, strings.HasSuffix(token, ":"+auth.RoleUser))
	assert.NotEmpty(t, u.Avatar)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})

	_, _, err := svc.Register(context.Background(), registerRequest("dup@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerRequest("dup@example.com"))
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Len(t, repo.users, 1)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTokens{})
	req := registerRequest("short@example.com")
	req.Password = "abc"
	_, _, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRegisterAdminGetsAdminRole(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTokens{})
	u, err := svc.RegisterAdmin(context.Background(), registerRequest("boss@example.com"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})
	registered, _, err := svc.Register(context.Background(), registerRequest("login@example.com"))
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "login@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "login@example.com", "wrong")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotifyUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTokens{})
	err := svc.Notify(context.Background(), uuid.New().String(), "hello")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotifyRequiresMessage(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTokens{})
	err := svc.Notify(context.Background(), uuid.New().String(), "")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestNotificationInboxIsCapped(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})
	u, _, err := svc.Register(context.Background(), registerRequest("busy@example.com"))
	require.NoError(t, err)

	for i := 0; i < InboxCap+10; i++ {
		require.NoError(t, svc.Notify(context.Background(), u.ID.String(), fmt.Sprintf("event %d", i)))
	}

	inbox, err := svc.Notifications(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Len(t, inbox, InboxCap)
	// Oldest entries were evicted.
	assert.Equal(t, "event 10", inbox[0].Message)
}

func TestNotifyAdminsFansOutToAdminsOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})

	shopper, _, err := svc.Register(context.Background(), registerRequest("shopper@example.com"))
	require.NoError(t, err)
	admin, err := svc.RegisterAdmin(context.Background(), registerRequest("admin@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.NotifyAdmins(context.Background(), "new order"))

	adminInbox, _ := svc.Notifications(context.Background(), admin.ID.String())
	require.Len(t, adminInbox, 1)
	shopperInbox, _ := svc.Notifications(context.Background(), shopper.ID.String())
	assert.Empty(t, shopperInbox)
}

func TestAddAddressValidatesRequiredFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})
	u, _, err := svc.Register(context.Background(), registerRequest("mover@example.com"))
	require.NoError(t, err)

	_, err = svc.AddAddress(context.Background(), u.ID.String(), Address{City: "Lusaka"})
	require.ErrorIs(t, err, apperror.ErrValidation)

	addrs, err := svc.AddAddress(context.Background(), u.ID.String(),
		Address{AddressLine1: "12 Freedom Way", City: "Lusaka"})
	require.NoError(t, err)
	assert.Len(t, addrs, 1)
}

func TestSetCartRejectsNonPositiveQuantities(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTokens{})
	u, _, err := svc.Register(context.Background(), registerRequest("cart@example.com"))
	require.NoError(t, err)

	err = svc.SetCart(context.Background(), u.ID.String(),
		[]CartItem{{ProductID: uuid.New(), Quantity: 0}})
	require.ErrorIs(t, err, apperror.ErrValidation)

	require.NoError(t, svc.SetCart(context.Background(), u.ID.String(),
		[]CartItem{{ProductID: uuid.New(), Quantity: 2}}))
	got, err := svc.Get(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Len(t, got.Cart, 1)
}
