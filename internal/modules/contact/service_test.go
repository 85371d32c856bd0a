package contact

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type fakeRepo struct{ messages map[uuid.UUID]*Message }

func (r *fakeRepo) Create(_ context.Context, m *Message) error {
	r.messages[m.ID] = m
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]*Message, error) {
	out := []*Message{}
	for _, m := range r.messages {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("message id: %w", apperror.ErrValidation)
	}
	m, ok := r.messages[uid]
	if !ok {
		return fmt.Errorf("message %s: %w", id, apperror.ErrNotFound)
	}
	m.Status = status
	return nil
}

func TestSubmitStartsAsNew(t *testing.T) {
	repo := &fakeRepo{messages: map[uuid.UUID]*Message{}}
	svc := NewService(repo)

	m, err := svc.Submit(context.Background(), SubmitRequest{
		Name:    "Lengwe",
		Email:   "lengwe@example.com",
		Message: "Do you ship to Ndola?",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNew, m.Status)
	assert.Equal(t, "Do you ship to Ndola?", m.Body)
	assert.Len(t, repo.messages, 1)
}

func TestSubmitValidatesPayload(t *testing.T) {
	svc := NewService(&fakeRepo{messages: map[uuid.UUID]*Message{}})

	_, err := svc.Submit(context.Background(), SubmitRequest{Email: "x@example.com", Message: "hi"})
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Submit(context.Background(), SubmitRequest{Name: "A", Email: "bad", Message: "hi"})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	repo := &fakeRepo{messages: map[uuid.UUID]*Message{}}
	svc := NewService(repo)

	m, err := svc.Submit(context.Background(), SubmitRequest{
		Name: "Lengwe", Email: "lengwe@example.com", Message: "hello",
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateStatus(context.Background(), m.ID.String(), "archived"),
		apperror.ErrValidation)
	require.NoError(t, svc.UpdateStatus(context.Background(), m.ID.String(), StatusRead))
	assert.Equal(t, StatusRead, repo.messages[m.ID].Status)

	require.ErrorIs(t, svc.UpdateStatus(context.Background(), uuid.New().String(), StatusClosed),
		apperror.ErrNotFound)
}
