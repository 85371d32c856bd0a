package review

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

// fakeRepo keeps reviews and the per-product review-id list in lockstep the
// way the real repository does. The mutex stands in for the product row lock.
type fakeRepo struct {
	mu       sync.Mutex
	reviews  map[uuid.UUID]*Review
	products map[uuid.UUID][]uuid.UUID
}

func newFakeRepo(productIDs ...uuid.UUID) *fakeRepo {
	r := &fakeRepo{
		reviews:  map[uuid.UUID]*Review{},
		products: map[uuid.UUID][]uuid.UUID{},
	}
	for _, id := range productIDs {
		r.products[id] = []uuid.UUID{}
	}
	return r
}

func (r *fakeRepo) CreateAndAttach(_ context.Context, rev *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[rev.ProductID]; !ok {
		return fmt.Errorf("product %s: %w", rev.ProductID, apperror.ErrNotFound)
	}
	r.products[rev.ProductID] = append(r.products[rev.ProductID], rev.ID)
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Review, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("review id: %w", apperror.ErrValidation)
	}
	rev, ok := r.reviews[uid]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, apperror.ErrNotFound)
	}
	return rev, nil
}

func (r *fakeRepo) ListByProduct(_ context.Context, productID string) ([]*Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("product id: %w", apperror.ErrValidation)
	}
	ids, ok := r.products[pid]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, apperror.ErrNotFound)
	}
	out := []*Review{}
	for _, id := range ids {
		out = append(out, r.reviews[id])
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, rev *Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return fmt.Errorf("review %s: %w", rev.ID, apperror.ErrNotFound)
	}
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeRepo) DeleteAndDetach(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("review id: %w", apperror.ErrValidation)
	}
	rev, ok := r.reviews[uid]
	if !ok {
		return fmt.Errorf("review %s: %w", id, apperror.ErrNotFound)
	}
	delete(r.reviews, uid)
	// The product may have been deleted independently; detaching is best effort.
	if ids, ok := r.products[rev.ProductID]; ok {
		kept := ids[:0]
		for _, rid := range ids {
			if rid != uid {
				kept = append(kept, rid)
			}
		}
		r.products[rev.ProductID] = kept
	}
	return nil
}

type fakeAuthors struct{ users map[string]*user.User }

func (f *fakeAuthors) Get(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}
	return u, nil
}

func testAuthor() *user.User {
	return &user.User{
		ID:        uuid.New(),
		FirstName: "Chileshe",
		LastName:  "Mwansa",
		Avatar:    "https://example.com/avatar.png",
	}
}

func newTestService(repo *fakeRepo, author *user.User) Service {
	authors := &fakeAuthors{users: map[string]*user.User{author.ID.String(): author}}
	return NewService(repo, authors)
}

func TestCreateDenormalizesAuthorAndAttaches(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	author := testAuthor()
	svc := newTestService(repo, author)

	rev, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: productID.String(),
		Rating:    5,
		Text:      "Lovely craftsmanship",
	})
	require.NoError(t, err)

	assert.Equal(t, author.ID, rev.UserID)
	assert.Equal(t, "Chileshe", rev.FirstName)
	assert.Equal(t, "Mwansa", rev.LastName)
	assert.Equal(t, author.Avatar, rev.Avatar)

	require.Len(t, repo.products[productID], 1)
	assert.Equal(t, rev.ID, repo.products[productID][0])
}

func TestCreateUnknownProductWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	author := testAuthor()
	svc := newTestService(repo, author)

	_, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: uuid.New().String(),
		Rating:    4,
		Text:      "never lands",
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, repo.reviews)
}

func TestCreateRejectsBadRating(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	author := testAuthor()
	svc := newTestService(repo, author)

	_, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: productID.String(),
		Rating:    6,
		Text:      "too enthusiastic",
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateOnlyAuthorOrAdmin(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	author := testAuthor()
	svc := newTestService(repo, author)

	rev, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: productID.String(), Rating: 3, Text: "fine",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), rev.ID.String(), uuid.New().String(), false,
		UpdateRequest{Text: "hijacked"})
	require.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, "fine", repo.reviews[rev.ID].Text)

	updated, err := svc.Update(context.Background(), rev.ID.String(), author.ID.String(), false,
		UpdateRequest{Rating: 4, Text: "better on second wear"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "better on second wear", updated.Text)

	// Admins can moderate anyone's review.
	_, err = svc.Update(context.Background(), rev.ID.String(), uuid.New().String(), true,
		UpdateRequest{Text: "moderated"})
	require.NoError(t, err)
}

func TestDeleteDetachesFromProduct(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	author := testAuthor()
	svc := newTestService(repo, author)

	rev, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: productID.String(), Rating: 2, Text: "clasp broke",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), rev.ID.String(), uuid.New().String(), false)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), rev.ID.String(), author.ID.String(), false))
	assert.Empty(t, repo.reviews)
	assert.Empty(t, repo.products[productID])
}

func TestConcurrentCreatesBothAttach(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	first := testAuthor()
	second := testAuthor()
	authors := &fakeAuthors{users: map[string]*user.User{
		first.ID.String():  first,
		second.ID.String(): second,
	}}
	svc := NewService(repo, authors)

	var wg sync.WaitGroup
	for _, author := range []*user.User{first, second} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), id, CreateRequest{
				ProductID: productID.String(),
				Rating:    5,
				Text:      "simultaneous",
			})
			assert.NoError(t, err)
		}(author.ID.String())
	}
	wg.Wait()

	// Neither append may be lost.
	assert.Len(t, repo.products[productID], 2)
	assert.Len(t, repo.reviews, 2)
}

func TestDeleteToleratesMissingProduct(t *testing.T) {
	productID := uuid.New()
	repo := newFakeRepo(productID)
	author := testAuthor()
	svc := newTestService(repo, author)

	rev, err := svc.Create(context.Background(), author.ID.String(), CreateRequest{
		ProductID: productID.String(), Rating: 5, Text: "gone but loved",
	})
	require.NoError(t, err)

	delete(repo.products, productID)

	require.NoError(t, svc.Delete(context.Background(), rev.ID.String(), author.ID.String(), false))
	assert.Empty(t, repo.reviews)
}
