package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Client), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) FindByName(ctx context.Context, name string) (*Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, c *Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(repo Repository) *service {
	fixed := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	return &service{repo: repo, now: func() time.Time { return fixed }}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(c *Client) bool {
			return c.Name == "Acme" && c.Email == "a@acme.test" && c.ID != uuid.Nil
		})).Return(nil)

		c, err := svc.Create(ctx, Input{Name: "  Acme ", Email: "a@acme.test"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("Name required", func(t *testing.T) {
		svc := newTestService(new(MockRepository))

		_, err := svc.Create(ctx, Input{Name: "   "})
		assert.ErrorIs(t, err, ErrInvalidClient)
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Bad email", func(t *testing.T) {
		svc := newTestService(new(MockRepository))

		_, err := svc.Create(ctx, Input{Name: "Acme", Email: "acme.test"})
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

		c, err := svc.Create(ctx, Input{Name: "Acme"})
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		repo.On("GetByID", ctx, id).Return(&Client{ID: id, Name: "Old", CreatedAt: created}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*client.Client")).Return(nil)

		c, err := svc.Update(ctx, id, Input{Name: "New", Phone: "555"})
		require.NoError(t, err)
		assert.Equal(t, "New", c.Name)
		assert.Equal(t, "555", c.Phone)
		assert.Equal(t, created, c.CreatedAt)
		assert.True(t, c.UpdatedAt.After(created))
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, id).Return(nil, ErrClientNotFound)

		_, err := svc.Update(ctx, id, Input{Name: "New"})
		assert.ErrorIs(t, err, ErrClientNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockRepository)
	svc := newTestService(repo)
	repo.On("Delete", ctx, id).Return(ErrClientNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, id), ErrClientNotFound)
}

func TestService_Remember(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing client is reused", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)
		existing := &Client{ID: uuid.New(), Name: "Acme"}
		repo.On("FindByName", ctx, "Acme").Return(existing, nil)

		c, err := svc.Remember(ctx, Input{Name: "Acme"})
		require.NoError(t, err)
		assert.Same(t, existing, c)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("New client is created", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)
		repo.On("FindByName", ctx, "Globex").Return(nil, ErrClientNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		c, err := svc.Remember(ctx, Input{Name: "Globex"})
		require.NoError(t, err)
		assert.Equal(t, "Globex", c.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Lookup failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)
		repo.On("FindByName", ctx, "Globex").Return(nil, errors.New("db error"))

		_, err := svc.Remember(ctx, Input{Name: "Globex"})
		assert.EqualError(t, err, "db error")
	})
}
