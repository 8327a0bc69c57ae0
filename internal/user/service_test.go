package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
)

type fakeRepository struct {
	users  map[string]*User
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*User)}
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *fakeRepository) List(_ context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	// Low cost keeps the tests fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers with the default role", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Traveler@Example.COM ", "s3cret-pass", "Trail Traveler")
		require.NoError(t, err)
		assert.Equal(t, "traveler@example.com", u.Email)
		assert.Equal(t, RoleUser, u.Role)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "dup@example.com", "s3cret-pass", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "DUP@example.com", "s3cret-pass", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "   ", "s3cret-pass", "")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, "a@b.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	registered, err := svc.Register(ctx, "login@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "login@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)

		// Login records the time as a side effect.
		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "login@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated user", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, registered.ID))

		_, err := svc.Login(ctx, "login@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestServiceSetRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "role@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	t.Run("promote to guide", func(t *testing.T) {
		got, err := svc.SetRole(ctx, u.ID, RoleGuide)
		require.NoError(t, err)
		assert.Equal(t, RoleGuide, got.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.SetRole(ctx, u.ID, "superuser")
		assert.Error(t, err)
	})
}

func TestServiceDeactivate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "leaving@example.com", "s3cret-pass", "")
	require.NoError(t, err)

	t.Run("flags the account inactive", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, u.ID))

		got, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, svc.Deactivate(ctx, "missing"), ErrNotFound)
	})
}
