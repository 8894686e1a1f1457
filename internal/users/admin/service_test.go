// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/users/auth"
	"github.com/veridoc/veridoc/pkg/pagination"
	"github.com/veridoc/veridoc/pkg/pointer"
)

// fakeUserRepository is a minimal in-memory auth.UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context, _ pagination.Params) ([]auth.User, int, error) {
	all := make([]auth.User, 0, len(f.users))
	for _, user := range f.users {
		all = append(all, *user)
	}
	return all, len(all), nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(f.users, id)
	return nil
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, string) {}

func newTestService() (*Service, *fakeUserRepository) {
	repo := newFakeUserRepository()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(repo, noopRecorder{}, logger), repo
}

func seedUser(repo *fakeUserRepository, id, username string, superuser bool) *auth.User {
	user := &auth.User{
		ID:          id,
		Username:    username,
		Email:       username + "@example.com",
		IsActive:    true,
		IsSuperuser: superuser,
	}
	repo.users[id] = user
	return user
}

func adminActor(id string) *sec.Identity {
	return &sec.Identity{UserID: id, Username: "root", IsSuperuser: true}
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only the provided fields", func(t *testing.T) {
		service, repo := newTestService()
		seedUser(repo, "u-1", "alice", false)

		updated, err := service.UpdateUser(ctx, adminActor("u-admin"), "u-1", UpdateUserInput{
			IsSuperuser: pointer.To(true),
		})
		require.NoError(t, err)

		assert.True(t, updated.IsSuperuser)
		assert.Equal(t, "alice@example.com", updated.Email, "unset fields stay untouched")
		assert.True(t, updated.IsActive)
	})

	t.Run("rehashes a changed password", func(t *testing.T) {
		service, repo := newTestService()
		seedUser(repo, "u-1", "alice", false)

		updated, err := service.UpdateUser(ctx, adminActor("u-admin"), "u-1", UpdateUserInput{
			Password: pointer.To("new-password-123"),
		})
		require.NoError(t, err)

		assert.NotEqual(t, "new-password-123", updated.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("new-password-123", updated.PasswordHash))
	})

	t.Run("unknown account yields not found", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.UpdateUser(ctx, adminActor("u-admin"), "u-missing", UpdateUserInput{})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes another account", func(t *testing.T) {
		service, repo := newTestService()
		seedUser(repo, "u-1", "alice", false)

		require.NoError(t, service.DeleteUser(ctx, adminActor("u-admin"), "u-1"))
		assert.Empty(t, repo.users)
	})

	t.Run("refuses self-deletion", func(t *testing.T) {
		service, repo := newTestService()
		seedUser(repo, "u-admin", "root", true)

		err := service.DeleteUser(ctx, adminActor("u-admin"), "u-admin")

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 400, appError.HTTPStatus)
		assert.Equal(t, "Cannot delete self", appError.Message)
		assert.Len(t, repo.users, 1, "account must survive")
	})
}
