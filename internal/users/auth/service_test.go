// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/pkg/pagination"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[string]*User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context, params pagination.Params) ([]User, int, error) {
	all := make([]User, 0, len(f.users))
	for _, user := range f.users {
		all = append(all, *user)
	}
	return all, len(all), nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	f.users[user.ID] = user
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

// noopRecorder satisfies AuditRecorder without side effects.
type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, string) {}

func newTestService(t *testing.T) (*Service, *fakeUserRepository) {
	t.Helper()
	codec, err := sec.NewTokenCodec("service-test-secret", "HS256", "veridoc.test", 30*time.Minute)
	require.NoError(t, err)
	repo := newFakeUserRepository()
	return NewService(repo, codec, noopRecorder{}), repo
}

func mustRegister(t *testing.T, service *Service, username, email, password string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active non-superuser account", func(t *testing.T) {
		service, _ := newTestService(t)
		user := mustRegister(t, service, "alice", "alice@example.com", "password123")

		assert.NotEmpty(t, user.ID)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsSuperuser)
		assert.NotEqual(t, "password123", user.PasswordHash, "plaintext must never be stored")
		assert.True(t, sec.CheckPasswordHash("password123", user.PasswordHash))
	})

	t.Run("normalizes username and email", func(t *testing.T) {
		service, _ := newTestService(t)
		user := mustRegister(t, service, "  Alice ", "Alice@Example.COM", "password123")

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("rejects a duplicate username with 409", func(t *testing.T) {
		service, _ := newTestService(t)
		mustRegister(t, service, "alice", "alice@example.com", "password123")

		_, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "other@example.com",
			Password: "password123",
		})

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 409, appError.HTTPStatus)
	})

	t.Run("rejects a duplicate email with 409", func(t *testing.T) {
		service, _ := newTestService(t)
		mustRegister(t, service, "alice", "alice@example.com", "password123")

		_, err := service.Register(ctx, RegisterInput{
			Username: "bob",
			Email:    "alice@example.com",
			Password: "password123",
		})

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 409, appError.HTTPStatus)
	})
}

// # Login

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a resolvable bearer token", func(t *testing.T) {
		service, _ := newTestService(t)
		mustRegister(t, service, "alice", "alice@example.com", "password123")

		tokens, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		assert.Equal(t, BearerTokenType, tokens.TokenType)
		assert.Equal(t, int64(30*60), tokens.ExpiresIn)

		identity, err := service.ResolveIdentity(ctx, tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		service, _ := newTestService(t)
		mustRegister(t, service, "alice", "alice@example.com", "password123")

		_, ghostErr := service.Login(ctx, LoginInput{Username: "nobody", Password: "password123"})
		_, wrongErr := service.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})

		var ghostApp, wrongApp *apperr.AppError
		require.ErrorAs(t, ghostErr, &ghostApp)
		require.ErrorAs(t, wrongErr, &wrongApp)

		assert.Equal(t, 401, ghostApp.HTTPStatus)
		assert.Equal(t, 401, wrongApp.HTTPStatus)
		assert.Equal(t, ghostApp.Message, wrongApp.Message, "error messages must not reveal which check failed")
		assert.Equal(t, MsgBadCredentials, ghostApp.Message)
	})
}

// # Identity Resolution

func TestService_ResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a malformed token with 401", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ResolveIdentity(ctx, "not-a-token")

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 401, appError.HTTPStatus)
		assert.Equal(t, MsgInvalidToken, appError.Message)
	})

	t.Run("a valid token for a deleted account resolves to 404", func(t *testing.T) {
		codec, err := sec.NewTokenCodec("service-test-secret", "HS256", "veridoc.test", 30*time.Minute)
		require.NoError(t, err)
		repo := newFakeUserRepository()
		service := NewService(repo, codec, noopRecorder{})

		user := mustRegister(t, service, "alice", "alice@example.com", "password123")

		tokens, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, user.ID))

		// The token stays cryptographically valid; only the account row is gone.
		subject, ok := codec.Decode(tokens.AccessToken)
		assert.True(t, ok)
		assert.Equal(t, "alice", subject)

		_, err = service.ResolveIdentity(ctx, tokens.AccessToken)

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	})

	t.Run("identity reflects current account state", func(t *testing.T) {
		service, repo := newTestService(t)
		user := mustRegister(t, service, "alice", "alice@example.com", "password123")

		tokens, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		// Promote after the token was issued; the identity must pick it up.
		user.IsSuperuser = true
		require.NoError(t, repo.Update(ctx, user))

		identity, err := service.ResolveIdentity(ctx, tokens.AccessToken)
		require.NoError(t, err)
		assert.True(t, identity.IsSuperuser)
	})
}

// # Bootstrap

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the superuser once and is idempotent", func(t *testing.T) {
		service, repo := newTestService(t)

		require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123"))
		require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123"))

		assert.Len(t, repo.users, 1)

		admin, err := repo.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, admin.IsSuperuser)
		assert.True(t, sec.CheckPasswordHash("admin123", admin.PasswordHash))
	})
}
