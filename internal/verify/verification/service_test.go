// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package verification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/internal/verify/document"
)

// # Test Doubles

type fakeVerificationRepository struct {
	byDocument map[string]*Verification
}

func newFakeVerificationRepository() *fakeVerificationRepository {
	return &fakeVerificationRepository{byDocument: make(map[string]*Verification)}
}

func (f *fakeVerificationRepository) FindByDocumentID(_ context.Context, documentID string) (*Verification, error) {
	if verification, ok := f.byDocument[documentID]; ok {
		copied := *verification
		return &copied, nil
	}
	return nil, apperr.NotFound(MsgVerificationNotFound)
}

func (f *fakeVerificationRepository) Create(_ context.Context, verification *Verification) error {
	if _, ok := f.byDocument[verification.DocumentID]; ok {
		return apperr.Conflict("Resource already exists")
	}
	f.byDocument[verification.DocumentID] = verification
	return nil
}

func (f *fakeVerificationRepository) Update(_ context.Context, verification *Verification) error {
	if _, ok := f.byDocument[verification.DocumentID]; !ok {
		return apperr.NotFound(MsgVerificationNotFound)
	}
	copied := *verification
	f.byDocument[verification.DocumentID] = &copied
	return nil
}

type fakeDocumentDirectory struct {
	documents map[string]*document.Document
}

func (f *fakeDocumentDirectory) FindByID(_ context.Context, id string) (*document.Document, error) {
	if doc, ok := f.documents[id]; ok {
		return doc, nil
	}
	return nil, apperr.NotFound(document.MsgDocumentNotFound)
}

// spyStatusCache records operations and serves an in-memory map.
type spyStatusCache struct {
	entries     map[string]string
	hits        int
	invalidated []string
}

func newSpyStatusCache() *spyStatusCache {
	return &spyStatusCache{entries: make(map[string]string)}
}

func (s *spyStatusCache) GetStatus(_ context.Context, documentID string) (string, bool) {
	status, ok := s.entries[documentID]
	if ok {
		s.hits++
	}
	return status, ok
}

func (s *spyStatusCache) SetStatus(_ context.Context, documentID, status string) {
	s.entries[documentID] = status
}

func (s *spyStatusCache) Invalidate(_ context.Context, documentID string) {
	delete(s.entries, documentID)
	s.invalidated = append(s.invalidated, documentID)
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, string) {}

// # Fixture

const testDocumentID = "0198b000-0000-7000-8000-00000000d0c5"

var (
	owner    = &sec.Identity{UserID: "u-owner", Username: "alice"}
	stranger = &sec.Identity{UserID: "u-other", Username: "bob"}
	reviewer = &sec.Identity{UserID: "u-admin", Username: "root", IsSuperuser: true}
)

func newTestService() (*Service, *fakeVerificationRepository, *spyStatusCache) {
	repo := newFakeVerificationRepository()
	cache := newSpyStatusCache()
	directory := &fakeDocumentDirectory{documents: map[string]*document.Document{
		testDocumentID: {ID: testDocumentID, OwnerID: owner.UserID, Title: "Passport"},
	}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := NewService(repo, directory, cache, noopRecorder{}, logger)
	return service, repo, cache
}

// # Tests

func TestService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending verification", func(t *testing.T) {
		service, _, _ := newTestService()

		verification, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, verification.Status)
		assert.False(t, verification.IsDecided())
		assert.Nil(t, verification.VerifiedAt)
	})

	t.Run("second open conflicts", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)

		_, err = service.Open(ctx, reviewer, testDocumentID)

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 409, appError.HTTPStatus)
	})

	t.Run("unknown document yields not found", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Open(ctx, reviewer, "0198b000-0000-7000-8000-00000000dead")
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from cache after the first read", func(t *testing.T) {
		service, _, cache := newTestService()
		_, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)

		first, err := service.Status(ctx, owner, testDocumentID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, first)

		second, err := service.Status(ctx, owner, testDocumentID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, second)
		assert.GreaterOrEqual(t, cache.hits, 1, "second read must hit the cache")
	})

	t.Run("cache never bypasses the ownership gate", func(t *testing.T) {
		service, _, cache := newTestService()
		_, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)
		cache.entries[testDocumentID] = StatusPending

		_, err = service.Status(ctx, stranger, testDocumentID)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes a pending verification and invalidates the cache", func(t *testing.T) {
		service, repo, cache := newTestService()
		_, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)

		decided, err := service.Decide(ctx, reviewer, testDocumentID, DecideInput{
			Status:       StatusApproved,
			ResultDetail: "All checks passed",
			IsValid:      true,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusApproved, decided.Status)
		assert.True(t, decided.IsValid)
		require.NotNil(t, decided.VerifiedAt)
		assert.Contains(t, cache.invalidated, testDocumentID)

		stored := repo.byDocument[testDocumentID]
		assert.Equal(t, StatusApproved, stored.Status)
	})

	t.Run("a decided verification cannot be decided again", func(t *testing.T) {
		service, _, _ := newTestService()
		_, err := service.Open(ctx, reviewer, testDocumentID)
		require.NoError(t, err)

		_, err = service.Decide(ctx, reviewer, testDocumentID, DecideInput{Status: StatusRejected})
		require.NoError(t, err)

		_, err = service.Decide(ctx, reviewer, testDocumentID, DecideInput{Status: StatusApproved})

		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, 409, appError.HTTPStatus)
		assert.Equal(t, MsgAlreadyDecided, appError.Message)
	})

	t.Run("deciding without an open verification yields not found", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Decide(ctx, reviewer, testDocumentID, DecideInput{Status: StatusApproved})
		assert.True(t, apperr.IsNotFound(err))
	})
}
