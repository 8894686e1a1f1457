// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

package document

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/veridoc/internal/platform/apperr"
	"github.com/veridoc/veridoc/internal/platform/sec"
	"github.com/veridoc/veridoc/pkg/pagination"
	"github.com/veridoc/veridoc/pkg/pointer"
)

// fakeDocumentRepository is an in-memory DocumentRepository.
type fakeDocumentRepository struct {
	documents map[string]*Document
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{documents: make(map[string]*Document)}
}

func (f *fakeDocumentRepository) FindByID(_ context.Context, id string) (*Document, error) {
	if doc, ok := f.documents[id]; ok {
		copied := *doc
		return &copied, nil
	}
	return nil, apperr.NotFound(MsgDocumentNotFound)
}

func (f *fakeDocumentRepository) ListByOwner(_ context.Context, ownerID string, _ pagination.Params) ([]Document, int, error) {
	owned := make([]Document, 0)
	for _, doc := range f.documents {
		if doc.OwnerID == ownerID {
			owned = append(owned, *doc)
		}
	}
	return owned, len(owned), nil
}

func (f *fakeDocumentRepository) Create(_ context.Context, doc *Document) error {
	f.documents[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepository) Update(_ context.Context, doc *Document) error {
	if _, ok := f.documents[doc.ID]; !ok {
		return apperr.NotFound(MsgDocumentNotFound)
	}
	copied := *doc
	f.documents[doc.ID] = &copied
	return nil
}

func (f *fakeDocumentRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.documents[id]; !ok {
		return apperr.NotFound(MsgDocumentNotFound)
	}
	delete(f.documents, id)
	return nil
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, string, string, string) {}

func newTestService() (*Service, *fakeDocumentRepository) {
	repo := newFakeDocumentRepository()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(repo, noopRecorder{}, logger), repo
}

var (
	owner    = &sec.Identity{UserID: "u-owner", Username: "alice"}
	stranger = &sec.Identity{UserID: "u-other", Username: "bob"}
	admin    = &sec.Identity{UserID: "u-admin", Username: "root", IsSuperuser: true}
)

func createDoc(t *testing.T, service *Service) *Document {
	t.Helper()
	doc, err := service.Create(context.Background(), owner, CreateInput{
		Title:    "Passport",
		FilePath: "/uploads/passport.pdf",
	})
	require.NoError(t, err)
	return doc
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees their document", func(t *testing.T) {
		service, _ := newTestService()
		doc := createDoc(t, service)

		found, err := service.Get(ctx, owner, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Passport", found.Title)
	})

	t.Run("superuser sees any document", func(t *testing.T) {
		service, _ := newTestService()
		doc := createDoc(t, service)

		_, err := service.Get(ctx, admin, doc.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger gets the same 404 as a missing document", func(t *testing.T) {
		service, _ := newTestService()
		doc := createDoc(t, service)

		_, foreignErr := service.Get(ctx, stranger, doc.ID)
		_, missingErr := service.Get(ctx, stranger, "0198b000-0000-7000-8000-000000000000")

		var foreignApp, missingApp *apperr.AppError
		require.ErrorAs(t, foreignErr, &foreignApp)
		require.ErrorAs(t, missingErr, &missingApp)

		assert.Equal(t, 404, foreignApp.HTTPStatus)
		assert.Equal(t, missingApp.Message, foreignApp.Message, "existing and missing documents must be indistinguishable")
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	t.Run("user lists only their own documents", func(t *testing.T) {
		service, _ := newTestService()
		createDoc(t, service)

		docs, meta, err := service.List(ctx, owner, "", params)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
		assert.Equal(t, 1, meta.Total)

		strangerDocs, _, err := service.List(ctx, stranger, "", params)
		require.NoError(t, err)
		assert.Empty(t, strangerDocs)
	})

	t.Run("owner override is honored for superusers only", func(t *testing.T) {
		service, _ := newTestService()
		createDoc(t, service)

		adminView, _, err := service.List(ctx, admin, owner.UserID, params)
		require.NoError(t, err)
		assert.Len(t, adminView, 1)

		// A regular user asking for someone else's registry still sees their own.
		strangerView, _, err := service.List(ctx, stranger, owner.UserID, params)
		require.NoError(t, err)
		assert.Empty(t, strangerView)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only the provided fields", func(t *testing.T) {
		service, _ := newTestService()
		doc := createDoc(t, service)

		updated, err := service.Update(ctx, owner, doc.ID, UpdateInput{
			Title: pointer.To("Passport (renewed)"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Passport (renewed)", updated.Title)
		assert.Equal(t, "/uploads/passport.pdf", updated.FilePath)
	})

	t.Run("stranger cannot update and learns nothing", func(t *testing.T) {
		service, repo := newTestService()
		doc := createDoc(t, service)

		_, err := service.Update(ctx, stranger, doc.ID, UpdateInput{Title: pointer.To("hijacked")})
		assert.True(t, apperr.IsNotFound(err))
		assert.Equal(t, "Passport", repo.documents[doc.ID].Title)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes their document", func(t *testing.T) {
		service, repo := newTestService()
		doc := createDoc(t, service)

		require.NoError(t, service.Delete(ctx, owner, doc.ID))
		assert.Empty(t, repo.documents)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		service, repo := newTestService()
		doc := createDoc(t, service)

		err := service.Delete(ctx, stranger, doc.ID)
		assert.True(t, apperr.IsNotFound(err))
		assert.Len(t, repo.documents, 1)
	})
}
