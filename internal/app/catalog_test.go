package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/testutil"
)

func TestSubmitBook(t *testing.T) {
	author := testutil.NewUserBuilder().WithID(5).AsAuthor().Build()

	t.Run("submission starts pending and confirms to uploader", func(t *testing.T) {
		var createdBook *api.Book
		var gotAuthorIDs, gotGenreIDs []int64

		notifications := &mockNotificationRepository{}
		svc := newTestService(Repositories{
			Catalog: &mockCatalogRepository{
				getGenreFunc: func(_ context.Context, genreID int64) (*api.Genre, error) {
					return &api.Genre{GenreID: genreID, GenreName: "Fantasy"}, nil
				},
				createBookFunc: func(_ context.Context, book *api.Book, authorIDs, genreIDs []int64) (int64, error) {
					createdBook = book
					gotAuthorIDs = authorIDs
					gotGenreIDs = genreIDs
					return 7, nil
				},
			},
			Notifications: notifications,
		})

		book, err := svc.SubmitBook(testutil.TestContext(), author, api.SubmitBookRequest{
			Title:       "The Hollow Crown",
			Summary:     "A crown with nobody under it.",
			PublishDate: "2024-06-01",
			AuthorIDs:   []int64{3},
			GenreIDs:    []int64{1, 2},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(7), book.BookID)
		assert.Equal(t, constants.StatusPending, createdBook.ApprovalStatus)
		require.NotNil(t, createdBook.UploadedBy)
		assert.Equal(t, int64(5), *createdBook.UploadedBy)
		require.NotNil(t, createdBook.PublishDate)
		assert.Equal(t, []int64{3}, gotAuthorIDs)
		assert.Equal(t, []int64{1, 2}, gotGenreIDs)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, constants.NotificationBookSubmission, notifications.created[0].Type)
	})

	t.Run("defaults to the caller's own author record", func(t *testing.T) {
		own := &api.Author{AuthorID: 30, Name: "Jane Roe", UserID: &author.UserID}
		var gotAuthorIDs []int64

		svc := newTestService(Repositories{
			Catalog: &mockCatalogRepository{
				getAuthorByUserIDFunc: func(_ context.Context, userID int64) (*api.Author, error) {
					assert.Equal(t, author.UserID, userID)
					return own, nil
				},
				getGenreFunc: func(_ context.Context, genreID int64) (*api.Genre, error) {
					return &api.Genre{GenreID: genreID, GenreName: "Fantasy"}, nil
				},
				createBookFunc: func(_ context.Context, _ *api.Book, authorIDs, _ []int64) (int64, error) {
					gotAuthorIDs = authorIDs
					return 7, nil
				},
			},
		})

		_, err := svc.SubmitBook(testutil.TestContext(), author, api.SubmitBookRequest{
			Title:    "The Hollow Crown",
			GenreIDs: []int64{1},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{30}, gotAuthorIDs)
	})

	t.Run("no linked author record", func(t *testing.T) {
		svc := newTestService(Repositories{
			Catalog: &mockCatalogRepository{
				getAuthorByUserIDFunc: func(_ context.Context, _ int64) (*api.Author, error) {
					return nil, nil
				},
			},
		})

		_, err := svc.SubmitBook(testutil.TestContext(), author, api.SubmitBookRequest{
			Title:    "The Hollow Crown",
			GenreIDs: []int64{1},
		})
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown genre", func(t *testing.T) {
		svc := newTestService(Repositories{
			Catalog: &mockCatalogRepository{
				getGenreFunc: func(_ context.Context, _ int64) (*api.Genre, error) {
					return nil, nil
				},
			},
		})

		_, err := svc.SubmitBook(testutil.TestContext(), author, api.SubmitBookRequest{
			Title:     "The Hollow Crown",
			AuthorIDs: []int64{3},
			GenreIDs:  []int64{42},
		})
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	})

	t.Run("genres are required", func(t *testing.T) {
		svc := newTestService(Repositories{})
		_, err := svc.SubmitBook(testutil.TestContext(), author, api.SubmitBookRequest{Title: "The Hollow Crown"})
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	})
}

func TestGetBookVisibility(t *testing.T) {
	uploaderID := int64(5)
	pending := testutil.NewBookBuilder().WithID(7).WithUploader(uploaderID).Build()
	approved := testutil.NewBookBuilder().WithID(7).WithUploader(uploaderID).Approved(99).Build()

	tests := []struct {
		name    string
		book    *api.Book
		caller  *api.User
		wantErr bool
	}{
		{name: "anyone sees approved books", book: approved, caller: testutil.NewUserBuilder().WithID(1).Build()},
		{name: "anonymous sees approved books", book: approved, caller: nil},
		{name: "uploader sees own pending book", book: pending, caller: testutil.NewUserBuilder().WithID(uploaderID).Build()},
		{name: "admin sees pending books", book: pending, caller: testutil.NewUserBuilder().WithID(99).AsAdmin().Build()},
		{name: "others cannot see pending books", book: pending, caller: testutil.NewUserBuilder().WithID(1).Build(), wantErr: true},
		{name: "anonymous cannot see pending books", book: pending, caller: nil, wantErr: true},
		{name: "missing book", book: nil, caller: testutil.NewUserBuilder().WithID(1).Build(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(Repositories{
				Catalog: &mockCatalogRepository{
					getBookFunc: func(_ context.Context, _ int64) (*api.Book, error) {
						return tt.book, nil
					},
				},
			})

			book, err := svc.GetBook(testutil.TestContext(), tt.caller, 7)
			if tt.wantErr {
				require.Error(t, err)
				testutil.AssertAppErrorStatus(t, err, http.StatusNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), book.BookID)
		})
	}
}

func TestListMyBooksStatusFilter(t *testing.T) {
	svc := newTestService(Repositories{})

	_, err := svc.ListMyBooks(testutil.TestContext(), 1, "archived")
	require.Error(t, err)
	testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)

	for _, status := range []string{"", constants.StatusPending, constants.StatusApproved, constants.StatusRejected} {
		_, err := svc.ListMyBooks(testutil.TestContext(), 1, status)
		require.NoError(t, err)
	}
}
