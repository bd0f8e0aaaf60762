package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
	"github.com/bookarc/bookarc/internal/testutil"
)

// newTestService builds a Service from the given repositories, substituting
// fresh no-op mocks for any left nil.
func newTestService(repos Repositories) *Service {
	if repos.Users == nil {
		repos.Users = &mockUserRepository{}
	}
	if repos.Catalog == nil {
		repos.Catalog = &mockCatalogRepository{}
	}
	if repos.Ratings == nil {
		repos.Ratings = &mockRatingRepository{}
	}
	if repos.Reviews == nil {
		repos.Reviews = &mockReviewRepository{}
	}
	if repos.Lists == nil {
		repos.Lists = &mockListRepository{}
	}
	if repos.Social == nil {
		repos.Social = &mockSocialRepository{}
	}
	if repos.Notifications == nil {
		repos.Notifications = &mockNotificationRepository{}
	}
	if repos.Recommendations == nil {
		repos.Recommendations = &mockRecommendationRepository{}
	}
	if repos.Verification == nil {
		repos.Verification = &mockVerificationRepository{}
	}
	if repos.Audit == nil {
		repos.Audit = &mockAuditRepository{}
	}
	return NewService(repos, nil, nil, testutil.SilentLogger())
}

// mockUserRepository implements database.UserRepository for testing
type mockUserRepository struct {
	createUserFunc             func(ctx context.Context, user *api.User) (int64, error)
	getUserBySubFunc           func(ctx context.Context, sub string) (*api.User, error)
	getUserByUsernameFunc      func(ctx context.Context, username string) (*api.User, error)
	getUserByIDFunc            func(ctx context.Context, userID int64) (*api.User, error)
	updateProfileFunc          func(ctx context.Context, userID int64, displayName, bio *string, isPublic *bool) (*api.User, error)
	updateProfilePictureFunc   func(ctx context.Context, userID int64, url string) error
	deleteUserFunc             func(ctx context.Context, userID int64) error
	searchUsersFunc            func(ctx context.Context, query string, limit, offset int) ([]api.User, int, error)
	listUsersFunc              func(ctx context.Context, role string, activeOnly *bool, limit, offset int) ([]api.User, int, error)
	setActiveFunc              func(ctx context.Context, userID int64, active bool) error
	setRoleAndVerificationFunc func(ctx context.Context, userID int64, role, verificationStatus string) error
	getUserStatsFunc           func(ctx context.Context, userID int64) (*api.UserStats, error)
	getAdminStatsFunc          func(ctx context.Context) (*api.AdminStats, error)
}

var _ database.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) CreateUser(ctx context.Context, user *api.User) (int64, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, user)
	}
	return 1, nil
}

func (m *mockUserRepository) GetUserBySub(ctx context.Context, sub string) (*api.User, error) {
	if m.getUserBySubFunc != nil {
		return m.getUserBySubFunc(ctx, sub)
	}
	return nil, nil
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	if m.getUserByUsernameFunc != nil {
		return m.getUserByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (*api.User, error) {
	if m.getUserByIDFunc != nil {
		return m.getUserByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateProfile(
	ctx context.Context, userID int64, displayName, bio *string, isPublic *bool,
) (*api.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, displayName, bio, isPublic)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateProfilePicture(ctx context.Context, userID int64, url string) error {
	if m.updateProfilePictureFunc != nil {
		return m.updateProfilePictureFunc(ctx, userID, url)
	}
	return nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) SearchUsers(ctx context.Context, query string, limit, offset int) ([]api.User, int, error) {
	if m.searchUsersFunc != nil {
		return m.searchUsersFunc(ctx, query, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListUsers(
	ctx context.Context, role string, activeOnly *bool, limit, offset int,
) ([]api.User, int, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, role, activeOnly, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, userID, active)
	}
	return nil
}

func (m *mockUserRepository) SetRoleAndVerification(ctx context.Context, userID int64, role, verificationStatus string) error {
	if m.setRoleAndVerificationFunc != nil {
		return m.setRoleAndVerificationFunc(ctx, userID, role, verificationStatus)
	}
	return nil
}

func (m *mockUserRepository) GetUserStats(ctx context.Context, userID int64) (*api.UserStats, error) {
	if m.getUserStatsFunc != nil {
		return m.getUserStatsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetAdminStats(ctx context.Context) (*api.AdminStats, error) {
	if m.getAdminStatsFunc != nil {
		return m.getAdminStatsFunc(ctx)
	}
	return &api.AdminStats{}, nil
}

// mockCatalogRepository implements database.CatalogRepository for testing
type mockCatalogRepository struct {
	listBooksFunc           func(ctx context.Context, filter database.BookFilter) ([]api.Book, int, error)
	getBookFunc             func(ctx context.Context, bookID int64) (*api.Book, error)
	createBookFunc          func(ctx context.Context, book *api.Book, authorIDs, genreIDs []int64) (int64, error)
	setApprovalFunc         func(ctx context.Context, bookID int64, status string, approvedBy int64, reason *string) error
	listBooksByUploaderFunc func(ctx context.Context, uploaderID int64, status string) ([]api.Book, error)
	authorBookStatsFunc     func(ctx context.Context, uploaderID int64) ([]api.BookRatingStats, error)
	getAuthorFunc           func(ctx context.Context, authorID int64) (*api.Author, error)
	getAuthorByUserIDFunc   func(ctx context.Context, userID int64) (*api.Author, error)
	createAuthorFunc        func(ctx context.Context, author *api.Author) (int64, error)
	searchAuthorsFunc       func(ctx context.Context, query string, limit, offset int) ([]api.Author, int, error)
	listGenresFunc          func(ctx context.Context) ([]api.Genre, error)
	seedGenresFunc          func(ctx context.Context, names []string) (int, error)
	getGenreFunc            func(ctx context.Context, genreID int64) (*api.Genre, error)
	addFavoriteGenreFunc    func(ctx context.Context, userID, genreID int64) error
	removeFavoriteGenreFunc func(ctx context.Context, userID, genreID int64) error
	listFavoriteGenresFunc  func(ctx context.Context, userID int64) ([]api.Genre, error)
}

var _ database.CatalogRepository = (*mockCatalogRepository)(nil)

func (m *mockCatalogRepository) ListBooks(ctx context.Context, filter database.BookFilter) ([]api.Book, int, error) {
	if m.listBooksFunc != nil {
		return m.listBooksFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockCatalogRepository) GetBook(ctx context.Context, bookID int64) (*api.Book, error) {
	if m.getBookFunc != nil {
		return m.getBookFunc(ctx, bookID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) CreateBook(
	ctx context.Context, book *api.Book, authorIDs, genreIDs []int64,
) (int64, error) {
	if m.createBookFunc != nil {
		return m.createBookFunc(ctx, book, authorIDs, genreIDs)
	}
	return 1, nil
}

func (m *mockCatalogRepository) SetApproval(
	ctx context.Context, bookID int64, status string, approvedBy int64, reason *string,
) error {
	if m.setApprovalFunc != nil {
		return m.setApprovalFunc(ctx, bookID, status, approvedBy, reason)
	}
	return nil
}

func (m *mockCatalogRepository) ListBooksByUploader(ctx context.Context, uploaderID int64, status string) ([]api.Book, error) {
	if m.listBooksByUploaderFunc != nil {
		return m.listBooksByUploaderFunc(ctx, uploaderID, status)
	}
	return nil, nil
}

func (m *mockCatalogRepository) AuthorBookStats(ctx context.Context, uploaderID int64) ([]api.BookRatingStats, error) {
	if m.authorBookStatsFunc != nil {
		return m.authorBookStatsFunc(ctx, uploaderID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetAuthor(ctx context.Context, authorID int64) (*api.Author, error) {
	if m.getAuthorFunc != nil {
		return m.getAuthorFunc(ctx, authorID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetAuthorByUserID(ctx context.Context, userID int64) (*api.Author, error) {
	if m.getAuthorByUserIDFunc != nil {
		return m.getAuthorByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) CreateAuthor(ctx context.Context, author *api.Author) (int64, error) {
	if m.createAuthorFunc != nil {
		return m.createAuthorFunc(ctx, author)
	}
	return 1, nil
}

func (m *mockCatalogRepository) SearchAuthors(
	ctx context.Context, query string, limit, offset int,
) ([]api.Author, int, error) {
	if m.searchAuthorsFunc != nil {
		return m.searchAuthorsFunc(ctx, query, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockCatalogRepository) ListGenres(ctx context.Context) ([]api.Genre, error) {
	if m.listGenresFunc != nil {
		return m.listGenresFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepository) SeedGenres(ctx context.Context, names []string) (int, error) {
	if m.seedGenresFunc != nil {
		return m.seedGenresFunc(ctx, names)
	}
	return 0, nil
}

func (m *mockCatalogRepository) GetGenre(ctx context.Context, genreID int64) (*api.Genre, error) {
	if m.getGenreFunc != nil {
		return m.getGenreFunc(ctx, genreID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) AddFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	if m.addFavoriteGenreFunc != nil {
		return m.addFavoriteGenreFunc(ctx, userID, genreID)
	}
	return nil
}

func (m *mockCatalogRepository) RemoveFavoriteGenre(ctx context.Context, userID, genreID int64) error {
	if m.removeFavoriteGenreFunc != nil {
		return m.removeFavoriteGenreFunc(ctx, userID, genreID)
	}
	return nil
}

func (m *mockCatalogRepository) ListFavoriteGenres(ctx context.Context, userID int64) ([]api.Genre, error) {
	if m.listFavoriteGenresFunc != nil {
		return m.listFavoriteGenresFunc(ctx, userID)
	}
	return nil, nil
}

// mockRatingRepository implements database.RatingRepository for testing
type mockRatingRepository struct {
	upsertBookRatingFunc   func(ctx context.Context, userID, bookID int64, rating int) (float64, error)
	getBookRatingFunc      func(ctx context.Context, userID, bookID int64) (*api.Rating, error)
	deleteBookRatingFunc   func(ctx context.Context, userID, bookID int64) (float64, error)
	upsertAuthorRatingFunc func(ctx context.Context, userID, authorID int64, rating int) (float64, error)
	getAuthorRatingFunc    func(ctx context.Context, userID, authorID int64) (*api.Rating, error)
	deleteAuthorRatingFunc func(ctx context.Context, userID, authorID int64) (float64, error)
}

var _ database.RatingRepository = (*mockRatingRepository)(nil)

func (m *mockRatingRepository) UpsertBookRating(ctx context.Context, userID, bookID int64, rating int) (float64, error) {
	if m.upsertBookRatingFunc != nil {
		return m.upsertBookRatingFunc(ctx, userID, bookID, rating)
	}
	return float64(rating), nil
}

func (m *mockRatingRepository) GetBookRating(ctx context.Context, userID, bookID int64) (*api.Rating, error) {
	if m.getBookRatingFunc != nil {
		return m.getBookRatingFunc(ctx, userID, bookID)
	}
	return nil, nil
}

func (m *mockRatingRepository) DeleteBookRating(ctx context.Context, userID, bookID int64) (float64, error) {
	if m.deleteBookRatingFunc != nil {
		return m.deleteBookRatingFunc(ctx, userID, bookID)
	}
	return 0, nil
}

func (m *mockRatingRepository) UpsertAuthorRating(ctx context.Context, userID, authorID int64, rating int) (float64, error) {
	if m.upsertAuthorRatingFunc != nil {
		return m.upsertAuthorRatingFunc(ctx, userID, authorID, rating)
	}
	return float64(rating), nil
}

func (m *mockRatingRepository) GetAuthorRating(ctx context.Context, userID, authorID int64) (*api.Rating, error) {
	if m.getAuthorRatingFunc != nil {
		return m.getAuthorRatingFunc(ctx, userID, authorID)
	}
	return nil, nil
}

func (m *mockRatingRepository) DeleteAuthorRating(ctx context.Context, userID, authorID int64) (float64, error) {
	if m.deleteAuthorRatingFunc != nil {
		return m.deleteAuthorRatingFunc(ctx, userID, authorID)
	}
	return 0, nil
}

// mockReviewRepository implements database.ReviewRepository for testing
type mockReviewRepository struct {
	createBookReviewFunc   func(ctx context.Context, userID, bookID int64, text string) (*api.Review, error)
	listBookReviewsFunc    func(ctx context.Context, bookID int64, limit, offset int) ([]api.Review, int, error)
	deleteBookReviewFunc   func(ctx context.Context, userID, reviewID int64) error
	createAuthorReviewFunc func(ctx context.Context, userID, authorID int64, text string) (*api.Review, error)
	listAuthorReviewsFunc  func(ctx context.Context, authorID int64, limit, offset int) ([]api.Review, int, error)
	deleteAuthorReviewFunc func(ctx context.Context, userID, reviewID int64) error
}

var _ database.ReviewRepository = (*mockReviewRepository)(nil)

func (m *mockReviewRepository) CreateBookReview(ctx context.Context, userID, bookID int64, text string) (*api.Review, error) {
	if m.createBookReviewFunc != nil {
		return m.createBookReviewFunc(ctx, userID, bookID, text)
	}
	return &api.Review{ReviewID: 1, UserID: userID, BookID: bookID, ReviewText: text}, nil
}

func (m *mockReviewRepository) ListBookReviews(
	ctx context.Context, bookID int64, limit, offset int,
) ([]api.Review, int, error) {
	if m.listBookReviewsFunc != nil {
		return m.listBookReviewsFunc(ctx, bookID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockReviewRepository) DeleteBookReview(ctx context.Context, userID, reviewID int64) error {
	if m.deleteBookReviewFunc != nil {
		return m.deleteBookReviewFunc(ctx, userID, reviewID)
	}
	return nil
}

func (m *mockReviewRepository) CreateAuthorReview(
	ctx context.Context, userID, authorID int64, text string,
) (*api.Review, error) {
	if m.createAuthorReviewFunc != nil {
		return m.createAuthorReviewFunc(ctx, userID, authorID, text)
	}
	return &api.Review{ReviewID: 1, UserID: userID, AuthorID: authorID, ReviewText: text}, nil
}

func (m *mockReviewRepository) ListAuthorReviews(
	ctx context.Context, authorID int64, limit, offset int,
) ([]api.Review, int, error) {
	if m.listAuthorReviewsFunc != nil {
		return m.listAuthorReviewsFunc(ctx, authorID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockReviewRepository) DeleteAuthorReview(ctx context.Context, userID, reviewID int64) error {
	if m.deleteAuthorReviewFunc != nil {
		return m.deleteAuthorReviewFunc(ctx, userID, reviewID)
	}
	return nil
}

// mockListRepository implements database.ListRepository for testing
type mockListRepository struct {
	createDefaultListsFunc    func(ctx context.Context, userID int64) error
	createCustomListFunc      func(ctx context.Context, userID int64, title, visibility string) (*api.List, error)
	getListFunc               func(ctx context.Context, listID int64) (*api.List, error)
	listUserListsFunc         func(ctx context.Context, userID int64) ([]api.List, error)
	listPublicListsFunc       func(ctx context.Context, userID int64) ([]api.List, error)
	updateListFunc            func(ctx context.Context, listID int64, title, visibility *string) (*api.List, error)
	deleteListFunc            func(ctx context.Context, listID int64) error
	addBookToListFunc         func(ctx context.Context, listID, bookID int64) error
	removeBookFromListFunc    func(ctx context.Context, listID, bookID int64) error
	listBooksInListFunc       func(ctx context.Context, listID int64) ([]api.ListBookEntry, error)
	listMembershipForBookFunc func(ctx context.Context, userID, bookID int64) ([]api.ListMembership, error)
}

var _ database.ListRepository = (*mockListRepository)(nil)

func (m *mockListRepository) CreateDefaultLists(ctx context.Context, userID int64) error {
	if m.createDefaultListsFunc != nil {
		return m.createDefaultListsFunc(ctx, userID)
	}
	return nil
}

func (m *mockListRepository) CreateCustomList(
	ctx context.Context, userID int64, title, visibility string,
) (*api.List, error) {
	if m.createCustomListFunc != nil {
		return m.createCustomListFunc(ctx, userID, title, visibility)
	}
	return &api.List{ListID: 1, UserID: userID, Name: "Custom", Title: title, Visibility: visibility}, nil
}

func (m *mockListRepository) GetList(ctx context.Context, listID int64) (*api.List, error) {
	if m.getListFunc != nil {
		return m.getListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *mockListRepository) ListUserLists(ctx context.Context, userID int64) ([]api.List, error) {
	if m.listUserListsFunc != nil {
		return m.listUserListsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockListRepository) ListPublicLists(ctx context.Context, userID int64) ([]api.List, error) {
	if m.listPublicListsFunc != nil {
		return m.listPublicListsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockListRepository) UpdateList(ctx context.Context, listID int64, title, visibility *string) (*api.List, error) {
	if m.updateListFunc != nil {
		return m.updateListFunc(ctx, listID, title, visibility)
	}
	return nil, nil
}

func (m *mockListRepository) DeleteList(ctx context.Context, listID int64) error {
	if m.deleteListFunc != nil {
		return m.deleteListFunc(ctx, listID)
	}
	return nil
}

func (m *mockListRepository) AddBookToList(ctx context.Context, listID, bookID int64) error {
	if m.addBookToListFunc != nil {
		return m.addBookToListFunc(ctx, listID, bookID)
	}
	return nil
}

func (m *mockListRepository) RemoveBookFromList(ctx context.Context, listID, bookID int64) error {
	if m.removeBookFromListFunc != nil {
		return m.removeBookFromListFunc(ctx, listID, bookID)
	}
	return nil
}

func (m *mockListRepository) ListBooksInList(ctx context.Context, listID int64) ([]api.ListBookEntry, error) {
	if m.listBooksInListFunc != nil {
		return m.listBooksInListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *mockListRepository) ListMembershipForBook(ctx context.Context, userID, bookID int64) ([]api.ListMembership, error) {
	if m.listMembershipForBookFunc != nil {
		return m.listMembershipForBookFunc(ctx, userID, bookID)
	}
	return nil, nil
}

// mockSocialRepository implements database.SocialRepository for testing
type mockSocialRepository struct {
	followUserFunc        func(ctx context.Context, followerID, followingID int64) error
	unfollowUserFunc      func(ctx context.Context, followerID, followingID int64) (bool, error)
	isFollowingUserFunc   func(ctx context.Context, followerID, followingID int64) (bool, error)
	followAuthorFunc      func(ctx context.Context, userID, authorID int64) error
	unfollowAuthorFunc    func(ctx context.Context, userID, authorID int64) (bool, error)
	isFollowingAuthorFunc func(ctx context.Context, userID, authorID int64) (bool, error)
	listFollowersFunc     func(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error)
	listFollowingFunc     func(ctx context.Context, userID int64, limit, offset int) ([]api.User, int, error)
}

var _ database.SocialRepository = (*mockSocialRepository)(nil)

func (m *mockSocialRepository) FollowUser(ctx context.Context, followerID, followingID int64) error {
	if m.followUserFunc != nil {
		return m.followUserFunc(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockSocialRepository) UnfollowUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.unfollowUserFunc != nil {
		return m.unfollowUserFunc(ctx, followerID, followingID)
	}
	return true, nil
}

func (m *mockSocialRepository) IsFollowingUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.isFollowingUserFunc != nil {
		return m.isFollowingUserFunc(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockSocialRepository) FollowAuthor(ctx context.Context, userID, authorID int64) error {
	if m.followAuthorFunc != nil {
		return m.followAuthorFunc(ctx, userID, authorID)
	}
	return nil
}

func (m *mockSocialRepository) UnfollowAuthor(ctx context.Context, userID, authorID int64) (bool, error) {
	if m.unfollowAuthorFunc != nil {
		return m.unfollowAuthorFunc(ctx, userID, authorID)
	}
	return true, nil
}

func (m *mockSocialRepository) IsFollowingAuthor(ctx context.Context, userID, authorID int64) (bool, error) {
	if m.isFollowingAuthorFunc != nil {
		return m.isFollowingAuthorFunc(ctx, userID, authorID)
	}
	return false, nil
}

func (m *mockSocialRepository) ListFollowers(
	ctx context.Context, userID int64, limit, offset int,
) ([]api.User, int, error) {
	if m.listFollowersFunc != nil {
		return m.listFollowersFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockSocialRepository) ListFollowing(
	ctx context.Context, userID int64, limit, offset int,
) ([]api.User, int, error) {
	if m.listFollowingFunc != nil {
		return m.listFollowingFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

// mockNotificationRepository implements database.NotificationRepository for
// testing. created collects every notification inserted through it.
type mockNotificationRepository struct {
	created []api.Notification

	createNotificationFunc func(ctx context.Context, n *api.Notification) (int64, error)
	createForFollowersFunc func(ctx context.Context, authorUserID int64, message, notificationType, audienceType string) (int, error)
	listNotificationsFunc  func(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]api.Notification, int, int, error)
	markReadFunc           func(ctx context.Context, userID, notificationID int64) error
	markAllReadFunc        func(ctx context.Context, userID int64) (int64, error)
	deleteNotificationFunc func(ctx context.Context, userID, notificationID int64) error
	getPreferencesFunc     func(ctx context.Context, userID int64) (*api.NotificationPreferences, error)
	upsertPreferencesFunc  func(ctx context.Context, userID int64, inApp, follow, rating, approval *bool) (*api.NotificationPreferences, error)
}

var _ database.NotificationRepository = (*mockNotificationRepository)(nil)

func (m *mockNotificationRepository) CreateNotification(ctx context.Context, n *api.Notification) (int64, error) {
	if m.createNotificationFunc != nil {
		return m.createNotificationFunc(ctx, n)
	}
	m.created = append(m.created, *n)
	return int64(len(m.created)), nil
}

func (m *mockNotificationRepository) CreateForFollowers(
	ctx context.Context, authorUserID int64, message, notificationType, audienceType string,
) (int, error) {
	if m.createForFollowersFunc != nil {
		return m.createForFollowersFunc(ctx, authorUserID, message, notificationType, audienceType)
	}
	return 0, nil
}

func (m *mockNotificationRepository) ListNotifications(
	ctx context.Context, userID int64, unreadOnly bool, limit, offset int,
) ([]api.Notification, int, int, error) {
	if m.listNotificationsFunc != nil {
		return m.listNotificationsFunc(ctx, userID, unreadOnly, limit, offset)
	}
	return nil, 0, 0, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if m.markAllReadFunc != nil {
		return m.markAllReadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	if m.deleteNotificationFunc != nil {
		return m.deleteNotificationFunc(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepository) GetPreferences(ctx context.Context, userID int64) (*api.NotificationPreferences, error) {
	if m.getPreferencesFunc != nil {
		return m.getPreferencesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationRepository) UpsertPreferences(
	ctx context.Context, userID int64, inApp, follow, rating, approval *bool,
) (*api.NotificationPreferences, error) {
	if m.upsertPreferencesFunc != nil {
		return m.upsertPreferencesFunc(ctx, userID, inApp, follow, rating, approval)
	}
	return &api.NotificationPreferences{UserID: userID}, nil
}

// mockRecommendationRepository implements database.RecommendationRepository
// for testing
type mockRecommendationRepository struct {
	excludedBookIDsFunc    func(ctx context.Context, userID int64) ([]int64, error)
	candidatesByGenresFunc func(ctx context.Context, genreIDs, exclude []int64, limit int) ([]api.Recommendation, error)
	candidatesByRatingFunc func(ctx context.Context, exclude []int64, minRating float64, limit int) ([]api.Recommendation, error)
	topRatedFunc           func(ctx context.Context, limit int) ([]api.Recommendation, error)
	recordInteractionFunc  func(ctx context.Context, event *api.InteractionEvent) error
}

var _ database.RecommendationRepository = (*mockRecommendationRepository)(nil)

func (m *mockRecommendationRepository) ExcludedBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.excludedBookIDsFunc != nil {
		return m.excludedBookIDsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecommendationRepository) CandidatesByGenres(
	ctx context.Context, genreIDs, exclude []int64, limit int,
) ([]api.Recommendation, error) {
	if m.candidatesByGenresFunc != nil {
		return m.candidatesByGenresFunc(ctx, genreIDs, exclude, limit)
	}
	return nil, nil
}

func (m *mockRecommendationRepository) CandidatesByRating(
	ctx context.Context, exclude []int64, minRating float64, limit int,
) ([]api.Recommendation, error) {
	if m.candidatesByRatingFunc != nil {
		return m.candidatesByRatingFunc(ctx, exclude, minRating, limit)
	}
	return nil, nil
}

func (m *mockRecommendationRepository) TopRated(ctx context.Context, limit int) ([]api.Recommendation, error) {
	if m.topRatedFunc != nil {
		return m.topRatedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockRecommendationRepository) RecordInteraction(ctx context.Context, event *api.InteractionEvent) error {
	if m.recordInteractionFunc != nil {
		return m.recordInteractionFunc(ctx, event)
	}
	return nil
}

// mockVerificationRepository implements database.VerificationRepository for
// testing
type mockVerificationRepository struct {
	createRequestFunc          func(ctx context.Context, req *api.VerificationRequest) (int64, error)
	getRequestFunc             func(ctx context.Context, requestID int64) (*api.VerificationRequest, error)
	getOpenRequestByUserFunc   func(ctx context.Context, userID int64) (*api.VerificationRequest, error)
	getLatestRequestByUserFunc func(ctx context.Context, userID int64) (*api.VerificationRequest, error)
	listPendingFunc            func(ctx context.Context, limit, offset int) ([]api.VerificationRequest, int, error)
	setStatusFunc              func(ctx context.Context, requestID int64, status string, reviewedBy int64, reason *string) error
}

var _ database.VerificationRepository = (*mockVerificationRepository)(nil)

func (m *mockVerificationRepository) CreateRequest(ctx context.Context, req *api.VerificationRequest) (int64, error) {
	if m.createRequestFunc != nil {
		return m.createRequestFunc(ctx, req)
	}
	return 1, nil
}

func (m *mockVerificationRepository) GetRequest(ctx context.Context, requestID int64) (*api.VerificationRequest, error) {
	if m.getRequestFunc != nil {
		return m.getRequestFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockVerificationRepository) GetOpenRequestByUser(ctx context.Context, userID int64) (*api.VerificationRequest, error) {
	if m.getOpenRequestByUserFunc != nil {
		return m.getOpenRequestByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockVerificationRepository) GetLatestRequestByUser(
	ctx context.Context, userID int64,
) (*api.VerificationRequest, error) {
	if m.getLatestRequestByUserFunc != nil {
		return m.getLatestRequestByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockVerificationRepository) ListPending(
	ctx context.Context, limit, offset int,
) ([]api.VerificationRequest, int, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockVerificationRepository) SetStatus(
	ctx context.Context, requestID int64, status string, reviewedBy int64, reason *string,
) error {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, requestID, status, reviewedBy, reason)
	}
	return nil
}

// mockAuditRepository implements database.AuditRepository for testing.
// recorded collects every action written through it.
type mockAuditRepository struct {
	recorded []api.AuditLog

	recordActionFunc func(ctx context.Context, entry *api.AuditLog) error
	listActionsFunc  func(ctx context.Context, limit, offset int) ([]api.AuditLog, int, error)
}

var _ database.AuditRepository = (*mockAuditRepository)(nil)

func (m *mockAuditRepository) RecordAction(ctx context.Context, entry *api.AuditLog) error {
	if m.recordActionFunc != nil {
		return m.recordActionFunc(ctx, entry)
	}
	m.recorded = append(m.recorded, *entry)
	return nil
}

func (m *mockAuditRepository) ListActions(ctx context.Context, limit, offset int) ([]api.AuditLog, int, error) {
	if m.listActionsFunc != nil {
		return m.listActionsFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}
