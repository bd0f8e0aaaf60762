package api

// MessageResponse is a generic success acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// BooksResponse is a paginated book listing.
type BooksResponse struct {
	Books  []Book `json:"books"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ListsResponse wraps a user's lists.
type ListsResponse struct {
	Lists []List `json:"lists"`
}

// ListDetailResponse is one list together with its books.
type ListDetailResponse struct {
	List  List            `json:"list"`
	Books []ListBookEntry `json:"books"`
}

// ListMembershipResponse reports every caller list with an is_added flag
// for one book.
type ListMembershipResponse struct {
	Lists []ListMembership `json:"lists"`
}

// FollowStatusResponse reports whether the caller follows a target.
type FollowStatusResponse struct {
	IsFollowing bool `json:"is_following"`
}

// FollowersResponse is a paginated list of follower or following users.
type FollowersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// NotificationsResponse is a paginated notification listing with the
// caller's unread count.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	UnreadCount   int            `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications were flipped to read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// RecommendationsResponse is the recommendation selector output.
type RecommendationsResponse struct {
	Recommendations   []Recommendation `json:"recommendations"`
	Total             int              `json:"total"`
	HasFavoriteGenres bool             `json:"has_favorite_genres"`
}

// ReviewsResponse is a paginated review listing.
type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// RatingResponse reports the caller's rating and the recomputed average.
type RatingResponse struct {
	Rating        *Rating `json:"rating,omitempty"`
	AverageRating float64 `json:"average_rating"`
}

// PresignUploadResponse carries a presigned PUT URL and the key the client
// must upload to.
type PresignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int64  `json:"expires_in"`
}

// PresignDownloadResponse carries a presigned GET URL for a stored object.
type PresignDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

// VerificationRequestsResponse is a paginated verification request listing.
type VerificationRequestsResponse struct {
	Requests []VerificationRequest `json:"requests"`
	Total    int                   `json:"total"`
}

// VerificationStatusResponse reports the caller's author verification state.
type VerificationStatusResponse struct {
	Status  string               `json:"status"`
	Request *VerificationRequest `json:"request,omitempty"`
}

// AuthorsResponse is a paginated author listing.
type AuthorsResponse struct {
	Authors []Author `json:"authors"`
	Total   int      `json:"total"`
}

// UsersResponse is a paginated user listing.
type UsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// AuditLogsResponse is a paginated audit log listing.
type AuditLogsResponse struct {
	Logs  []AuditLog `json:"logs"`
	Total int        `json:"total"`
}

// GenresResponse wraps the genre catalog, flagging the caller's favorites.
type GenresResponse struct {
	Genres    []Genre `json:"genres"`
	Favorites []int64 `json:"favorites,omitempty"`
}
