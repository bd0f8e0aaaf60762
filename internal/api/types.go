// Package api defines the API types and structures used across bookarc.
// It contains domain entities plus request and response structures for the
// REST API.
package api

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents the response to a health check request
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

/// User represents a local user row mapped 1:1 to an identity-provider subject.
type User struct {
	UserID             int64     `json:"user_id"`
	CognitoSub         string    `json:"-"`
	Username           string    `json:"username"`
	DisplayName        string    `json:"display_name"`
	Email              string    `json:"email,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	ProfilePictureURL  string    `json:"profile_picture_url,omitempty"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verification_status,omitempty"`
	IsActive           bool      `json:"is_active"`
	IsPublic           bool      `json:"is_public"`
	JoinDate           time.Time `json:"join_date"`
}

// Author represents an author record. Registered authors are linked to a
// user row; unregistered ones exist only as catalog metadata.
type Author struct {
	AuthorID           int64   `json:"author_id"`
	Name               string  `json:"name"`
	Bio                string  `json:"bio,omitempty"`
	Verified           bool    `json:"verified"`
	IsRegisteredAuthor bool    `json:"is_registered_author"`
	UserID             *int64  `json:"user_id,omitempty"`
	AverageRating      float64 `json:"average_rating"`
}

// Genre represents a catalog genre.
type Genre struct {
	GenreID   int64  `json:"genre_id"`
	GenreName string `json:"genre_name"`
}

// Book represents a catalog book with its derived average rating.
type Book struct {
	BookID          int64      `json:"book_id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary,omitempty"`
	CoverImageURL   string     `json:"cover_image_url,omitempty"`
	PublishDate     *time.Time `json:"publish_date,omitempty"`
	ApprovalStatus  string     `json:"approval_status"`
	AverageRating   float64    `json:"average_rating"`
	UploadedBy      *int64     `json:"uploaded_by,omitempty"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Authors         []string   `json:"authors,omitempty"`
	Genres          []string   `json:"genres,omitempty"`
}

// Rating represents a single star rating for a book or an author.
// Exactly one of BookID / AuthorID is set depending on the target.
type Rating struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id,omitempty"`
	AuthorID  int64     `json:"author_id,omitempty"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review represents a free-text review of a book or an author.
type Review struct {
	ReviewID    int64     `json:"review_id"`
	UserID      int64     `json:"user_id"`
	BookID      int64     `json:"book_id,omitempty"`
	AuthorID    int64     `json:"author_id,omitempty"`
	ReviewText  string    `json:"review_text"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
}

// List represents a reading list. The five default kinds are provisioned at
// account creation; user-created lists carry the Custom kind and a title.
type List struct {
	ListID     int64     `json:"list_id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Title      string    `json:"title,omitempty"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	BookCount  int       `json:"book_count"`
}

// ListBook represents a book's membership in a list.
type ListBook struct {
	ListID  int64     `json:"list_id"`
	BookID  int64     `json:"book_id"`
	AddedAt time.Time `json:"added_at"`
}

// ListBookEntry is a book inside a list view, including catalog details.
type ListBookEntry struct {
	BookID        int64     `json:"book_id"`
	Title         string    `json:"title"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	Summary       string    `json:"summary,omitempty"`
	AddedAt       time.Time `json:"added_at"`
	Authors       []string  `json:"authors"`
	Genre         string    `json:"genre,omitempty"`
}

// ListMembership reports, for one book, whether it belongs to each of the
// caller's lists.
type ListMembership struct {
	List
	IsAdded bool       `json:"is_added"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// Notification represents a single append-only in-app notification.
type Notification struct {
	NotificationID int64     `json:"notification_id"`
	UserID         int64     `json:"user_id"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	AudienceType   string    `json:"audience_type"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationPreferences controls which notification categories are
// persisted for a user. Missing rows mean everything is enabled.
type NotificationPreferences struct {
	UserID          int64     `json:"user_id"`
	InAppEnabled    bool      `json:"in_app_enabled"`
	FollowEnabled   bool      `json:"follow_enabled"`
	RatingEnabled   bool      `json:"rating_enabled"`
	ApprovalEnabled bool      `json:"approval_enabled"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// VerificationRequest represents an author verification request.
type VerificationRequest struct {
	RequestID       int64      `json:"request_id"`
	UserID          int64      `json:"user_id"`
	PenName         string     `json:"pen_name"`
	Bio             string     `json:"bio,omitempty"`
	EvidenceURL     string     `json:"evidence_url,omitempty"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedBy      *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Username        string     `json:"username,omitempty"`
}

// AuditLog represents one admin audit trail entry.
type AuditLog struct {
	LogID       int64     `json:"log_id"`
	AdminUserID int64     `json:"admin_user_id"`
	ActionType  string    `json:"action_type"`
	EntityType  string    `json:"entity_type"`
	EntityID    int64     `json:"entity_id"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recommendation is one recommendation candidate tagged with a
// human-readable reason.
type Recommendation struct {
	BookID         int64      `json:"book_id"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary,omitempty"`
	CoverImageURL  string     `json:"cover_image_url,omitempty"`
	AverageRating  float64    `json:"average_rating"`
	PublishDate    *time.Time `json:"publish_date,omitempty"`
	Authors        []string   `json:"authors"`
	Genres         []string   `json:"genres"`
	MatchingGenres int        `json:"matching_genres,omitempty"`
	Reason         string     `json:"reason"`
}

// UserStats aggregates a user's activity counters.
type UserStats struct {
	UserID         int64 `json:"user_id"`
	BooksCompleted int   `json:"books_completed"`
	RatingsGiven   int   `json:"ratings_given"`
	ReviewsWritten int   `json:"reviews_written"`
	Followers      int   `json:"followers"`
	Following      int   `json:"following"`
	Lists          int   `json:"lists"`
}

// AdminStats aggregates platform-wide counters for the admin dashboard.
type AdminStats struct {
	TotalUsers           int `json:"total_users"`
	ActiveUsers          int `json:"active_users"`
	TotalAuthors         int `json:"total_authors"`
	TotalBooks           int `json:"total_books"`
	PendingBooks         int `json:"pending_books"`
	TotalRatings         int `json:"total_ratings"`
	TotalReviews         int `json:"total_reviews"`
	PendingVerifications int `json:"pending_verifications"`
}

// BookRatingStats summarizes rating activity on one of an author's books.
type BookRatingStats struct {
	BookID        int64   `json:"book_id"`
	Title         string  `json:"title"`
	RatingCount   int     `json:"rating_count"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// InteractionEvent records a user's interaction with a recommendation or a
// catalog item, used to bias future candidate selection.
type InteractionEvent struct {
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	BookID    *int64    `json:"book_id,omitempty"`
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}
