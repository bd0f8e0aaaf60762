package api

// CreateListRequest represents the request to create a custom list.
type CreateListRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=120"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// UpdateListRequest updates a list's title and/or visibility.
// Title changes apply only to Custom lists.
type UpdateListRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Visibility *string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// AddBookToListRequest adds a book to a list.
type AddBookToListRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

// RateRequest carries a star value for a book or an author.
type RateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// ReviewRequest carries review text for a book or an author.
type ReviewRequest struct {
	ReviewText string `json:"review_text" validate:"required,min=1,max=5000"`
}

// SubmitBookRequest represents an author's book submission.
type SubmitBookRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=300"`
	Summary       string  `json:"summary" validate:"omitempty,max=5000"`
	CoverImageURL string  `json:"cover_image_url" validate:"omitempty,url"`
	PublishDate   string  `json:"publish_date" validate:"omitempty,datetime=2006-01-02"`
	AuthorIDs     []int64 `json:"author_ids" validate:"omitempty,dive,gt=0"`
	GenreIDs      []int64 `json:"genre_ids" validate:"required,min=1,dive,gt=0"`
}

// RejectRequest carries a rejection reason for books and verification
// requests.
type RejectRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// UpdateProfileRequest updates the caller's profile fields.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// ChangePasswordRequest changes the caller's identity-provider password.
// The access token is the caller's own Cognito access token.
type ChangePasswordRequest struct {
	AccessToken      string `json:"access_token" validate:"required"`
	PreviousPassword string `json:"previous_password" validate:"required"`
	ProposedPassword string `json:"proposed_password" validate:"required,min=8"`
}

// SubmitVerificationRequest represents an author verification submission.
type SubmitVerificationRequest struct {
	PenName     string `json:"pen_name" validate:"required,min=1,max=100"`
	Bio         string `json:"bio" validate:"omitempty,max=2000"`
	EvidenceURL string `json:"evidence_url" validate:"omitempty,url"`
}

// UpdatePreferencesRequest updates the caller's notification preferences.
type UpdatePreferencesRequest struct {
	InAppEnabled    *bool `json:"in_app_enabled,omitempty"`
	FollowEnabled   *bool `json:"follow_enabled,omitempty"`
	RatingEnabled   *bool `json:"rating_enabled,omitempty"`
	ApprovalEnabled *bool `json:"approval_enabled,omitempty"`
}

// PresignUploadRequest asks for a presigned PUT URL for an image upload.
type PresignUploadRequest struct {
	FileType string `json:"file_type" validate:"required,oneof=image/jpeg image/png image/webp"`
	Kind     string `json:"kind" validate:"omitempty,oneof=profile-pictures covers"`
}

// RecordInteractionRequest appends one interaction event.
type RecordInteractionRequest struct {
	BookID    *int64 `json:"book_id,omitempty" validate:"omitempty,gt=0"`
	EventType string `json:"event_type" validate:"required,oneof=view click dismiss"`
}
