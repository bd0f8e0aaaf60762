// Package constants defines global constants used throughout bookarc.
// It includes roles, workflow statuses, list kinds, and notification tags.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of the bookarc backend.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the application.
const ProjectName = "bookarc"

// User roles.
const (
	RoleNormal = "normal"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

// ValidRoles lists every role a user row may carry.
var ValidRoles = []string{RoleNormal, RoleAuthor, RoleAdmin}

// Approval statuses for books and author verification requests.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Verification statuses on the user row.
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// List kinds. The five default lists are provisioned once at account
// creation and can never be renamed or deleted; only Custom lists can.
const (
	ListReading    = "Reading"
	ListCompleted  = "Completed"
	ListPlanToRead = "Plan to Read"
	ListOnHold     = "On-Hold"
	ListDropped    = "Dropped"
	ListCustom     = "Custom"
)

// DefaultListNames is the provisioning order of the default lists.
var DefaultListNames = []string{
	ListReading,
	ListCompleted,
	ListPlanToRead,
	ListOnHold,
	ListDropped,
}

// List visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Notification types.
const (
	NotificationBookSubmission       = "book_submission"
	NotificationBookApproval         = "book_approval"
	NotificationBookRejection        = "book_rejection"
	NotificationNewFollower          = "new_follower"
	NotificationAuthorUpdate         = "author_update"
	NotificationAuthorRating         = "author_rating"
	NotificationAuthorRatingSuccess  = "author_rating_success"
	NotificationBookRating           = "book_rating"
	NotificationPasswordChange       = "password_change"
	NotificationVerificationApproved = "verification_approved"
	NotificationVerificationRejected = "verification_rejected"
)

// Notification audience tags, used as coarse routing hints for clients.
const (
	AudienceNormal  = "normal"
	AudiencePremium = "premium"
	AudienceAuthor  = "author"
	AudienceAdmin   = "admin"
	AudienceAll     = "all"
)

// Admin audit action types.
const (
	AuditBookApproved         = "BOOK_APPROVED"
	AuditBookRejected         = "BOOK_REJECTED"
	AuditBookAdded            = "BOOK_ADDED"
	AuditVerificationApproved = "VERIFICATION_APPROVED"
	AuditVerificationRejected = "VERIFICATION_REJECTED"
	AuditUserStatusToggled    = "USER_STATUS_TOGGLED"
)
