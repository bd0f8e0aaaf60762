package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
)

// Notifier creates in-app notifications. Every helper is best effort: a
// notification failure is logged and swallowed so it can never fail the
// primary action that triggered it.
type Notifier struct {
	repo   database.NotificationRepository
	logger *slog.Logger
}

// NewNotifier creates a Notifier on top of the notification repository.
func NewNotifier(repo database.NotificationRepository, logger *slog.Logger) *Notifier {
	return &Notifier{repo: repo, logger: logger}
}

// notify inserts one notification, consulting the recipient's preferences
// first. categoryEnabled selects which preference flag gates this type.
func (n *Notifier) notify(ctx context.Context, userID int64, message, notificationType, audience string,
	categoryEnabled func(*api.NotificationPreferences) bool) {
	prefs, err := n.repo.GetPreferences(ctx, userID)
	if err != nil {
		n.logger.Warn("failed to load notification preferences",
			"user_id", userID, "type", notificationType, "error", err)
		return
	}
	if prefs != nil && (!prefs.InAppEnabled || (categoryEnabled != nil && !categoryEnabled(prefs))) {
		return
	}

	_, err = n.repo.CreateNotification(ctx, &api.Notification{
		UserID:       userID,
		Message:      message,
		Type:         notificationType,
		AudienceType: audience,
	})
	if err != nil {
		n.logger.Warn("failed to create notification",
			"user_id", userID, "type", notificationType, "error", err)
	}
}

func followEnabled(p *api.NotificationPreferences) bool   { return p.FollowEnabled }
func ratingEnabled(p *api.NotificationPreferences) bool   { return p.RatingEnabled }
func approvalEnabled(p *api.NotificationPreferences) bool { return p.ApprovalEnabled }

// NewFollower tells a user someone started following them.
func (n *Notifier) NewFollower(ctx context.Context, userID int64, followerName string) {
	n.notify(ctx, userID,
		fmt.Sprintf("%s started following you", followerName),
		constants.NotificationNewFollower, constants.AudienceNormal, followEnabled)
}

// BookSubmitted confirms a book submission to its uploader.
func (n *Notifier) BookSubmitted(ctx context.Context, userID int64, title string) {
	n.notify(ctx, userID,
		fmt.Sprintf("Your book '%s' has been submitted and is pending review", title),
		constants.NotificationBookSubmission, constants.AudienceAuthor, approvalEnabled)
}

// BookApproved tells an uploader their book went live.
func (n *Notifier) BookApproved(ctx context.Context, userID int64, title string) {
	n.notify(ctx, userID,
		fmt.Sprintf("Your book '%s' has been approved and is now live on BookArc", title),
		constants.NotificationBookApproval, constants.AudienceAuthor, approvalEnabled)
}

// BookRejected tells an uploader their book was rejected.
func (n *Notifier) BookRejected(ctx context.Context, userID int64, title, reason string) {
	message := fmt.Sprintf("Your book '%s' was not approved", title)
	if reason != "" {
		message = fmt.Sprintf("%s. Reason: %s", message, reason)
	}
	n.notify(ctx, userID, message,
		constants.NotificationBookRejection, constants.AudienceAuthor, approvalEnabled)
}

// BookRated tells an uploader their book received a rating.
func (n *Notifier) BookRated(ctx context.Context, userID int64, title string, rating int) {
	n.notify(ctx, userID,
		fmt.Sprintf("Your book '%s' received a %d-star rating", title, rating),
		constants.NotificationBookRating, constants.AudienceAuthor, ratingEnabled)
}

// AuthorRated tells a registered author they received a rating.
func (n *Notifier) AuthorRated(ctx context.Context, userID int64, rating int) {
	n.notify(ctx, userID,
		fmt.Sprintf("You received a %d-star rating from a reader", rating),
		constants.NotificationAuthorRating, constants.AudienceAuthor, ratingEnabled)
}

// AuthorRatingRecorded confirms to the rater that their author rating stuck.
func (n *Notifier) AuthorRatingRecorded(ctx context.Context, userID int64, authorName string, rating int) {
	n.notify(ctx, userID,
		fmt.Sprintf("Your %d-star rating for %s has been recorded", rating, authorName),
		constants.NotificationAuthorRatingSuccess, constants.AudienceNormal, ratingEnabled)
}

// PasswordChanged confirms a password change.
func (n *Notifier) PasswordChanged(ctx context.Context, userID int64) {
	n.notify(ctx, userID,
		"Your password was changed. If this wasn't you, contact support immediately",
		constants.NotificationPasswordChange, constants.AudienceNormal, nil)
}

// VerificationApproved tells a user their author verification succeeded.
func (n *Notifier) VerificationApproved(ctx context.Context, userID int64) {
	n.notify(ctx, userID,
		"Congratulations! Your author verification has been approved",
		constants.NotificationVerificationApproved, constants.AudienceAuthor, nil)
}

// VerificationRejected tells a user their author verification was rejected.
func (n *Notifier) VerificationRejected(ctx context.Context, userID int64, reason string) {
	message := "Your author verification request was not approved"
	if reason != "" {
		message = fmt.Sprintf("%s. Reason: %s", message, reason)
	}
	n.notify(ctx, userID, message,
		constants.NotificationVerificationRejected, constants.AudienceNormal, nil)
}

// FanOutBookApproved tells every follower of the uploading author that a new
// book is available. One bulk insert; failures are logged and swallowed.
func (n *Notifier) FanOutBookApproved(ctx context.Context, authorUserID int64, authorName, title string) {
	count, err := n.repo.CreateForFollowers(ctx, authorUserID,
		fmt.Sprintf("%s published a new book: '%s'", authorName, title),
		constants.NotificationAuthorUpdate, constants.AudienceNormal)
	if err != nil {
		n.logger.Warn("failed to fan out book approval",
			"author_user_id", authorUserID, "error", err)
		return
	}
	n.logger.Debug("fanned out book approval", "author_user_id", authorUserID, "recipients", count)
}
