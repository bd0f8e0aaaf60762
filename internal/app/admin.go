package app

import (
	"context"
	"slices"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	"github.com/bookarc/bookarc/internal/database"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// audit records an admin action. Best effort: an audit write failure is
// logged and does not fail the action itself.
func (s *Service) audit(ctx context.Context, adminID int64, actionType, entityType string, entityID int64, details string) {
	err := s.repos.Audit.RecordAction(ctx, &api.AuditLog{
		AdminUserID: adminID,
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     details,
	})
	if err != nil {
		s.Logger.Warn("failed to record audit action",
			"admin_user_id", adminID, "action", actionType, "error", err)
	}
}

// AdminListBooks returns books in any approval state for the review queue.
// An empty status defaults to pending submissions.
func (s *Service) AdminListBooks(ctx context.Context, status string, limit, offset int) ([]api.Book, int, error) {
	if status == "" {
		status = constants.StatusPending
	}
	if status != constants.StatusPending && status != constants.StatusApproved &&
		status != constants.StatusRejected {
		return nil, 0, apperrors.ErrBadRequest("invalid approval status", nil)
	}
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Catalog.ListBooks(ctx, database.BookFilter{
		Status: status,
		SortBy: "recent",
		Limit:  limit,
		Offset: offset,
	})
}

// AdminAddBook creates a book that skips the review queue. Author links must
// be given explicitly since admins have no author record of their own.
func (s *Service) AdminAddBook(ctx context.Context, admin *api.User, req api.SubmitBookRequest) (*api.Book, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if len(req.AuthorIDs) == 0 {
		return nil, apperrors.ErrBadRequest("at least one author id is required", nil)
	}
	if err := s.requireKnownGenres(ctx, req.GenreIDs); err != nil {
		return nil, err
	}

	book, err := newBookFromRequest(req, &admin.UserID, constants.StatusApproved)
	if err != nil {
		return nil, err
	}

	id, err := s.repos.Catalog.CreateBook(ctx, book, req.AuthorIDs, req.GenreIDs)
	if err != nil {
		return nil, err
	}
	book.BookID = id

	if err := s.repos.Catalog.SetApproval(ctx, id, constants.StatusApproved, admin.UserID, nil); err != nil {
		return nil, err
	}
	book.ApprovedBy = &admin.UserID

	s.audit(ctx, admin.UserID, constants.AuditBookAdded, "book", id, book.Title)
	s.Logger.Info("book added by admin", "book_id", id, "admin_user_id", admin.UserID)
	return book, nil
}

// requirePendingBook loads a book and checks it is still awaiting review.
func (s *Service) requirePendingBook(ctx context.Context, bookID int64) (*api.Book, error) {
	book, err := s.repos.Catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.ErrNotFound("book not found", nil)
	}
	if book.ApprovalStatus != constants.StatusPending {
		return nil, apperrors.ErrConflict("book has already been reviewed", nil)
	}
	return book, nil
}

// ApproveBook approves a pending submission, notifies the uploader, and
// fans the news out to the uploading author's followers.
func (s *Service) ApproveBook(ctx context.Context, admin *api.User, bookID int64) error {
	book, err := s.requirePendingBook(ctx, bookID)
	if err != nil {
		return err
	}

	if err := s.repos.Catalog.SetApproval(ctx, bookID, constants.StatusApproved, admin.UserID, nil); err != nil {
		return err
	}

	if book.UploadedBy != nil {
		s.notifier.BookApproved(ctx, *book.UploadedBy, book.Title)

		if uploader, err := s.repos.Users.GetUserByID(ctx, *book.UploadedBy); err != nil {
			s.Logger.Warn("failed to load uploader for fan-out", "book_id", bookID, "error", err)
		} else if uploader != nil {
			s.notifier.FanOutBookApproved(ctx, uploader.UserID, displayName(uploader), book.Title)
		}
	}

	s.audit(ctx, admin.UserID, constants.AuditBookApproved, "book", bookID, book.Title)
	s.Logger.Info("book approved", "book_id", bookID, "admin_user_id", admin.UserID)
	return nil
}

// RejectBook rejects a pending submission. A reason is mandatory so the
// uploader always learns why.
func (s *Service) RejectBook(ctx context.Context, admin *api.User, bookID int64, req api.RejectRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Reason == "" {
		return apperrors.ErrBadRequest("rejection reason is required", nil)
	}

	book, err := s.requirePendingBook(ctx, bookID)
	if err != nil {
		return err
	}

	if err := s.repos.Catalog.SetApproval(ctx, bookID, constants.StatusRejected, admin.UserID, &req.Reason); err != nil {
		return err
	}

	if book.UploadedBy != nil {
		s.notifier.BookRejected(ctx, *book.UploadedBy, book.Title, req.Reason)
	}

	s.audit(ctx, admin.UserID, constants.AuditBookRejected, "book", bookID, req.Reason)
	s.Logger.Info("book rejected", "book_id", bookID, "admin_user_id", admin.UserID)
	return nil
}

// ListUsers returns users for the admin dashboard.
func (s *Service) ListUsers(ctx context.Context, role string, activeOnly *bool, limit, offset int) ([]api.User, int, error) {
	if role != "" && !slices.Contains(constants.ValidRoles, role) {
		return nil, 0, apperrors.ErrBadRequest("invalid role filter", nil)
	}
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Users.ListUsers(ctx, role, activeOnly, limit, offset)
}

// SetUserActive toggles the soft-disable flag on a user account. Admin
// accounts cannot be disabled through the API.
func (s *Service) SetUserActive(ctx context.Context, admin *api.User, targetID int64, active bool) error {
	target, err := s.repos.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperrors.ErrNotFound("user not found", nil)
	}
	if target.Role == constants.RoleAdmin {
		return apperrors.ErrForbidden("admin accounts cannot be disabled", nil)
	}

	if err := s.repos.Users.SetActive(ctx, targetID, active); err != nil {
		return err
	}

	details := "disabled"
	if active {
		details = "enabled"
	}
	s.audit(ctx, admin.UserID, constants.AuditUserStatusToggled, "user", targetID, details)
	return nil
}

// GetAdminStats aggregates platform-wide counters.
func (s *Service) GetAdminStats(ctx context.Context) (*api.AdminStats, error) {
	return s.repos.Users.GetAdminStats(ctx)
}

// ListAuditLogs returns the admin action trail, newest first.
func (s *Service) ListAuditLogs(ctx context.Context, limit, offset int) ([]api.AuditLog, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Audit.ListActions(ctx, limit, offset)
}
