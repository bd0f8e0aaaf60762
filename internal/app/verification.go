package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// SubmitVerification opens an author verification request for the caller.
// One open request at a time; verified authors cannot apply again.
func (s *Service) SubmitVerification(ctx context.Context, caller *api.User, req api.SubmitVerificationRequest) (*api.VerificationRequest, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if caller.Role == constants.RoleAuthor || caller.Role == constants.RoleAdmin {
		return nil, apperrors.ErrBadRequest("account is already verified", nil)
	}

	open, err := s.repos.Verification.GetOpenRequestByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperrors.ErrConflict("a verification request is already pending", nil)
	}

	request := &api.VerificationRequest{
		UserID:      caller.UserID,
		PenName:     req.PenName,
		Bio:         req.Bio,
		EvidenceURL: req.EvidenceURL,
	}
	id, err := s.repos.Verification.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.RequestID = id
	request.Status = constants.StatusPending

	s.Logger.Info("verification request submitted", "request_id", id, "user_id", caller.UserID)
	return request, nil
}

// GetVerificationStatus returns the caller's most recent request, or nil
// when they never applied.
func (s *Service) GetVerificationStatus(ctx context.Context, callerID int64) (*api.VerificationRequest, error) {
	return s.repos.Verification.GetLatestRequestByUser(ctx, callerID)
}

// ListPendingVerifications returns open requests for admin review, oldest
// first.
func (s *Service) ListPendingVerifications(ctx context.Context, limit, offset int) ([]api.VerificationRequest, int, error) {
	limit, offset = clampPage(limit, offset, defaultPageSize, maxPageSize)
	return s.repos.Verification.ListPending(ctx, limit, offset)
}

// ApproveVerification resolves a pending request: the user becomes a
// verified author with a registered author record, and gets notified.
func (s *Service) ApproveVerification(ctx context.Context, admin *api.User, requestID int64) error {
	request, err := s.repos.Verification.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return apperrors.ErrNotFound("verification request not found", nil)
	}

	if err := s.repos.Verification.SetStatus(ctx, requestID, constants.StatusApproved, admin.UserID, nil); err != nil {
		return err
	}
	if err := s.repos.Users.SetRoleAndVerification(ctx, request.UserID,
		constants.RoleAuthor, constants.VerificationApproved); err != nil {
		return err
	}

	existing, err := s.repos.Catalog.GetAuthorByUserID(ctx, request.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = s.repos.Catalog.CreateAuthor(ctx, &api.Author{
			Name:               request.PenName,
			Bio:                request.Bio,
			Verified:           true,
			IsRegisteredAuthor: true,
			UserID:             &request.UserID,
		})
		if err != nil {
			return err
		}
	}

	s.notifier.VerificationApproved(ctx, request.UserID)
	s.audit(ctx, admin.UserID, constants.AuditVerificationApproved, "verification_request", requestID, "")
	return nil
}

// RejectVerification resolves a pending request as rejected, with an
// optional reason relayed to the applicant.
func (s *Service) RejectVerification(ctx context.Context, admin *api.User, requestID int64, req api.RejectRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	request, err := s.repos.Verification.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return apperrors.ErrNotFound("verification request not found", nil)
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	if err := s.repos.Verification.SetStatus(ctx, requestID, constants.StatusRejected, admin.UserID, reason); err != nil {
		return err
	}
	if err := s.repos.Users.SetRoleAndVerification(ctx, request.UserID,
		constants.RoleNormal, constants.VerificationRejected); err != nil {
		return err
	}

	s.notifier.VerificationRejected(ctx, request.UserID, req.Reason)
	s.audit(ctx, admin.UserID, constants.AuditVerificationRejected, "verification_request", requestID, req.Reason)
	return nil
}
