package app

import (
	"context"

	"github.com/bookarc/bookarc/internal/api"
	apperrors "github.com/bookarc/bookarc/internal/errors"
	"github.com/bookarc/bookarc/internal/storage"
)

// PresignUpload issues an upload grant for an image. Profile-picture grants
// also record the resulting public URL on the caller's row, so the picture
// shows up once the client finishes the PUT.
func (s *Service) PresignUpload(ctx context.Context, callerID int64, req api.PresignUploadRequest) (*storage.Upload, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, apperrors.ErrServiceUnavailable("uploads are not configured", nil)
	}

	kind := req.Kind
	if kind == "" {
		kind = "profile-pictures"
	}

	upload, err := s.storage.PresignUpload(ctx, kind, req.FileType)
	if err != nil {
		return nil, err
	}

	if kind == "profile-pictures" {
		if err := s.repos.Users.UpdateProfilePicture(ctx, callerID, upload.PublicURL); err != nil {
			return nil, err
		}
	}
	return upload, nil
}

// PresignDownload issues a time-limited GET URL for a stored object key.
func (s *Service) PresignDownload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperrors.ErrBadRequest("object key is required", nil)
	}
	if s.storage == nil {
		return "", apperrors.ErrServiceUnavailable("uploads are not configured", nil)
	}
	return s.storage.PresignDownload(ctx, key)
}
