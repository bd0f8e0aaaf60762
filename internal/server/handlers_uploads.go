package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handlePresignUpload handles POST /api/v1/uploads/presign.
func (r *Router) handlePresignUpload(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var presignReq api.PresignUploadRequest
	if err := decodeRequestBody(w, req, &presignReq); err != nil {
		return
	}

	upload, err := r.svc.PresignUpload(req.Context(), user.UserID, presignReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "presign upload")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.PresignUploadResponse{
		UploadURL: upload.URL,
		Key:       upload.Key,
		PublicURL: upload.PublicURL,
		ExpiresIn: upload.ExpiresIn,
	})
}

// handlePresignDownload handles GET /api/v1/uploads/download?key=...
func (r *Router) handlePresignDownload(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.requireAuthenticatedUser(w, req); !ok {
		return
	}

	url, err := r.svc.PresignDownload(req.Context(), req.URL.Query().Get("key"))
	if err != nil {
		r.handleAndLogError(w, req, err, "presign download")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.PresignDownloadResponse{DownloadURL: url})
}
