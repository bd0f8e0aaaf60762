package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleListNotifications handles GET /api/v1/notifications with an
// optional unread_only filter.
func (r *Router) handleListNotifications(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	unreadOnly := req.URL.Query().Get("unread_only") == "true"
	limit, offset := pageParams(req)

	notifications, total, unread, err := r.svc.ListNotifications(req.Context(), user.UserID, unreadOnly, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list notifications")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.NotificationsResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
	})
}

// handleMarkNotificationRead handles PUT /api/v1/notifications/{notificationID}/read.
func (r *Router) handleMarkNotificationRead(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	notificationID, ok := getRequiredIDParam(w, req, "notificationID")
	if !ok {
		return
	}

	if err := r.svc.MarkNotificationRead(req.Context(), user.UserID, notificationID); err != nil {
		r.handleAndLogError(w, req, err, "mark notification read")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "notification marked read"})
}

// handleMarkAllNotificationsRead handles PUT /api/v1/notifications/read-all.
func (r *Router) handleMarkAllNotificationsRead(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	updated, err := r.svc.MarkAllNotificationsRead(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "mark all notifications read")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MarkAllReadResponse{Updated: int(updated)})
}

// handleDeleteNotification handles DELETE /api/v1/notifications/{notificationID}.
func (r *Router) handleDeleteNotification(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	notificationID, ok := getRequiredIDParam(w, req, "notificationID")
	if !ok {
		return
	}

	if err := r.svc.DeleteNotification(req.Context(), user.UserID, notificationID); err != nil {
		r.handleAndLogError(w, req, err, "delete notification")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "notification deleted"})
}

// handleGetNotificationPreferences handles GET /api/v1/notifications/preferences.
func (r *Router) handleGetNotificationPreferences(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	prefs, err := r.svc.GetNotificationPreferences(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get notification preferences")
		return
	}
	writeJSONResponse(w, http.StatusOK, prefs)
}

// handleUpdateNotificationPreferences handles PUT /api/v1/notifications/preferences.
func (r *Router) handleUpdateNotificationPreferences(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var updateReq api.UpdatePreferencesRequest
	if err := decodeRequestBody(w, req, &updateReq); err != nil {
		return
	}

	prefs, err := r.svc.UpdateNotificationPreferences(req.Context(), user.UserID, updateReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "update notification preferences")
		return
	}
	writeJSONResponse(w, http.StatusOK, prefs)
}
