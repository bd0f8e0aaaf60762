// Package server wires the HTTP surface of bookarc: one chi router carrying
// the middleware chain and every /api/v1 route. Handlers translate between
// HTTP and the app service; business rules stay out of this package.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookarc/bookarc/internal/app"
	"github.com/bookarc/bookarc/internal/auth/authorization"
)

// Router wraps the chi mux with the service and the casbin enforcer.
type Router struct {
	router   *chi.Mux
	svc      *app.Service
	enforcer *authorization.Enforcer
	timeout  time.Duration
}

// NewRouter creates a new chi router with all routes configured. The
// enforcer may be nil, in which case role checks are skipped (used by a few
// focused tests; production always passes one).
func NewRouter(svc *app.Service, enforcer *authorization.Enforcer, timeout time.Duration) *Router {
	r := chi.NewRouter()
	router := &Router{
		router:   r,
		svc:      svc,
		enforcer: enforcer,
		timeout:  timeout,
	}

	r.Use(router.requestIDMiddleware)
	r.Use(router.requestLoggingMiddleware)
	r.Use(corsMiddleware)
	r.Use(setContentTypeJSONMiddleware)
	if timeout > 0 {
		r.Use(router.requestTimeoutMiddleware(timeout))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", router.handleHealth)

		// Everything below requires a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(router.authenticateRequestMiddleware)
			r.Use(router.authorizeRoleMiddleware)

			r.Route("/books", func(r chi.Router) {
				r.Get("/", router.handleListBooks)
				r.Get("/{bookID}", router.handleGetBook)
				r.Get("/{bookID}/reviews", router.handleListBookReviews)
				r.Post("/{bookID}/reviews", router.handleReviewBook)
				r.Get("/{bookID}/rating", router.handleGetMyBookRating)
				r.Put("/{bookID}/rating", router.handleRateBook)
				r.Delete("/{bookID}/rating", router.handleDeleteBookRating)
				r.Get("/{bookID}/lists", router.handleListMembership)
			})

			r.Route("/genres", func(r chi.Router) {
				r.Get("/", router.handleListGenres)
				r.Post("/{genreID}/favorite", router.handleAddFavoriteGenre)
				r.Delete("/{genreID}/favorite", router.handleRemoveFavoriteGenre)
			})

			r.Route("/authors", func(r chi.Router) {
				r.Get("/", router.handleSearchAuthors)
				r.Get("/{authorID}", router.handleGetAuthor)
				r.Get("/{authorID}/reviews", router.handleListAuthorReviews)
				r.Post("/{authorID}/reviews", router.handleReviewAuthor)
				r.Get("/{authorID}/rating", router.handleGetMyAuthorRating)
				r.Put("/{authorID}/rating", router.handleRateAuthor)
				r.Delete("/{authorID}/rating", router.handleDeleteAuthorRating)
				r.Post("/{authorID}/follow", router.handleFollowAuthor)
				r.Delete("/{authorID}/follow", router.handleUnfollowAuthor)
				r.Get("/{authorID}/follow", router.handleAuthorFollowStatus)
			})

			r.Route("/lists", func(r chi.Router) {
				r.Get("/", router.handleGetMyLists)
				r.Post("/", router.handleCreateList)
				r.Get("/{listID}", router.handleGetList)
				r.Put("/{listID}", router.handleUpdateList)
				r.Delete("/{listID}", router.handleDeleteList)
				r.Post("/{listID}/books", router.handleAddBookToList)
				r.Delete("/{listID}/books/{bookID}", router.handleRemoveBookFromList)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Delete("/{reviewID}", router.handleDeleteBookReview)
				r.Delete("/authors/{reviewID}", router.handleDeleteAuthorReview)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/search", router.handleSearchUsers)
				r.Get("/{userID}", router.handleGetUser)
				r.Get("/{userID}/lists", router.handleGetPublicLists)
				r.Post("/{userID}/follow", router.handleFollowUser)
				r.Delete("/{userID}/follow", router.handleUnfollowUser)
				r.Get("/{userID}/follow", router.handleUserFollowStatus)
				r.Get("/{userID}/followers", router.handleListFollowers)
				r.Get("/{userID}/following", router.handleListFollowing)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", router.handleGetProfile)
				r.Put("/", router.handleUpdateProfile)
				r.Delete("/", router.handleDeleteAccount)
				r.Get("/stats", router.handleGetUserStats)
				r.Post("/password", router.handleChangePassword)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", router.handleListNotifications)
				r.Put("/{notificationID}/read", router.handleMarkNotificationRead)
				r.Put("/read-all", router.handleMarkAllNotificationsRead)
				r.Delete("/{notificationID}", router.handleDeleteNotification)
				r.Get("/preferences", router.handleGetNotificationPreferences)
				r.Put("/preferences", router.handleUpdateNotificationPreferences)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", router.handleGetRecommendations)
				r.Post("/interactions", router.handleRecordInteraction)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/presign", router.handlePresignUpload)
				r.Get("/download", router.handlePresignDownload)
			})

			r.Route("/verification", func(r chi.Router) {
				r.Post("/", router.handleSubmitVerification)
				r.Get("/", router.handleVerificationStatus)
			})

			r.Route("/author", func(r chi.Router) {
				r.Post("/books", router.handleSubmitBook)
				r.Get("/books", router.handleListMyBooks)
				r.Get("/stats", router.handleMyBookStats)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/books", router.handleAdminListBooks)
				r.Post("/books", router.handleAdminAddBook)
				r.Put("/books/{bookID}/approve", router.handleApproveBook)
				r.Put("/books/{bookID}/reject", router.handleRejectBook)
				r.Get("/verifications", router.handleListPendingVerifications)
				r.Put("/verifications/{requestID}/approve", router.handleApproveVerification)
				r.Put("/verifications/{requestID}/reject", router.handleRejectVerification)
				r.Get("/users", router.handleAdminListUsers)
				r.Put("/users/{userID}/enable", router.handleEnableUser)
				r.Put("/users/{userID}/disable", router.handleDisableUser)
				r.Get("/stats", router.handleAdminStats)
				r.Get("/audit-logs", router.handleListAuditLogs)
			})
		})
	})

	return router
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Handler returns an http.Handler for the router.
func (r *Router) Handler() http.Handler {
	return r.router
}
