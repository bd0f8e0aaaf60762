package constants

import "time"

// ContentTypeHeader is the HTTP Content-Type header name.
const ContentTypeHeader = "Content-Type"

// AuthorizationHeader is the HTTP Authorization header name.
const AuthorizationHeader = "Authorization"

// HTTPStatusServerError is the lower bound of server error status codes.
const HTTPStatusServerError = 500

// RequestIDByteSize is the number of random bytes in a generated request ID.
const RequestIDByteSize = 16

// DefaultPageSize is the page size applied when the client does not ask
// for one.
const DefaultPageSize = 20

// MaxPageSize caps limit/num_results query parameters on every paginated
// or recommendation endpoint.
const MaxPageSize = 50

// DefaultRecommendationCount is the number of recommendation candidates
// returned when the client does not specify num_results.
const DefaultRecommendationCount = 10

// MaxRecommendationCount caps num_results on the recommendation endpoint.
const MaxRecommendationCount = 50

// MinRating and MaxRating bound the star value accepted on rating writes.
const (
	MinRating = 1
	MaxRating = 5
)

// PresignExpirySeconds is the lifetime of issued presigned URLs.
const PresignExpirySeconds = 3600

// DevServerPort is the default port for the local development server.
const DevServerPort = "8080"

// TestContextTimeout bounds contexts created by test helpers.
const TestContextTimeout = 5 * time.Second
