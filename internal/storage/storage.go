// Package storage issues presigned S3 URLs for user-uploaded images.
// Clients upload directly to the bucket; the backend never proxies bytes.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// extensionByContentType whitelists image uploads.
var extensionByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Presigner mirrors the s3.PresignClient methods used here so tests can
// substitute a fake.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Storage wraps an S3 presign client for one bucket.
type Storage struct {
	presigner Presigner
	bucket    string
	expiry    time.Duration
}

// New creates a Storage for the given bucket.
func New(presigner Presigner, bucket string) *Storage {
	return &Storage{
		presigner: presigner,
		bucket:    bucket,
		expiry:    constants.PresignExpirySeconds * time.Second,
	}
}

// NewFromClient creates a Storage from a plain S3 client.
func NewFromClient(client *s3.Client, bucket string) *Storage {
	return New(s3.NewPresignClient(client), bucket)
}

// Upload describes one presigned upload grant.
type Upload struct {
	// URL accepts a single PUT of the declared content type.
	URL string
	// Key is the object key the upload lands at.
	Key string
	// PublicURL is where the object is readable after upload.
	PublicURL string
	ExpiresIn int64
}

// PresignUpload issues a presigned PUT URL for an image of the given kind
// ("profile" or "cover"). Unsupported content types are rejected.
func (s *Storage) PresignUpload(ctx context.Context, kind, contentType string) (*Upload, error) {
	ext, ok := extensionByContentType[contentType]
	if !ok {
		return nil, apperrors.ErrBadRequest(
			fmt.Sprintf("unsupported content type %q, expected image/jpeg, image/png, or image/webp", contentType), nil)
	}

	key := fmt.Sprintf("uploads/%s/%s.%s", kind, uuid.NewString(), ext)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.expiry
	})
	if err != nil {
		return nil, apperrors.ErrServiceUnavailable("failed to presign upload", err)
	}

	return &Upload{
		URL:       req.URL,
		Key:       key,
		PublicURL: s.PublicURL(key),
		ExpiresIn: int64(s.expiry.Seconds()),
	}, nil
}

// PresignDownload issues a presigned GET URL for a stored key.
func (s *Storage) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.expiry
	})
	if err != nil {
		return "", apperrors.ErrServiceUnavailable("failed to presign download", err)
	}
	return req.URL, nil
}

// PublicURL returns the canonical public URL for an object key.
func (s *Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
