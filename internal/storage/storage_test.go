package storage

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/testutil"
)

type fakePresigner struct {
	putFunc func(params *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error)
	getFunc func(params *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error)
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.putFunc != nil {
		return f.putFunc(params)
	}
	return &v4.PresignedHTTPRequest{URL: "https://example.com/put"}, nil
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.getFunc != nil {
		return f.getFunc(params)
	}
	return &v4.PresignedHTTPRequest{URL: "https://example.com/get"}, nil
}

func TestPresignUpload(t *testing.T) {
	var gotInput *s3.PutObjectInput
	store := New(&fakePresigner{
		putFunc: func(params *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
			gotInput = params
			return &v4.PresignedHTTPRequest{URL: "https://example.com/put"}, nil
		},
	}, "bookarc-uploads")

	upload, err := store.PresignUpload(testutil.TestContext(), "covers", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/put", upload.URL)
	assert.True(t, strings.HasPrefix(upload.Key, "uploads/covers/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Equal(t, "https://bookarc-uploads.s3.amazonaws.com/"+upload.Key, upload.PublicURL)
	assert.Equal(t, int64(3600), upload.ExpiresIn)

	require.NotNil(t, gotInput)
	assert.Equal(t, "bookarc-uploads", *gotInput.Bucket)
	assert.Equal(t, "image/png", *gotInput.ContentType)
}

func TestPresignUploadRejectsContentType(t *testing.T) {
	store := New(&fakePresigner{}, "bookarc-uploads")

	for _, contentType := range []string{"application/pdf", "text/html", ""} {
		_, err := store.PresignUpload(testutil.TestContext(), "covers", contentType)
		require.Error(t, err)
		testutil.AssertAppErrorStatus(t, err, http.StatusBadRequest)
	}
}

func TestPresignUploadKeysAreUnique(t *testing.T) {
	store := New(&fakePresigner{}, "bookarc-uploads")

	first, err := store.PresignUpload(testutil.TestContext(), "profile-pictures", "image/jpeg")
	require.NoError(t, err)
	second, err := store.PresignUpload(testutil.TestContext(), "profile-pictures", "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestPresignUploadServiceFailure(t *testing.T) {
	store := New(&fakePresigner{
		putFunc: func(_ *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
			return nil, errors.New("throttled")
		},
	}, "bookarc-uploads")

	_, err := store.PresignUpload(testutil.TestContext(), "covers", "image/webp")
	require.Error(t, err)
	testutil.AssertAppErrorStatus(t, err, http.StatusServiceUnavailable)
}

func TestPresignDownload(t *testing.T) {
	var gotKey string
	store := New(&fakePresigner{
		getFunc: func(params *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error) {
			gotKey = *params.Key
			return &v4.PresignedHTTPRequest{URL: "https://example.com/get"}, nil
		},
	}, "bookarc-uploads")

	url, err := store.PresignDownload(testutil.TestContext(), "uploads/covers/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/get", url)
	assert.Equal(t, "uploads/covers/abc.png", gotKey)
}
