package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cookmate/cookmate/backend/internal/mocks"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestS3BlobStoreUpload(t *testing.T) {
	client := new(mocks.MockS3Client)
	blobs := service.NewS3BlobStoreWithClient(client, "images", func(key string) string {
		return "https://images.example.com/" + key
	})

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return in.Body != nil &&
			*in.Bucket == "images" &&
			*in.Key == "users/u1/a.jpg" &&
			*in.ContentType == "image/jpeg" &&
			*in.ContentLength == 3
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := blobs.Upload(context.Background(), "users/u1/a.jpg", []byte("abc"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/users/u1/a.jpg", url)
	client.AssertExpectations(t)
}

func TestS3BlobStoreUploadError(t *testing.T) {
	client := new(mocks.MockS3Client)
	blobs := service.NewS3BlobStoreWithClient(client, "images", func(key string) string { return key })
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

	_, err := blobs.Upload(context.Background(), "k", []byte("x"), "image/png")
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestRecipeImagePath(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	path := service.RecipeImagePath("user-1", now)

	pattern := regexp.MustCompile(`^users/user-1/recipes/images/1700000000123_[0-9a-f-]{36}\.jpg$`)
	assert.Regexp(t, pattern, path)
	assert.NotEqual(t, path, service.RecipeImagePath("user-1", now))
}
