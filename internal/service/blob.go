package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cookmate/cookmate/backend/config"
	"github.com/google/uuid"
)

// S3PutObjectAPI is the slice of the S3 client the blob store needs.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3BlobStore uploads objects to a single S3 bucket.
type S3BlobStore struct {
	client    S3PutObjectAPI
	bucket    string
	objectURL func(key string) string
}

func NewS3BlobStore(cfg *config.S3Config) *S3BlobStore {
	return &S3BlobStore{
		client:    cfg.Client,
		bucket:    cfg.BucketName,
		objectURL: cfg.ObjectURL,
	}
}

// NewS3BlobStoreWithClient builds a blob store over any PutObject
// implementation.
func NewS3BlobStoreWithClient(client S3PutObjectAPI, bucket string, objectURL func(string) string) *S3BlobStore {
	return &S3BlobStore{client: client, bucket: bucket, objectURL: objectURL}
}

// Upload stores data under path and returns its public URL.
func (b *S3BlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return b.objectURL(path), nil
}

// RecipeImagePath returns users/{userId}/recipes/images/{millis}_{uuid}.jpg.
func RecipeImagePath(userID string, now time.Time) string {
	return fmt.Sprintf("users/%s/recipes/images/%d_%s.jpg", userID, now.UnixMilli(), uuid.New().String())
}
