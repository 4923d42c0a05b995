package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
)

// s3API is the subset of *s3.Client used by S3ImageStore
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3ImageStore keeps uploads in a bucket under the "uploads/" key prefix.
// Images are still served by this process at /uploads/<name>.
type S3ImageStore struct {
	client s3API
	bucket string
	now    func() time.Time
}

// NewS3ImageStore creates an image store backed by the configured bucket
func NewS3ImageStore(cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{client: cfg.Client, bucket: cfg.BucketName, now: time.Now}
}

func (s *S3ImageStore) Backend() string {
	return "s3"
}

func (s *S3ImageStore) key(name string) string {
	return "uploads/" + name
}

// Save uploads r as a single PutObject call
func (s *S3ImageStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	name := StoredName(s.now(), originalName)
	if !validName(name) {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          r,
		ContentLength: aws.Int64(size),
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	logging.Debug().Str("bucket", s.bucket).Str("key", s.key(name)).Msg("Uploaded image to S3")
	metrics.RecordImageStored(s.Backend(), size)
	return name, nil
}

// Open streams the object body back
func (s *S3ImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrImageNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to fetch from S3: %w", err)
	}
	return out.Body, nil
}
