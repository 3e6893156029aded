package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds connection settings for an S3-compatible image store.
type S3Config struct {
	// Endpoint overrides the S3 endpoint. Leave empty for AWS; set it for
	// MinIO or another S3-compatible store.
	Endpoint string

	// Region is the signing region.
	Region string

	// Bucket is the bucket holding uploaded images.
	Bucket string

	// AccessKeyID and SecretAccessKey are static credentials. When both
	// are empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible stores.
	UsePathStyle bool
}

// S3Store implements ImageStore on an S3-compatible bucket.
// Relative storage paths become object keys unchanged.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3 client from the config and verifies nothing;
// the first Save or Open surfaces connectivity problems.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads image content to the bucket.
func (s *S3Store) Save(ctx context.Context, relPath string, reader io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(relPath),
		Body:          reader,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	return nil
}

// Open retrieves image content from the bucket.
func (s *S3Store) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(relPath),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return out.Body, nil
}

// Delete removes an image from the bucket. S3 DeleteObject is already
// idempotent for missing keys.
func (s *S3Store) Delete(ctx context.Context, relPath string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(relPath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Ensure S3Store implements ImageStore.
var _ ImageStore = (*S3Store)(nil)
