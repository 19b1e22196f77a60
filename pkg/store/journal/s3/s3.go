// Package s3 stores the journal as a single object in an S3 bucket.
//
// Any S3-compatible service works (AWS, MinIO, Localstack). PutObject replaces
// the object atomically, so readers never see a partial journal.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// DefaultKey is the object key used when none is configured.
const DefaultKey = "entries.json"

// Client is the subset of the S3 API the backend needs. *s3.Client
// satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Backend implements journal.Backend on one S3 object.
type S3Backend struct {
	client Client
	bucket string
	key    string
}

// S3BackendConfig contains configuration for the S3 backend.
type S3BackendConfig struct {
	// Client is the configured S3 client
	Client Client

	// Bucket is the S3 bucket name. It must already exist.
	Bucket string

	// Key is the object key. Default: DefaultKey
	Key string
}

// NewS3Backend validates cfg and verifies bucket access.
func NewS3Backend(ctx context.Context, cfg S3BackendConfig) (*S3Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		return nil, fmt.Errorf("S3 client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	b := &S3Backend{
		client: cfg.Client,
		bucket: cfg.Bucket,
		key:    key,
	}

	if err := b.Healthcheck(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *S3Backend) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("s3://%s/%s: %w", b.bucket, b.key, journal.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer func() { _ = result.Body.Close() }()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body from S3: %w", err)
	}
	return data, nil
}

func (b *S3Backend) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object to S3: %w", err)
	}
	return nil
}

// Healthcheck verifies the bucket is reachable with the configured
// credentials.
func (b *S3Backend) Healthcheck(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %q: %w", b.bucket, err)
	}
	return nil
}

func (b *S3Backend) Close() error {
	return nil
}

func (b *S3Backend) Name() string {
	return "s3"
}
