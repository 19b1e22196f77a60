package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mitchellh/mapstructure"
	"github.com/twnkl2713/moodflow/internal/logger"
	storejournal "github.com/twnkl2713/moodflow/pkg/store/journal"
	journalS3 "github.com/twnkl2713/moodflow/pkg/store/journal/s3"
)

// S3StorageConfig is the storage.s3 section.
type S3StorageConfig struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Key             string `mapstructure:"key"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	MaxRetries      int    `mapstructure:"max_retries"`
}

// createS3Backend creates an S3-based journal backend.
func createS3Backend(ctx context.Context, options map[string]any) (storejournal.Backend, error) {
	var storeCfg S3StorageConfig
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode S3 storage config: %w", err)
	}

	if storeCfg.Bucket == "" {
		return nil, fmt.Errorf("S3 storage: bucket is required")
	}
	if storeCfg.Region == "" {
		return nil, fmt.Errorf("S3 storage: region is required")
	}

	client, err := NewS3Client(ctx, storeCfg)
	if err != nil {
		return nil, err
	}

	backend, err := journalS3.NewS3Backend(ctx, journalS3.S3BackendConfig{
		Client: client,
		Bucket: storeCfg.Bucket,
		Key:    storeCfg.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 journal backend: %w", err)
	}

	logger.Info("S3 journal backend initialized: bucket=%s, region=%s, key=%s",
		storeCfg.Bucket, storeCfg.Region, storeCfg.Key)

	return backend, nil
}

// NewS3Client builds an S3 client from the storage.s3 section.
//
// Static credentials are used when both keys are set, otherwise the default
// AWS credential chain. A custom endpoint (MinIO, Localstack) switches to
// path-style addressing.
func NewS3Client(ctx context.Context, storeCfg S3StorageConfig) (*s3.Client, error) {
	// ========================================================================
	// Step 1: Build AWS Config
	// ========================================================================

	var configOptions []func(*awsConfig.LoadOptions) error

	configOptions = append(configOptions, awsConfig.WithRegion(storeCfg.Region))

	if storeCfg.AccessKeyID != "" && storeCfg.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			storeCfg.AccessKeyID,
			storeCfg.SecretAccessKey,
			"", // session token (empty for static credentials)
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	// The journal is rewritten on every mutation, so ride out transient
	// 5xx and throttling responses rather than failing the request.
	maxRetries := storeCfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 5
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxRetries
		})
	}))

	cfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// ========================================================================
	// Step 2: Create S3 Client
	// ========================================================================

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storeCfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(storeCfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
