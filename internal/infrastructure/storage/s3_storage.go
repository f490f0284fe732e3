// Package storage provides cloud delivery targets for claim artifacts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cenkalti/backoff/v4"
	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	infraconfig "github.com/claimdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ArtifactReader loads artifact bytes by file reference
type ArtifactReader interface {
	Read(ctx context.Context, fileRef string) ([]byte, error)
}

// Ensure S3CloudService implements the cloud delivery port
var _ appclaims.CloudService = (*S3CloudService)(nil)

// S3CloudService delivers claim artifacts to S3-compatible storage
// (AWS S3, MinIO, RustFS, ...). Uploads are retried with exponential
// backoff since cloud delivery is a network operation.
type S3CloudService struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	reader            ArtifactReader
	bucket            string
	presignExpiration time.Duration
	maxRetries        int
	logger            *zap.Logger
}

// NewS3CloudService creates an S3CloudService from configuration
func NewS3CloudService(cfg *infraconfig.StorageConfig, reader ArtifactReader, logger *zap.Logger) (*S3CloudService, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3CloudService{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		reader:            reader,
		bucket:            cfg.Bucket,
		presignExpiration: cfg.PresignExpiration,
		maxRetries:        cfg.MaxRetries,
		logger:            logger,
	}, nil
}

// Name identifies the service in correspondence records and logs
func (s *S3CloudService) Name() string { return "S3" }

// Upload stores the claim artifact under claims/<fileName> and returns a
// presigned download URL the insurer can retrieve the file from
func (s *S3CloudService) Upload(ctx context.Context, fileRef, fileName string) (string, error) {
	data, err := s.reader.Read(ctx, fileRef)
	if err != nil {
		return "", claims.ErrFileNotFound
	}

	key := "claims/" + fileName
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	operation := func() error {
		_, putErr := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        strings.NewReader(string(data)),
			ContentType: aws.String(contentType),
		})
		return putErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxRetries)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		s.logger.Warn("claim upload attempt failed, retrying",
			zap.String("key", key),
			zap.Duration("next_attempt_in", next),
			zap.Error(err))
	}); err != nil {
		return "", claims.NewNetworkError(err)
	}

	presigned, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}

	s.logger.Info("claim artifact uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	return presigned.URL, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Call during startup.
func (s *S3CloudService) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	s.logger.Info("creating storage bucket", zap.String("bucket", s.bucket))
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		// Another process may have created it between the check and now
		if strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
