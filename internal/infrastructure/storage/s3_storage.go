// Package storage writes export files to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoredObject describes an uploaded object and a temporary download link
type StoredObject struct {
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// S3ExportStorage uploads export files and presigns download URLs.
// It works with AWS S3 and S3-compatible services such as MinIO.
type S3ExportStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	prefix            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3ExportStorageOption is a functional option for configuring S3ExportStorage
type S3ExportStorageOption func(*S3ExportStorage)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3ExportStorageOption {
	return func(s *S3ExportStorage) {
		s.logger = logger
	}
}

// NewS3ExportStorage creates the storage from configuration. Static
// credentials are used when configured, otherwise the default AWS chain.
func NewS3ExportStorage(ctx context.Context, cfg config.StorageConfig, opts ...S3ExportStorageOption) (*S3ExportStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "ap-northeast-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	s := &S3ExportStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		prefix:            strings.Trim(cfg.Prefix, "/"),
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = 15 * time.Minute
	}
	return s, nil
}

// ObjectKey builds "<prefix>/<tenant>/<name>"
func (s *S3ExportStorage) ObjectKey(tenant, name string) string {
	return path.Join(s.prefix, tenant, name)
}

// Store uploads data under key and returns a presigned download URL
func (s *S3ExportStorage) Store(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	s.logger.Info("Export uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	url, expiresAt, err := s.PresignDownload(ctx, key)
	if err != nil {
		return nil, err
	}
	return &StoredObject{Bucket: s.bucket, Key: key, DownloadURL: url, ExpiresAt: expiresAt}, nil
}

// PresignDownload generates a presigned GET URL valid for the configured duration
func (s *S3ExportStorage) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return req.URL, time.Now().Add(s.presignExpiration), nil
}

// Bucket returns the bucket name
func (s *S3ExportStorage) Bucket() string {
	return s.bucket
}
