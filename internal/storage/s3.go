// Package storage keeps generated images in S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotConfigured is returned when S3 settings are incomplete.
var ErrNotConfigured = errors.New("AWS S3 credentials are not set")

// ObjectAPI is the part of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config selects the bucket and image handling.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Folder          string
	MaxDimension    int
	JPEGQuality     int
}

// Configured reports whether uploads can be attempted.
func (c Config) Configured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Region != "" && c.Bucket != ""
}

// S3 uploads and deletes image objects.
type S3 struct {
	api    ObjectAPI
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// NewS3 builds a client from static credentials.
func NewS3(ctx context.Context, cfg Config, logger *slog.Logger) (*S3, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return New(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

// New wraps an existing object API.
func New(api ObjectAPI, cfg Config, logger *slog.Logger) *S3 {
	if cfg.Folder == "" {
		cfg.Folder = defaultFolder
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 85
	}

	return &S3{
		api:    api,
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// Upload stores data under a key derived from prompt and returns its URL.
func (s *S3) Upload(ctx context.Context, data []byte, prompt string) (string, error) {
	p, err := Prepare(data, s.cfg.MaxDimension, s.cfg.JPEGQuality)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image: %w", err)
	}

	key := ObjectKey(s.cfg.Folder, prompt, p.Extension, s.now())
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.Data),
		ContentType: aws.String(p.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := ObjectURL(s.cfg.Bucket, s.cfg.Region, key)
	s.logger.Info("Uploaded image", "key", key, "bytes", len(p.Data), "width", p.Width, "height", p.Height)

	return url, nil
}

// Delete removes the object addressed by url.
func (s *S3) Delete(ctx context.Context, url string) error {
	bucket, key, err := ParseObjectURL(url)
	if err != nil {
		return err
	}

	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	s.logger.Info("Deleted image", "bucket", bucket, "key", key)

	return nil
}
