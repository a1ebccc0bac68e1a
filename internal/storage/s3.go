package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/config"
)

// S3Backend stores images in an S3-compatible object store. Objects
// are written publicly readable so their URLs can be embedded in
// product payloads directly.
type S3Backend struct {
	client    *s3.Client
	bucket    string
	publicURL string
	maxBytes  int64
	logger    zerolog.Logger
}

// NewS3Backend creates an S3 backend from the storage configuration.
func NewS3Backend(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (*S3Backend, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return &S3Backend{
		client:    client,
		bucket:    cfg.S3.Bucket,
		publicURL: publicURLPrefix(cfg.S3),
		maxBytes:  cfg.MaxUploadBytes,
		logger:    logger.With().Str("component", "s3_storage").Logger(),
	}, nil
}

// publicURLPrefix derives the base URL images are served from.
func publicURLPrefix(cfg config.S3StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.UsePathStyle {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Store uploads the image and returns its public URL.
func (b *S3Backend) Store(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	if size > b.maxBytes {
		return "", ErrBlobTooLarge
	}

	key := path.Join(productImagePrefix, uuid.New().String()+extensionFor(contentType))

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          io.LimitReader(reader, b.maxBytes),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	b.logger.Debug().Str("key", key).Int64("bytes", size).Msg("stored image")

	return b.publicURL + "/" + key, nil
}

// Ensure S3Backend implements Backend.
var _ Backend = (*S3Backend)(nil)
