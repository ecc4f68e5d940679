package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/config"
)

// objectPutter is the slice of the S3 API the archive needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive keeps a copy of every processed source document in a bucket.
type Archive struct {
	s3     objectPutter
	bucket string
}

// NewArchive returns (nil, nil) when ARCHIVE_BUCKET is not configured so the
// server runs without archiving.
func NewArchive(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Archive, error) {
	if cfg.ArchiveBucket == "" {
		log.Info().Msg("Source archive disabled (ARCHIVE_BUCKET not set)")
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.ArchiveRegion),
	}
	if cfg.ArchiveAccessKeyID != "" && cfg.ArchiveSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.ArchiveAccessKeyID, cfg.ArchiveSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load archive config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.ArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.ArchiveEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", cfg.ArchiveBucket).Msg("Source archive enabled")
	return &Archive{s3: client, bucket: cfg.ArchiveBucket}, nil
}

// Put uploads data under sources/<user>/<upload>/<filename> and returns the key.
func (a *Archive) Put(ctx context.Context, userID int, uploadID, filename string, data []byte) (string, error) {
	key := config.CacheKey.ArchiveObjectKey(userID, uploadID, filepath.Base(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive upload (key: %s): %w", key, err)
	}
	return key, nil
}
