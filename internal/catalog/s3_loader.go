package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"

	"calorics/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading gzipped catalog snapshots from
// AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Loader creates an S3-based catalog snapshot loader. The key
// should be the full S3 key (including any prefix).
func NewS3Loader(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "catalog-s3-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 catalog loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// Load reads a gzipped catalog snapshot from S3 and returns a Catalog.
func (l *s3Loader) Load(ctx context.Context) (*Catalog, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.key).
		Msg("loading catalog snapshot from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, l.key, err)
	}
	defer result.Body.Close()

	gzipReader, err := gzip.NewReader(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.key).
			Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for S3 object %s: %w", l.key, err)
	}
	defer gzipReader.Close()

	var foods []model.Food
	if err := json.NewDecoder(gzipReader).Decode(&foods); err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", l.key).
			Msg("error decoding catalog snapshot from S3")
		return nil, fmt.Errorf("error decoding catalog snapshot from S3 %s: %w", l.key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", l.key).
		Int("foods_loaded", len(foods)).
		Msg("catalog snapshot loaded successfully from S3")

	return New(foods), nil
}

// fallbackLoader tries the catalog service first, then falls back to a
// snapshot loader so the engine still works offline.
type fallbackLoader struct {
	primary  Loader
	fallback Loader
	logger   zerolog.Logger
}

// NewFallbackLoader creates a loader that tries primary first and falls
// back to the snapshot loader on failure. If fallback is nil, primary
// failures are returned as-is.
func NewFallbackLoader(primary, fallback Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "catalog-fallback-loader").Logger(),
	}
}

// Load attempts the primary source first, then the fallback.
func (l *fallbackLoader) Load(ctx context.Context) (*Catalog, error) {
	cat, err := l.primary.Load(ctx)
	if err == nil {
		return cat, nil
	}

	if l.fallback == nil {
		return nil, err
	}

	l.logger.Warn().
		Err(err).
		Msg("primary catalog source failed, falling back to snapshot")

	return l.fallback.Load(ctx)
}
