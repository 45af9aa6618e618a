package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"calorics/internal/api"
	"calorics/internal/model"

	"github.com/rs/zerolog"
)

// serviceLoader implements Loader by fetching the catalog from the
// backend catalog service.
type serviceLoader struct {
	client api.Client
	logger zerolog.Logger
}

// NewServiceLoader creates a loader backed by the catalog service.
func NewServiceLoader(client api.Client, logger zerolog.Logger) Loader {
	return &serviceLoader{
		client: client,
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load fetches the full food list from the backend.
func (l *serviceLoader) Load(ctx context.Context) (*Catalog, error) {
	foods, err := l.client.Foods(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to fetch food catalog")
		return nil, fmt.Errorf("failed to fetch food catalog: %w", err)
	}

	l.logger.Info().Int("foods_loaded", len(foods)).Msg("catalog loaded from service")
	return New(foods), nil
}

// fileLoader implements Loader for reading gzipped catalog snapshots.
type fileLoader struct {
	path   string
	logger zerolog.Logger
}

// NewFileLoader creates a loader for a local gzipped JSON snapshot of
// the food catalog.
func NewFileLoader(path string, logger zerolog.Logger) Loader {
	return &fileLoader{
		path:   path,
		logger: logger.With().Str("component", "catalog-file-loader").Logger(),
	}
}

// Load reads a gzipped snapshot file and returns a Catalog. The file is
// expected to contain a JSON array of foods with nested servings.
func (l *fileLoader) Load(ctx context.Context) (*Catalog, error) {
	l.logger.Info().Str("file", l.path).Msg("loading catalog snapshot")

	file, err := os.Open(l.path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.path).Msg("failed to open catalog snapshot")
		return nil, fmt.Errorf("failed to open catalog snapshot %s: %w", l.path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", l.path, err)
	}
	defer gzipReader.Close()

	if err := ctx.Err(); err != nil {
		l.logger.Warn().Str("file", l.path).Msg("catalog loading cancelled")
		return nil, err
	}

	var foods []model.Food
	if err := json.NewDecoder(gzipReader).Decode(&foods); err != nil {
		l.logger.Error().Err(err).Str("file", l.path).Msg("error decoding catalog snapshot")
		return nil, fmt.Errorf("error decoding catalog snapshot %s: %w", l.path, err)
	}

	l.logger.Info().
		Str("file", l.path).
		Int("foods_loaded", len(foods)).
		Msg("catalog snapshot loaded successfully")

	return New(foods), nil
}
