// Package api implements the HTTP client for the calorics backend. The
// backend owns persistence and all profile-derived numbers; this client
// only moves payloads and maps failures onto the error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"calorics/internal/model"
	"calorics/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client defines the backend operations the engine depends on.
type Client interface {
	// Foods returns the full food catalog with nested servings.
	Foods(ctx context.Context) ([]model.Food, error)

	// UserStats returns the stats payload for one calendar day.
	UserStats(ctx context.Context, date string) (*model.UserStats, error)

	// CreateEntry logs a catalog food. The server is authoritative for
	// the returned entry's ID and calories.
	CreateEntry(ctx context.Context, req model.FoodEntryRequest) (*model.FoodEntry, error)

	// CreateDirectEntry logs a free-form food with explicit calories.
	CreateDirectEntry(ctx context.Context, req model.DirectEntryRequest) (*model.FoodEntry, error)

	// DeleteEntry removes a logged entry.
	DeleteEntry(ctx context.Context, id uint64) error

	// FoodSets lists the user's stored food sets.
	FoodSets(ctx context.Context) ([]model.FoodSet, error)

	// CreateFoodSet stores a new food set.
	CreateFoodSet(ctx context.Context, req model.FoodSetRequest) (*model.FoodSet, error)

	// DeleteFoodSet removes a food set permanently.
	DeleteFoodSet(ctx context.Context, id uint64) error

	// ApplyFoodSet materialises every entry of a set as food entries on
	// the given date. The response carries no entries; callers reload.
	ApplyFoodSet(ctx context.Context, id uint64, date string) error
}

// httpClient implements Client against the calorics REST API.
type httpClient struct {
	baseURL string
	session *session.Session
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates a backend client. baseURL is the API root, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, sess *session.Session, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		session: sess,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "api-client").Logger(),
	}
}

func (c *httpClient) Foods(ctx context.Context) ([]model.Food, error) {
	var foods []model.Food
	if err := c.do(ctx, http.MethodGet, "/foods", nil, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (c *httpClient) UserStats(ctx context.Context, date string) (*model.UserStats, error) {
	if !model.ValidDate(date) {
		return nil, model.ErrInvalidDate
	}
	var stats model.UserStats
	path := "/user/stats?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *httpClient) CreateEntry(ctx context.Context, req model.FoodEntryRequest) (*model.FoodEntry, error) {
	var entry model.FoodEntry
	if err := c.do(ctx, http.MethodPost, "/food-entries", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *httpClient) CreateDirectEntry(ctx context.Context, req model.DirectEntryRequest) (*model.FoodEntry, error) {
	var entry model.FoodEntry
	if err := c.do(ctx, http.MethodPost, "/food-entries/direct", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *httpClient) DeleteEntry(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/food-entries/%d", id), nil, nil)
}

func (c *httpClient) FoodSets(ctx context.Context) ([]model.FoodSet, error) {
	var sets []model.FoodSet
	if err := c.do(ctx, http.MethodGet, "/food-sets", nil, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (c *httpClient) CreateFoodSet(ctx context.Context, req model.FoodSetRequest) (*model.FoodSet, error) {
	var set model.FoodSet
	if err := c.do(ctx, http.MethodPost, "/food-sets", req, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (c *httpClient) DeleteFoodSet(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/food-sets/%d", id), nil, nil)
}

func (c *httpClient) ApplyFoodSet(ctx context.Context, id uint64, date string) error {
	if !model.ValidDate(date) {
		return model.ErrInvalidDate
	}
	path := fmt.Sprintf("/food-sets/%d/apply?date=%s", id, url.QueryEscape(date))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do performs one request against the backend. A nil out means the
// response body is discarded (2xx with no payload expected).
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	credential, err := c.session.Credential()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	correlationID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("X-Correlation-ID", correlationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("correlation_id", correlationID).
			Msg("transport failure")
		return model.NewNetworkError(fmt.Sprintf("request to %s failed: %v", path, err))
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("correlation_id", correlationID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp, method, path)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return model.NewRequestFailed(fmt.Sprintf("failed to decode %s response: %v", path, err))
	}
	return nil
}

// responseError maps a non-2xx response onto the error taxonomy,
// preferring the backend's own message when the body carries one.
func (c *httpClient) responseError(resp *http.Response, method, path string) error {
	message := fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)

	var payload model.ErrorResponse
	raw, err := io.ReadAll(resp.Body)
	if err == nil && len(raw) > 0 {
		if jsonErr := json.Unmarshal(raw, &payload); jsonErr == nil && payload.Error != "" {
			message = payload.Error
		}
	}

	c.logger.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("message", message).
		Msg("backend request failed")

	if resp.StatusCode == http.StatusNotFound {
		return model.NewDomainError(model.ErrCodeNotFound, message)
	}
	return model.NewRequestFailed(message)
}
