package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/presencedash/models"
)

const (
	usersPath   = "/api/v1/users"
	periodsPath = "/api/v1/presence_location_view"
)

// Client talks to the presence analysis API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	users   *models.Cache[[]models.User]
	details *models.Cache[models.UserDetails]
	periods *models.Cache[[]models.Period]
}

// NewClient creates a client for baseURL. A zero timeout leaves requests unbounded,
// a zero cacheTTL disables the dropdown cache.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		users:      models.NewCache[[]models.User](cacheTTL),
		details:    models.NewCache[models.UserDetails](cacheTTL),
		periods:    models.NewCache[[]models.Period](cacheTTL),
	}
}

// Fetch issues one GET for path and classifies the outcome. It never retries.
func (c *Client) Fetch(ctx context.Context, path string) models.FetchOutcome {
	endpoint := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.OtherError(0, fmt.Errorf("failed to create request for %s: %w", endpoint, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "analysis api request failed", "endpoint", endpoint, "error", err)
		return models.OtherError(0, fmt.Errorf("request for %s failed: %w", endpoint, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.NotFound()
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.OtherError(resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.OtherError(resp.StatusCode, fmt.Errorf("failed to read response for %s: %w", endpoint, err))
	}
	return models.Success(body)
}

// Users lists the subjects for the #user-id dropdown
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	if users, ok := c.users.Load(usersPath); ok {
		return users, nil
	}
	var users []models.User
	if err := c.getJSON(ctx, usersPath, &users); err != nil {
		return nil, fmt.Errorf("failed to download users: %w", err)
	}
	c.users.Store(usersPath, users)
	return users, nil
}

// User downloads the name and avatar of one subject
func (c *Client) User(ctx context.Context, id string) (models.UserDetails, error) {
	path := usersPath + "/" + url.PathEscape(id)
	if details, ok := c.details.Load(path); ok {
		return details, nil
	}
	var details models.UserDetails
	if err := c.getJSON(ctx, path, &details); err != nil {
		return models.UserDetails{}, fmt.Errorf("failed to download user %s: %w", id, err)
	}
	c.details.Store(path, details)
	return details, nil
}

// Periods lists the month keys for the location views
func (c *Client) Periods(ctx context.Context) ([]models.Period, error) {
	if periods, ok := c.periods.Load(periodsPath); ok {
		return periods, nil
	}
	var periods []models.Period
	if err := c.getJSON(ctx, periodsPath, &periods); err != nil {
		return nil, fmt.Errorf("failed to download periods: %w", err)
	}
	c.periods.Store(periodsPath, periods)
	return periods, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	outcome := c.Fetch(ctx, path)
	if err := outcome.Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(outcome.Body, v); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", models.ErrDecode, path, err)
	}
	return nil
}
