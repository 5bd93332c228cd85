// Package content is the read-only client for the portal's content API.
// It fetches the canonical article and job records that get snapshotted into
// a user's saved list; nothing is ever written back.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/herathmmr/stash/internal/utils"
)

// ErrNotFound is returned when the content API has no record for an ID.
var ErrNotFound = errors.New("content not found")

// Article is the canonical news record as served by the content API.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Job is the canonical job-posting record as served by the content API.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	ImageURL    string    `json:"image_url"`
	ClosingDate time.Time `json:"closing_date"`
}

// Client talks to the content API over HTTP with a hard timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a content API client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Article fetches one news article by ID.
func (c *Client) Article(ctx context.Context, id string) (*Article, error) {
	var a Article
	if err := c.get(ctx, "/api/news/"+url.PathEscape(id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Job fetches one job posting by ID.
func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := c.get(ctx, "/api/jobs/"+url.PathEscape(id), &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content api request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("content api returned %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode content api response: %w", err)
	}

	return nil
}
