// Package tips fetches short savings tips from a quote API.
package tips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrTipFetchFailed = errors.New("the tip service could not be reached")
	ErrMalformedTip   = errors.New("the tip response could not be decoded")
)

// Tip is a single quote shown on the home screen.
type Tip struct {
	ID     string
	Text   string
	Author string
}

// Client fetches tips from a quotable-style HTTP API.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a tip client for the endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type tipResponse struct {
	ID      string `json:"_id"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// FetchTip requests a random tip.
func (c *Client) FetchTip(ctx context.Context) (Tip, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Tip{}, fmt.Errorf("%w: %s", ErrTipFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Tip{}, fmt.Errorf("%w: %s", ErrTipFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("url", c.endpoint).Int("status", resp.StatusCode).Msg("tip request failed")
		return Tip{}, fmt.Errorf("%w: status %d", ErrTipFetchFailed, resp.StatusCode)
	}

	var decoded tipResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Tip{}, fmt.Errorf("%w: %s", ErrMalformedTip, err)
	}

	return Tip{ID: decoded.ID, Text: decoded.Content, Author: decoded.Author}, nil
}
