package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidPayload is returned when the provider answers 2xx with a body
// that is not JSON.
var ErrInvalidPayload = errors.New("provider returned invalid JSON")

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("item overview %s: status %d", e.URL, e.Code)
}

// Fetcher loads parsed item overviews. *Client implements it.
type Fetcher interface {
	Items(ctx context.Context, league, itemType string) ([]Item, error)
}

// Client talks to the item-pricing provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client rooted at baseURL (e.g. https://poe.ninja).
// A nil httpClient uses http.DefaultClient; no overall timeout is applied,
// the caller's context bounds each request.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// OverviewURL builds the provider URL for a league and item type.
func (c *Client) OverviewURL(league, itemType string) string {
	q := url.Values{}
	q.Set("league", league)
	q.Set("type", itemType)
	return c.baseURL + "/api/data/itemoverview?" + q.Encode()
}

// Overview returns the provider's response body verbatim.
func (c *Client) Overview(ctx context.Context, league, itemType string) ([]byte, error) {
	u := c.OverviewURL(league, itemType)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching item overview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading item overview: %w", err)
	}
	if !json.Valid(body) {
		return nil, ErrInvalidPayload
	}

	c.logger.Debug("fetched item overview",
		zap.String("league", league),
		zap.String("item_type", itemType),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

// Items fetches an overview and decodes its lines. Each returned item has
// ItemType set to the requested type.
func (c *Client) Items(ctx context.Context, league, itemType string) ([]Item, error) {
	body, err := c.Overview(ctx, league, itemType)
	if err != nil {
		return nil, err
	}
	var ov Overview
	if err := json.Unmarshal(body, &ov); err != nil {
		return nil, fmt.Errorf("decoding item overview: %w", err)
	}
	for i := range ov.Lines {
		ov.Lines[i].ItemType = itemType
	}
	return ov.Lines, nil
}
