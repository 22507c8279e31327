package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrFetchFailed covers every way a page fetch can fail: network error, non-2xx
// status, malformed body. Callers only ever need failed vs succeeded.
var ErrFetchFailed = errors.New("transaction fetch failed")

// Client fetches transaction pages from the remote API.
type Client struct {
	client  *http.Client
	baseURL string
	path    string
}

// NewClient creates a client for the transactions endpoint. timeoutSec of 0
// leaves the underlying client without a timeout.
func NewClient(baseURL, path string, timeoutSec int) *Client {
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		baseURL: baseURL,
		path:    path,
	}
}

// FetchPage issues GET {base}{path}?page={page}&limit={limit} and decodes the
// page envelope. Page is 1-indexed on the wire.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*PageResult, error) {
	preq := PageRequest{Page: page, Limit: limit}
	preq.Validate()

	u, err := url.Parse(c.baseURL + c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint url: %v", ErrFetchFailed, err)
	}
	query := u.Query()
	query.Set("page", strconv.Itoa(preq.Page))
	query.Set("limit", strconv.Itoa(preq.Limit))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "txview")

	reqID := uuid.NewString()
	log.Debug().
		Str("request_id", reqID).
		Str("url", u.String()).
		Msg("fetching transactions page")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Str("request_id", reqID).Err(err).Msg("fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debug().Str("request_id", reqID).Int("status_code", resp.StatusCode).Msg("fetch failed")
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetchFailed, resp.Status)
	}

	var result PageResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Debug().Str("request_id", reqID).Err(err).Msg("fetch failed")
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}

	log.Debug().
		Str("request_id", reqID).
		Int("rows", len(result.Transactions)).
		Int("current_page", result.CurrentPage).
		Int("total_pages", result.TotalPages).
		Msg("received transactions page")

	return &result, nil
}

// Ping checks that the transactions endpoint answers at all. Used by the
// startup probe, never by the fetch cycle.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.FetchPage(ctx, 1, 1)
	return err
}
