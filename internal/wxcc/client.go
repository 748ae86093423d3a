// Package wxcc provides a client for the Webex Contact Center GraphQL
// Search API and typed decoding of its response shapes.
package wxcc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// ClientConfig holds the configuration for connecting to the Search API.
type ClientConfig struct {
	// BaseURL is the data-center API URL (e.g., "https://api.wxcc-us1.cisco.com").
	BaseURL string
	// AccessToken is the OAuth2 bearer token.
	AccessToken string
	// OrgID is the organization id. Kept for configuration completeness;
	// the current query documents never send it on the wire.
	OrgID string
}

// Client executes GraphQL documents against the /search endpoint.
// One attempt per call; retries are the caller's responsibility.
type Client struct {
	httpClient *http.Client
	searchURL  string
	token      string
	logger     *slog.Logger
}

// NewClient creates a Search API client with bearer auth and a fixed
// 30-second request timeout.
func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		searchURL:  strings.TrimRight(cfg.BaseURL, "/") + "/search",
		token:      cfg.AccessToken,
		logger:     logger,
	}, nil
}

// GraphQLError is one error object returned by the remote API, kept verbatim.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// TransportError indicates the request never produced a usable GraphQL
// response: network failure, malformed body, or a non-2xx status.
type TransportError struct {
	Status int // 0 when no HTTP response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("search request failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("search request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// QueryError indicates the transport exchange succeeded but the response
// carried a non-empty errors list. Any accompanying data is discarded.
type QueryError struct {
	Errors []GraphQLError
}

func (e *QueryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return fmt.Sprintf("query failed: %s", strings.Join(msgs, "; "))
}

// response is the GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Execute sends a query document with variables and returns the raw data
// payload. Returns *TransportError on HTTP-level failure and *QueryError
// when the body contains GraphQL errors. An absent data field decodes as
// an empty JSON object.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query payload: %w", err)
	}

	c.logger.Debug("executing query", "query", truncate(query, 100))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %s", strings.TrimSpace(truncate(string(body), 200))),
		}
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if len(r.Errors) > 0 {
		return nil, &QueryError{Errors: r.Errors}
	}
	if len(r.Data) == 0 {
		return []byte("{}"), nil
	}
	return r.Data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back up to a rune boundary so a multi-byte rune is never split.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
