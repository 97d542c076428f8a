// Package remote talks to the hosted assets table through its PostgREST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hielopolar/polar/internal/asset"
)

// ErrNotConfigured is returned by NewClient when no URL is set.
var ErrNotConfigured = errors.New("remote store not configured")

// Store is the subset of the client the sync layer depends on.
type Store interface {
	ListAssets(ctx context.Context) ([]asset.RawRow, error)
	UpsertAssets(ctx context.Context, rows ...asset.RawRow) error
	DeleteAsset(ctx context.Context, id string) error
}

var _ Store = (*Client)(nil)

// Client is a PostgREST client for one table.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	table     string
	userAgent string
}

const (
	defaultTable     = "assets"
	defaultUserAgent = "polar/0.1"
	requestTimeout   = 10 * time.Second
	restPrefix       = "/rest/v1/"
)

// NewClient builds a client for the project at baseURL.
func NewClient(baseURL, apiKey, table string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	table = strings.TrimSpace(table)
	if table == "" {
		table = defaultTable
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		apiKey:    strings.TrimSpace(apiKey),
		table:     table,
		userAgent: defaultUserAgent,
	}, nil
}

// ListAssets returns every row, newest first.
func (c *Client) ListAssets(ctx context.Context) ([]asset.RawRow, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "created_at.desc")
	var rows []asset.RawRow
	if err := c.do(ctx, http.MethodGet, values, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertAssets inserts rows, merging into any row with the same id. Columns a
// row omits keep their stored value, or the column default on insert.
func (c *Client) UpsertAssets(ctx context.Context, rows ...asset.RawRow) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(rows) == 0 {
		return nil
	}
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	values := url.Values{}
	values.Set("on_conflict", "id")
	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       "resolution=merge-duplicates,missing=default,return=minimal",
	}
	return c.do(ctx, http.MethodPost, values, headers, body, nil)
}

// DeleteAsset removes the row with id. Deleting a missing row is not an error.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("asset id required")
	}
	values := url.Values{}
	values.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, values, map[string]string{"Prefer": "return=minimal"}, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, query url.Values, headers map[string]string, body []byte, dest any) error {
	rel := &url.URL{Path: restPrefix + c.table, RawQuery: query.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s %s returned status %d%s", method, rel.Path, resp.StatusCode, errorDetail(resp.Body))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the PostgREST error message when the body carries one.
func errorDetail(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || json.Unmarshal(data, &payload) != nil || payload.Message == "" {
		return ""
	}
	return ": " + payload.Message
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNotConfigured
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse remote url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse remote url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
