// Package api is the typed client for the remote fleet backend. Each
// resource has its own file with conversion helpers between wire and domain
// types. No business logic lives here, only HTTP plumbing and type mapping.
//
// Failure mapping: connection errors and unexpected statuses wrap
// domain.ErrFetch, HTTP 404 wraps domain.ErrNotFound, and HTTP 400/422 wrap
// domain.ErrValidation with the backend's message. Timeouts belong to the
// injected http.Client; retry policy is the backend operator's concern, not
// this client's.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkordes/fleet-console/internal/dateutil"
	"github.com/pkordes/fleet-console/internal/domain"
)

const basePath = "/api/v1"

// Client talks to one fleet backend.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a Client for the backend at baseURL. A nil httpClient falls
// back to http.DefaultClient; production wiring passes one with a timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api.New: invalid backend URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: u, http: httpClient}, nil
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one request. out may be nil for responses without a body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + basePath + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrFetch, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s: unexpected status %d", domain.ErrFetch, method, path, resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", domain.ErrFetch, method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// listQuery encodes list parameters the way the backend expects:
// search, repeated status values, sortBy/sortOrder, page/limit, and the
// optional from/to date window.
func listQuery(p domain.ListParams) url.Values {
	p = p.Normalize()
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	for _, f := range p.Filters {
		q.Add("status", f)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
		q.Set("sortOrder", p.SortOrder)
	}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.From != nil {
		q.Set("from", p.From.Format(dateutil.DayLayout))
	}
	if p.To != nil {
		q.Set("to", p.To.Format(dateutil.DayLayout))
	}
	return q
}

// listEnvelope mirrors the backend's paginated list response.
type listEnvelope[W any] struct {
	Items           []W  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// listPage fetches one page of wire records and maps them into domain types.
// The pagination fields are echoed verbatim; the client never recomputes them.
func listPage[W, T any](ctx context.Context, c *Client, path string, p domain.ListParams, conv func(W) T) (domain.Page[T], error) {
	var env listEnvelope[W]
	if err := c.get(ctx, path, listQuery(p), &env); err != nil {
		return domain.Page[T]{}, err
	}
	page := domain.Page[T]{
		Items:           make([]T, len(env.Items)),
		TotalCount:      env.TotalCount,
		TotalPages:      env.TotalPages,
		HasNextPage:     env.HasNextPage,
		HasPreviousPage: env.HasPreviousPage,
	}
	for i, w := range env.Items {
		page.Items[i] = conv(w)
	}
	return page, nil
}

// getSummary fetches a pre-aggregated summary; a 404 means the backend has
// none for this entity, which callers treat as "fall back to client-side
// reduction", not as an error.
func (c *Client) getSummary(ctx context.Context, path string) (*domain.SummaryStats, error) {
	var stats domain.SummaryStats
	err := c.get(ctx, path, nil, &stats)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}
