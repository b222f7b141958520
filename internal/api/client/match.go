package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

type queryBody struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity,omitempty"`
}

func toBody(q domain.Query) queryBody {
	return queryBody{ID: q.ID, Name: q.Name, Quantity: q.Quantity}
}

func freshParam(fresh bool) string {
	if fresh {
		return "?fresh=true"
	}
	return ""
}

// Match matches one product. With fresh set the server ignores its cache.
func (c *Client) Match(ctx context.Context, q domain.Query, fresh bool) (*domain.MatchResult, error) {
	var r domain.MatchResult
	if err := c.post(ctx, "/api/v1/match"+freshParam(fresh), toBody(q), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MatchBatch matches many products in one request. Results keep input order.
func (c *Client) MatchBatch(ctx context.Context, queries []domain.Query, fresh bool) ([]*domain.MatchResult, error) {
	body := struct {
		Queries []queryBody `json:"queries"`
	}{Queries: make([]queryBody, len(queries))}
	for i, q := range queries {
		body.Queries[i] = toBody(q)
	}

	var out struct {
		Results []*domain.MatchResult `json:"results"`
	}
	if err := c.post(ctx, "/api/v1/match/batch"+freshParam(fresh), body, &out); err != nil {
		return nil, err
	}
	if len(out.Results) != len(queries) {
		return nil, fmt.Errorf("server returned %d results for %d queries", len(out.Results), len(queries))
	}
	return out.Results, nil
}

// Retailers returns the server's retailers in priority order.
func (c *Client) Retailers(ctx context.Context) ([]string, error) {
	var out struct {
		Retailers []string `json:"retailers"`
	}
	if err := c.get(ctx, "/api/v1/retailers", &out); err != nil {
		return nil, err
	}
	return out.Retailers, nil
}

// CacheStats returns the server's cache statistics.
func (c *Client) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	var st domain.CacheStats
	err := c.get(ctx, "/api/v1/cache/stats", &st)
	return st, err
}

// ClearCache deletes the server's cached results and returns how many were
// removed.
func (c *Client) ClearCache(ctx context.Context) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	if err := c.del(ctx, "/api/v1/cache", &out); err != nil {
		return 0, err
	}
	return out.Removed, nil
}

// Run mirrors the server's run summary.
type Run struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Queries   int       `json:"queries"`
	Found     int       `json:"found"`
}

// ListRuns returns recent runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	path := "/api/v1/runs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Runs []Run `json:"runs"`
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Runs, nil
}

// ResultFilter selects stored results. Empty fields are not sent.
type ResultFilter struct {
	RunID      string
	ProductKey string
	Retailer   string
	Level      string
	FoundOnly  bool
	Limit      int
	Offset     int
}

func (f ResultFilter) encode() string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("run_id", f.RunID)
	set("product_key", f.ProductKey)
	set("retailer", f.Retailer)
	set("level", f.Level)
	if f.FoundOnly {
		v.Set("found_only", "true")
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListResults returns stored results and the total matching count.
func (c *Client) ListResults(ctx context.Context, f ResultFilter) ([]domain.MatchResult, int, error) {
	var out struct {
		Results []domain.MatchResult `json:"results"`
		Total   int                  `json:"total"`
	}
	if err := c.get(ctx, "/api/v1/results"+f.encode(), &out); err != nil {
		return nil, 0, err
	}
	return out.Results, out.Total, nil
}
