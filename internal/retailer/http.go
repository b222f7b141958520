package retailer

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

	"github.com/donaldgifford/grocery-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

const (
	defaultLimit     = 8
	defaultUserAgent = "grocery-price-tracker/1.0"
	maxBodyBytes     = 4 << 20
)

// HTTPSource queries a retailer search endpoint returning SearchResponse
// JSON.
type HTTPSource struct {
	name        string
	baseURL     string
	userAgent   string
	client      *http.Client
	rateLimiter *RateLimiter
}

// HTTPOption configures the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = hc
	}
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client = &http.Client{Timeout: d}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}

// WithRateLimiter injects a rate limiter. When set, every Search call goes
// through Wait first.
func WithRateLimiter(r *RateLimiter) HTTPOption {
	return func(s *HTTPSource) {
		s.rateLimiter = r
	}
}

// NewHTTPSource creates a source named name that searches baseURL.
func NewHTTPSource(name, baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		name:      name,
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *HTTPSource) Name() string {
	return s.name
}

// Search implements Source.
func (s *HTTPSource) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.RetailerDailyLimitHits.WithLabelValues(s.name).Inc()
			}
			metrics.RetailerRequestsTotal.WithLabelValues(s.name, "rate_limited").Inc()
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.RetailerDailyUsage.WithLabelValues(s.name).Set(float64(s.rateLimiter.DailyCount()))
	}

	start := time.Now()
	products, err := s.fetch(ctx, query, limit)
	metrics.RetailerRequestDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RetailerRequestsTotal.WithLabelValues(s.name, "error").Inc()
		return nil, err
	}
	metrics.RetailerRequestsTotal.WithLabelValues(s.name, "ok").Inc()

	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	metrics.RetailerCandidatesTotal.WithLabelValues(s.name).Add(float64(len(products)))

	return ToCandidates(s.name, products), nil
}

func (s *HTTPSource) fetch(ctx context.Context, query string, limit int) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildSearchURL(query, limit), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s search error (status %d): %s", s.name, resp.StatusCode, string(body))
	}

	var sr SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Products, nil
}

func (s *HTTPSource) buildSearchURL(query string, limit int) string {
	if limit <= 0 {
		limit = defaultLimit
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	return s.baseURL + "?" + params.Encode()
}
