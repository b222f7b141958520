package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Match(context.Background(), domain.Query{Name: "Milk"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"title":"Service Unavailable"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CacheStats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "Service Unavailable", apiErr.Detail)
	assert.Contains(t, err.Error(), "API error (HTTP 503)")
}

func TestClient_HTTPErrorPlainBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Retailers(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Detail)
}

func TestNewAPIError_ProblemDetail(t *testing.T) {
	t.Parallel()

	err := newAPIError(http.StatusUnprocessableEntity,
		[]byte(`{"title":"Unprocessable Entity","detail":"validation failed","status":422}`))
	assert.Equal(t, "Unprocessable Entity: validation failed", err.Detail)
}

func TestClient_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fresh     bool
		wantQuery string
	}{
		{name: "cached", fresh: false, wantQuery: ""},
		{name: "fresh", fresh: true, wantQuery: "fresh=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/match", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body queryBody
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "Heinz Baked Beans 415g", body.Name)
				assert.Equal(t, 4, body.Quantity)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(domain.MatchResult{
					Query:      domain.Query{Name: body.Name, Quantity: body.Quantity},
					Found:      true,
					ProductKey: "heinz:415g:4",
				})
			}))
			defer srv.Close()

			r, err := New(srv.URL+"/").Match(context.Background(),
				domain.Query{Name: "Heinz Baked Beans 415g", Quantity: 4}, tt.fresh)
			require.NoError(t, err)
			assert.True(t, r.Found)
			assert.Equal(t, "heinz:415g:4", r.ProductKey)
		})
	}
}

func TestClient_MatchBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/match/batch", r.URL.Path)

		var body struct {
			Queries []queryBody `json:"queries"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		out := struct {
			Results []domain.MatchResult `json:"results"`
		}{}
		for _, q := range body.Queries {
			out.Results = append(out.Results, domain.MatchResult{Query: domain.Query{ID: q.ID, Name: q.Name}})
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	queries := []domain.Query{{ID: "1", Name: "Milk"}, {ID: "2", Name: "Bread"}}
	results, err := New(srv.URL).MatchBatch(context.Background(), queries, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[1].Query.ID)
}

func TestClient_MatchBatchCountMismatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).MatchBatch(context.Background(), []domain.Query{{Name: "Milk"}}, false)
	require.ErrorContains(t, err, "server returned 0 results for 1 queries")
}

func TestClient_CacheAdmin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/cache/stats":
			_, _ = w.Write([]byte(`{"entries":4,"expired":1,"size_bytes":900}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/cache":
			_, _ = w.Write([]byte(`{"removed":4}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	st, err := c.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{Entries: 4, Expired: 1, SizeBytes: 900}, st)

	n, err := c.ClearCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestResultFilter_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter ResultFilter
		want   string
	}{
		{name: "empty", filter: ResultFilter{}, want: ""},
		{
			name:   "all fields",
			filter: ResultFilter{Retailer: "tesco", Level: "HIGH", FoundOnly: true, Limit: 10, Offset: 20},
			want:   "?found_only=true&level=HIGH&limit=10&offset=20&retailer=tesco",
		},
		{
			name:   "product key is escaped",
			filter: ResultFilter{ProductKey: "heinz:415g:1"},
			want:   "?product_key=heinz%3A415g%3A1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.encode())
		})
	}
}

func TestClient_ListResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/results", r.URL.Path)
		assert.Equal(t, "tesco", r.URL.Query().Get("retailer"))
		_, _ = w.Write([]byte(`{"results":[{"query":{"name":"Milk"},"found":true,"score":{},"matched_at":"2026-10-18T09:00:00Z"}],"total":12}`))
	}))
	defer srv.Close()

	results, total, err := New(srv.URL).ListResults(context.Background(), ResultFilter{Retailer: "tesco"})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Milk", results[0].Query.Name)
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).Retailers(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
