package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/grocery-price-tracker/internal/cache"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// CacheHandler handles result cache administration.
type CacheHandler struct {
	admin cache.Admin
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(a cache.Admin) *CacheHandler {
	return &CacheHandler{admin: a}
}

// CacheStatsOutput is the response for cache statistics.
type CacheStatsOutput struct {
	Body domain.CacheStats
}

// ClearCacheOutput is the response for clearing the cache.
type ClearCacheOutput struct {
	Body struct {
		Removed int `json:"removed" doc:"Number of cached results deleted"`
	}
}

// Stats returns entry counts and size for the result cache.
func (h *CacheHandler) Stats(ctx context.Context, _ *struct{}) (*CacheStatsOutput, error) {
	st, err := h.admin.Stats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading cache stats: " + err.Error())
	}
	return &CacheStatsOutput{Body: st}, nil
}

// Clear removes every cached result.
func (h *CacheHandler) Clear(ctx context.Context, _ *struct{}) (*ClearCacheOutput, error) {
	n, err := h.admin.Clear(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("clearing cache: " + err.Error())
	}
	out := &ClearCacheOutput{}
	out.Body.Removed = n
	return out, nil
}

// RegisterCacheRoutes registers cache endpoints with the Huma API.
func RegisterCacheRoutes(api huma.API, h *CacheHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "cache-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/cache/stats",
		Summary:     "Cache statistics",
		Description: "Returns the number of cached results, how many are expired, and their total size.",
		Tags:        []string{"cache"},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "clear-cache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cache",
		Summary:     "Clear the cache",
		Description: "Deletes every cached match result.",
		Tags:        []string{"cache"},
	}, h.Clear)
}
