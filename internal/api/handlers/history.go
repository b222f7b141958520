package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/grocery-price-tracker/internal/store"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// HistoryHandler serves stored runs and match results.
type HistoryHandler struct {
	store store.Store
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(s store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// ListRunsInput is the input for listing runs.
type ListRunsInput struct {
	Limit int `query:"limit" doc:"Number of runs (default 50)" minimum:"0" maximum:"500"`
}

// ListRunsOutput is the response for listing runs.
type ListRunsOutput struct {
	Body struct {
		Runs []store.Run `json:"runs"`
	}
}

// ListResultsInput is the input for listing stored results.
type ListResultsInput struct {
	RunID      string    `query:"run_id"      doc:"Only results from this run"`
	ProductKey string    `query:"product_key" doc:"Filter by product key"        example:"heinz:415g:1"`
	Retailer   string    `query:"retailer"    doc:"Filter by winning retailer"`
	Level      string    `query:"level"       doc:"Filter by confidence level"   enum:"HIGH,MEDIUM,LOW,VERY_LOW,NOT_FOUND,"`
	Since      time.Time `query:"since"       doc:"Only results matched at or after this time"`
	FoundOnly  bool      `query:"found_only"  doc:"Exclude NOT_FOUND results"`
	Limit      int       `query:"limit"       doc:"Number of results (default 50)" minimum:"0" maximum:"500"`
	Offset     int       `query:"offset"      doc:"Pagination offset"              minimum:"0"`
}

// ListResultsOutput is the response for listing stored results.
type ListResultsOutput struct {
	Body struct {
		Results []domain.MatchResult `json:"results"`
		Total   int                  `json:"total"`
		Limit   int                  `json:"limit"`
		Offset  int                  `json:"offset"`
	}
}

// ListRuns returns the most recent batch and scheduled runs.
func (h *HistoryHandler) ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	runs, err := h.store.ListRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing runs failed: " + err.Error())
	}
	out := &ListRunsOutput{}
	out.Body.Runs = runs
	return out, nil
}

// ListResults returns stored match results with optional filters.
func (h *HistoryHandler) ListResults(ctx context.Context, input *ListResultsInput) (*ListResultsOutput, error) {
	q := &store.ResultQuery{
		FoundOnly: input.FoundOnly,
		Limit:     input.Limit,
		Offset:    input.Offset,
	}

	if input.RunID != "" {
		id, err := uuid.Parse(input.RunID)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid run_id: " + err.Error())
		}
		q.RunID = &id
	}
	if input.ProductKey != "" {
		q.ProductKey = &input.ProductKey
	}
	if input.Retailer != "" {
		q.Retailer = &input.Retailer
	}
	if input.Level != "" {
		q.Level = &input.Level
	}
	if !input.Since.IsZero() {
		q.Since = &input.Since
	}

	results, total, err := h.store.ListResults(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("result query failed: " + err.Error())
	}

	out := &ListResultsOutput{}
	out.Body.Results = results
	out.Body.Total = total
	out.Body.Limit = q.Limit
	out.Body.Offset = q.Offset
	return out, nil
}

// RegisterHistoryRoutes registers match history endpoints with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs",
		Summary:     "List runs",
		Description: "Returns recent batch and scheduled runs, newest first.",
		Tags:        []string{"history"},
	}, h.ListRuns)

	huma.Register(api, huma.Operation{
		OperationID: "list-results",
		Method:      http.MethodGet,
		Path:        "/api/v1/results",
		Summary:     "List stored results",
		Description: "Returns stored match results filtered by run, product key, retailer or level.",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusBadRequest},
	}, h.ListResults)
}
