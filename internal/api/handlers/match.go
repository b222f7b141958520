package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// MaxBatchSize bounds the number of queries in one batch request.
const MaxBatchSize = 100

// Matcher runs the matching cascade. *engine.Matcher implements it.
type Matcher interface {
	MatchProduct(ctx context.Context, q domain.Query) (*domain.MatchResult, error)
	MatchBatch(ctx context.Context, queries []domain.Query) ([]*domain.MatchResult, error)
	Sources() []string
}

// MatchHandler exposes product matching over HTTP.
type MatchHandler struct {
	matcher Matcher
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(m Matcher) *MatchHandler {
	return &MatchHandler{matcher: m}
}

// QueryBody is one product to match.
type QueryBody struct {
	ID       string `json:"id,omitempty" doc:"Caller-supplied identifier echoed in the result" example:"B1"`
	Name     string `json:"name" minLength:"1" maxLength:"300" doc:"Product description" example:"Heinz Baked Beans 415g"`
	Quantity int    `json:"quantity,omitempty" minimum:"0" doc:"Pack quantity hint overriding the parsed value" example:"4"`
}

func (b *QueryBody) query() domain.Query {
	return domain.Query{ID: b.ID, Name: b.Name, Quantity: b.Quantity}
}

// MatchInput is the request for a single match.
type MatchInput struct {
	Fresh bool `query:"fresh" doc:"Skip the cached result and match again"`
	Body  QueryBody
}

// MatchOutput is the response for a single match.
type MatchOutput struct {
	Body domain.MatchResult
}

// MatchBatchInput is the request for a batch match.
type MatchBatchInput struct {
	Fresh bool `query:"fresh" doc:"Skip cached results and match again"`
	Body  struct {
		Queries []QueryBody `json:"queries" minItems:"1" maxItems:"100" doc:"Products to match, results keep this order"`
	}
}

// MatchBatchOutput is the response for a batch match.
type MatchBatchOutput struct {
	Body struct {
		Results []*domain.MatchResult `json:"results"`
		Total   int                   `json:"total"`
		Found   int                   `json:"found"`
	}
}

// RetailersOutput lists the configured retailers in priority order.
type RetailersOutput struct {
	Body struct {
		Retailers []string `json:"retailers"`
	}
}

func matchContext(ctx context.Context, fresh bool) context.Context {
	if fresh {
		return engine.WithFreshResults(ctx)
	}
	return ctx
}

// Match matches one product description against every retailer.
func (h *MatchHandler) Match(ctx context.Context, input *MatchInput) (*MatchOutput, error) {
	r, err := h.matcher.MatchProduct(matchContext(ctx, input.Fresh), input.Body.query())
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("matching interrupted: " + err.Error())
	}
	return &MatchOutput{Body: *r}, nil
}

// MatchBatch matches many products concurrently, preserving input order.
func (h *MatchHandler) MatchBatch(ctx context.Context, input *MatchBatchInput) (*MatchBatchOutput, error) {
	if len(input.Body.Queries) > MaxBatchSize {
		return nil, huma.Error422UnprocessableEntity("too many queries in one batch")
	}

	queries := make([]domain.Query, len(input.Body.Queries))
	for i := range input.Body.Queries {
		queries[i] = input.Body.Queries[i].query()
	}

	results, err := h.matcher.MatchBatch(matchContext(ctx, input.Fresh), queries)
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("batch interrupted: " + err.Error())
	}

	out := &MatchBatchOutput{}
	out.Body.Results = results
	out.Body.Total = len(results)
	for _, r := range results {
		if r.Found {
			out.Body.Found++
		}
	}
	return out, nil
}

// Retailers lists the retailers searched, highest priority first.
func (h *MatchHandler) Retailers(_ context.Context, _ *struct{}) (*RetailersOutput, error) {
	out := &RetailersOutput{}
	out.Body.Retailers = h.matcher.Sources()
	return out, nil
}

// RegisterMatchRoutes registers matching endpoints with the Huma API.
func RegisterMatchRoutes(api huma.API, h *MatchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "match-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/match",
		Summary:     "Match a product",
		Description: "Runs the search cascade for one product description and returns the best retailer listing with its confidence.",
		Tags:        []string{"match"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Match)

	huma.Register(api, huma.Operation{
		OperationID: "match-batch",
		Method:      http.MethodPost,
		Path:        "/api/v1/match/batch",
		Summary:     "Match many products",
		Description: "Matches up to 100 products concurrently. Results are returned in request order.",
		Tags:        []string{"match"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.MatchBatch)

	huma.Register(api, huma.Operation{
		OperationID: "list-retailers",
		Method:      http.MethodGet,
		Path:        "/api/v1/retailers",
		Summary:     "List retailers",
		Description: "Returns the configured retailers in tie-break priority order.",
		Tags:        []string{"match"},
	}, h.Retailers)
}
