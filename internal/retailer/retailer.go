// Package retailer fetches candidate listings from retailer search endpoints
// behind a small interface so the matching engine never sees transport
// details.
package retailer

import (
	"context"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Source searches one retailer's catalogue.
type Source interface {
	// Name is the retailer identifier used for priority and reporting.
	Name() string
	// Search returns up to limit listings for query in the retailer's
	// relevance order.
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}

// Product is one listing as served by a retailer search endpoint and stored
// in fixture files. Prices are shelf-label text such as "£1.25" or "85p".
type Product struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	UnitPrice string `json:"unit_price,omitempty"`
	URL       string `json:"url,omitempty"`
	Multipack bool   `json:"multipack,omitempty"`
}

// SearchResponse is the search endpoint payload.
type SearchResponse struct {
	Retailer string    `json:"retailer"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
