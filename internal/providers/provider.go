package providers

import "context"

// FieldType partitions providers and cache entries by search domain.
type FieldType string

const (
	FieldHotel   FieldType = "hotel"
	FieldFlight  FieldType = "flight"
	FieldProduct FieldType = "product"
	FieldMovie   FieldType = "movie"
)

// Result is one item returned by a provider. The orchestrator never looks
// inside it; only the backend filter reads the price/brand/city/rating fields.
type Result struct {
	Provider  string  `json:"provider"`
	Title     string  `json:"title"`
	Price     string  `json:"price"`
	NumPrice  float64 `json:"extracted_price,omitempty"`
	OldPrice  float64 `json:"old_price,omitempty"`
	Link      string  `json:"link"`
	Source    string  `json:"source,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	Delivery  string  `json:"delivery,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Reviews   int     `json:"reviews,omitempty"`
	City      string  `json:"city,omitempty"`
}

// SearchOptions carries the result limit plus the filter dimensions a query
// can constrain. Zero values mean "not constrained".
type SearchOptions struct {
	Limit     int     `json:"limit"`
	Brand     string  `json:"brand,omitempty"`
	City      string  `json:"city,omitempty"`
	MaxPrice  float64 `json:"max_price,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

type Provider interface {
	Name() string
	FieldType() FieldType
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}
