package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/you/go-clonar-search/internal/providers"
)

func TestOptimizeQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  find me   nike shoes ", "nike shoes"},
		{"Can you find me hotels in Miami", "hotels in Miami"},
		{"search for leather jacket", "leather jacket"},
		{"I want a red dress", "a red dress"},
		{"running shoes", "running shoes"},
		{"", ""},
	}
	for _, c := range cases {
		got := OptimizeQuery(c.in, providers.FieldProduct)
		require.Equal(t, c.want, got, "query %q", c.in)
		// pure rewrite: applying it twice changes nothing
		require.Equal(t, got, OptimizeQuery(got, providers.FieldProduct))
	}
}

func TestExtractFilters_PriceCeiling(t *testing.T) {
	opts := ExtractFilters("nike shoes under $100", providers.FieldProduct)
	require.Equal(t, 100.0, opts.MaxPrice)
	require.Equal(t, "nike", opts.Brand)

	opts = ExtractFilters("motels below 200", providers.FieldHotel)
	require.Equal(t, 200.0, opts.MaxPrice)
}

func TestExtractFilters_City(t *testing.T) {
	opts := ExtractFilters("Hotels in Salt Lake City", providers.FieldHotel)
	require.Equal(t, "Salt Lake City", opts.City)

	// city extraction only applies to the hotel domain
	opts = ExtractFilters("made in Italy", providers.FieldProduct)
	require.Empty(t, opts.City)
}

func TestExtractFilters_Rating(t *testing.T) {
	opts := ExtractFilters("4 stars hotels in Miami", providers.FieldHotel)
	require.Equal(t, 4.0, opts.MinRating)
	require.Equal(t, "Miami", opts.City)
}

func TestExtractFilters_NothingRecognizable(t *testing.T) {
	opts := ExtractFilters("laptop bag", providers.FieldProduct)
	require.Equal(t, providers.SearchOptions{}, opts)
}

func TestApplyBackendFilters_PriceCeiling(t *testing.T) {
	results := []providers.Result{
		{Title: "Cheap Item", NumPrice: 50},
		{Title: "Pricey Item", NumPrice: 150},
		{Title: "Unpriced Item"}, // unknown price is not a violation
	}
	got := ApplyBackendFilters(results, providers.SearchOptions{MaxPrice: 100}, providers.FieldProduct)
	require.Len(t, got, 2)
	require.Equal(t, "Cheap Item", got[0].Title)
	require.Equal(t, "Unpriced Item", got[1].Title)
}

func TestApplyBackendFilters_Brand(t *testing.T) {
	results := []providers.Result{
		{Title: "Nike Air Max", Source: "ShoeShop"},
		{Title: "Trail Runner", Source: "Nike"},
		{Title: "Generic Sneaker", Source: "OtherShop"},
	}
	got := ApplyBackendFilters(results, providers.SearchOptions{Brand: "nike"}, providers.FieldProduct)
	require.Len(t, got, 2)
}

func TestApplyBackendFilters_CityAndRating(t *testing.T) {
	results := []providers.Result{
		{Title: "Grand Plaza", City: "Miami", Rating: 4.5},
		{Title: "Budget Inn", City: "Miami", Rating: 3.0},
		{Title: "Harbor House", City: "Boston", Rating: 4.8},
		{Title: "Unknown Town", Rating: 4.6}, // missing city is not a violation
	}
	got := ApplyBackendFilters(results, providers.SearchOptions{City: "Miami", MinRating: 4.0}, providers.FieldHotel)
	require.Len(t, got, 2)
	require.Equal(t, "Grand Plaza", got[0].Title)
	require.Equal(t, "Unknown Town", got[1].Title)
}

func TestApplyBackendFilters_CanEmptyTheList(t *testing.T) {
	results := []providers.Result{
		{Title: "Pricey A", NumPrice: 500},
		{Title: "Pricey B", NumPrice: 700},
	}
	got := ApplyBackendFilters(results, providers.SearchOptions{MaxPrice: 100}, providers.FieldProduct)
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestApplyBackendFilters_NoFiltersPassesEverything(t *testing.T) {
	results := mockResults("p1", 5, 100)
	got := ApplyBackendFilters(results, providers.SearchOptions{}, providers.FieldProduct)
	require.Equal(t, results, got)
}

func TestMergeOptions(t *testing.T) {
	extracted := providers.SearchOptions{MaxPrice: 200, Brand: "nike"}
	caller := providers.SearchOptions{MaxPrice: 100, City: "Miami"}

	merged := mergeOptions(extracted, caller)
	require.Equal(t, 100.0, merged.MaxPrice, "caller-supplied options win")
	require.Equal(t, "nike", merged.Brand, "extracted filters survive when the caller is silent")
	require.Equal(t, "Miami", merged.City)
	require.Equal(t, defaultResultLimit, merged.Limit)

	merged = mergeOptions(providers.SearchOptions{}, providers.SearchOptions{Limit: 5})
	require.Equal(t, 5, merged.Limit)
}
