package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/you/go-clonar-search/internal/providers"
)

// Filler phrasing users type into a search box that only hurts upstream
// engines. Stripped from the front of the query, repeatedly, so
// "can you find me nike shoes" collapses to "nike shoes".
var fillerPrefixes = []string{
	"can you find me",
	"can you find",
	"looking for",
	"search for",
	"look for",
	"find me",
	"show me",
	"get me",
	"i want",
	"i need",
	"please",
	"find",
}

// Brands recognized by the free-text filter extractor. Matching is
// word-level and case-insensitive.
var knownBrands = []string{
	"nike", "adidas", "puma", "reebok", "levi's", "zara",
	"apple", "samsung", "sony", "lg", "dell", "lenovo",
}

var (
	maxPriceRe  = regexp.MustCompile(`(?i)\b(?:under|below|less than|up to|max)\s*\$?(\d+(?:\.\d+)?)`)
	minRatingRe = regexp.MustCompile(`(?i)\b(\d(?:\.\d)?)\s*\+?\s*stars?\b`)
	cityRe      = regexp.MustCompile(`(?i)\bin\s+([a-zA-Z][a-zA-Z .'-]+?)\s*$`)
)

// OptimizeQuery rewrites a raw query into a provider-friendly form. Pure and
// deterministic: the same input always yields the same output, so cache keys
// stay stable across calls.
func OptimizeQuery(query string, fieldType providers.FieldType) string {
	q := strings.Join(strings.Fields(query), " ")
	for {
		lower := strings.ToLower(q)
		stripped := false
		for _, p := range fillerPrefixes {
			if strings.HasPrefix(lower, p+" ") {
				q = strings.TrimSpace(q[len(p)+1:])
				stripped = true
				break
			}
		}
		if !stripped {
			return q
		}
	}
}

// ExtractFilters derives structured constraints from free text. A query with
// nothing recognizable yields the zero value, never an error.
func ExtractFilters(query string, fieldType providers.FieldType) providers.SearchOptions {
	var opts providers.SearchOptions
	lower := strings.ToLower(query)

	if m := maxPriceRe.FindStringSubmatch(query); m != nil {
		opts.MaxPrice, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := minRatingRe.FindStringSubmatch(query); m != nil {
		opts.MinRating, _ = strconv.ParseFloat(m[1], 64)
	}
	for _, b := range knownBrands {
		if containsWord(lower, b) {
			opts.Brand = b
			break
		}
	}
	if fieldType == providers.FieldHotel {
		if m := cityRe.FindStringSubmatch(query); m != nil {
			opts.City = strings.TrimSpace(m[1])
		}
	}
	return opts
}

// ApplyBackendFilters re-checks raw provider results against the extracted
// filters. Items without a known numeric price or rating are not treated as
// violations. May legitimately return the empty slice.
func ApplyBackendFilters(results []providers.Result, opts providers.SearchOptions, fieldType providers.FieldType) []providers.Result {
	out := make([]providers.Result, 0, len(results))
	for _, r := range results {
		if opts.MaxPrice > 0 && r.NumPrice > opts.MaxPrice {
			continue
		}
		if opts.MinRating > 0 && r.Rating > 0 && r.Rating < opts.MinRating {
			continue
		}
		if opts.Brand != "" && !matchesBrand(r, opts.Brand) {
			continue
		}
		if opts.City != "" && r.City != "" && !strings.EqualFold(r.City, opts.City) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesBrand(r providers.Result, brand string) bool {
	b := strings.ToLower(brand)
	return containsWord(strings.ToLower(r.Title), b) ||
		strings.EqualFold(r.Source, brand)
}

func containsWord(haystack, word string) bool {
	for _, w := range strings.Fields(haystack) {
		if strings.Trim(w, ",.!?") == word {
			return true
		}
	}
	return false
}
