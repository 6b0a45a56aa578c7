package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/you/go-clonar-search/internal/providers"
)

const defaultResultLimit = 20

// SearchService races all providers registered for a field type and serves
// the fastest usable answer, memoizing it per (fieldType, query).
type SearchService struct {
	registry        *providerRegistry
	cache           *queryCache
	group           singleflight.Group
	log             *logrus.Logger
	providerTimeout time.Duration
}

// NewSearchService builds the engine. cacheTTL <= 0 falls back to one hour,
// cacheMaxEntries 0 leaves the cache uncapped, providerTimeout 0 means a
// provider attempt is only bounded by the caller's context.
func NewSearchService(log *logrus.Logger, cacheTTL time.Duration, cacheMaxEntries int, providerTimeout time.Duration) *SearchService {
	if log == nil {
		log = logrus.New()
	}
	return &SearchService{
		registry:        newProviderRegistry(),
		cache:           newQueryCache(cacheTTL, cacheMaxEntries),
		log:             log,
		providerTimeout: providerTimeout,
	}
}

// Register adds a provider under its field type, preserving order. Duplicates
// are not deduplicated; both will be raced.
func (s *SearchService) Register(p providers.Provider) {
	s.registry.register(p)
}

// Providers returns the providers registered for the field type, in
// registration order. Empty slice when none.
func (s *SearchService) Providers(ft providers.FieldType) []providers.Provider {
	return s.registry.providersFor(ft)
}

// ClearCache drops all cached results. Administrative reset only.
func (s *SearchService) ClearCache() {
	s.cache.Clear()
}

func cacheKey(ft providers.FieldType, query string) string {
	return string(ft) + "|" + strings.ToLower(strings.TrimSpace(query))
}

// Search answers one logical request: cache probe, then a parallel race of
// every provider for the field type, then a sequential retry in registration
// order if the race comes back empty-handed.
//
// Concurrent calls for the same (fieldType, query) key share one provider
// run, which executes under the context of the caller that started it. A
// waiter therefore inherits that run's outcome, including a cancellation
// error if the initiating caller's context expires mid-flight; the waiter's
// own context does not keep the shared run alive.
func (s *SearchService) Search(ctx context.Context, query string, fieldType providers.FieldType, opts providers.SearchOptions) ([]providers.Result, error) {
	provs := s.registry.providersFor(fieldType)
	if len(provs) == 0 {
		return nil, &NoProvidersError{FieldType: fieldType}
	}

	key := cacheKey(fieldType, query)
	// fast cache path: previously filtered data is trusted as-is
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	// collapse concurrent identical misses into one orchestration run
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.searchProviders(ctx, key, query, fieldType, provs, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.([]providers.Result), nil
}

type attemptOutcome struct {
	provider string
	results  []providers.Result
	err      error
}

func (s *SearchService) searchProviders(ctx context.Context, key, rawQuery string, fieldType providers.FieldType, provs []providers.Provider, callerOpts providers.SearchOptions) ([]providers.Result, error) {
	optimized := OptimizeQuery(rawQuery, fieldType)
	merged := mergeOptions(ExtractFilters(rawQuery, fieldType), callerOpts)

	outcomes := make(chan attemptOutcome, len(provs))
	for _, p := range provs {
		go func(p providers.Provider) {
			results, err := s.attempt(ctx, p, optimized, merged, fieldType)
			outcomes <- attemptOutcome{provider: p.Name(), results: results, err: err}
		}(p)
	}

	// first qualifying success wins; losers drain into the buffered channel
	for range provs {
		select {
		case o := <-outcomes:
			if o.err != nil {
				s.log.WithFields(logrus.Fields{
					"provider":   o.provider,
					"field_type": fieldType,
				}).WithError(o.err).Warn("provider attempt lost the race")
				continue
			}
			s.cache.Set(key, o.results)
			return o.results, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// the race was empty-handed: retry sequentially in registration order,
	// re-attempting providers that already lost (transient errors may have
	// cleared by now)
	for _, p := range provs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := s.attempt(ctx, p, optimized, merged, fieldType)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"provider":   p.Name(),
				"field_type": fieldType,
			}).WithError(err).Debug("sequential fallback attempt failed")
			continue
		}
		s.cache.Set(key, results)
		return results, nil
	}

	return nil, &AllProvidersFailedError{FieldType: fieldType}
}

// attempt calls one provider and qualifies its answer: a success is a
// non-empty list that survives backend filtering. Empty raw results and
// filtered-to-empty results are indistinguishable from a provider error.
func (s *SearchService) attempt(ctx context.Context, p providers.Provider, query string, opts providers.SearchOptions, fieldType providers.FieldType) ([]providers.Result, error) {
	if s.providerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.providerTimeout)
		defer cancel()
	}
	raw, err := p.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	filtered := ApplyBackendFilters(raw, opts, fieldType)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%s: no usable results", p.Name())
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered, nil
}

// mergeOptions layers caller-supplied options over filters extracted from the
// query; the caller wins on every dimension it sets. Limit defaults to 20.
func mergeOptions(extracted, caller providers.SearchOptions) providers.SearchOptions {
	merged := extracted
	if caller.Limit > 0 {
		merged.Limit = caller.Limit
	}
	if caller.Brand != "" {
		merged.Brand = caller.Brand
	}
	if caller.City != "" {
		merged.City = caller.City
	}
	if caller.MaxPrice > 0 {
		merged.MaxPrice = caller.MaxPrice
	}
	if caller.MinRating > 0 {
		merged.MinRating = caller.MinRating
	}
	if merged.Limit <= 0 {
		merged.Limit = defaultResultLimit
	}
	return merged
}
