package service

import (
	"fmt"

	"github.com/you/go-clonar-search/internal/providers"
)

// NoProvidersError is returned when a search targets a field type with no
// registered providers. It is a configuration error and is never retried.
type NoProvidersError struct {
	FieldType providers.FieldType
}

func (e *NoProvidersError) Error() string {
	return fmt.Sprintf("no providers registered for field type %q", e.FieldType)
}

// AllProvidersFailedError is returned after both the parallel race and the
// sequential fallback exhausted every provider without a usable result.
type AllProvidersFailedError struct {
	FieldType providers.FieldType
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all providers failed for field type %q", e.FieldType)
}
