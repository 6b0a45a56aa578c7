package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/you/go-clonar-search/internal/providers"
)

type ProviderMock struct {
	name            string
	fieldType       providers.FieldType
	results         []providers.Result
	delay           time.Duration
	errorOutMessage *string
	failFirst       int32 // error for the first N calls, then succeed
	callCount       *int32
	calls           int32 // internal counter, used when callCount is nil
}

func (p *ProviderMock) Name() string {
	return p.name
}

func (p *ProviderMock) FieldType() providers.FieldType {
	return p.fieldType
}

func (p *ProviderMock) Search(ctx context.Context, query string, opts providers.SearchOptions) ([]providers.Result, error) {
	counter := &p.calls
	if p.callCount != nil {
		counter = p.callCount
	}
	call := atomic.AddInt32(counter, 1)
	if p.errorOutMessage != nil {
		return nil, errors.New(p.name + ": " + *p.errorOutMessage)
	}
	if p.failFirst > 0 && call <= p.failFirst {
		return nil, errors.New(p.name + ": transient failure")
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.results, nil
}
