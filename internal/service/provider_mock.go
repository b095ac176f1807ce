package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/you/go-mestre-flights/internal/providers"
)

// ProviderMock answers searches from a respond func and records every query.
type ProviderMock struct {
	name      string
	respond   func(q providers.SearchQuery) (*providers.OfferSearchResponse, error)
	callCount *int32

	mu      sync.Mutex
	queries []providers.SearchQuery
}

func (p *ProviderMock) Name() string {
	return p.name
}

func (p *ProviderMock) Search(ctx context.Context, q providers.SearchQuery) (*providers.OfferSearchResponse, error) {
	if p.callCount != nil {
		atomic.AddInt32(p.callCount, 1)
	}
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()
	if p.respond != nil {
		return p.respond(q)
	}
	return &providers.OfferSearchResponse{}, nil
}

func (p *ProviderMock) Queries() []providers.SearchQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]providers.SearchQuery, len(p.queries))
	copy(out, p.queries)
	return out
}
