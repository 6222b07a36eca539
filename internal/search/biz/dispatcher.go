package biz

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/search/types"
)

// Executor runs a single validated query against the upstream repository
// and returns the canonical result shape. *upstream.Client implements it.
type Executor interface {
	SearchByTitle(ctx context.Context, title string, limit int) (*types.NormalizedResult, error)
	SearchByKeywords(ctx context.Context, keywords string, scope types.Scope, limit int) (*types.NormalizedResult, error)
	SearchAdvanced(ctx context.Context, filters map[string]string, profileFields map[string]any, limit int) (*types.NormalizedResult, error)
}

// SearchUseCase dispatches search requests onto the matching executor
// operation and orchestrates batch runs.
type SearchUseCase struct {
	exec Executor
	log  *logger.Logger
}

// NewSearchUseCase creates a search use case backed by the given executor.
func NewSearchUseCase(exec Executor, log *logger.Logger) *SearchUseCase {
	return &SearchUseCase{exec: exec, log: log}
}

// Dispatch routes a request to the executor operation matching its
// strategy. Executor errors propagate unchanged; an unrecognized strategy
// yields types.ErrUnknownStrategy.
func (uc *SearchUseCase) Dispatch(ctx context.Context, req *types.SearchRequest) (*types.NormalizedResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Strategy == types.StrategyBatch {
		return uc.unifiedSearch(ctx, req)
	}

	return uc.dispatchSingle(ctx, req)
}

// dispatchSingle handles the three non-fan-out strategies. Batch items go
// through here so a nested batch is rejected instead of recursing.
func (uc *SearchUseCase) dispatchSingle(ctx context.Context, req *types.SearchRequest) (*types.NormalizedResult, error) {
	limit := req.EffectiveLimit()

	switch req.Strategy {
	case types.StrategyTitle:
		return uc.exec.SearchByTitle(ctx, req.Query, limit)
	case types.StrategyKeywords:
		return uc.exec.SearchByKeywords(ctx, req.Query, types.ParseScope(req.SearchIn), limit)
	case types.StrategyAdvanced:
		return uc.exec.SearchAdvanced(ctx, req.Filters, req.ProfileFields, limit)
	case types.StrategyBatch:
		return nil, types.ErrNestedBatch
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownStrategy, req.Strategy)
	}
}

// unifiedSearch fans one query out into three fixed sub-searches (keywords
// anywhere, title match, keywords in body) and flattens the successful ones
// into a single best-effort result set. A failed sub-search contributes
// nothing; it does not fail the whole search.
func (uc *SearchUseCase) unifiedSearch(ctx context.Context, req *types.SearchRequest) (*types.NormalizedResult, error) {
	subLimit := req.EffectiveLimit() / 3
	if subLimit < 1 {
		subLimit = 1
	}

	subRequests := []*types.SearchRequest{
		{Strategy: types.StrategyKeywords, Query: req.Query, SearchIn: string(types.ScopeAnywhere), Limit: subLimit},
		{Strategy: types.StrategyTitle, Query: req.Query, Limit: subLimit},
		{Strategy: types.StrategyKeywords, Query: req.Query, SearchIn: string(types.ScopeBody), Limit: subLimit},
	}

	summary := uc.RunBatch(ctx, subRequests)

	combined := &types.NormalizedResult{
		SearchTerm: req.Query,
		Results:    []types.DocumentRecord{},
	}
	for _, item := range summary.Items {
		if !item.Success {
			uc.log.Warn("unified search sub-query failed",
				zap.Int("index", item.Index),
				zap.String("search_type", string(item.Strategy)),
				zap.String("error", item.Error),
			)
			continue
		}
		combined.Results = append(combined.Results, item.Result.Results...)
		combined.Total += item.Result.Total
	}

	return combined, nil
}
