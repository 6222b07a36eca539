package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/search/types"
)

func TestRunBatch_PartialFailure(t *testing.T) {
	// Three requests where the second one fails upstream: the batch keeps
	// going, records the failure at index 1, and the neighbors' results
	// are unaffected.
	exec := &fakeExecutor{
		titleFn: func(_ context.Context, title string, _ int) (*types.NormalizedResult, error) {
			return &types.NormalizedResult{
				SearchTerm: title,
				Results:    []types.DocumentRecord{record("T-" + title)},
				Total:      1,
			}, nil
		},
		keywordsFn: func(context.Context, string, types.Scope, int) (*types.NormalizedResult, error) {
			return nil, errors.New("search service unavailable")
		},
	}
	uc := NewSearchUseCase(exec, logger.Nop())

	summary := uc.RunBatch(context.Background(), []*types.SearchRequest{
		{Strategy: types.StrategyTitle, Query: "first"},
		{Strategy: types.StrategyKeywords, Query: "second"},
		{Strategy: types.StrategyTitle, Query: "third"},
	})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	require.Len(t, summary.Items, 3)

	assert.True(t, summary.Items[0].Success)
	assert.Equal(t, 0, summary.Items[0].Index)
	assert.Equal(t, "T-first", summary.Items[0].Result.Results[0].StringField("id", ""))

	assert.False(t, summary.Items[1].Success)
	assert.Equal(t, 1, summary.Items[1].Index)
	assert.Equal(t, types.StrategyKeywords, summary.Items[1].Strategy)
	assert.Contains(t, summary.Items[1].Error, "unavailable")
	assert.Nil(t, summary.Items[1].Result)

	assert.True(t, summary.Items[2].Success)
	assert.Equal(t, 2, summary.Items[2].Index)
	assert.Equal(t, "T-third", summary.Items[2].Result.Results[0].StringField("id", ""))
}

func TestRunBatch_AllStrategiesSucceed(t *testing.T) {
	exec := &fakeExecutor{
		titleFn: func(context.Context, string, int) (*types.NormalizedResult, error) {
			return &types.NormalizedResult{Total: 1}, nil
		},
		keywordsFn: func(context.Context, string, types.Scope, int) (*types.NormalizedResult, error) {
			return &types.NormalizedResult{Total: 2}, nil
		},
		advancedFn: func(context.Context, map[string]string, map[string]any, int) (*types.NormalizedResult, error) {
			return &types.NormalizedResult{Total: 3}, nil
		},
	}
	uc := NewSearchUseCase(exec, logger.Nop())

	summary := uc.RunBatch(context.Background(), []*types.SearchRequest{
		{Strategy: types.StrategyTitle, Query: "a"},
		{Strategy: types.StrategyKeywords, Query: "b", SearchIn: "body"},
		{Strategy: types.StrategyAdvanced, Filters: map[string]string{"author": "jdoe"}},
	})

	assert.Equal(t, 3, summary.Succeeded)
	for i, item := range summary.Items {
		assert.Equal(t, i, item.Index)
		assert.True(t, item.Success)
	}
}

func TestRunBatch_InvalidItemIsIsolated(t *testing.T) {
	exec := &fakeExecutor{
		titleFn: func(context.Context, string, int) (*types.NormalizedResult, error) {
			return &types.NormalizedResult{Total: 1}, nil
		},
	}
	uc := NewSearchUseCase(exec, logger.Nop())

	summary := uc.RunBatch(context.Background(), []*types.SearchRequest{
		{Strategy: types.StrategyAdvanced}, // no filters
		{Strategy: types.StrategyTitle, Query: "ok"},
	})

	assert.Equal(t, 1, summary.Succeeded)
	assert.False(t, summary.Items[0].Success)
	assert.Contains(t, summary.Items[0].Error, "filters")
	assert.True(t, summary.Items[1].Success)
}
