package biz

import (
	"context"

	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

// RunBatch executes requests sequentially, in input order, isolating
// failures per item: an item's error is recorded at its original index and
// execution continues. Requests must not run concurrently, so per-item logs
// and failure indices stay correlated with the input order.
//
// Empty input is rejected at the service boundary and never reaches here.
func (uc *SearchUseCase) RunBatch(ctx context.Context, reqs []*types.SearchRequest) *types.BatchSummary {
	items := make([]types.BatchItemResult, 0, len(reqs))

	for i, req := range reqs {
		result, err := uc.runBatchItem(ctx, req)
		if err != nil {
			uc.log.Warn("batch item failed",
				zap.Int("index", i),
				zap.String("search_type", string(req.Strategy)),
				zap.Error(err),
			)
			items = append(items, types.BatchItemResult{
				Index:    i,
				Strategy: req.Strategy,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}

		items = append(items, types.BatchItemResult{
			Index:    i,
			Strategy: req.Strategy,
			Success:  true,
			Result:   result,
		})
	}

	// Derived by counting rather than tracked incrementally, so the summary
	// cannot drift from the recorded items.
	succeeded := 0
	for _, item := range items {
		if item.Success {
			succeeded++
		}
	}

	return &types.BatchSummary{
		Total:     len(items),
		Succeeded: succeeded,
		Items:     items,
	}
}

func (uc *SearchUseCase) runBatchItem(ctx context.Context, req *types.SearchRequest) (*types.NormalizedResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return uc.dispatchSingle(ctx, req)
}
