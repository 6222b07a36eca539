package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/search/biz"
	"github.com/docbridge-io/docbridge/internal/search/types"
)

type toolHandler struct {
	searcher Searcher
	docs     DocumentStore
	log      *logger.Logger
}

type searchArgs struct {
	Query      string            `json:"query"`
	SearchType string            `json:"search_type,omitempty"`
	SearchIn   string            `json:"search_in,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

type searchPayload struct {
	Results    []biz.ProjectedDocument `json:"results"`
	Total      int                     `json:"total"`
	SearchType string                  `json:"search_type"`
}

func (h *toolHandler) search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := searchArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse arguments: %v", err)), nil
	}

	if args.SearchType == "" {
		args.SearchType = string(types.StrategyKeywords)
	}

	req := &types.SearchRequest{
		Strategy: types.Strategy(args.SearchType),
		Query:    args.Query,
		SearchIn: args.SearchIn,
		Filters:  args.Filters,
		Limit:    args.Limit,
	}

	result, err := h.searcher.Dispatch(ctx, req)
	if err != nil {
		h.log.Warn("mcp search failed",
			zap.String("search_type", args.SearchType),
			zap.String("query", args.Query),
			zap.Error(err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	payload := searchPayload{
		Results:    make([]biz.ProjectedDocument, 0, len(result.Results)),
		Total:      result.Total,
		SearchType: args.SearchType,
	}
	for _, rec := range result.Results {
		payload.Results = append(payload.Results, biz.ProjectSearchResult(rec))
	}

	return mcp.NewToolResultStructuredOnly(payload), nil
}

type fetchArgs struct {
	ID             string `json:"id"`
	IncludeContent bool   `json:"include_content,omitempty"`
}

func (h *toolHandler) fetch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := fetchArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse arguments: %v", err)), nil
	}
	if args.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	rec, err := h.docs.GetDocument(ctx, args.ID)
	if err != nil {
		h.log.Warn("mcp fetch failed",
			zap.String("id", args.ID),
			zap.Error(err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	doc := biz.ProjectFetchResult(rec)

	if args.IncludeContent {
		data, _, err := h.docs.DownloadDocument(ctx, args.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
		}
		doc.Text = biz.ContentText(data)
	}

	return mcp.NewToolResultStructuredOnly(doc), nil
}
