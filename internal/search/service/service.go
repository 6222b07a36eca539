package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/pkg/response"
	"github.com/docbridge-io/docbridge/internal/search/biz"
	"github.com/docbridge-io/docbridge/internal/search/types"
)

// DocumentStore fetches single documents from the upstream repository.
// *upstream.Client implements it.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (types.DocumentRecord, error)
	DownloadDocument(ctx context.Context, id string) ([]byte, string, error)
}

// SearchService exposes the legacy REST surface.
type SearchService struct {
	uc   *biz.SearchUseCase
	docs DocumentStore
	log  *logger.Logger
}

// NewSearchService creates the legacy REST service.
func NewSearchService(uc *biz.SearchUseCase, docs DocumentStore, log *logger.Logger) *SearchService {
	return &SearchService{uc: uc, docs: docs, log: log}
}

// RegisterRoutes mounts the legacy routes on the given group.
func (s *SearchService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/search/title", s.searchByTitle)
	r.GET("/search/keywords", s.searchByKeywords)
	r.POST("/search/advanced", s.searchAdvanced)
	r.POST("/search/batch", s.searchBatch)
	r.GET("/documents/:id", s.getDocument)
	r.GET("/documents/:id/download", s.downloadDocument)
}

// legacyResult renders a normalized result with legacy-projected records.
func legacyResult(result *types.NormalizedResult) gin.H {
	docs := make([]map[string]any, 0, len(result.Results))
	for _, rec := range result.Results {
		docs = append(docs, biz.LegacyDocument(rec))
	}

	out := gin.H{
		"results": docs,
		"total":   result.Total,
	}
	if result.SearchTerm != "" {
		out["search_term"] = result.SearchTerm
	}
	if result.Filters != nil {
		out["filters"] = result.Filters
	}
	return out
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, &types.ValidationError{Field: "limit", Message: "limit must be a positive integer"}
	}
	return limit, nil
}

func (s *SearchService) searchByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.BadRequest(c, "title query parameter is required")
		return
	}

	limit, err := parseLimit(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := s.uc.Dispatch(c.Request.Context(), &types.SearchRequest{
		Strategy: types.StrategyTitle,
		Query:    title,
		Limit:    limit,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, legacyResult(result))
}

func (s *SearchService) searchByKeywords(c *gin.Context) {
	keywords := c.Query("keywords")
	if keywords == "" {
		response.BadRequest(c, "keywords query parameter is required")
		return
	}

	limit, err := parseLimit(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := s.uc.Dispatch(c.Request.Context(), &types.SearchRequest{
		Strategy: types.StrategyKeywords,
		Query:    keywords,
		SearchIn: c.Query("search_in"),
		Limit:    limit,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, legacyResult(result))
}

type advancedSearchRequest struct {
	Filters       map[string]string `json:"filters"`
	ProfileFields map[string]any    `json:"profile_fields"`
	Limit         int               `json:"limit"`
}

func (s *SearchService) searchAdvanced(c *gin.Context) {
	var req advancedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := s.uc.Dispatch(c.Request.Context(), &types.SearchRequest{
		Strategy:      types.StrategyAdvanced,
		Filters:       req.Filters,
		ProfileFields: req.ProfileFields,
		Limit:         req.Limit,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, legacyResult(result))
}

type batchSearchRequest struct {
	Searches []*types.SearchRequest `json:"searches"`
}

func (s *SearchService) searchBatch(c *gin.Context) {
	var req batchSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Searches) == 0 {
		response.BadRequest(c, "searches must contain at least one request")
		return
	}

	summary := s.uc.RunBatch(c.Request.Context(), req.Searches)

	// Per-item failures are part of the aggregate, not an HTTP error.
	items := make([]gin.H, 0, len(summary.Items))
	for _, item := range summary.Items {
		rendered := gin.H{
			"index":       item.Index,
			"search_type": item.Strategy,
			"success":     item.Success,
		}
		if item.Success {
			rendered["result"] = legacyResult(item.Result)
		} else {
			rendered["error"] = item.Error
		}
		items = append(items, rendered)
	}

	response.OK(c, gin.H{
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"results":   items,
	})
}

func (s *SearchService) getDocument(c *gin.Context) {
	rec, err := s.docs.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, biz.LegacyDocument(rec))
}

func (s *SearchService) downloadDocument(c *gin.Context) {
	data, contentType, err := s.docs.DownloadDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}
