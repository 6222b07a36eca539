package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

// scopeParam maps a keyword scope onto the upstream query parameter that
// carries the search text. Exactly one of these is ever set per request.
func scopeParam(scope types.Scope) string {
	switch scope {
	case types.ScopeBody:
		return "body"
	case types.ScopeComments:
		return "comments"
	case types.ScopeTitle:
		return "title"
	default:
		return "anywhere"
	}
}

// SearchByTitle runs a title-match query against the document listing
// endpoint.
func (c *Client) SearchByTitle(ctx context.Context, title string, limit int) (*types.NormalizedResult, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("latest", "true")

	body, _, err := c.get(ctx, "search by title", c.libraryPath("/documents"), params)
	if err != nil {
		return nil, err
	}

	results, total := normalizeEnvelope(body)
	return &types.NormalizedResult{
		SearchTerm: title,
		Results:    results,
		Total:      total,
	}, nil
}

// SearchByKeywords runs a keyword query scoped to one region of the
// document. Unrecognized scopes fall back to anywhere.
func (c *Client) SearchByKeywords(ctx context.Context, keywords string, scope types.Scope, limit int) (*types.NormalizedResult, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("latest", "true")
	params.Set(scopeParam(scope), keywords)

	body, _, err := c.get(ctx, "search by keywords", c.libraryPath("/documents"), params)
	if err != nil {
		return nil, err
	}

	results, total := normalizeEnvelope(body)
	return &types.NormalizedResult{
		SearchTerm: keywords,
		Results:    results,
		Total:      total,
	}, nil
}

type advancedSearchBody struct {
	Limit         int               `json:"limit"`
	Filters       map[string]string `json:"filters"`
	ProfileFields map[string]any    `json:"profile_fields,omitempty"`
}

// SearchAdvanced runs a filtered profile search against the dedicated
// search endpoint.
func (c *Client) SearchAdvanced(ctx context.Context, filters map[string]string, profileFields map[string]any, limit int) (*types.NormalizedResult, error) {
	body, err := c.postJSON(ctx, "advanced search", c.libraryPath("/documents/search"), advancedSearchBody{
		Limit:         limit,
		Filters:       filters,
		ProfileFields: profileFields,
	})
	if err != nil {
		return nil, err
	}

	results, total := normalizeEnvelope(body)
	return &types.NormalizedResult{
		Filters: filters,
		Results: results,
		Total:   total,
	}, nil
}
