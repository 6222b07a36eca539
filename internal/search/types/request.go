package types

// Strategy identifies one of the supported search modes.
type Strategy string

const (
	StrategyTitle    Strategy = "title"
	StrategyKeywords Strategy = "keywords"
	StrategyAdvanced Strategy = "advanced"
	StrategyBatch    Strategy = "batch"
)

// Scope restricts where a keyword search matches.
type Scope string

const (
	ScopeAnywhere Scope = "anywhere"
	ScopeBody     Scope = "body"
	ScopeComments Scope = "comments"
	ScopeTitle    Scope = "title"
)

// ParseScope maps a raw scope string onto a known Scope. Unrecognized
// values fall back to ScopeAnywhere.
func ParseScope(s string) Scope {
	switch Scope(s) {
	case ScopeBody, ScopeComments, ScopeTitle:
		return Scope(s)
	default:
		return ScopeAnywhere
	}
}

const (
	// DefaultLimit applies when a request does not specify one.
	DefaultLimit = 50
	// MaxLimit is the upstream-recommended ceiling per query.
	MaxLimit = 200
)

// SearchRequest is polymorphic over the four strategies. Query carries the
// title or keyword text depending on the strategy; Filters and ProfileFields
// apply to advanced searches only.
type SearchRequest struct {
	Strategy      Strategy          `json:"search_type"`
	Query         string            `json:"query,omitempty"`
	SearchIn      string            `json:"search_in,omitempty"`
	Filters       map[string]string `json:"filters,omitempty"`
	ProfileFields map[string]any    `json:"profile_fields,omitempty"`
	Limit         int               `json:"limit,omitempty"`
}

// EffectiveLimit applies the default and the upstream ceiling.
func (r *SearchRequest) EffectiveLimit() int {
	switch {
	case r.Limit <= 0:
		return DefaultLimit
	case r.Limit > MaxLimit:
		return MaxLimit
	default:
		return r.Limit
	}
}

// Validate checks the variant-specific required fields.
func (r *SearchRequest) Validate() error {
	switch r.Strategy {
	case StrategyTitle, StrategyKeywords, StrategyBatch:
		if r.Query == "" {
			return &ValidationError{Field: "query", Message: "query is required"}
		}
	case StrategyAdvanced:
		if len(r.Filters) == 0 {
			return &ValidationError{Field: "filters", Message: "at least one filter is required"}
		}
	case "":
		return &ValidationError{Field: "search_type", Message: "search_type is required"}
	}
	return nil
}
