package types

// NormalizedResult is the canonical shape every executor operation returns,
// regardless of how the upstream endpoint wrapped its payload. Total is the
// upstream-reported count and is not guaranteed to be consistent with
// len(Results).
type NormalizedResult struct {
	SearchTerm string            `json:"search_term,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
	Results    []DocumentRecord  `json:"results"`
	Total      int               `json:"total"`
}

// BatchItemResult records the outcome of one request within a batch,
// at its original input index.
type BatchItemResult struct {
	Index    int               `json:"index"`
	Strategy Strategy          `json:"search_type"`
	Success  bool              `json:"success"`
	Result   *NormalizedResult `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// BatchSummary aggregates a batch run. Items preserve input order
// regardless of which items failed.
type BatchSummary struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Items     []BatchItemResult `json:"results"`
}
