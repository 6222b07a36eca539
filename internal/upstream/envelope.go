package upstream

import (
	"github.com/tidwall/gjson"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

// The upstream response envelope is not contractually stable across
// endpoints and versions: the result list may live under "data", under
// "results", or be the payload itself. resultExtractors is the ordered
// decision table applied to resolve it; the first extractor whose key exists
// wins, and a non-array resolved value is probed one level deeper at
// ".results" before defaulting to an empty list.
var resultExtractors = []func(gjson.Result) gjson.Result{
	func(r gjson.Result) gjson.Result { return r.Get("data") },
	func(r gjson.Result) gjson.Result { return r.Get("results") },
	func(r gjson.Result) gjson.Result { return r },
}

func resolveResults(payload gjson.Result) []gjson.Result {
	for _, extract := range resultExtractors {
		resolved := extract(payload)
		if !resolved.Exists() {
			continue
		}
		if resolved.IsArray() {
			return resolved.Array()
		}
		if deeper := resolved.Get("results"); deeper.IsArray() {
			return deeper.Array()
		}
		return nil
	}
	return nil
}

func resolveTotal(payload gjson.Result, listLen int) int {
	if total := payload.Get("total"); total.Exists() {
		return int(total.Int())
	}
	if count := payload.Get("count"); count.Exists() {
		return int(count.Int())
	}
	return listLen
}

// normalizeEnvelope turns a raw upstream search payload into the canonical
// {results, total} pair.
func normalizeEnvelope(body []byte) ([]types.DocumentRecord, int) {
	payload := gjson.ParseBytes(body)

	list := resolveResults(payload)
	records := make([]types.DocumentRecord, 0, len(list))
	for _, item := range list {
		if m, ok := item.Value().(map[string]any); ok {
			records = append(records, types.DocumentRecord(m))
		}
	}

	return records, resolveTotal(payload, len(records))
}

// normalizeRecord extracts a single document profile, unwrapping a "data"
// envelope when present.
func normalizeRecord(body []byte) types.DocumentRecord {
	payload := gjson.ParseBytes(body)
	if data := payload.Get("data"); data.Exists() && data.IsObject() {
		payload = data
	}
	if m, ok := payload.Value().(map[string]any); ok {
		return types.DocumentRecord(m)
	}
	return types.DocumentRecord{}
}
