package biz

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

// The projector maps canonical upstream document records onto the two
// external response shapes. Every function here is pure and total: a
// missing field yields a fallback ("Unknown", empty string, or zero),
// never an error. Metadata values are string-typed; the consuming
// orchestration client expects string metadata.

const unknown = "Unknown"

// ProjectedDocument is the standardized search-result shape.
type ProjectedDocument struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// FetchedDocument is the standardized fetch shape. Text stays empty unless
// content inclusion was requested.
type FetchedDocument struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Text     string            `json:"text"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// LegacyDocument produces the flat legacy shape: the raw upstream fields
// preserved as-is, with the core profile keys guaranteed present.
func LegacyDocument(rec types.DocumentRecord) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}

	out["id"] = rec.StringField("id", "")
	out["name"] = rec.StringField("name", unknown)
	out["author"] = rec.StringField("author", unknown)
	out["workspace_name"] = rec.StringField("workspace_name", unknown)
	out["edit_date"] = rec.StringField("edit_date", unknown)
	out["type"] = rec.StringField("type", unknown)

	return out
}

// ProjectSearchResult maps a record onto the standardized search shape.
func ProjectSearchResult(rec types.DocumentRecord) ProjectedDocument {
	return ProjectedDocument{
		ID:       rec.StringField("id", ""),
		Title:    rec.StringField("name", unknown),
		Summary:  summarize(rec),
		URL:      documentURL(rec),
		Metadata: searchMetadata(rec),
	}
}

// ProjectFetchResult maps a record onto the standardized fetch shape with
// the superset metadata. Text is filled in by the caller when content
// inclusion was requested.
func ProjectFetchResult(rec types.DocumentRecord) FetchedDocument {
	metadata := searchMetadata(rec)
	metadata["author_email"] = rec.StringField("author_email", "")
	metadata["workspace_id"] = rec.StringField("workspace_id", "")
	metadata["create_date"] = rec.StringField("create_date", unknown)
	metadata["extension"] = rec.StringField("extension", "")
	metadata["version"] = rec.StringField("version", "0")
	metadata["database"] = rec.StringField("database", "")
	metadata["document_number"] = rec.StringField("document_number", "0")
	metadata["last_user"] = rec.StringField("last_user", unknown)
	metadata["default_security"] = rec.StringField("default_security", "")

	return FetchedDocument{
		ID:       rec.StringField("id", ""),
		Title:    rec.StringField("name", unknown),
		URL:      documentURL(rec),
		Metadata: metadata,
	}
}

func searchMetadata(rec types.DocumentRecord) map[string]string {
	return map[string]string{
		"author":        rec.StringField("author", unknown),
		"workspace":     rec.StringField("workspace_name", unknown),
		"size":          rec.StringField("size", "0"),
		"edit_date":     rec.StringField("edit_date", unknown),
		"document_type": rec.StringField("type", unknown),
		"custom1":       rec.StringField("custom1", ""),
		"custom2":       rec.StringField("custom2", ""),
		"custom3":       rec.StringField("custom3", ""),
	}
}

// summarize synthesizes the human-readable one-line summary from the
// workspace name, the two custom description fields, the type description,
// and a formatted size.
func summarize(rec types.DocumentRecord) string {
	parts := []string{
		"Workspace: " + rec.StringField("workspace_name", unknown),
	}

	if c1 := rec.StringField("custom1_description", rec.StringField("custom1", "")); c1 != "" {
		parts = append(parts, c1)
	}
	if c2 := rec.StringField("custom2_description", rec.StringField("custom2", "")); c2 != "" {
		parts = append(parts, c2)
	}

	parts = append(parts,
		"Type: "+rec.StringField("type_description", rec.StringField("type", unknown)),
		"Size: "+formatSize(rec.FloatField("size", 0)),
	)

	return strings.Join(parts, " | ")
}

// documentURL prefers the upstream-provided work link; there is no sensible
// synthetic fallback, so a record without one projects to an empty URL.
func documentURL(rec types.DocumentRecord) string {
	return rec.StringField("iwl", "")
}

func formatSize(size float64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", size/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", size/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", int64(size))
	}
}

// ContentText renders downloaded document bytes as the size-annotated
// base64 payload embedded in fetch responses.
func ContentText(data []byte) string {
	return fmt.Sprintf("[base64-encoded document content, %d bytes]\n%s",
		len(data), base64.StdEncoding.EncodeToString(data))
}
