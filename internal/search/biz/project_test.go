package biz

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

func fullRecord() types.DocumentRecord {
	return types.DocumentRecord{
		"id":                  "ACTIVE!123.1",
		"name":                "Merger Agreement",
		"author":              "jdoe",
		"author_email":        "jdoe@example.com",
		"workspace_name":      "Project Falcon",
		"workspace_id":        "ws-42",
		"size":                float64(2048),
		"edit_date":           "2026-02-01T10:00:00Z",
		"create_date":         "2025-12-24T08:00:00Z",
		"type":                "WORD",
		"type_description":    "Word Document",
		"custom1":             "CLIENT-1",
		"custom1_description": "Acme Corp",
		"custom2":             "MATTER-7",
		"custom2_description": "Acquisition",
		"custom3":             "NY",
		"extension":           "docx",
		"version":             float64(3),
		"database":            "ACTIVE",
		"document_number":     float64(123),
		"last_user":           "asmith",
		"default_security":    "private",
		"iwl":                 "iwl:dms=dms.example.com&&lib=ACTIVE&&num=123&&ver=1",
	}
}

func TestProjectSearchResult_DefensiveDefaults(t *testing.T) {
	doc := ProjectSearchResult(types.DocumentRecord{"id": "D1", "name": "Orphan"})

	assert.Equal(t, "Unknown", doc.Metadata["author"])
	assert.Equal(t, "0", doc.Metadata["size"])
	assert.Equal(t, "Unknown", doc.Metadata["edit_date"])
	assert.Equal(t, "Unknown", doc.Metadata["workspace"])
	assert.Equal(t, "", doc.Metadata["custom1"])
	assert.Equal(t, "", doc.URL)
}

func TestProjectSearchResult_Full(t *testing.T) {
	doc := ProjectSearchResult(fullRecord())

	assert.Equal(t, "ACTIVE!123.1", doc.ID)
	assert.Equal(t, "Merger Agreement", doc.Title)
	assert.Equal(t, "iwl:dms=dms.example.com&&lib=ACTIVE&&num=123&&ver=1", doc.URL)

	// Numbers are stringified in standardized metadata.
	assert.Equal(t, "2048", doc.Metadata["size"])
	assert.Equal(t, "jdoe", doc.Metadata["author"])
	assert.Equal(t, "Project Falcon", doc.Metadata["workspace"])
	assert.Equal(t, "WORD", doc.Metadata["document_type"])
	assert.Equal(t, "CLIENT-1", doc.Metadata["custom1"])

	// Search metadata does not carry the fetch-only keys.
	assert.NotContains(t, doc.Metadata, "author_email")
	assert.NotContains(t, doc.Metadata, "version")
}

func TestProjectSearchResult_Summary(t *testing.T) {
	summary := ProjectSearchResult(fullRecord()).Summary

	assert.Equal(t, "Workspace: Project Falcon | Acme Corp | Acquisition | Type: Word Document | Size: 2.0 KB", summary)
}

func TestProjectSearchResult_SummaryWithMissingFields(t *testing.T) {
	summary := ProjectSearchResult(types.DocumentRecord{}).Summary

	assert.Equal(t, "Workspace: Unknown | Type: Unknown | Size: 0 bytes", summary)
}

func TestProjectFetchResult_SupersetMetadata(t *testing.T) {
	doc := ProjectFetchResult(fullRecord())

	assert.Equal(t, "", doc.Text)
	assert.Equal(t, "jdoe@example.com", doc.Metadata["author_email"])
	assert.Equal(t, "ws-42", doc.Metadata["workspace_id"])
	assert.Equal(t, "2025-12-24T08:00:00Z", doc.Metadata["create_date"])
	assert.Equal(t, "docx", doc.Metadata["extension"])
	assert.Equal(t, "3", doc.Metadata["version"])
	assert.Equal(t, "ACTIVE", doc.Metadata["database"])
	assert.Equal(t, "123", doc.Metadata["document_number"])
	assert.Equal(t, "asmith", doc.Metadata["last_user"])
	assert.Equal(t, "private", doc.Metadata["default_security"])
}

func TestProjectFetchResult_Defaults(t *testing.T) {
	doc := ProjectFetchResult(types.DocumentRecord{})

	assert.Equal(t, "Unknown", doc.Title)
	assert.Equal(t, "0", doc.Metadata["version"])
	assert.Equal(t, "0", doc.Metadata["document_number"])
	assert.Equal(t, "Unknown", doc.Metadata["last_user"])
	assert.Equal(t, "", doc.Metadata["author_email"])
}

func TestLegacyDocument_PreservesRawFieldsAndDefaults(t *testing.T) {
	rec := types.DocumentRecord{
		"id":        "D1",
		"obscure_x": "kept as-is",
	}

	out := LegacyDocument(rec)

	assert.Equal(t, "kept as-is", out["obscure_x"])
	assert.Equal(t, "Unknown", out["author"])
	assert.Equal(t, "Unknown", out["edit_date"])
	assert.Equal(t, "D1", out["id"])
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size float64
		want string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{3 << 20, "3.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.size))
	}
}

func TestContentText(t *testing.T) {
	data := []byte("hello world")
	text := ContentText(data)

	assert.Contains(t, text, "11 bytes")
	require.True(t, strings.HasSuffix(text, base64.StdEncoding.EncodeToString(data)))
}
