package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/docbridge-io/docbridge/internal/search/types"
)

// GetDocument fetches a single document profile by id.
func (c *Client) GetDocument(ctx context.Context, id string) (types.DocumentRecord, error) {
	op := fmt.Sprintf("get document %s", id)
	body, _, err := c.get(ctx, op, c.libraryPath("/documents/"+url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	return normalizeRecord(body), nil
}

// DownloadDocument fetches a document's binary content. The returned
// content type is whatever the upstream reported, defaulting to an opaque
// octet stream.
func (c *Client) DownloadDocument(ctx context.Context, id string) ([]byte, string, error) {
	op := fmt.Sprintf("download document %s", id)
	body, contentType, err := c.get(ctx, op, c.libraryPath("/documents/"+url.PathEscape(id)+"/download"), nil)
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}
