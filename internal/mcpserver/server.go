// Package mcpserver exposes the adapter's search and fetch operations as
// MCP tools for an external AI orchestration client. Tool discovery comes
// from the MCP protocol itself; the input schemas below are the discovery
// document.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/search/types"
)

const serverName = "docbridge"

// Searcher dispatches a search request. *biz.SearchUseCase implements it.
type Searcher interface {
	Dispatch(ctx context.Context, req *types.SearchRequest) (*types.NormalizedResult, error)
}

// DocumentStore fetches single documents. *upstream.Client implements it.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (types.DocumentRecord, error)
	DownloadDocument(ctx context.Context, id string) ([]byte, string, error)
}

// Server wraps the MCP server and its streamable HTTP transport.
type Server struct {
	mcpServer  *server.MCPServer
	streamable *server.StreamableHTTPServer
	handler    *toolHandler
}

// New creates the MCP server with the search and fetch tools registered.
func New(searcher Searcher, docs DocumentStore, endpoint, version string, log *logger.Logger) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	handler := &toolHandler{searcher: searcher, docs: docs, log: log}

	mcpServer.AddTool(mcp.Tool{
		Name:        "search",
		Description: "Search the document repository. Supports title match, keyword search scoped to a document region, advanced profile filtering, and a combined best-effort batch mode.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search text (title or keywords depending on search_type)",
				},
				"search_type": map[string]interface{}{
					"type":        "string",
					"description": "Search strategy to use",
					"enum":        []string{"title", "keywords", "advanced", "batch"},
					"default":     "keywords",
				},
				"search_in": map[string]interface{}{
					"type":        "string",
					"description": "Region of the document a keyword search matches against",
					"enum":        []string{"anywhere", "body", "comments", "title"},
					"default":     "anywhere",
				},
				"filters": map[string]interface{}{
					"type":        "object",
					"description": "Profile filters for advanced search (field name to value)",
					"additionalProperties": map[string]interface{}{
						"type": "string",
					},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results",
					"default":     types.DefaultLimit,
					"maximum":     types.MaxLimit,
				},
			},
			Required: []string{"query"},
		},
	}, handler.search)

	mcpServer.AddTool(mcp.Tool{
		Name:        "fetch",
		Description: "Fetch a single document's profile by id, optionally embedding its base64-encoded content.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Document id",
				},
				"include_content": map[string]interface{}{
					"type":        "boolean",
					"description": "Embed the document content as a size-annotated base64 payload",
					"default":     false,
				},
			},
			Required: []string{"id"},
		},
	}, handler.fetch)

	streamable := server.NewStreamableHTTPServer(
		mcpServer,
		server.WithEndpointPath(endpoint),
	)

	return &Server{
		mcpServer:  mcpServer,
		streamable: streamable,
		handler:    handler,
	}
}

// Handler returns the streamable HTTP handler for mounting into the
// adapter's router.
func (s *Server) Handler() http.Handler {
	return s.streamable
}
