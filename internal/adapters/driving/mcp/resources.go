package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for DataLex resources.
	uriScheme = "datalex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Pagination, selection and fragmentation settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{page}",
		Name:        "fragment-page",
		Description: "Fragments on one zero-based engine page",
		MIMEType:    "application/json",
	}, s.handlePageResource)
}

// handleSettingsResource returns the effective settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	info := map[string]any{
		"page_size": settings.Pagination.PageSize,
		"policy":    settings.Selection.Policy.String(),
		"mode":      settings.Fragmentation.Mode.String(),
		"target":    settings.Fragmentation.Target,
		"tolerance": settings.Fragmentation.Tolerance,
		"workers":   settings.Engine.Workers,
	}
	return jsonResource(req.Params.URI, info)
}

// handlePageResource returns the fragments of a page.
func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, ok := extractPage(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.showPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("reading page %d: %w", page, err)
	}
	return jsonResource(req.Params.URI, pageOutput(view.Snapshot))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPage extracts the page from a URI like datalex://pages/{page}.
func extractPage(uri string) (int, bool) {
	const prefix = uriScheme + "pages/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	page, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}
