package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/logger"
)

// ListFragmentsInput is the input schema for the list_fragments tool.
type ListFragmentsInput struct {
	Page int `json:"page,omitempty" jsonschema:"zero-based page to list (default 0)"`
}

// PageOutput is one engine page.
type PageOutput struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Fragments  []FragmentOutput `json:"fragments"`
}

// FragmentOutput is one fragment. Content is only set by get_fragment.
type FragmentOutput struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	SourcePath  string `json:"source_path"`
	WordCount   int    `json:"word_count"`
	Content     string `json:"content,omitempty"`
}

// GetFragmentInput is the input schema for the get_fragment tool.
type GetFragmentInput struct {
	Page  int `json:"page,omitempty" jsonschema:"zero-based page holding the fragment (default 0)"`
	Index int `json:"index" jsonschema:"zero-based position of the fragment on the page"`
}

// AddFilesInput is the input schema for the add_files tool.
type AddFilesInput struct {
	Paths []string `json:"paths" jsonschema:"paths of UTF-8 text documents to ingest"`
}

// AddFilesOutput reports the workspace after ingestion.
type AddFilesOutput struct {
	Submitted  int `json:"submitted"`
	TotalPages int `json:"total_pages"`
}

// FragmentTextsInput is the input schema for the fragment_texts tool.
type FragmentTextsInput struct {
	IDs       []string `json:"ids" jsonschema:"ids of the fragments to split"`
	Mode      string   `json:"mode,omitempty" jsonschema:"size (word count) or row (one fragment per line); defaults to the configured mode"`
	Target    int      `json:"target,omitempty" jsonschema:"target words per fragment in size mode; defaults to the configured target"`
	Tolerance *int     `json:"tolerance,omitempty" jsonschema:"accepted deviation from target; defaults to the configured tolerance"`
}

// FragmentTextsOutput is the job summary.
// Warning is set when the pieces were stored but the workspace could not be re-read.
type FragmentTextsOutput struct {
	Total     int    `json:"total"`
	Failed    int    `json:"failed"`
	Succeeded int    `json:"succeeded"`
	Warning   string `json:"warning,omitempty"`
}

// DeleteFragmentsInput is the input schema for the delete_fragments tool.
type DeleteFragmentsInput struct {
	IDs []string `json:"ids" jsonschema:"ids of the fragments to delete"`
}

// DeleteFragmentsOutput reports the workspace after deletion.
type DeleteFragmentsOutput struct {
	Deleted    int `json:"deleted"`
	TotalPages int `json:"total_pages"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_fragments",
		Description: "List the fragments on one page of the workspace",
	}, s.handleListFragments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_fragment",
		Description: "Read the full text of one fragment",
	}, s.handleGetFragment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_files",
		Description: "Ingest text documents as new fragments",
	}, s.handleAddFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fragment_texts",
		Description: "Split fragments by word count or by line, replacing them with the pieces",
	}, s.handleFragmentTexts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_fragments",
		Description: "Delete fragments by id",
	}, s.handleDeleteFragments)
}

func (s *Server) handleListFragments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFragmentsInput,
) (*mcp.CallToolResult, PageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.showPage(ctx, input.Page)
	if err != nil {
		return nil, PageOutput{}, err
	}
	return nil, pageOutput(view.Snapshot), nil
}

func (s *Server) handleGetFragment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetFragmentInput,
) (*mcp.CallToolResult, FragmentOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.showPage(ctx, input.Page); err != nil {
		return nil, FragmentOutput{}, err
	}
	if err := s.ports.Store.OpenFragment(ctx, input.Index); err != nil {
		return nil, FragmentOutput{}, err
	}

	open := s.ports.Store.View().Open
	out := fragmentOutput(input.Index, open.Record)
	out.Content = open.Content()
	return nil, out, nil
}

func (s *Server) handleAddFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddFilesInput,
) (*mcp.CallToolResult, AddFilesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(input.Paths) == 0 {
		return nil, AddFilesOutput{}, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}
	if err := s.ports.Store.AddFromFiles(ctx, input.Paths); err != nil {
		return nil, AddFilesOutput{}, err
	}
	return nil, AddFilesOutput{
		Submitted:  len(input.Paths),
		TotalPages: s.ports.Store.View().Snapshot.TotalPages,
	}, nil
}

func (s *Server) handleFragmentTexts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FragmentTextsInput,
) (*mcp.CallToolResult, FragmentTextsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ports.Jobs == nil {
		return nil, FragmentTextsOutput{}, ErrJobsUnavailable
	}
	req, err := s.fragmentationRequest(input)
	if err != nil {
		return nil, FragmentTextsOutput{}, err
	}

	summary, err := s.ports.Jobs.Submit(ctx, req)
	s.ports.Jobs.Reset()
	if err != nil && summary.Total == 0 {
		return nil, FragmentTextsOutput{}, err
	}
	out := FragmentTextsOutput{
		Total:     summary.Total,
		Failed:    summary.Failed,
		Succeeded: summary.Succeeded(),
	}
	if err != nil {
		logger.Warn("fragment_texts: %v", err)
		out.Warning = err.Error()
	}
	return nil, out, nil
}

func (s *Server) handleDeleteFragments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteFragmentsInput,
) (*mcp.CallToolResult, DeleteFragmentsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(input.IDs) == 0 {
		return nil, DeleteFragmentsOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNoSelection)
	}
	if err := s.ports.Store.DeleteFragments(ctx, input.IDs); err != nil {
		return nil, DeleteFragmentsOutput{}, err
	}
	return nil, DeleteFragmentsOutput{
		Deleted:    len(input.IDs),
		TotalPages: s.ports.Store.View().Snapshot.TotalPages,
	}, nil
}

// showPage refreshes and, if needed, moves to page.
func (s *Server) showPage(ctx context.Context, page int) (domain.WorkspaceView, error) {
	if err := s.ports.Store.Refresh(ctx); err != nil {
		return domain.WorkspaceView{}, err
	}
	view := s.ports.Store.View()
	if view.Snapshot.CurrentPage == page {
		return view, nil
	}

	accepted, err := s.ports.Pages.GoTo(ctx, page)
	if err != nil {
		return domain.WorkspaceView{}, err
	}
	if !accepted {
		return domain.WorkspaceView{}, fmt.Errorf("%w: page %d of %d",
			domain.ErrPageOutOfRange, page, view.Snapshot.TotalPages)
	}
	return s.ports.Store.View(), nil
}

// fragmentationRequest fills omitted fields from the configured defaults.
func (s *Server) fragmentationRequest(input FragmentTextsInput) (domain.FragmentationRequest, error) {
	defaults := domain.DefaultAppSettings().Fragmentation
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			defaults = settings.Fragmentation
		}
	}

	req := domain.FragmentationRequest{
		SelectedIDs:     input.IDs,
		Mode:            defaults.Mode,
		TargetWordCount: defaults.Target,
		Tolerance:       defaults.Tolerance,
	}
	if input.Mode != "" {
		mode, err := domain.ParseFragmentationMode(input.Mode)
		if err != nil {
			return domain.FragmentationRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
		}
		req.Mode = mode
	}
	if input.Target != 0 {
		req.TargetWordCount = input.Target
	}
	if input.Tolerance != nil {
		req.Tolerance = *input.Tolerance
	}
	return req, nil
}

func pageOutput(snap domain.Snapshot) PageOutput {
	out := PageOutput{
		Page:       snap.CurrentPage,
		TotalPages: snap.TotalPages,
		Fragments:  make([]FragmentOutput, len(snap.Records)),
	}
	for i, r := range snap.Records {
		out.Fragments[i] = fragmentOutput(i, r)
	}
	return out
}

func fragmentOutput(index int, r domain.FragmentRecord) FragmentOutput {
	return FragmentOutput{
		Index:       index,
		ID:          r.ID,
		DisplayName: r.Label(),
		SourcePath:  r.SourcePath,
		WordCount:   r.WordCount,
	}
}
