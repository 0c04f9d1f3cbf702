// Package mcp provides an MCP (Model Context Protocol) server adapter for DataLex.
// It lets AI assistants list, read, add, split and delete fragments.
package mcp

import "errors"

var (
	// ErrMissingFragmentStore is returned when the fragment store is not provided.
	ErrMissingFragmentStore = errors.New("mcp: fragment store is required")

	// ErrMissingPaginator is returned when the paginator is not provided.
	ErrMissingPaginator = errors.New("mcp: paginator is required")

	// ErrJobsUnavailable is returned by fragment_texts when no job controller is wired.
	ErrJobsUnavailable = errors.New("mcp: fragmentation is not available")
)
