package mcp

import (
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Store holds the current page and the open fragment.
	Store driving.FragmentStore

	// Pages moves between engine pages.
	Pages driving.Paginator

	// Jobs runs fragmentation jobs. Optional.
	Jobs driving.FragmentationJob

	// Settings supplies fragmentation defaults. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Store == nil {
		return ErrMissingFragmentStore
	}
	if p.Pages == nil {
		return ErrMissingPaginator
	}
	return nil
}
