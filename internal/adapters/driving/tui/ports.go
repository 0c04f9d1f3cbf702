// Package tui provides an interactive terminal user interface for datalex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// Ports aggregates the ports required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Store holds the current page, the open fragment and the selection.
	Store driving.FragmentStore

	// Pages moves between engine pages.
	Pages driving.Paginator

	// Jobs runs fragmentation jobs.
	Jobs driving.FragmentationJob

	// Settings supplies dialog defaults. Optional.
	Settings driving.SettingsService

	// Changes reports engine changes made by other processes. Optional.
	Changes driven.ChangeNotifier
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(store driving.FragmentStore, pages driving.Paginator, jobs driving.FragmentationJob) *Ports {
	return &Ports{
		Store: store,
		Pages: pages,
		Jobs:  jobs,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Store == nil {
		return ErrMissingFragmentStore
	}
	if p.Pages == nil {
		return ErrMissingPaginator
	}
	if p.Jobs == nil {
		return ErrMissingJobController
	}
	return nil
}
