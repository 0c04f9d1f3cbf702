// Package null provides the engine used when no real engine could be constructed.
package null

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure Engine implements the EngineClient interface.
var _ driven.EngineClient = (*Engine)(nil)

// Engine answers every call with domain.ErrEngineUnavailable.
type Engine struct{}

// New creates an unavailable engine.
func New() *Engine {
	return &Engine{}
}

// GetPaginatedData returns ErrEngineUnavailable.
func (e *Engine) GetPaginatedData(_ context.Context) ([]domain.FragmentRecord, error) {
	return nil, domain.ErrEngineUnavailable
}

// GetCurrentPage returns ErrEngineUnavailable.
func (e *Engine) GetCurrentPage(_ context.Context) (int, error) {
	return 0, domain.ErrEngineUnavailable
}

// GetTotalPages returns ErrEngineUnavailable.
func (e *Engine) GetTotalPages(_ context.Context) (int, error) {
	return 0, domain.ErrEngineUnavailable
}

// SetCurrentPage returns ErrEngineUnavailable.
func (e *Engine) SetCurrentPage(_ context.Context, _ int) error {
	return domain.ErrEngineUnavailable
}

// OpenFileDialog returns ErrEngineUnavailable.
func (e *Engine) OpenFileDialog(_ context.Context) ([]string, error) {
	return nil, domain.ErrEngineUnavailable
}

// LoadFiles returns ErrEngineUnavailable.
func (e *Engine) LoadFiles(_ context.Context, _ []string) error {
	return domain.ErrEngineUnavailable
}

// GetText returns ErrEngineUnavailable.
func (e *Engine) GetText(_ context.Context, _ int) (*domain.FragmentRecord, error) {
	return nil, domain.ErrEngineUnavailable
}

// FragmentTexts returns ErrEngineUnavailable.
func (e *Engine) FragmentTexts(
	_ context.Context,
	_ []string,
	_ string,
	_, _ int,
) ([]domain.FragmentationOutcome, error) {
	return nil, domain.ErrEngineUnavailable
}

// DeleteFragments returns ErrEngineUnavailable.
func (e *Engine) DeleteFragments(_ context.Context, _ []string) error {
	return domain.ErrEngineUnavailable
}
