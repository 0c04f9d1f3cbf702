package services

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
	"github.com/custodia-labs/datalex/internal/logger"
)

// Ensure Paginator implements the interface.
var _ driving.Paginator = (*Paginator)(nil)

// Paginator moves the engine between pages and refreshes the store.
// The target page is checked against the latest snapshot inside the action queue.
type Paginator struct {
	store *FragmentStore
}

// NewPaginator creates a paginator over store.
func NewPaginator(store *FragmentStore) *Paginator {
	return &Paginator{store: store}
}

// GoTo requests page and refreshes. Pages outside [0, totalPages) are rejected
// without an engine call, except page 0 which is always permitted.
func (p *Paginator) GoTo(ctx context.Context, page int) (bool, error) {
	return p.move(ctx, func(snap domain.Snapshot) (int, bool) {
		return page, pageAllowed(page, snap.TotalPages)
	})
}

// Next moves one page forward. It is a no-op at the last page.
func (p *Paginator) Next(ctx context.Context) (bool, error) {
	return p.move(ctx, func(snap domain.Snapshot) (int, bool) {
		return snap.CurrentPage + 1, snap.Boundary().CanNext()
	})
}

// Previous moves one page back. It is a no-op at the first page.
func (p *Paginator) Previous(ctx context.Context) (bool, error) {
	return p.move(ctx, func(snap domain.Snapshot) (int, bool) {
		return snap.CurrentPage - 1, snap.Boundary().CanPrevious()
	})
}

// Boundary returns the state derived from the current snapshot.
func (p *Paginator) Boundary() domain.PageBoundary {
	return p.store.Snapshot().Boundary()
}

// CanPrevious reports whether the previous transition is enabled.
func (p *Paginator) CanPrevious() bool {
	return p.Boundary().CanPrevious()
}

// CanNext reports whether the next transition is enabled.
func (p *Paginator) CanNext() bool {
	return p.Boundary().CanNext()
}

func (p *Paginator) move(ctx context.Context, target func(domain.Snapshot) (int, bool)) (bool, error) {
	accepted := false
	err := p.store.run(ctx, func(ctx context.Context) error {
		page, ok := target(p.store.Snapshot())
		if !ok {
			logger.Debug("page %d rejected", page)
			return nil
		}
		accepted = true

		logger.Debug("engine: SetCurrentPage(%d)", page)
		if err := p.store.engine.SetCurrentPage(ctx, page); err != nil {
			return classify(err, domain.ErrFetchFailed)
		}
		return p.store.refreshLocked(ctx)
	})
	return accepted, err
}

func pageAllowed(page, totalPages int) bool {
	return page == 0 || (page > 0 && page < totalPages)
}
