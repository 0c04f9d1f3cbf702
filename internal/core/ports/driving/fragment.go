package driving

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

// FragmentStore is the single source of truth for the current page and the open fragment.
type FragmentStore interface {
	// Refresh re-fetches records, page index and page count as one snapshot.
	Refresh(ctx context.Context) error

	// OpenFragment loads full content for the record at index on the current page.
	OpenFragment(ctx context.Context, index int) error

	// AddFromFiles ingests documents and refreshes.
	AddFromFiles(ctx context.Context, paths []string) error

	// AddFromDialog asks the engine for documents and ingests them.
	// It returns the number of paths submitted; zero means the user cancelled.
	AddFromDialog(ctx context.Context) (int, error)

	// DeleteFragments deletes records and refreshes. Empty ids is a no-op.
	DeleteFragments(ctx context.Context, ids []string) error

	// View returns snapshot, open fragment and selection together.
	View() domain.WorkspaceView

	// Selection returns the selection tracked alongside the snapshot.
	Selection() Selection

	// Subscribe registers fn to receive the view after each action that
	// changed it. The returned func removes the observer.
	Subscribe(fn func(domain.WorkspaceView)) func()
}

// Paginator moves between engine pages.
type Paginator interface {
	// GoTo requests page and refreshes. Out-of-range pages are rejected
	// without an engine call and report accepted == false.
	GoTo(ctx context.Context, page int) (accepted bool, err error)

	// Next moves one page forward if enabled.
	Next(ctx context.Context) (bool, error)

	// Previous moves one page back if enabled.
	Previous(ctx context.Context) (bool, error)

	// Boundary returns the state derived from the current snapshot.
	Boundary() domain.PageBoundary
}

// Selection tracks ids marked for batch operations.
type Selection interface {
	Toggle(id string)
	SelectAll(ids []string)
	Clear()
	Contains(id string) bool
	IDs() []string
	Len() int
}

// FragmentationJob submits and tracks fragmentation jobs.
type FragmentationJob interface {
	// Submit validates req, runs it on the engine and refreshes the store.
	Submit(ctx context.Context, req domain.FragmentationRequest) (domain.JobSummary, error)

	// Reset returns a completed or failed job to idle.
	Reset()

	// State returns the job state.
	State() domain.JobState

	// Progress returns the tri-state job progress.
	Progress() domain.Progress
}
