package driven

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

// EngineClient is the boundary to the engine that owns documents, the splitting
// algorithm and the authoritative pagination counts.
// Every method is one request/response round trip.
type EngineClient interface {
	// GetPaginatedData returns the records on the current page. An empty slice is valid.
	GetPaginatedData(ctx context.Context) ([]domain.FragmentRecord, error)

	// GetCurrentPage returns the zero-based current page index.
	GetCurrentPage(ctx context.Context) (int, error)

	// GetTotalPages returns the number of pages.
	GetTotalPages(ctx context.Context) (int, error)

	// SetCurrentPage moves the engine to page. Callers must re-fetch data afterwards.
	SetCurrentPage(ctx context.Context, page int) error

	// OpenFileDialog asks the user for documents. An empty result means cancelled.
	OpenFileDialog(ctx context.Context) ([]string, error)

	// LoadFiles ingests source documents.
	LoadFiles(ctx context.Context, paths []string) error

	// GetText returns the record at index on the current page with content populated.
	GetText(ctx context.Context, index int) (*domain.FragmentRecord, error)

	// FragmentTexts splits the selected records. mode is the wire value ("size" or "row").
	FragmentTexts(
		ctx context.Context,
		selectedIDs []string,
		mode string,
		target, tolerance int,
	) ([]domain.FragmentationOutcome, error)

	// DeleteFragments removes the records with the given ids.
	DeleteFragments(ctx context.Context, ids []string) error
}
