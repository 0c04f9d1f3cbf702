package driven

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

// SplitOptions carries the size policy for a split.
type SplitOptions struct {
	// Target is the desired words per fragment.
	Target int

	// Tolerance is the accepted deviation from Target.
	Tolerance int
}

// Splitter is one fragmentation algorithm.
// Implementations must be safe for concurrent use.
type Splitter interface {
	// Mode returns the mode this splitter implements.
	Mode() domain.FragmentationMode

	// Split produces the ordered pieces of text.
	Split(ctx context.Context, text string, opts SplitOptions) ([]domain.FragmentationOutcome, error)
}
