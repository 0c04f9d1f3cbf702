package driven

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

// FragmentRepository persists fragment records in insertion order.
// Backed by SQLite or memory.
type FragmentRepository interface {
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Page returns up to limit records starting at offset, in insertion order.
	Page(ctx context.Context, offset, limit int) ([]domain.FragmentRecord, error)

	// ListByIDs returns the records with the given ids, in insertion order.
	// Unknown ids are ignored.
	ListByIDs(ctx context.Context, ids []string) ([]domain.FragmentRecord, error)

	// Append stores records after the existing ones.
	Append(ctx context.Context, records []domain.FragmentRecord) error

	// Replace removes the records with removeIDs and appends add, atomically.
	Replace(ctx context.Context, removeIDs []string, add []domain.FragmentRecord) error

	// Delete removes the records with the given ids. Unknown ids are ignored.
	Delete(ctx context.Context, ids []string) error
}
