package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure FragmentStore implements the interface.
var _ driven.FragmentRepository = (*FragmentStore)(nil)

// FragmentStore is an in-memory implementation of driven.FragmentRepository.
// Records are kept in a slice in insertion order.
type FragmentStore struct {
	mu      sync.RWMutex
	records []domain.FragmentRecord
}

// NewFragmentStore creates a new in-memory fragment store.
func NewFragmentStore() *FragmentStore {
	return &FragmentStore{}
}

// Count returns the number of stored records.
func (s *FragmentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Page returns up to limit records starting at offset.
func (s *FragmentStore) Page(_ context.Context, offset, limit int) ([]domain.FragmentRecord, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset %d limit %d", domain.ErrInvalidInput, offset, limit)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset >= len(s.records) {
		return []domain.FragmentRecord{}, nil
	}
	end := min(offset+limit, len(s.records))
	out := make([]domain.FragmentRecord, end-offset)
	copy(out, s.records[offset:end])
	return out, nil
}

// ListByIDs returns the records with the given ids in insertion order.
func (s *FragmentStore) ListByIDs(_ context.Context, ids []string) ([]domain.FragmentRecord, error) {
	want := idSet(ids)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.FragmentRecord
	for _, r := range s.records {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Append stores records after the existing ones.
// Returns ErrInvalidInput if an id is already stored.
func (s *FragmentStore) Append(_ context.Context, records []domain.FragmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUniqueLocked(nil, records); err != nil {
		return err
	}
	s.records = append(s.records, records...)
	return nil
}

// Replace removes removeIDs and appends add in one step.
func (s *FragmentStore) Replace(_ context.Context, removeIDs []string, add []domain.FragmentRecord) error {
	drop := idSet(removeIDs)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUniqueLocked(drop, add); err != nil {
		return err
	}
	s.records = append(s.filterLocked(drop), add...)
	return nil
}

// Delete removes the records with the given ids.
func (s *FragmentStore) Delete(_ context.Context, ids []string) error {
	drop := idSet(ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.filterLocked(drop)
	return nil
}

func (s *FragmentStore) filterLocked(drop map[string]struct{}) []domain.FragmentRecord {
	kept := make([]domain.FragmentRecord, 0, len(s.records))
	for _, r := range s.records {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	return kept
}

// checkUniqueLocked rejects records whose id collides with a kept record or with each other.
func (s *FragmentStore) checkUniqueLocked(dropping map[string]struct{}, records []domain.FragmentRecord) error {
	seen := make(map[string]struct{}, len(s.records)+len(records))
	for _, r := range s.records {
		if _, gone := dropping[r.ID]; !gone {
			seen[r.ID] = struct{}{}
		}
	}
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate fragment id %q", domain.ErrInvalidInput, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
