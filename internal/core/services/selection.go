package services

import (
	"sync"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// Ensure SelectionSet implements the interface.
var _ driving.Selection = (*SelectionSet)(nil)

// SelectionSet tracks ids marked for batch operations.
// It is pure local state; it never talks to the engine.
type SelectionSet struct {
	mu     sync.RWMutex
	policy domain.SelectionPolicy
	order  []string
	ids    map[string]struct{}
}

// NewSelectionSet creates an empty selection with the given page-change policy.
// An unrecognised policy falls back to clearing on page change.
func NewSelectionSet(policy domain.SelectionPolicy) *SelectionSet {
	if !policy.IsValid() {
		policy = domain.SelectionClearOnPageChange
	}
	return &SelectionSet{
		policy: policy,
		ids:    make(map[string]struct{}),
	}
}

// Policy returns the page-change policy.
func (s *SelectionSet) Policy() domain.SelectionPolicy {
	return s.policy
}

// Toggle adds id if absent and removes it if present.
func (s *SelectionSet) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		s.removeLocked(id)
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

// SelectAll replaces the selection with exactly ids.
func (s *SelectionSet) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(ids))
	s.order = make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := s.ids[id]; dup {
			continue
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.order = nil
}

// Contains reports whether id is selected.
func (s *SelectionSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in the order they were selected.
func (s *SelectionSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected ids.
func (s *SelectionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Remove drops ids from the selection.
func (s *SelectionSet) Remove(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.removeLocked(id)
	}
}

// Retain drops every selected id that is not in visible.
func (s *SelectionSet) Retain(visible []string) {
	keep := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		keep[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.order[:0]
	for _, id := range s.order {
		if _, ok := keep[id]; ok {
			order = append(order, id)
			continue
		}
		delete(s.ids, id)
	}
	s.order = order
}

// OnPageChange applies the page-change policy.
func (s *SelectionSet) OnPageChange() {
	if s.policy == domain.SelectionClearOnPageChange {
		s.Clear()
	}
}

// reconcile keeps the selection within the loaded page when the policy scopes it to one page.
func (s *SelectionSet) reconcile(visible []string) {
	if s.policy == domain.SelectionClearOnPageChange {
		s.Retain(visible)
	}
}

func (s *SelectionSet) removeLocked(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
