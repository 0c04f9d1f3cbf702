package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
	"github.com/custodia-labs/datalex/internal/logger"
)

// Ensure FragmentStore implements the interface.
var _ driving.FragmentStore = (*FragmentStore)(nil)

// storeState is everything the store publishes in one swap.
type storeState struct {
	snapshot domain.Snapshot
	open     domain.OpenFragment
}

// FragmentStore holds the current page of fragments and the open fragment.
// It is the only writer of that state; writes happen inside the action queue
// and replace the whole state at once.
type FragmentStore struct {
	engine    driven.EngineClient
	queue     *ActionQueue
	selection *SelectionSet

	// viewMu pairs selection changes with the snapshot they belong to.
	viewMu sync.RWMutex
	state  atomic.Pointer[storeState]
	dirty  atomic.Bool

	mu        sync.Mutex
	nextID    int
	observers map[int]func(domain.WorkspaceView)
}

// NewFragmentStore creates a store over engine.
// A nil queue or selection is replaced by a fresh one.
func NewFragmentStore(engine driven.EngineClient, queue *ActionQueue, selection *SelectionSet) *FragmentStore {
	if queue == nil {
		queue = NewActionQueue()
	}
	if selection == nil {
		selection = NewSelectionSet(domain.SelectionClearOnPageChange)
	}
	s := &FragmentStore{
		engine:    engine,
		queue:     queue,
		selection: selection,
		observers: make(map[int]func(domain.WorkspaceView)),
	}
	s.state.Store(&storeState{})
	return s
}

// Refresh re-fetches records, page index and page count and publishes them together.
// On failure the previous snapshot is kept.
func (s *FragmentStore) Refresh(ctx context.Context) error {
	return s.run(ctx, s.refreshLocked)
}

// OpenFragment loads the fragment at index on the current page into the open slot.
// On failure the open slot is left untouched.
func (s *FragmentStore) OpenFragment(ctx context.Context, index int) error {
	return s.run(ctx, func(ctx context.Context) error {
		logger.Debug("engine: GetText(%d)", index)
		record, err := s.engine.GetText(ctx, index)
		if err != nil {
			return classify(err, domain.ErrFetchFailed)
		}
		if record == nil {
			return fmt.Errorf("%w: %w: no fragment at index %d", domain.ErrFetchFailed, domain.ErrNotFound, index)
		}

		next := *s.state.Load()
		next.open = domain.OpenFragment{ID: record.ID, Record: *record}
		s.publish(next, nil)
		return nil
	})
}

// AddFromFiles submits source documents for ingestion and refreshes.
func (s *FragmentStore) AddFromFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return s.run(ctx, func(ctx context.Context) error {
		return s.loadLocked(ctx, paths)
	})
}

// AddFromDialog asks the engine for documents and ingests them.
// An empty answer is a user cancel and issues no further calls.
func (s *FragmentStore) AddFromDialog(ctx context.Context) (int, error) {
	var submitted int
	err := s.run(ctx, func(ctx context.Context) error {
		logger.Debug("engine: OpenFileDialog")
		paths, err := s.engine.OpenFileDialog(ctx)
		if err != nil {
			return classify(err, domain.ErrLoadFailed)
		}
		if len(paths) == 0 {
			logger.Debug("file dialog cancelled")
			return nil
		}
		submitted = len(paths)
		return s.loadLocked(ctx, paths)
	})
	return submitted, err
}

// DeleteFragments deletes records and refreshes. Empty ids is a no-op.
// If the engine fails nothing local changes.
func (s *FragmentStore) DeleteFragments(ctx context.Context, ids []string) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	return s.run(ctx, func(ctx context.Context) error {
		logger.Debug("engine: DeleteFragments(%d ids)", len(ids))
		if err := s.engine.DeleteFragments(ctx, ids); err != nil {
			return classify(err, domain.ErrDeleteFailed)
		}
		s.consume(ids)
		return s.refreshLocked(ctx)
	})
}

// View returns the snapshot, open fragment and selection together.
func (s *FragmentStore) View() domain.WorkspaceView {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	st := s.state.Load()
	return domain.WorkspaceView{
		Snapshot: st.snapshot,
		Open:     st.open,
		Selected: s.selection.IDs(),
	}
}

// Snapshot returns the last published snapshot.
func (s *FragmentStore) Snapshot() domain.Snapshot {
	return s.state.Load().snapshot
}

// Selection returns the selection tracked alongside the snapshot.
func (s *FragmentStore) Selection() driving.Selection {
	return s.selection
}

// Subscribe registers fn to be called once an action that published new
// state has finished. Observers run outside the action queue, so they may
// call back into the store. The returned func removes the observer.
func (s *FragmentStore) Subscribe(fn func(domain.WorkspaceView)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *FragmentStore) loadLocked(ctx context.Context, paths []string) error {
	logger.Debug("engine: LoadFiles(%d paths)", len(paths))
	if err := s.engine.LoadFiles(ctx, paths); err != nil {
		return classify(err, domain.ErrLoadFailed)
	}
	return s.refreshLocked(ctx)
}

// refreshLocked must run inside the action queue.
// A page index different from the previous snapshot counts as a page change.
func (s *FragmentStore) refreshLocked(ctx context.Context) error {
	logger.Debug("engine: GetPaginatedData")
	records, err := s.engine.GetPaginatedData(ctx)
	if err != nil {
		return classify(err, domain.ErrFetchFailed)
	}
	logger.Debug("engine: GetCurrentPage")
	page, err := s.engine.GetCurrentPage(ctx)
	if err != nil {
		return classify(err, domain.ErrFetchFailed)
	}
	logger.Debug("engine: GetTotalPages")
	total, err := s.engine.GetTotalPages(ctx)
	if err != nil {
		return classify(err, domain.ErrFetchFailed)
	}

	next := *s.state.Load()
	pageChanged := next.snapshot.CurrentPage != page
	next.snapshot = domain.Snapshot{
		Records:     uniqueRecords(records),
		CurrentPage: page,
		TotalPages:  total,
	}
	if pageChanged {
		next.open = domain.OpenFragment{}
	}
	visible := next.snapshot.IDs()
	s.publish(next, func() {
		if pageChanged {
			s.selection.OnPageChange()
		}
		s.selection.reconcile(visible)
	})

	logger.Debug("refreshed: page %d of %d, %d records", page+1, total, len(next.snapshot.Records))
	return nil
}

// consume drops ids from the selection and empties the open slot if it
// holds one of them, as one publish. Must run inside the action queue.
func (s *FragmentStore) consume(ids []string) {
	next := *s.state.Load()
	for _, id := range ids {
		if id == next.open.ID {
			next.open = domain.OpenFragment{}
			break
		}
	}
	s.publish(next, func() { s.selection.Remove(ids...) })
}

// run executes fn in the action queue and notifies observers after the
// queue is released if fn published anything.
func (s *FragmentStore) run(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.queue.Run(ctx, fn)
	if s.dirty.Swap(false) {
		s.notify()
	}
	return err
}

// publish swaps in next. updateSelection, when set, is applied under the
// same lock so View never pairs a snapshot with another snapshot's selection.
func (s *FragmentStore) publish(next storeState, updateSelection func()) {
	s.viewMu.Lock()
	if updateSelection != nil {
		updateSelection()
	}
	s.state.Store(&next)
	s.viewMu.Unlock()
	s.dirty.Store(true)
}

func (s *FragmentStore) notify() {
	s.mu.Lock()
	observers := make([]func(domain.WorkspaceView), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	if len(observers) == 0 {
		return
	}
	view := s.View()
	for _, fn := range observers {
		fn(view)
	}
}
