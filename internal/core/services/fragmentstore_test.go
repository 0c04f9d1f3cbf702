package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

func newTestStore(engine *fakeEngine) *FragmentStore {
	return NewFragmentStore(engine, NewActionQueue(), NewSelectionSet(domain.SelectionClearOnPageChange))
}

func TestFragmentStore_RefreshPublishesOneSnapshot(t *testing.T) {
	engine := newFakeEngine(5, 2)
	store := newTestStore(engine)

	require.NoError(t, store.Refresh(context.Background()))

	want := domain.Snapshot{
		Records:     []domain.FragmentRecord{record("f0"), record("f1")},
		CurrentPage: 0,
		TotalPages:  3,
	}
	if diff := cmp.Diff(want, store.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"GetPaginatedData", "GetCurrentPage", "GetTotalPages"}, engine.Calls())
}

func TestFragmentStore_RefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	calls := []struct {
		name string
		set  func(e *fakeEngine, err error)
	}{
		{"data", func(e *fakeEngine, err error) { e.getPaginatedDataErr = err }},
		{"current page", func(e *fakeEngine, err error) { e.getCurrentPageErr = err }},
		{"total pages", func(e *fakeEngine, err error) { e.getTotalPagesErr = err }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			engine := newFakeEngine(3, 2)
			store := newTestStore(engine)
			require.NoError(t, store.Refresh(context.Background()))
			before := store.Snapshot()

			engine.mu.Lock()
			engine.records = append(engine.records, record("new"))
			engine.page = 1
			engine.mu.Unlock()
			tt.set(engine, errors.New("boom"))

			err := store.Refresh(context.Background())

			require.ErrorIs(t, err, domain.ErrFetchFailed)
			assert.Equal(t, before, store.Snapshot())
		})
	}
}

func TestFragmentStore_EngineUnavailableIsNotRewrapped(t *testing.T) {
	engine := newFakeEngine(1, 10)
	engine.getPaginatedDataErr = domain.ErrEngineUnavailable
	store := newTestStore(engine)

	err := store.Refresh(context.Background())

	require.ErrorIs(t, err, domain.ErrEngineUnavailable)
	assert.NotErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFragmentStore_RefreshDropsDuplicateIDs(t *testing.T) {
	engine := newFakeEngine(0, 10)
	engine.records = []domain.FragmentRecord{record("a"), record("b"), record("a")}
	store := newTestStore(engine)

	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, []string{"a", "b"}, store.Snapshot().IDs())
}

func TestFragmentStore_OpenFragment(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))

	require.NoError(t, store.OpenFragment(context.Background(), 1))

	view := store.View()
	assert.Equal(t, "f1", view.Open.ID)
	assert.Equal(t, "content of f1", view.Open.Content())
}

func TestFragmentStore_OpenFragmentFailureKeepsOpenSlot(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.OpenFragment(context.Background(), 0))

	err := store.OpenFragment(context.Background(), 7)

	require.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "f0", store.View().Open.ID)
}

func TestFragmentStore_AddFromFilesEmptyIsNoop(t *testing.T) {
	engine := newFakeEngine(0, 10)
	store := newTestStore(engine)

	require.NoError(t, store.AddFromFiles(context.Background(), nil))

	assert.Empty(t, engine.Calls())
}

func TestFragmentStore_AddFromFilesLoadsThenRefreshes(t *testing.T) {
	engine := newFakeEngine(0, 10)
	store := newTestStore(engine)

	require.NoError(t, store.AddFromFiles(context.Background(), []string{"a.txt", "b.txt"}))

	assert.Equal(t, []string{"LoadFiles", "GetPaginatedData", "GetCurrentPage", "GetTotalPages"}, engine.Calls())
	assert.Len(t, store.Snapshot().Records, 2)
}

func TestFragmentStore_AddFromFilesFailure(t *testing.T) {
	engine := newFakeEngine(0, 10)
	engine.loadFilesErr = errors.New("disk")
	store := newTestStore(engine)

	err := store.AddFromFiles(context.Background(), []string{"a.txt"})

	require.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Equal(t, 0, engine.refreshCount())
}

func TestFragmentStore_AddFromDialogCancelled(t *testing.T) {
	engine := newFakeEngine(0, 10)
	store := newTestStore(engine)

	n, err := store.AddFromDialog(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []string{"OpenFileDialog"}, engine.Calls())
}

func TestFragmentStore_AddFromDialogLoadsChosenPaths(t *testing.T) {
	engine := newFakeEngine(0, 10)
	engine.dialogPaths = []string{"x.txt"}
	store := newTestStore(engine)

	n, err := store.AddFromDialog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, engine.CallCount("LoadFiles"))
	assert.Equal(t, []string{"doc:x.txt"}, store.Snapshot().IDs())
}

func TestFragmentStore_DeleteEmptyIsNoop(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	before := store.View()
	callsBefore := len(engine.Calls())

	require.NoError(t, store.DeleteFragments(context.Background(), []string{}))

	assert.Len(t, engine.Calls(), callsBefore)
	assert.Equal(t, before, store.View())
}

func TestFragmentStore_DeleteClearsOpenFragment(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.OpenFragment(context.Background(), 1))
	store.Selection().SelectAll([]string{"f1", "f2"})

	require.NoError(t, store.DeleteFragments(context.Background(), []string{"f1"}))

	view := store.View()
	assert.True(t, view.Open.IsEmpty())
	assert.Equal(t, []string{"f0", "f2"}, view.Snapshot.IDs())
	assert.Equal(t, []string{"f2"}, view.Selected)
}

func TestFragmentStore_DeleteKeepsUnrelatedOpenFragment(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.OpenFragment(context.Background(), 0))

	require.NoError(t, store.DeleteFragments(context.Background(), []string{"f2"}))

	assert.Equal(t, "f0", store.View().Open.ID)
}

func TestFragmentStore_DeleteFailureChangesNothing(t *testing.T) {
	engine := newFakeEngine(3, 10)
	engine.deleteErr = errors.New("locked")
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.OpenFragment(context.Background(), 1))
	store.Selection().Toggle("f1")
	before := store.View()

	err := store.DeleteFragments(context.Background(), []string{"f1"})

	require.ErrorIs(t, err, domain.ErrDeleteFailed)
	assert.Equal(t, before, store.View())
	assert.Equal(t, 1, engine.refreshCount())
}

func TestFragmentStore_SubscribeReceivesPublishes(t *testing.T) {
	engine := newFakeEngine(2, 10)
	store := newTestStore(engine)

	var views []domain.WorkspaceView
	unsubscribe := store.Subscribe(func(v domain.WorkspaceView) {
		views = append(views, v)
	})

	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, views, 1)
	assert.Equal(t, []string{"f0", "f1"}, views[0].Snapshot.IDs())

	unsubscribe()
	require.NoError(t, store.Refresh(context.Background()))
	assert.Len(t, views, 1)
}

func TestFragmentStore_ObserverMayCallBackIntoStore(t *testing.T) {
	engine := newFakeEngine(4, 2)
	store := newTestStore(engine)

	var once sync.Once
	var seen domain.WorkspaceView
	var nestedErr error
	store.Subscribe(func(domain.WorkspaceView) {
		once.Do(func() {
			seen = store.View()
			nestedErr = store.Refresh(context.Background())
		})
	})

	done := make(chan error, 1)
	go func() { done <- store.Refresh(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not return while an observer used the store")
	}
	require.NoError(t, nestedErr)
	assert.Equal(t, []string{"f0", "f1"}, seen.Snapshot.IDs())
}

func TestFragmentStore_DeleteNotifiesOnce(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	require.NoError(t, store.OpenFragment(context.Background(), 1))
	store.Selection().SelectAll([]string{"f1", "f2"})

	var views []domain.WorkspaceView
	store.Subscribe(func(v domain.WorkspaceView) { views = append(views, v) })

	require.NoError(t, store.DeleteFragments(context.Background(), []string{"f1"}))

	require.Len(t, views, 1)
	assert.Equal(t, []string{"f0", "f2"}, views[0].Snapshot.IDs())
	assert.Equal(t, []string{"f2"}, views[0].Selected)
	assert.True(t, views[0].Open.IsEmpty())
}

func TestFragmentStore_FailedActionDoesNotNotify(t *testing.T) {
	engine := newFakeEngine(3, 10)
	engine.getTotalPagesErr = errors.New("boom")
	store := newTestStore(engine)

	notified := 0
	store.Subscribe(func(domain.WorkspaceView) { notified++ })

	require.Error(t, store.Refresh(context.Background()))
	assert.Zero(t, notified)
}

func TestFragmentStore_ViewNeverMixesPages(t *testing.T) {
	p, store, _ := newTestPaginator(t, 40, 10)
	ctx := context.Background()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	var bad []domain.WorkspaceView
	var badMu sync.Mutex
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				v := store.View()
				visible := make(map[string]bool, len(v.Snapshot.Records))
				for _, id := range v.Snapshot.IDs() {
					visible[id] = true
				}
				for _, id := range v.Selected {
					if !visible[id] {
						badMu.Lock()
						bad = append(bad, v)
						badMu.Unlock()
						break
					}
				}
			}
		}()
	}

	for range 50 {
		store.Selection().SelectAll(store.View().Snapshot.IDs())
		ok, err := p.Next(ctx)
		require.NoError(t, err)
		if !ok {
			_, err = p.GoTo(ctx, 0)
			require.NoError(t, err)
		}
	}
	close(stop)
	wg.Wait()

	assert.Empty(t, bad, "a view paired a selection with records from another page")
}

func TestFragmentStore_RefreshRetainsOnlyVisibleSelection(t *testing.T) {
	engine := newFakeEngine(3, 10)
	store := newTestStore(engine)
	require.NoError(t, store.Refresh(context.Background()))
	store.Selection().SelectAll([]string{"f0", "gone"})

	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, []string{"f0"}, store.Selection().IDs())
}

func TestClassify(t *testing.T) {
	cause := errors.New("cause")

	wrapped := classify(cause, domain.ErrFetchFailed)
	assert.ErrorIs(t, wrapped, domain.ErrFetchFailed)
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, domain.ErrEngineUnavailable, classify(domain.ErrEngineUnavailable, domain.ErrJobFailed))
	assert.Equal(t, context.Canceled, classify(context.Canceled, domain.ErrJobFailed))
}
