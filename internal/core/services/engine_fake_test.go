package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// Ensure fakeEngine implements the interface.
var _ driven.EngineClient = (*fakeEngine)(nil)

// fakeEngine is a paged in-memory engine that records every call.
// Setting an ...Err field makes the matching call fail.
type fakeEngine struct {
	mu       sync.Mutex
	records  []domain.FragmentRecord
	pageSize int
	page     int
	calls    []string

	dialogPaths []string

	fragmentTextsFunc func(ids []string, mode string, target, tolerance int) ([]domain.FragmentationOutcome, error)

	getPaginatedDataErr error
	getCurrentPageErr   error
	getTotalPagesErr    error
	setCurrentPageErr   error
	openFileDialogErr   error
	loadFilesErr        error
	getTextErr          error
	deleteErr           error
}

func newFakeEngine(n, pageSize int) *fakeEngine {
	e := &fakeEngine{pageSize: pageSize}
	for i := 0; i < n; i++ {
		e.records = append(e.records, record(fmt.Sprintf("f%d", i)))
	}
	return e
}

func record(id string) domain.FragmentRecord {
	return domain.FragmentRecord{
		ID:          id,
		SourcePath:  "/docs/" + id + ".txt",
		Content:     "content of " + id,
		WordCount:   3,
		DisplayName: id,
	}
}

func (e *fakeEngine) record(call string) {
	e.calls = append(e.calls, call)
}

// Calls returns the names of the calls made so far.
func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallCount returns how often call was made.
func (e *fakeEngine) CallCount(call string) int {
	n := 0
	for _, c := range e.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (e *fakeEngine) totalPagesLocked() int {
	if len(e.records) == 0 {
		return 0
	}
	return (len(e.records) + e.pageSize - 1) / e.pageSize
}

func (e *fakeEngine) pageLocked() []domain.FragmentRecord {
	start := e.page * e.pageSize
	if start >= len(e.records) {
		return []domain.FragmentRecord{}
	}
	end := min(start+e.pageSize, len(e.records))
	out := make([]domain.FragmentRecord, end-start)
	copy(out, e.records[start:end])
	return out
}

func (e *fakeEngine) GetPaginatedData(_ context.Context) ([]domain.FragmentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetPaginatedData")
	if e.getPaginatedDataErr != nil {
		return nil, e.getPaginatedDataErr
	}
	return e.pageLocked(), nil
}

func (e *fakeEngine) GetCurrentPage(_ context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetCurrentPage")
	if e.getCurrentPageErr != nil {
		return 0, e.getCurrentPageErr
	}
	return e.page, nil
}

func (e *fakeEngine) GetTotalPages(_ context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetTotalPages")
	if e.getTotalPagesErr != nil {
		return 0, e.getTotalPagesErr
	}
	return e.totalPagesLocked(), nil
}

func (e *fakeEngine) SetCurrentPage(_ context.Context, page int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetCurrentPage")
	if e.setCurrentPageErr != nil {
		return e.setCurrentPageErr
	}
	e.page = page
	return nil
}

func (e *fakeEngine) OpenFileDialog(_ context.Context) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("OpenFileDialog")
	if e.openFileDialogErr != nil {
		return nil, e.openFileDialogErr
	}
	return e.dialogPaths, nil
}

func (e *fakeEngine) LoadFiles(_ context.Context, paths []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("LoadFiles")
	if e.loadFilesErr != nil {
		return e.loadFilesErr
	}
	for _, p := range paths {
		e.records = append(e.records, domain.FragmentRecord{ID: "doc:" + p, SourcePath: p, DisplayName: p})
	}
	return nil
}

func (e *fakeEngine) GetText(_ context.Context, index int) (*domain.FragmentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetText")
	if e.getTextErr != nil {
		return nil, e.getTextErr
	}
	page := e.pageLocked()
	if index < 0 || index >= len(page) {
		return nil, domain.ErrNotFound
	}
	rec := page[index]
	return &rec, nil
}

func (e *fakeEngine) FragmentTexts(
	_ context.Context,
	ids []string,
	mode string,
	target, tolerance int,
) ([]domain.FragmentationOutcome, error) {
	e.mu.Lock()
	e.record("FragmentTexts")
	fn := e.fragmentTextsFunc
	e.mu.Unlock()
	if fn != nil {
		return fn(ids, mode, target, tolerance)
	}
	return nil, nil
}

func (e *fakeEngine) DeleteFragments(_ context.Context, ids []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("DeleteFragments")
	if e.deleteErr != nil {
		return e.deleteErr
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := e.records[:0]
	for _, r := range e.records {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	e.records = kept
	e.page = 0
	return nil
}

// refreshCount counts full refresh cycles by their first call.
func (e *fakeEngine) refreshCount() int {
	return e.CallCount("GetPaginatedData")
}
