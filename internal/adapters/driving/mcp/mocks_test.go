package mcp

import (
	"context"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
)

// mockFragmentStore is a mock implementation of driving.FragmentStore.
type mockFragmentStore struct {
	view domain.WorkspaceView

	RefreshFunc         func(ctx context.Context) error
	OpenFragmentFunc    func(ctx context.Context, index int) error
	AddFromFilesFunc    func(ctx context.Context, paths []string) error
	DeleteFragmentsFunc func(ctx context.Context, ids []string) error
}

func (m *mockFragmentStore) Refresh(ctx context.Context) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *mockFragmentStore) OpenFragment(ctx context.Context, index int) error {
	if m.OpenFragmentFunc != nil {
		return m.OpenFragmentFunc(ctx, index)
	}
	if index < 0 || index >= len(m.view.Snapshot.Records) {
		return domain.ErrNotFound
	}
	r := m.view.Snapshot.Records[index]
	m.view.Open = domain.OpenFragment{ID: r.ID, Record: r}
	return nil
}

func (m *mockFragmentStore) AddFromFiles(ctx context.Context, paths []string) error {
	if m.AddFromFilesFunc != nil {
		return m.AddFromFilesFunc(ctx, paths)
	}
	return nil
}

func (m *mockFragmentStore) AddFromDialog(_ context.Context) (int, error) {
	return 0, nil
}

func (m *mockFragmentStore) DeleteFragments(ctx context.Context, ids []string) error {
	if m.DeleteFragmentsFunc != nil {
		return m.DeleteFragmentsFunc(ctx, ids)
	}
	return nil
}

func (m *mockFragmentStore) View() domain.WorkspaceView {
	return m.view
}

func (m *mockFragmentStore) Selection() driving.Selection {
	return nil
}

func (m *mockFragmentStore) Subscribe(func(domain.WorkspaceView)) func() {
	return func() {}
}

// mockPaginator is a mock implementation of driving.Paginator.
type mockPaginator struct {
	GoToFunc func(ctx context.Context, page int) (bool, error)
	gotoArgs []int
}

func (m *mockPaginator) GoTo(ctx context.Context, page int) (bool, error) {
	m.gotoArgs = append(m.gotoArgs, page)
	if m.GoToFunc != nil {
		return m.GoToFunc(ctx, page)
	}
	return true, nil
}

func (m *mockPaginator) Next(_ context.Context) (bool, error)     { return false, nil }
func (m *mockPaginator) Previous(_ context.Context) (bool, error) { return false, nil }
func (m *mockPaginator) Boundary() domain.PageBoundary            { return domain.BoundarySingle }

// mockJob is a mock implementation of driving.FragmentationJob.
type mockJob struct {
	SubmitFunc func(ctx context.Context, req domain.FragmentationRequest) (domain.JobSummary, error)
	requests   []domain.FragmentationRequest
	resets     int
}

func (m *mockJob) Submit(ctx context.Context, req domain.FragmentationRequest) (domain.JobSummary, error) {
	m.requests = append(m.requests, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return domain.JobSummary{}, nil
}

func (m *mockJob) Reset()                    { m.resets++ }
func (m *mockJob) State() domain.JobState    { return domain.JobIdle }
func (m *mockJob) Progress() domain.Progress { return domain.ProgressNotStarted }

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(_ *domain.AppSettings) error { return nil }
func (m *mockSettings) Set(_, _ string) error            { return nil }
func (m *mockSettings) Keys() []string                   { return nil }

func records(ids ...string) []domain.FragmentRecord {
	out := make([]domain.FragmentRecord, len(ids))
	for i, id := range ids {
		out[i] = domain.FragmentRecord{
			ID:          id,
			DisplayName: id + ".txt",
			SourcePath:  "/docs/" + id + ".txt",
			Content:     "text of " + id,
			WordCount:   3,
		}
	}
	return out
}
