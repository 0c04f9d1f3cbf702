package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
	"github.com/custodia-labs/datalex/internal/logger"
)

// Ensure FragmentationJobController implements the interface.
var _ driving.FragmentationJob = (*FragmentationJobController)(nil)

// FragmentationJobController runs fragmentation jobs against the engine
// and reconciles their results into the store.
//
// States: idle -> running -> {completed, failed} -> idle.
// A running job cannot be cancelled and a second submit is rejected.
type FragmentationJobController struct {
	store *FragmentStore

	mu          sync.RWMutex
	state       domain.JobState
	progress    domain.Progress
	lastSummary domain.JobSummary
	lastErr     error
}

// NewFragmentationJobController creates an idle controller.
func NewFragmentationJobController(store *FragmentStore) *FragmentationJobController {
	return &FragmentationJobController{store: store}
}

// Submit validates req, runs it on the engine and refreshes the store exactly once.
// Validation failures return before any engine call.
//
// If the engine succeeds but the follow-up refresh fails, the job still
// completes: the summary is returned together with the refresh error.
func (c *FragmentationJobController) Submit(
	ctx context.Context,
	req domain.FragmentationRequest,
) (domain.JobSummary, error) {
	if err := req.Validate(); err != nil {
		return domain.JobSummary{}, err
	}
	ids := uniqueIDs(req.SelectedIDs)
	if len(ids) == 0 {
		return domain.JobSummary{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, domain.ErrNoSelection)
	}

	if err := c.start(); err != nil {
		return domain.JobSummary{}, err
	}

	logger.Section("Fragmentation")
	var (
		summary    domain.JobSummary
		refreshErr error
	)
	err := c.store.run(ctx, func(ctx context.Context) error {
		logger.Debug("engine: FragmentTexts(%d ids, mode=%s, target=%d, tolerance=%d)",
			len(ids), req.Mode, req.TargetWordCount, req.Tolerance)
		outcomes, err := c.store.engine.FragmentTexts(ctx, ids, req.Mode.String(), req.TargetWordCount, req.Tolerance)
		if err != nil {
			return classify(err, domain.ErrJobFailed)
		}
		summary = domain.SummarizeOutcomes(outcomes)
		logger.Info("fragmentation produced %d pieces, %d failed", summary.Total, summary.Failed)

		c.store.consume(ids)
		refreshErr = c.store.refreshLocked(ctx)
		return nil
	})
	if err != nil {
		err = classify(err, domain.ErrJobFailed)
		c.finish(domain.JobFailed, domain.ProgressNotStarted, domain.JobSummary{}, err)
		return domain.JobSummary{}, err
	}

	if refreshErr != nil {
		logger.Warn("refresh after fragmentation failed: %v", refreshErr)
	}
	c.finish(domain.JobCompleted, domain.ProgressDone, summary, refreshErr)
	return summary, refreshErr
}

// Reset returns a completed or failed job to idle.
// It does nothing while a job is running.
func (c *FragmentationJobController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsTerminal() {
		return
	}
	c.state = domain.JobIdle
	c.progress = domain.ProgressNotStarted
	c.lastErr = nil
}

// State returns the job state.
func (c *FragmentationJobController) State() domain.JobState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Progress returns the tri-state job progress.
func (c *FragmentationJobController) Progress() domain.Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.progress
}

// LastSummary returns the summary of the last completed job.
func (c *FragmentationJobController) LastSummary() domain.JobSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSummary
}

// LastError returns the error of the last job, if any.
func (c *FragmentationJobController) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *FragmentationJobController) start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.JobRunning {
		return domain.ErrJobInFlight
	}
	c.state = domain.JobRunning
	c.progress = domain.ProgressRunning
	c.lastErr = nil
	return nil
}

func (c *FragmentationJobController) finish(
	state domain.JobState,
	progress domain.Progress,
	summary domain.JobSummary,
	err error,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.progress = progress
	c.lastErr = err
	if state == domain.JobCompleted {
		c.lastSummary = summary
	}
}
