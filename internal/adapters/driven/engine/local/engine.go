// Package local provides an in-process engine backed by a fragment repository.
// It owns paging, ingestion and the splitting of texts into fragments.
package local

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/logger"
	"github.com/custodia-labs/datalex/internal/splitters"
)

// Ensure Engine implements the EngineClient interface.
var _ driven.EngineClient = (*Engine)(nil)

// Default configuration values.
const (
	DefaultPageSize = domain.DefaultPageSize
	DefaultWorkers  = domain.DefaultWorkers

	// maxDisplayName is the rune length display names are shortened to.
	maxDisplayName = 15
)

// Engine keeps fragments in a repository in insertion order and serves
// them one page at a time.
type Engine struct {
	repo      driven.FragmentRepository
	reader    driven.DocumentReader
	picker    driven.FilePicker
	splitters *splitters.Registry

	pageSize int
	workers  int

	mu   sync.Mutex
	page int
}

// Option configures the engine.
type Option func(*Engine)

// WithPageSize sets the number of records per page.
func WithPageSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.pageSize = size
		}
	}
}

// WithWorkers bounds how many texts are split concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithPicker sets the file picker behind OpenFileDialog.
func WithPicker(p driven.FilePicker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// WithSplitters replaces the built-in splitter registry.
func WithSplitters(r *splitters.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.splitters = r
		}
	}
}

// New creates an engine over repo that reads documents with reader.
func New(repo driven.FragmentRepository, reader driven.DocumentReader, opts ...Option) *Engine {
	e := &Engine{
		repo:      repo,
		reader:    reader,
		picker:    noPicker{},
		splitters: splitters.Default(),
		pageSize:  DefaultPageSize,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetPaginatedData returns the records on the current page.
func (e *Engine) GetPaginatedData(ctx context.Context) ([]domain.FragmentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := e.repo.Page(ctx, e.page*e.pageSize, e.pageSize)
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", e.page, err)
	}
	if records == nil {
		records = []domain.FragmentRecord{}
	}
	return records, nil
}

// GetCurrentPage returns the zero-based current page.
func (e *Engine) GetCurrentPage(_ context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page, nil
}

// GetTotalPages returns the page count; an empty engine has one page.
func (e *Engine) GetTotalPages(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPagesLocked(ctx)
}

// SetCurrentPage moves to page. Page 0 is always accepted.
func (e *Engine) SetCurrentPage(ctx context.Context, page int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	total, err := e.totalPagesLocked(ctx)
	if err != nil {
		return err
	}
	if page != 0 && (page < 0 || page >= total) {
		return fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, page, total)
	}
	e.page = page
	return nil
}

// OpenFileDialog asks the picker for documents.
func (e *Engine) OpenFileDialog(ctx context.Context) ([]string, error) {
	return e.picker.Pick(ctx)
}

// LoadFiles reads each path and appends one record per readable document.
// Unreadable paths are skipped; the call fails only when none could be read.
func (e *Engine) LoadFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	records := make([]domain.FragmentRecord, 0, len(paths))
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := e.reader.Read(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		text = strings.TrimSpace(text)
		records = append(records, domain.FragmentRecord{
			ID:          uuid.New().String(),
			SourcePath:  path,
			Content:     text,
			WordCount:   len(strings.Fields(text)),
			DisplayName: displayName(path),
		})
	}
	if len(records) == 0 {
		return fmt.Errorf("no readable documents: %w", errors.Join(errs...))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.repo.Append(ctx, records); err != nil {
		return fmt.Errorf("store documents: %w", err)
	}
	logger.Info("loaded %d of %d documents", len(records), len(paths))
	return nil
}

// GetText returns the record at index on the current page.
func (e *Engine) GetText(ctx context.Context, index int) (*domain.FragmentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= e.pageSize {
		return nil, fmt.Errorf("%w: index %d", domain.ErrNotFound, index)
	}
	records, err := e.repo.Page(ctx, e.page*e.pageSize+index, 1)
	if err != nil {
		return nil, fmt.Errorf("read fragment %d: %w", index, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: index %d", domain.ErrNotFound, index)
	}
	return &records[0], nil
}

// FragmentTexts splits the records with the given ids and replaces them with
// every produced piece, successful or not. The current page resets to 0.
// Outcomes are returned in store order of their sources.
func (e *Engine) FragmentTexts(
	ctx context.Context,
	selectedIDs []string,
	mode string,
	target, tolerance int,
) ([]domain.FragmentationOutcome, error) {
	splitter, err := e.splitters.Get(domain.FragmentationMode(mode))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sources, err := e.repo.ListByIDs(ctx, selectedIDs)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, domain.ErrNoSelection
	}

	pieces := make([][]domain.FragmentationOutcome, len(sources))
	opts := driven.SplitOptions{Target: target, Tolerance: tolerance}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range sources {
		g.Go(func() error {
			out, err := splitter.Split(gctx, sources[i].Content, opts)
			if err != nil {
				return fmt.Errorf("split %s: %w", sources[i].Label(), err)
			}
			pieces[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		outcomes []domain.FragmentationOutcome
		records  []domain.FragmentRecord
		removed  = make([]string, 0, len(sources))
	)
	for i, src := range sources {
		removed = append(removed, src.ID)
		for j, piece := range pieces[i] {
			outcomes = append(outcomes, piece)
			records = append(records, domain.FragmentRecord{
				ID:          uuid.New().String(),
				SourcePath:  src.SourcePath,
				Content:     piece.Text,
				WordCount:   piece.WordCount,
				DisplayName: fmt.Sprintf("%s #%d", src.Label(), j+1),
			})
		}
	}

	if err := e.repo.Replace(ctx, removed, records); err != nil {
		return nil, fmt.Errorf("store fragments: %w", err)
	}
	e.page = 0

	logger.Debug("split %d sources into %d fragments (mode=%s)", len(sources), len(records), mode)
	return outcomes, nil
}

// DeleteFragments removes the records with the given ids and resets the page to 0.
func (e *Engine) DeleteFragments(ctx context.Context, ids []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.repo.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete fragments: %w", err)
	}
	e.page = 0
	return nil
}

func (e *Engine) totalPagesLocked(ctx context.Context) (int, error) {
	n, err := e.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count fragments: %w", err)
	}
	if n == 0 {
		return 1, nil
	}
	return (n + e.pageSize - 1) / e.pageSize, nil
}

// displayName is the base name of path shortened to maxDisplayName runes.
func displayName(path string) string {
	return shortenName(filepath.Base(path), maxDisplayName)
}

// shortenName trims name to limit runes, keeping the extension when it fits
// and marking the cut with "...".
func shortenName(name string, limit int) string {
	if utf8.RuneCountInString(name) <= limit {
		return name
	}

	ext := filepath.Ext(name)
	stem := []rune(strings.TrimSuffix(name, ext))
	available := limit - utf8.RuneCountInString(ext) - 3
	if available < 1 {
		return string([]rune(name)[:limit-3]) + "..."
	}
	if len(stem) > available {
		return string(stem[:available]) + "..." + ext
	}
	return name
}

// noPicker is used when no picker is configured; it always reports a cancel.
type noPicker struct{}

func (noPicker) Pick(context.Context) ([]string, error) {
	return nil, nil
}
