package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/datalex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
)

// DBFileName is the database file inside the data directory.
const DBFileName = "fragments.db"

// maxBatch bounds the ids bound into one IN clause.
const maxBatch = 500

// Store is a SQLite-based storage that provides the driven ports
// through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.datalex/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".datalex", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FragmentStore returns a FragmentRepository backed by this store.
func (s *Store) FragmentStore() driven.FragmentRepository {
	return &fragmentStore{store: s}
}

// migrate runs all pending up migrations and records their versions.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.inTx(context.Background(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version)
			return err
		}); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// inTx runs fn in a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// ==================== Fragment Store ====================

// fragmentStore implements driven.FragmentRepository.
type fragmentStore struct {
	store *Store
}

var _ driven.FragmentRepository = (*fragmentStore)(nil)

const fragmentColumns = "id, source_path, content, word_count, display_name"

// Count returns the number of stored records.
func (f *fragmentStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := f.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fragments").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting fragments: %w", err)
	}
	return n, nil
}

// Page returns up to limit records starting at offset, in insertion order.
func (f *fragmentStore) Page(ctx context.Context, offset, limit int) ([]domain.FragmentRecord, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset %d limit %d", domain.ErrInvalidInput, offset, limit)
	}
	rows, err := f.store.db.QueryContext(ctx,
		"SELECT "+fragmentColumns+" FROM fragments ORDER BY seq LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying fragments: %w", err)
	}
	return scanFragments(rows)
}

// ListByIDs returns the records with the given ids in insertion order.
func (f *fragmentStore) ListByIDs(ctx context.Context, ids []string) ([]domain.FragmentRecord, error) {
	type seqRecord struct {
		seq    int64
		record domain.FragmentRecord
	}
	var found []seqRecord

	for _, batch := range batches(ids) {
		rows, err := f.store.db.QueryContext(ctx,
			"SELECT seq, "+fragmentColumns+" FROM fragments WHERE id IN ("+placeholders(len(batch))+")",
			anyArgs(batch)...)
		if err != nil {
			return nil, fmt.Errorf("querying fragments by id: %w", err)
		}
		for rows.Next() {
			var sr seqRecord
			r := &sr.record
			if err := rows.Scan(&sr.seq, &r.ID, &r.SourcePath, &r.Content, &r.WordCount, &r.DisplayName); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning fragment: %w", err)
			}
			found = append(found, sr)
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating fragments: %w", err)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	out := make([]domain.FragmentRecord, len(found))
	for i := range found {
		out[i] = found[i].record
	}
	return out, nil
}

// Append stores records after the existing ones.
func (f *fragmentStore) Append(ctx context.Context, records []domain.FragmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	return f.store.inTx(ctx, func(tx *sql.Tx) error {
		return insertFragments(ctx, tx, records)
	})
}

// Replace removes removeIDs and appends add in one transaction.
func (f *fragmentStore) Replace(ctx context.Context, removeIDs []string, add []domain.FragmentRecord) error {
	return f.store.inTx(ctx, func(tx *sql.Tx) error {
		if err := deleteFragments(ctx, tx, removeIDs); err != nil {
			return err
		}
		return insertFragments(ctx, tx, add)
	})
}

// Delete removes the records with the given ids.
func (f *fragmentStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return f.store.inTx(ctx, func(tx *sql.Tx) error {
		return deleteFragments(ctx, tx, ids)
	})
}

func insertFragments(ctx context.Context, tx *sql.Tx, records []domain.FragmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO fragments ("+fragmentColumns+") VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID, r.SourcePath, r.Content, r.WordCount, r.DisplayName); err != nil {
			return fmt.Errorf("inserting fragment %s: %w", r.ID, err)
		}
	}
	return nil
}

func deleteFragments(ctx context.Context, tx *sql.Tx, ids []string) error {
	for _, batch := range batches(ids) {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM fragments WHERE id IN ("+placeholders(len(batch))+")",
			anyArgs(batch)...)
		if err != nil {
			return fmt.Errorf("deleting fragments: %w", err)
		}
	}
	return nil
}

func scanFragments(rows *sql.Rows) ([]domain.FragmentRecord, error) {
	defer rows.Close()

	records := []domain.FragmentRecord{}
	for rows.Next() {
		var r domain.FragmentRecord
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.Content, &r.WordCount, &r.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning fragment: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fragments: %w", err)
	}
	return records, nil
}

func batches(ids []string) [][]string {
	var out [][]string
	for len(ids) > 0 {
		n := min(len(ids), maxBatch)
		out = append(out, ids[:n])
		ids = ids[n:]
	}
	return out
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func anyArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
