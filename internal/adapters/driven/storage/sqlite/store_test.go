package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testFragment(id string) domain.FragmentRecord {
	return domain.FragmentRecord{
		ID:          id,
		SourcePath:  "/docs/" + id + ".txt",
		Content:     "Content of " + id + ".",
		WordCount:   3,
		DisplayName: id + ".txt",
	}
}

func recordIDs(records []domain.FragmentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBFileName), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.FragmentStore().Append(ctx, []domain.FragmentRecord{testFragment("a")}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.FragmentStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var versions int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestFragmentStore_AppendAndPage(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()

	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{
		testFragment("a"), testFragment("b"), testFragment("c"),
	}))

	page, err := repo.Page(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, recordIDs(page))
	assert.Equal(t, testFragment("b"), page[0])

	empty, err := repo.Page(ctx, 10, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFragmentStore_AppendDuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{testFragment("a")}))

	err := repo.Append(ctx, []domain.FragmentRecord{testFragment("b"), testFragment("a")})

	require.Error(t, err)
	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestFragmentStore_ListByIDsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{
		testFragment("a"), testFragment("b"), testFragment("c"),
	}))

	got, err := repo.ListByIDs(ctx, []string{"c", "nope", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, recordIDs(got))
}

func TestFragmentStore_ListByIDsLargeBatch(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	var records []domain.FragmentRecord
	var ids []string
	for i := 0; i < maxBatch+20; i++ {
		id := fmt.Sprintf("f%04d", i)
		records = append(records, testFragment(id))
		ids = append(ids, id)
	}
	require.NoError(t, repo.Append(ctx, records))

	got, err := repo.ListByIDs(ctx, ids)

	require.NoError(t, err)
	assert.Equal(t, ids, recordIDs(got))
}

func TestFragmentStore_ReplaceAppendsAfterSurvivors(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{
		testFragment("a"), testFragment("b"), testFragment("c"),
	}))

	require.NoError(t, repo.Replace(ctx, []string{"a", "b"}, []domain.FragmentRecord{
		testFragment("a1"), testFragment("b1"),
	}))

	page, err := repo.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a1", "b1"}, recordIDs(page))
}

func TestFragmentStore_ReplaceRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{testFragment("a"), testFragment("b")}))

	err := repo.Replace(ctx, []string{"a"}, []domain.FragmentRecord{testFragment("b")})

	require.Error(t, err)
	page, err := repo.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, recordIDs(page))
}

func TestFragmentStore_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).FragmentStore()
	require.NoError(t, repo.Append(ctx, []domain.FragmentRecord{testFragment("a"), testFragment("b")}))

	require.NoError(t, repo.Delete(ctx, []string{"b", "unknown"}))
	require.NoError(t, repo.Delete(ctx, nil))

	page, err := repo.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, recordIDs(page))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
