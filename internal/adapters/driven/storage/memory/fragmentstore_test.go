package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

func frag(id string) domain.FragmentRecord {
	return domain.FragmentRecord{ID: id, Content: "text " + id, WordCount: 2, DisplayName: id}
}

func ids(records []domain.FragmentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFragmentStore_AppendAndPage(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()

	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a"), frag("b"), frag("c")}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	page, err := store.Page(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(page))

	page, err = store.Page(ctx, 3, 5)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestFragmentStore_PageRejectsNegative(t *testing.T) {
	_, err := NewFragmentStore().Page(context.Background(), -1, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFragmentStore_AppendRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()
	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a")}))

	err := store.Append(ctx, []domain.FragmentRecord{frag("a")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestFragmentStore_ListByIDsKeepsStoreOrder(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()
	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a"), frag("b"), frag("c")}))

	got, err := store.ListByIDs(ctx, []string{"c", "missing", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFragmentStore_ReplaceAppendsAfterSurvivors(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()
	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a"), frag("b"), frag("c")}))

	require.NoError(t, store.Replace(ctx, []string{"a"}, []domain.FragmentRecord{frag("a1"), frag("a2")}))

	page, err := store.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a1", "a2"}, ids(page))
}

func TestFragmentStore_ReplaceMayReuseRemovedID(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()
	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a")}))

	assert.NoError(t, store.Replace(ctx, []string{"a"}, []domain.FragmentRecord{frag("a")}))
}

func TestFragmentStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewFragmentStore()
	require.NoError(t, store.Append(ctx, []domain.FragmentRecord{frag("a"), frag("b")}))

	require.NoError(t, store.Delete(ctx, []string{"a", "zzz"}))

	page, err := store.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(page))
}
