package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sliceco/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestStore_CreateAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{Name: "first", Count: 1}))

	var got testDoc
	require.NoError(t, store.Read(ctx, "things", "a", &got))
	assert.Equal(t, testDoc{Name: "first", Count: 1}, got)
}

func TestStore_Create_AlreadyExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{Name: "first"}))

	err := store.Create(ctx, "things", "a", testDoc{Name: "second"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	// The original document is untouched.
	var got testDoc
	require.NoError(t, store.Read(ctx, "things", "a", &got))
	assert.Equal(t, "first", got.Name)
}

func TestStore_Create_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{}))
	require.Error(t, store.Create(ctx, "things", "a", testDoc{}))

	entries, err := os.ReadDir(filepath.Join(dir, "things"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

func TestStore_Read_NotFound(t *testing.T) {
	store := newTestStore(t)

	var got testDoc
	err := store.Read(context.Background(), "things", "missing", &got)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_Read_MalformedContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "things"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "things", "bad.json"), []byte("{not json"), 0o644))

	// Malformed content reads as an empty document, not a failure.
	var got testDoc
	require.NoError(t, store.Read(context.Background(), "things", "bad", &got))
	assert.Equal(t, testDoc{}, got)
}

func TestStore_Read_PartiallyDecodableContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Valid JSON prefix followed by a type mismatch: the decoder fills "name"
	// before failing on "count". The caller must still see an empty document.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "things"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "things", "partial.json"),
		[]byte(`{"name":"leftover","count":"not a number"}`), 0o644))

	var got testDoc
	require.NoError(t, store.Read(context.Background(), "things", "partial", &got))
	assert.Equal(t, testDoc{}, got)
}

func TestStore_Update(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{Name: "first"}))
	require.NoError(t, store.Update(ctx, "things", "a", testDoc{Name: "second", Count: 2}))

	var got testDoc
	require.NoError(t, store.Read(ctx, "things", "a", &got))
	assert.Equal(t, testDoc{Name: "second", Count: 2}, got)
}

func TestStore_Update_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), "things", "missing", testDoc{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{}))
	require.NoError(t, store.Delete(ctx, "things", "a"))

	var got testDoc
	assert.ErrorIs(t, store.Read(ctx, "things", "a", &got), repository.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "things", "a"), repository.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "things", "a", testDoc{}))
	require.NoError(t, store.Create(ctx, "things", "b", testDoc{}))

	keys, err := store.List(ctx, "things")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestStore_List_MissingCollection(t *testing.T) {
	store := newTestStore(t)

	keys, err := store.List(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "users", "a", testDoc{Name: "user"}))
	require.NoError(t, store.Create(ctx, "tokens", "a", testDoc{Name: "token"}))

	var got testDoc
	require.NoError(t, store.Read(ctx, "users", "a", &got))
	assert.Equal(t, "user", got.Name)
	require.NoError(t, store.Read(ctx, "tokens", "a", &got))
	assert.Equal(t, "token", got.Name)
}
