package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayminder/dayminder/internal/model"
	"github.com/dayminder/dayminder/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("CreateListUpdateDelete", func(t *testing.T) { testCRUD(t, makeStore(t)) })
	t.Run("FilterAndOrder", func(t *testing.T) { testFilterAndOrder(t, makeStore(t)) })
	t.Run("BatchAtomicity", func(t *testing.T) { testBatch(t, makeStore(t)) })
	t.Run("RejectsBadInput", func(t *testing.T) { testBadInput(t, makeStore(t)) })
}

// collection returns a unique collection name so suites can share a database.
func collection() string { return "c_" + uuid.NewString()[:8] }

func decode(t *testing.T, snap store.Snapshot) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(snap.Data, &m))
	return m
}

func testCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	col := collection()

	id, err := s.Create(ctx, col, json.RawMessage(`{"title":"water plants","completed":false,"createdAt":100}`))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	lst, err := s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, id, lst[0].ID)
	doc := decode(t, lst[0])
	assert.Equal(t, "water plants", doc["title"])
	assert.Equal(t, false, doc["completed"])

	require.NoError(t, s.Update(ctx, col, id, map[string]any{"completed": true}))
	lst, err = s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	doc = decode(t, lst[0])
	assert.Equal(t, true, doc["completed"])
	assert.Equal(t, "water plants", doc["title"], "untouched fields survive a merge")
	assert.EqualValues(t, 100, doc["createdAt"])

	err = s.Update(ctx, col, "missing-id", map[string]any{"completed": true})
	assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)

	require.NoError(t, s.Delete(ctx, col, "missing-id"))
	lst, err = s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	assert.Len(t, lst, 1, "deleting a missing id leaves the collection unchanged")

	require.NoError(t, s.Delete(ctx, col, id))
	lst, err = s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	assert.Empty(t, lst)
}

func testFilterAndOrder(t *testing.T, s store.Store) {
	ctx := context.Background()
	col := collection()
	other := collection()

	oldest, err := s.Create(ctx, col, json.RawMessage(`{"userId":"u1","createdAt":1000}`))
	require.NoError(t, err)
	newest, err := s.Create(ctx, col, json.RawMessage(`{"userId":"u1","createdAt":3000}`))
	require.NoError(t, err)
	middle, err := s.Create(ctx, col, json.RawMessage(`{"createdAt":2000}`))
	require.NoError(t, err)
	_, err = s.Create(ctx, other, json.RawMessage(`{"userId":"u1","createdAt":9000}`))
	require.NoError(t, err)

	lst, err := s.List(ctx, col, store.Query{OrderBy: "createdAt", Descending: true})
	require.NoError(t, err)
	require.Len(t, lst, 3)
	assert.Equal(t, []string{newest, middle, oldest}, ids(lst))

	lst, err = s.List(ctx, col, store.Query{OrderBy: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, []string{oldest, middle, newest}, ids(lst))

	lst, err = s.List(ctx, col, store.Query{
		Where:      []store.Eq{{Field: "userId", Value: "u1"}},
		OrderBy:    "createdAt",
		Descending: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{newest, oldest}, ids(lst))

	lst, err = s.List(ctx, col, store.Query{Where: []store.Eq{{Field: "userId", Value: "nobody"}}})
	require.NoError(t, err)
	assert.Empty(t, lst)
}

func testBatch(t *testing.T, s store.Store) {
	ctx := context.Background()
	col := collection()

	a, err := s.Create(ctx, col, json.RawMessage(`{"n":"a","completed":false}`))
	require.NoError(t, err)
	b, err := s.Create(ctx, col, json.RawMessage(`{"n":"b","completed":false}`))
	require.NoError(t, err)

	empty := s.Batch()
	assert.Equal(t, 0, empty.Len())
	require.NoError(t, empty.Commit(ctx))

	// an update against a missing document fails the whole batch
	bad := s.Batch()
	bad.Delete(col, a)
	bad.Update(col, "missing-id", map[string]any{"completed": true})
	require.Equal(t, 2, bad.Len())
	err = bad.Commit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)
	lst, err := s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	assert.Len(t, lst, 2, "failed batch must not apply its delete")

	good := s.Batch()
	good.Delete(col, a)
	good.Update(col, b, map[string]any{"completed": true})
	require.NoError(t, good.Commit(ctx))

	lst, err = s.List(ctx, col, store.Query{})
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, b, lst[0].ID)
	assert.Equal(t, true, decode(t, lst[0])["completed"])
}

func testBadInput(t *testing.T, s store.Store) {
	ctx := context.Background()
	col := collection()

	_, err := s.Create(ctx, col, json.RawMessage(`[1,2]`))
	assert.Error(t, err)

	id, err := s.Create(ctx, col, json.RawMessage(`{"title":"x"}`))
	require.NoError(t, err)

	assert.Error(t, s.Update(ctx, col, id, map[string]any{"bad key": 1}))
	assert.Error(t, s.Update(ctx, col, id, map[string]any{"title": nil}))
	assert.Error(t, s.Update(ctx, col, id, map[string]any{}))

	_, err = s.List(ctx, col, store.Query{OrderBy: "created_at; DROP TABLE documents"})
	assert.Error(t, err)
}

func ids(lst []store.Snapshot) []string {
	out := make([]string, 0, len(lst))
	for _, s := range lst {
		out = append(out, s.ID)
	}
	return out
}
