package family

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, Worlds, json.RawMessage(`{"name":"Willow Creek","order":0}`))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	data, err := s.Get(ctx, Worlds, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Willow Creek","order":0}`, string(data))

	require.NoError(t, s.Update(ctx, Worlds, id, json.RawMessage(`{"order":3,"description":"Sunny"}`)))
	data, err = s.Get(ctx, Worlds, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Willow Creek","order":3,"description":"Sunny"}`, string(data))

	require.NoError(t, s.Delete(ctx, Worlds, id))
	_, err = s.Get(ctx, Worlds, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, Worlds, id), "deleting twice is allowed")
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, Sims, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, Sims, "nope", json.RawMessage(`{}`)), ErrNotFound)
}

func TestMemoryStore_RejectsNonObjects(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, data := range []string{`[]`, `"x"`, `null`, `{`} {
		_, err := s.Create(ctx, Sims, json.RawMessage(data))
		assert.Error(t, err, data)
	}
}

func TestMemoryStore_ListAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var ids []string
	for _, doc := range []string{
		`{"name":"Maja","houseId":"h1"}`,
		`{"name":"Erik","houseId":"h2"}`,
		`{"name":"Åsa","houseId":"h1"}`,
		`{"name":"Nils","houseId":7}`,
	} {
		id, err := s.Create(ctx, Sims, json.RawMessage(doc))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := s.List(ctx, Sims)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, doc := range all {
		assert.Equal(t, ids[i], doc.ID, "creation order")
	}

	found, err := s.Find(ctx, Sims, "houseId", "h1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, ids[0], found[0].ID)
	assert.Equal(t, ids[2], found[1].ID)

	require.NoError(t, s.Delete(ctx, Sims, ids[1]))
	all, err = s.List(ctx, Sims)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	empty, err := s.List(ctx, Diary)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Create(ctx, Diary, json.RawMessage(`{"simId":"s1"}`))
			if err != nil {
				t.Error(err)
				return
			}
			_ = s.Update(ctx, Diary, id, json.RawMessage(`{"text":"hej"}`))
			_, _ = s.Find(ctx, Diary, "simId", "s1")
		}()
	}
	wg.Wait()

	docs, err := s.List(ctx, Diary)
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
