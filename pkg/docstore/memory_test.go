package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDoc struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Seats  int    `json:"seats"`
}

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "exams", "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "exams", "e1", sampleDoc{Name: "Midterm", Status: "draft"}))
	snap, err := store.Get(ctx, "exams", "e1")
	require.NoError(t, err)

	var doc sampleDoc
	require.NoError(t, snap.DataTo(&doc))
	assert.Equal(t, "Midterm", doc.Name)

	require.NoError(t, store.Delete(ctx, "exams", "e1"))
	require.NoError(t, store.Delete(ctx, "exams", "e1"))
	_, err = store.Get(ctx, "exams", "e1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryQueryFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	firstID, err := store.Add(ctx, "exams", sampleDoc{Name: "A", Status: "active", Seats: 10})
	require.NoError(t, err)
	_, err = store.Add(ctx, "exams", sampleDoc{Name: "B", Status: "draft", Seats: 10})
	require.NoError(t, err)
	_, err = store.Add(ctx, "exams", sampleDoc{Name: "C", Status: "active", Seats: 20})
	require.NoError(t, err)

	snaps, err := store.Query(ctx, "exams", Query{Filters: []Filter{Where("status", "active")}})
	require.NoError(t, err)
	docs, err := Decode(snaps, func(d *sampleDoc, id string) { d.ID = id })
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, firstID, docs[0].ID)
	assert.Equal(t, "A", docs[0].Name)
	assert.Equal(t, "C", docs[1].Name)

	snaps, err = store.Query(ctx, "exams", Query{Filters: []Filter{Where("status", "active"), Where("seats", 20)}})
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	snaps, err = store.Query(ctx, "exams", Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	snaps, err = store.Query(ctx, "other", Query{})
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.ErrorIs(t, store.Update(ctx, "exams", "nope", map[string]interface{}{"status": "active"}), ErrNotFound)

	require.NoError(t, store.Set(ctx, "exams", "e1", sampleDoc{Name: "Midterm", Status: "draft"}))
	require.NoError(t, store.Update(ctx, "exams", "e1", map[string]interface{}{"status": "active"}))

	snaps, err := store.Query(ctx, "exams", Query{Filters: []Filter{Where("status", "active")}})
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	var doc sampleDoc
	require.NoError(t, snaps[0].DataTo(&doc))
	assert.Equal(t, "Midterm", doc.Name)
}
