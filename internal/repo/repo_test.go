package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/store"
)

// fakeClock returns strictly increasing timestamps, one second apart.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, opts...)
}

func TestCreate_ShapeMatchesKind(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		kind document.Kind
		want document.Content
	}{
		{document.KindRichText, document.RichTextContent{}},
		{document.KindSpreadsheet, document.SheetContent{Cells: map[string]document.CellEntry{}}},
		{document.KindSlideDeck, document.DeckContent{Slides: []document.Slide{}}},
	}

	for _, tt := range tests {
		doc, err := r.Create(ctx, tt.kind, "untitled")
		require.NoError(t, err, "Create(%s)", tt.kind)
		assert.Equal(t, tt.kind, doc.Kind)
		assert.Equal(t, tt.want, doc.Content)
		assert.NoError(t, doc.Validate())
		assert.True(t, doc.SavedAt.Equal(doc.CreatedAt))
	}
}

func TestCreate_PersistsImmediately(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	doc, err := r.Create(ctx, document.KindRichText, "notes")
	require.NoError(t, err)

	got, err := r.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "notes", got.Name)
}

func TestGet_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_RoundTripStampsSavedAt(t *testing.T) {
	clock := newFakeClock()
	r := newTestRepo(t, WithClock(clock.Now))
	ctx := context.Background()

	doc, err := r.Create(ctx, document.KindRichText, "notes")
	require.NoError(t, err)
	before := doc.SavedAt

	doc.Content = document.RichTextContent{Markup: "<p>edited</p>"}
	require.NoError(t, r.Save(ctx, doc))

	got, err := r.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, got.Content)
	assert.True(t, got.SavedAt.After(before), "Save must advance savedAt")
}

func TestSave_NeverMovesSavedAtBackwards(t *testing.T) {
	r := newTestRepo(t, WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	ctx := context.Background()

	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := &document.Document{
		ID:        "doc-1",
		Name:      "notes",
		Kind:      document.KindRichText,
		Content:   document.RichTextContent{},
		CreatedAt: future,
		SavedAt:   future,
	}

	require.NoError(t, r.Save(ctx, doc))
	assert.True(t, doc.SavedAt.Equal(future), "stale clock must not rewind savedAt")
}

func TestList_OrderedBySavedAtDesc(t *testing.T) {
	clock := newFakeClock()
	r := newTestRepo(t, WithClock(clock.Now),
		WithIDGenerator(document.NewFixedIDs("id-1", "id-2", "id-3")))
	ctx := context.Background()

	first, err := r.Create(ctx, document.KindRichText, "first")
	require.NoError(t, err)
	second, err := r.Create(ctx, document.KindSpreadsheet, "second")
	require.NoError(t, err)
	third, err := r.Create(ctx, document.KindSlideDeck, "third")
	require.NoError(t, err)

	// Touch the oldest so it jumps to the front.
	require.NoError(t, r.Save(ctx, first))

	docs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, third.ID, docs[1].ID)
	assert.Equal(t, second.ID, docs[2].ID)
}

func TestList_AfterCreatesAndDeletes(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		doc, err := r.Create(ctx, document.KindRichText, "doc")
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	require.NoError(t, r.Delete(ctx, ids[1]))
	require.NoError(t, r.Delete(ctx, ids[3]))

	docs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	remaining := map[string]bool{}
	for _, doc := range docs {
		remaining[doc.ID] = true
	}
	assert.False(t, remaining[ids[1]])
	assert.False(t, remaining[ids[3]])
	for _, id := range []string{ids[0], ids[2], ids[4]} {
		assert.True(t, remaining[id])
	}
}

func TestDelete_Idempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	doc, err := r.Create(ctx, document.KindRichText, "notes")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, doc.ID))
	require.NoError(t, r.Delete(ctx, doc.ID), "second delete must not error")

	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClearAll(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, document.KindRichText, "doc")
		require.NoError(t, err)
	}

	require.NoError(t, r.ClearAll(ctx))

	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestView_ApplyDropReload(t *testing.T) {
	clock := newFakeClock()
	r := newTestRepo(t, WithClock(clock.Now))
	ctx := context.Background()

	a, err := r.Create(ctx, document.KindRichText, "a")
	require.NoError(t, err)
	b, err := r.Create(ctx, document.KindRichText, "b")
	require.NoError(t, err)

	v := NewView()
	require.NoError(t, v.Reload(ctx, r))
	require.Equal(t, 2, v.Len())
	assert.Equal(t, b.ID, v.Documents()[0].ID, "most recently saved first")

	// A fresh save moves a to the front of the projection.
	a.SavedAt = clock.Now()
	v.Apply(a)
	assert.Equal(t, a.ID, v.Documents()[0].ID)

	v.Drop(b.ID)
	docs := v.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, a.ID, docs[0].ID)

	// Dropping an unknown id is a no-op.
	v.Drop("missing")
	assert.Equal(t, 1, v.Len())
}

func TestView_DocumentsReturnsCopies(t *testing.T) {
	v := NewView()
	v.Apply(&document.Document{
		ID: "sh-1", Name: "budget", Kind: document.KindSpreadsheet,
		Content: document.SheetContent{Cells: map[string]document.CellEntry{"A1": {Raw: "5"}}},
	})

	docs := v.Documents()
	docs[0].Content.(document.SheetContent).Cells["A1"] = document.CellEntry{Raw: "tampered"}

	assert.Equal(t, "5", v.Documents()[0].Content.(document.SheetContent).Cells["A1"].Raw)
}
