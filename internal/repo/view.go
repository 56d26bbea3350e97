package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/roach88/folio/internal/document"
)

// View is the read-mostly in-memory projection of the document list
// shown by the document manager. It is kept eventually consistent with
// the repository by explicit Apply/Drop calls after every mutation, or
// wholesale via Reload.
//
// Readers get copies; the projection never shares document state with
// the session's active document.
type View struct {
	mu   sync.RWMutex
	docs []*document.Document
}

// NewView creates an empty projection.
func NewView() *View {
	return &View{}
}

// Reload replaces the projection with the repository's current listing.
func (v *View) Reload(ctx context.Context, r *Repository) error {
	docs, err := r.List(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs = docs
	return nil
}

// Apply upserts one document and re-sorts by savedAt descending.
// Called with a snapshot; the projection owns the stored copy.
func (v *View) Apply(doc *document.Document) {
	cp := doc.Clone()

	v.mu.Lock()
	defer v.mu.Unlock()

	replaced := false
	for i, existing := range v.docs {
		if existing.ID == cp.ID {
			v.docs[i] = cp
			replaced = true
			break
		}
	}
	if !replaced {
		v.docs = append(v.docs, cp)
	}

	sort.SliceStable(v.docs, func(i, j int) bool {
		return v.docs[i].SavedAt.After(v.docs[j].SavedAt)
	})
}

// Drop removes one document from the projection.
func (v *View) Drop(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, existing := range v.docs {
		if existing.ID == id {
			v.docs = append(v.docs[:i], v.docs[i+1:]...)
			return
		}
	}
}

// Documents returns a copy of the projection, savedAt descending.
func (v *View) Documents() []*document.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]*document.Document, len(v.docs))
	for i, doc := range v.docs {
		out[i] = doc.Clone()
	}
	return out
}

// Len returns the number of listed documents.
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs)
}
