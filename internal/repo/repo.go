// Package repo implements the document repository: CRUD over Document
// records on top of the keyed store, plus the read-mostly in-memory View
// the document manager lists from.
//
// The repository is the sole durable owner of documents; in-memory
// copies elsewhere are caches that are fresh "as of last explicit save".
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/store"
)

// ErrNotFound is returned by Get for an unknown id. Delete never
// returns it - deleting an absent record is a successful no-op.
var ErrNotFound = errors.New("document not found")

// Repository persists documents in the store's documents partition.
type Repository struct {
	store *store.Store
	ids   document.IDGenerator
	now   func() time.Time
	log   *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDGenerator overrides the id source. Tests use document.FixedIDs
// for deterministic fixtures.
func WithIDGenerator(g document.IDGenerator) Option {
	return func(r *Repository) { r.ids = g }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger attaches a logger. Defaults to zap.NewNop.
func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) { r.log = log }
}

// New creates a Repository over the given store.
func New(s *store.Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		ids:   document.UUIDv7Generator{},
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create makes a new document with kind-appropriate empty content,
// stamps createdAt = savedAt = now, persists it, and returns it.
func (r *Repository) Create(ctx context.Context, kind document.Kind, name string) (*document.Document, error) {
	content, err := document.DefaultContent(kind)
	if err != nil {
		return nil, err
	}

	now := r.now()
	doc := &document.Document{
		ID:        r.ids.NewID(),
		Name:      document.NormalizeName(name),
		Kind:      kind,
		Content:   content,
		CreatedAt: now,
		SavedAt:   now,
	}

	if err := r.put(ctx, doc); err != nil {
		return nil, err
	}

	r.log.Info("document created",
		zap.String("id", doc.ID),
		zap.String("kind", string(kind)))
	return doc, nil
}

// Get returns one document by id, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*document.Document, error) {
	body, err := r.store.Get(ctx, store.PartitionDocuments, id)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var doc document.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

// List returns all documents ordered by savedAt descending (most
// recently saved first). Empty slice when none exist.
func (r *Repository) List(ctx context.Context) ([]*document.Document, error) {
	bodies, err := r.store.GetAll(ctx, store.PartitionDocuments)
	if err != nil {
		return nil, err
	}

	docs := make([]*document.Document, 0, len(bodies))
	for _, body := range bodies {
		var doc document.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode document record: %w", err)
		}
		docs = append(docs, &doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].SavedAt.After(docs[j].SavedAt)
	})
	return docs, nil
}

// Save upserts a document by id and stamps savedAt.
//
// The stamp never moves savedAt backwards: if the in-memory copy already
// carries a later timestamp (a mutation raced this save), the later one
// wins, keeping observed savedAt values non-decreasing.
func (r *Repository) Save(ctx context.Context, doc *document.Document) error {
	if now := r.now(); now.After(doc.SavedAt) {
		doc.SavedAt = now
	}
	return r.put(ctx, doc)
}

// Delete removes a document. Idempotent: unknown ids succeed.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.PartitionDocuments, id); err != nil {
		return err
	}
	r.log.Info("document deleted", zap.String("id", id))
	return nil
}

// ClearAll wipes the documents partition. Irreversible.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.store.Clear(ctx, store.PartitionDocuments); err != nil {
		return err
	}
	r.log.Warn("all documents cleared")
	return nil
}

// put validates and writes one record.
func (r *Repository) put(ctx context.Context, doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	return r.store.Put(ctx, store.PartitionDocuments, doc.ID, body)
}
