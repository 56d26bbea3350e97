// Package session mediates all mutation of the one active document.
//
// The controller is a two-state machine: Closed (no active document)
// and Open (exactly one). Content mutation and durability are
// decoupled - edits land in memory and in the list projection on every
// call, while durable writes happen on the autosave tick, on rename,
// and on explicit SaveNow. A crash therefore loses at most one
// autosave interval of edits; that window is a documented trade-off,
// not a bug.
//
// Every durable save of the active document runs under the controller
// mutex with the snapshot and timestamp taken under that same lock, so
// writes can never land on disk out of savedAt order.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/repo"
)

var (
	// ErrNoActiveDocument is returned by Open-only operations while Closed.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrAlreadyOpen is returned by Open while a document is active.
	ErrAlreadyOpen = errors.New("a document is already open")
)

// Controller owns the single active document. All fields are guarded by
// mu; the autosave goroutine takes the same lock, so mutations, saves,
// and ticks never interleave mid-operation.
type Controller struct {
	mu sync.Mutex

	repo      *repo.Repository
	view      *repo.View
	log       *zap.Logger
	now       func() time.Time
	newTicker TickerFactory
	interval  time.Duration

	doc    *document.Document // nil means Closed
	ticker Ticker
	done   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithAutosaveInterval sets the tick period. Non-positive intervals
// disable autosave entirely (defensive handling of unvalidated
// settings values).
func WithAutosaveInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTickerFactory overrides ticker construction. Tests inject a
// channel-backed fake to fire ticks deterministically.
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Controller) { c.newTicker = f }
}

// WithLogger attaches a logger. Defaults to zap.NewNop.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a Closed controller over the given repository and list
// projection.
func New(r *repo.Repository, v *repo.View, opts ...Option) *Controller {
	c := &Controller{
		repo:      r,
		view:      v,
		log:       zap.NewNop(),
		now:       time.Now,
		newTicker: NewTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open loads a document into the active slot and starts the autosave
// timer when an interval is configured.
func (c *Controller) Open(doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, c.doc.ID)
	}

	c.doc = doc.Clone()

	if c.interval > 0 {
		c.ticker = c.newTicker(c.interval)
		c.done = make(chan struct{})
		go c.autosaveLoop(c.ticker, c.done, c.doc.ID)
	}

	c.log.Info("document opened",
		zap.String("id", c.doc.ID),
		zap.Duration("autosave_interval", c.interval))
	return nil
}

// IsOpen reports whether a document is active.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc != nil
}

// Active returns a copy of the active document, or nil while Closed.
func (c *Controller) Active() *document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	return c.doc.Clone()
}

// MutateContent replaces the active document's content, stamps savedAt
// in memory, and updates the list projection. It does NOT write to the
// repository: rapid edits must not each trigger a storage write. The
// next autosave tick (or SaveNow/Rename) makes the edit durable.
func (c *Controller) MutateContent(content document.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return ErrNoActiveDocument
	}
	if content == nil || content.Kind() != c.doc.Kind {
		return fmt.Errorf("content variant does not match document kind %q", c.doc.Kind)
	}

	c.doc.Content = content.Clone()
	c.doc.SavedAt = c.now()
	c.view.Apply(c.doc)
	return nil
}

// Rename updates the display name and saves immediately: a rename is a
// deliberate, low-frequency action where synchronous durability is
// acceptable.
func (c *Controller) Rename(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return ErrNoActiveDocument
	}

	c.doc.Name = document.NormalizeName(name)
	c.doc.SavedAt = c.now()
	c.view.Apply(c.doc)
	return c.saveLocked(ctx)
}

// SaveNow persists the current in-memory snapshot immediately.
func (c *Controller) SaveNow(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return ErrNoActiveDocument
	}
	return c.saveLocked(ctx)
}

// Close transitions to Closed and cancels the autosave timer. It does
// not flush: durability is governed by the last save, and edits since
// then are lost (see the package comment).
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return
	}

	id := c.doc.ID
	c.stopTickerLocked()
	c.doc = nil
	c.log.Info("document closed", zap.String("id", id))
}

// DeleteActive deletes the open document from the repository and the
// list projection, transitions to Closed, and cancels autosave. The
// ticker is stopped under the same lock that guards ticks, so a stale
// tick can never resurrect the deleted record.
func (c *Controller) DeleteActive(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return ErrNoActiveDocument
	}

	id := c.doc.ID
	if err := c.repo.Delete(ctx, id); err != nil {
		// Deletion failed: stay Open so the user's state is intact.
		return err
	}

	c.view.Drop(id)
	c.stopTickerLocked()
	c.doc = nil
	c.log.Info("active document deleted", zap.String("id", id))
	return nil
}

// autosaveLoop runs until the done channel closes. The loop holds no
// state: each tick re-checks the active document under the lock.
func (c *Controller) autosaveLoop(t Ticker, done chan struct{}, id string) {
	for {
		select {
		case <-done:
			return
		case <-t.C():
			c.tick(id)
		}
	}
}

// tick persists the active document unconditionally (even when
// unchanged: simplicity over write-amplification avoidance). A tick
// that raced a close or delete observes a nil or mismatched id and is
// a no-op. A failed save is logged and left for the next tick to retry.
func (c *Controller) tick(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil || c.doc.ID != id {
		return
	}

	if err := c.saveLocked(context.Background()); err != nil {
		c.log.Warn("autosave failed, will retry on next tick",
			zap.String("id", id),
			zap.Error(err))
	}
}

// saveLocked writes the in-memory snapshot through the repository and
// fans the stamped copy out to the list projection. Callers hold mu.
func (c *Controller) saveLocked(ctx context.Context) error {
	if err := c.repo.Save(ctx, c.doc); err != nil {
		// In-memory state stays intact; the caller reports the error.
		return err
	}
	c.view.Apply(c.doc)
	c.log.Debug("document saved",
		zap.String("id", c.doc.ID),
		zap.Time("saved_at", c.doc.SavedAt))
	return nil
}

// stopTickerLocked cancels the autosave timer. Callers hold mu.
func (c *Controller) stopTickerLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.done)
	c.ticker = nil
	c.done = nil
}
