package formula

import (
	"sort"
	"strings"

	"github.com/roach88/folio/internal/document"
)

// Default grid bounds. Columns A-Z match the editor's grid; the row cap
// is a defensive ceiling on reference depth, not a storage limit.
const (
	DefaultMaxCols = 26
	DefaultMaxRows = 1000
)

// Engine evaluates spreadsheet cells within configured grid bounds.
// Stateless across passes: safe to share between goroutines.
type Engine struct {
	maxCols int
	maxRows int
}

// Option configures an Engine.
type Option func(*Engine)

// WithGridBounds sets the addressable grid size. References outside the
// bounds evaluate to #REF!.
func WithGridBounds(cols, rows int) Option {
	return func(e *Engine) {
		e.maxCols = cols
		e.maxRows = rows
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxCols: DefaultMaxCols,
		maxRows: DefaultMaxRows,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate computes the value of one cell against the given cell map.
//
// The map is snapshotted at pass start, so a concurrent edit can never
// be half-observed mid-pass. Nothing is retained afterwards: every call
// recomputes from raw text.
func (e *Engine) Evaluate(cells map[string]document.CellEntry, addr string) Value {
	ref, ok := parseCellRef(addr)
	if !ok {
		return Error(ErrRef)
	}
	p := e.newPass(cells)
	return p.evalCell(ref)
}

// Display returns the string shown for one cell.
func (e *Engine) Display(cells map[string]document.CellEntry, addr string) string {
	return e.Evaluate(cells, addr).Display()
}

// Grid evaluates every populated cell in one pass and returns the
// displayed strings keyed by canonical address. Memoization is shared
// across the pass, so overlapping dependency subtrees compute once.
func (e *Engine) Grid(cells map[string]document.CellEntry) map[string]string {
	p := e.newPass(cells)

	addrs := make([]string, 0, len(p.cells))
	for addr := range p.cells {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	out := make(map[string]string, len(addrs))
	for _, addr := range addrs {
		ref, ok := parseCellRef(addr)
		if !ok {
			out[addr] = Error(ErrRef).Display()
			continue
		}
		out[ref.addr()] = p.evalCell(ref).Display()
	}
	return out
}

// inBounds checks a reference against the configured grid.
func (e *Engine) inBounds(r cellRef) bool {
	return r.col >= 1 && r.col <= e.maxCols && r.row >= 1 && r.row <= e.maxRows
}

// newPass snapshots the cell map under canonical upper-case addresses.
func (e *Engine) newPass(cells map[string]document.CellEntry) *pass {
	snapshot := make(map[string]document.CellEntry, len(cells))
	for addr, entry := range cells {
		snapshot[strings.ToUpper(addr)] = entry
	}
	return &pass{
		eng:    e,
		cells:  snapshot,
		memo:   make(map[string]Value),
		onPath: make(map[string]bool),
	}
}
