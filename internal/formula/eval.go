package formula

import "github.com/roach88/folio/internal/document"

// pass is one evaluation run: an immutable snapshot of the cell map, a
// per-pass memo so no cell computes twice, and the current DFS path for
// cycle detection.
//
// The onPath set is the critical distinction from memoization: a cell
// merely visited earlier in the pass is a memo hit, while a cell still
// on the active path is a cycle, and yields #CIRCULAR! for every cell
// the cycle runs through.
type pass struct {
	eng    *Engine
	cells  map[string]document.CellEntry
	memo   map[string]Value
	onPath map[string]bool
}

// evalCell resolves one cell, following formula references depth-first.
func (p *pass) evalCell(ref cellRef) Value {
	if !p.eng.inBounds(ref) {
		return Error(ErrRef)
	}

	addr := ref.addr()
	if v, ok := p.memo[addr]; ok {
		return v
	}
	if p.onPath[addr] {
		// Revisit on the active path: a reference cycle. The error
		// propagates back through every frame on the cycle, so each
		// participating cell memoizes #CIRCULAR!.
		return Error(ErrCircular)
	}

	entry, ok := p.cells[addr]
	if !ok || entry.Raw == "" {
		v := Empty()
		p.memo[addr] = v
		return v
	}

	if entry.Raw[0] != '=' {
		v := literalValue(entry.Raw)
		p.memo[addr] = v
		return v
	}

	p.onPath[addr] = true
	defer delete(p.onPath, addr)

	var v Value
	node, perr := parseFormula(entry.Raw)
	if perr != nil {
		v = Error(perr.code)
	} else {
		v = p.evalExpr(node)
	}
	p.memo[addr] = v
	return v
}

// evalExpr evaluates one tree node.
func (p *pass) evalExpr(node expr) Value {
	switch n := node.(type) {
	case numberLit:
		return Number(n.value)

	case cellRefExpr:
		// A bare reference passes the target's value through
		// unchanged - number, text, empty, or error.
		return p.evalCell(n.ref)

	case rangeRefExpr:
		// A range is only meaningful as a function argument; a whole
		// formula cannot display a rectangle.
		return Error(ErrValue)

	case *callExpr:
		return p.evalCall(n)
	}
	return Error(ErrValue)
}

// evalCall resolves a builtin call. Arguments are flattened into the
// numeric inputs the aggregate consumes: range and reference arguments
// skip empty and non-numeric cells (spreadsheet convention), while any
// errored input propagates immediately - first error wins.
func (p *pass) evalCall(call *callExpr) Value {
	agg, ok := builtins[call.fn]
	if !ok {
		return Error(ErrName)
	}

	var nums []float64
	for _, arg := range call.args {
		switch a := arg.(type) {
		case rangeRefExpr:
			for _, ref := range a.rng.cells() {
				v := p.evalCell(ref)
				if v.IsError() {
					return v
				}
				if v.Kind == ValueNumber {
					nums = append(nums, v.Num)
				}
			}

		case cellRefExpr:
			v := p.evalCell(a.ref)
			if v.IsError() {
				return v
			}
			if v.Kind == ValueNumber {
				nums = append(nums, v.Num)
			}

		default:
			v := p.evalExpr(arg)
			if v.IsError() {
				return v
			}
			if v.Kind != ValueNumber {
				return Error(ErrValue)
			}
			nums = append(nums, v.Num)
		}
	}

	return agg(nums)
}

// aggregate computes one builtin over the flattened numeric inputs.
type aggregate func(nums []float64) Value

var builtins = map[string]aggregate{
	"SUM": func(nums []float64) Value {
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return Number(total)
	},
	"AVERAGE": func(nums []float64) Value {
		if len(nums) == 0 {
			// No #DIV/0! in the error vocabulary; an average over
			// nothing is a value error.
			return Error(ErrValue)
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return Number(total / float64(len(nums)))
	},
	"COUNT": func(nums []float64) Value {
		return Number(float64(len(nums)))
	},
	"MIN": func(nums []float64) Value {
		if len(nums) == 0 {
			return Number(0)
		}
		lo := nums[0]
		for _, n := range nums[1:] {
			if n < lo {
				lo = n
			}
		}
		return Number(lo)
	},
	"MAX": func(nums []float64) Value {
		if len(nums) == 0 {
			return Number(0)
		}
		hi := nums[0]
		for _, n := range nums[1:] {
			if n > hi {
				hi = n
			}
		}
		return Number(hi)
	},
}
