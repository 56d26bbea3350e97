// Package formula evaluates spreadsheet cells from a sparse cell map.
//
// A cell whose raw text starts with '=' is a formula: a call tree over a
// small builtin set (SUM, AVERAGE, COUNT, MIN, MAX) whose arguments are
// cell references, rectangular ranges, numeric literals, or nested
// calls. Anything else is a literal, displayed exactly as typed.
//
// Evaluation follows the dependency graph depth-first, leaves first,
// memoizing per pass so no cell is computed twice in one read. Cycle
// detection distinguishes "already on the current path" from "already
// visited": only a path revisit is a cycle, and every cell on the cycle
// reports #CIRCULAR!.
//
// Evaluation failures are values, not errors: #REF! (reference outside
// the grid), #VALUE! (malformed formula or no usable numeric input),
// #NAME? (unknown function) and #CIRCULAR! render in the affected cells
// and propagate to dependents, never aborting unrelated cells.
//
// Nothing is cached across passes. Every read recomputes from raw text,
// so editing any cell immediately updates every dependent's display.
package formula
