package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/folio/internal/document"
)

func sheet(cells map[string]string) map[string]document.CellEntry {
	out := make(map[string]document.CellEntry, len(cells))
	for addr, raw := range cells {
		out[addr] = document.CellEntry{Raw: raw}
	}
	return out
}

func TestEvaluate_LiteralSum(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "5",
		"A2": "7",
		"A3": "=SUM(A1:A2)",
	})

	assert.Equal(t, "12", e.Display(cells, "A3"))
}

func TestEvaluate_LiteralsRoundTripAsTyped(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "12.50",
		"A2": "hello",
	})

	assert.Equal(t, "12.50", e.Display(cells, "A1"), "numeric literal keeps typed form")
	assert.Equal(t, "hello", e.Display(cells, "A2"))
	assert.Equal(t, "", e.Display(cells, "A3"), "empty cell displays blank")

	// The typed form still participates in arithmetic as a number.
	cells["A3"] = document.CellEntry{Raw: "=SUM(A1:A1)"}
	assert.Equal(t, "12.5", e.Display(cells, "A3"))
}

func TestEvaluate_TwoCellCycle(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "=A2",
		"A2": "=A1",
	})

	assert.Equal(t, "#CIRCULAR!", e.Display(cells, "A1"))
	assert.Equal(t, "#CIRCULAR!", e.Display(cells, "A2"))
}

func TestEvaluate_SelfCycle(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{"A1": "=SUM(A1:A1)"})

	assert.Equal(t, "#CIRCULAR!", e.Display(cells, "A1"))
}

func TestEvaluate_CycleDoesNotPoisonUnrelatedCells(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "=A2",
		"A2": "=A1",
		"B1": "3",
		"B2": "=SUM(B1:B1)",
	})

	assert.Equal(t, "#CIRCULAR!", e.Display(cells, "A1"))
	assert.Equal(t, "3", e.Display(cells, "B2"))
}

func TestEvaluate_UnknownFunctionPropagates(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "=A2",
		"A2": "=UNKNOWNFN(1)",
	})

	assert.Equal(t, "#NAME?", e.Display(cells, "A2"))
	assert.Equal(t, "#NAME?", e.Display(cells, "A1"))
}

func TestEvaluate_RecomputesAfterEdit(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "5",
		"A2": "7",
		"A3": "=SUM(A1:A2)",
	})
	assert.Equal(t, "12", e.Display(cells, "A3"))

	// No invalidation call: the next read sees the edit.
	cells["A1"] = document.CellEntry{Raw: "10"}
	assert.Equal(t, "17", e.Display(cells, "A3"))
}

func TestEvaluate_TransitiveReferences(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "2",
		"A2": "=SUM(A1:A1)",
		"A3": "=SUM(A2:A2)",
		"A4": "=SUM(A1:A3)",
	})

	assert.Equal(t, "6", e.Display(cells, "A4"))
}

func TestEvaluate_OutOfBoundsIsRefError(t *testing.T) {
	e := New(WithGridBounds(26, 100))
	cells := sheet(map[string]string{
		"A1": "=AA1",
		"A2": "=A200",
		"A3": "=SUM(A1:A1)",
	})

	assert.Equal(t, "#REF!", e.Display(cells, "A1"), "column past Z")
	assert.Equal(t, "#REF!", e.Display(cells, "A2"), "row past bound")
	assert.Equal(t, "#REF!", e.Display(cells, "A3"), "errors propagate")
}

func TestEvaluate_FirstErrorWins(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "=UNKNOWNFN(1)",
		"A2": "=AA1",
		"A3": "=SUM(A1,A2)",
	})

	// A1 errors with #NAME?, A2 with #REF!; the first argument wins.
	assert.Equal(t, "#NAME?", e.Display(cells, "A3"))
}

func TestEvaluate_Builtins(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "4",
		"A2": "8",
		"A3": "6",
		"B1": "header",
	})

	tests := []struct {
		formula string
		want    string
	}{
		{"=SUM(A1:A3)", "18"},
		{"=AVERAGE(A1:A3)", "6"},
		{"=COUNT(A1:A3)", "3"},
		{"=COUNT(A1:B3)", "3"}, // text and empty cells don't count
		{"=MIN(A1:A3)", "4"},
		{"=MAX(A1:A3)", "8"},
		{"=SUM(A1,A2,10)", "22"},
		{"=MAX(SUM(A1:A2),A3)", "12"},
		{"=sum(a1:a3)", "18"}, // case-insensitive
		{"=SUM(A3:A1)", "18"}, // corner order-independent
		{"=AVERAGE(C1:C5)", "#VALUE!"},
		{"=MIN(C1:C5)", "0"},
		{"=SUM()", "0"},
	}

	for _, tt := range tests {
		cells["D1"] = document.CellEntry{Raw: tt.formula}
		assert.Equal(t, tt.want, e.Display(cells, "D1"), "formula %s", tt.formula)
	}
}

func TestEvaluate_BareReferencePassesValueThrough(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"A1": "hello",
		"A2": "=A1",
		"A3": "=A9",
	})

	assert.Equal(t, "hello", e.Display(cells, "A2"))
	assert.Equal(t, "", e.Display(cells, "A3"), "reference to empty cell is blank")
}

func TestEvaluate_MalformedFormulas(t *testing.T) {
	e := New()

	tests := []struct {
		raw  string
		want string
	}{
		{"=", "#VALUE!"},
		{"=1+2", "#VALUE!"},      // infix operators are outside the grammar
		{"=\"text\"", "#VALUE!"}, // text literals too
		{"=A1:B2", "#VALUE!"},    // a bare range cannot display
		{"=BOGUS", "#NAME?"},     // identifier that is not a reference
	}

	for _, tt := range tests {
		cells := sheet(map[string]string{"C1": tt.raw})
		assert.Equal(t, tt.want, e.Display(cells, "C1"), "raw %q", tt.raw)
	}
}

func TestEvaluate_InvalidTargetAddress(t *testing.T) {
	e := New()
	assert.Equal(t, "#REF!", e.Display(sheet(nil), "1A"))
}

func TestEvaluate_LowercaseCellKeys(t *testing.T) {
	e := New()
	cells := sheet(map[string]string{
		"a1": "5",
		"A2": "=SUM(A1:A1)",
	})

	assert.Equal(t, "5", e.Display(cells, "a1"))
	assert.Equal(t, "5", e.Display(cells, "A2"))
}
