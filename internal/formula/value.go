package formula

import "strconv"

// ErrorCode categorizes formula evaluation failures. These are display
// values in the data model, never Go errors.
type ErrorCode string

const (
	// ErrCircular marks every cell on a reference cycle.
	ErrCircular ErrorCode = "CIRCULAR"

	// ErrRef marks a reference outside the addressable grid.
	ErrRef ErrorCode = "REF"

	// ErrValue marks a malformed formula or a numeric function left
	// with no usable numeric input.
	ErrValue ErrorCode = "VALUE"

	// ErrName marks an unrecognized function or identifier token.
	ErrName ErrorCode = "NAME"
)

// Display returns the in-cell rendering of the error.
func (c ErrorCode) Display() string {
	switch c {
	case ErrCircular:
		return "#CIRCULAR!"
	case ErrRef:
		return "#REF!"
	case ErrValue:
		return "#VALUE!"
	case ErrName:
		return "#NAME?"
	}
	return "#ERROR!"
}

// ValueKind discriminates evaluated cell values.
type ValueKind int

const (
	// ValueEmpty is an absent or blank cell.
	ValueEmpty ValueKind = iota
	ValueNumber
	ValueText
	ValueError
)

// Value is one evaluated cell. Numbers keep the raw text they were
// typed as (when they came from a literal) so display round-trips the
// identical string while arithmetic sees the parsed number.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Err  ErrorCode
}

// Number creates a computed numeric value.
func Number(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// NumberLiteral creates a numeric value that displays as typed.
func NumberLiteral(n float64, raw string) Value {
	return Value{Kind: ValueNumber, Num: n, Text: raw}
}

// Text creates a text value.
func Text(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// Error creates an error value.
func Error(code ErrorCode) Value {
	return Value{Kind: ValueError, Err: code}
}

// Empty is the value of a blank cell.
func Empty() Value {
	return Value{Kind: ValueEmpty}
}

// IsError reports whether the value is an error display.
func (v Value) IsError() bool {
	return v.Kind == ValueError
}

// Display returns the string shown in the cell.
func (v Value) Display() string {
	switch v.Kind {
	case ValueEmpty:
		return ""
	case ValueText:
		return v.Text
	case ValueError:
		return v.Err.Display()
	}
	// Literal numbers round-trip exactly as typed.
	if v.Text != "" {
		return v.Text
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// literalValue classifies a non-formula raw string: numeric-looking
// strings become numbers for arithmetic but keep their typed form.
func literalValue(raw string) Value {
	if raw == "" {
		return Empty()
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberLiteral(n, raw)
	}
	return Text(raw)
}
