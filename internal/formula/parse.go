package formula

import (
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// expr is a node in the parsed formula tree.
type expr interface{}

type numberLit struct {
	value float64
}

type cellRefExpr struct {
	ref cellRef
}

type rangeRefExpr struct {
	rng rangeRef
}

type callExpr struct {
	fn   string
	args []expr
}

// parseError carries the error value a malformed formula displays as.
type parseError struct {
	code ErrorCode
}

func (e *parseError) Error() string {
	return "formula parse error: " + e.code.Display()
}

// parseFormula lexes the text after the leading '=' with efp and builds
// the call tree. The grammar is call-tree only: function calls,
// references, ranges, and numeric literals. Anything else (infix
// operators, text literals) yields #VALUE!; an identifier that is
// neither a reference nor a known call shape yields #NAME?.
func parseFormula(raw string) (expr, *parseError) {
	body := strings.TrimPrefix(raw, "=")
	if strings.TrimSpace(body) == "" {
		return nil, &parseError{code: ErrValue}
	}

	ps := efp.ExcelParser()
	stream := &tokenStream{tokens: ps.Parse(body)}

	node, perr := stream.parseExpr()
	if perr != nil {
		return nil, perr
	}
	if stream.peek() != nil {
		// Trailing tokens mean the grammar didn't cover the input.
		return nil, &parseError{code: ErrValue}
	}
	return node, nil
}

// tokenStream walks efp tokens, skipping whitespace.
type tokenStream struct {
	tokens []efp.Token
	pos    int
}

func (s *tokenStream) peek() *efp.Token {
	for s.pos < len(s.tokens) {
		tok := &s.tokens[s.pos]
		if tok.TType == efp.TokenTypeWhitespace {
			s.pos++
			continue
		}
		return tok
	}
	return nil
}

func (s *tokenStream) next() *efp.Token {
	tok := s.peek()
	if tok != nil {
		s.pos++
	}
	return tok
}

func (s *tokenStream) parseExpr() (expr, *parseError) {
	tok := s.next()
	if tok == nil {
		return nil, &parseError{code: ErrValue}
	}

	switch tok.TType {
	case efp.TokenTypeFunction:
		if tok.TSubType != efp.TokenSubTypeStart {
			return nil, &parseError{code: ErrValue}
		}
		return s.parseCall(strings.ToUpper(tok.TValue))

	case efp.TokenTypeOperand:
		return parseOperand(tok)
	}

	// Operators and any other token class are outside the grammar.
	return nil, &parseError{code: ErrValue}
}

// parseCall parses arguments up to the matching close paren. The open
// token has already been consumed.
func (s *tokenStream) parseCall(name string) (expr, *parseError) {
	call := &callExpr{fn: name}

	// Empty argument list: FN()
	if tok := s.peek(); tok != nil && tok.TType == efp.TokenTypeFunction && tok.TSubType == efp.TokenSubTypeStop {
		s.pos++
		return call, nil
	}

	for {
		arg, perr := s.parseExpr()
		if perr != nil {
			return nil, perr
		}
		call.args = append(call.args, arg)

		tok := s.next()
		if tok == nil {
			// Unterminated call.
			return nil, &parseError{code: ErrValue}
		}
		if tok.TType == efp.TokenTypeArgument {
			continue
		}
		if tok.TType == efp.TokenTypeFunction && tok.TSubType == efp.TokenSubTypeStop {
			return call, nil
		}
		return nil, &parseError{code: ErrValue}
	}
}

// parseOperand maps an operand token to a literal, reference, or range.
func parseOperand(tok *efp.Token) (expr, *parseError) {
	switch tok.TSubType {
	case efp.TokenSubTypeNumber:
		n, err := strconv.ParseFloat(tok.TValue, 64)
		if err != nil {
			return nil, &parseError{code: ErrValue}
		}
		return numberLit{value: n}, nil

	case efp.TokenSubTypeRange:
		// efp tags single cells and rectangular spans alike.
		if strings.Contains(tok.TValue, ":") {
			rng, ok := parseRangeRef(tok.TValue)
			if !ok {
				return nil, &parseError{code: ErrName}
			}
			return rangeRefExpr{rng: rng}, nil
		}
		ref, ok := parseCellRef(tok.TValue)
		if !ok {
			// A bare identifier that is not a reference.
			return nil, &parseError{code: ErrName}
		}
		return cellRefExpr{ref: ref}, nil
	}

	// Text and logical literals are outside the grammar.
	return nil, &parseError{code: ErrValue}
}
