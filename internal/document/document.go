// Package document defines the folio data model: documents tagged by
// kind, with content variants for rich text, spreadsheets, and slide
// decks. The package holds pure types plus the JSON codec used by the
// repository; it has no storage dependencies.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Kind discriminates the content variant a document carries.
// Fixed at creation, never changes.
type Kind string

const (
	KindRichText    Kind = "richtext"
	KindSpreadsheet Kind = "spreadsheet"
	KindSlideDeck   Kind = "slidedeck"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindRichText, KindSpreadsheet, KindSlideDeck:
		return true
	}
	return false
}

// ParseKind maps a user-supplied string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown document kind %q", s)
	}
	return k, nil
}

// Content is the tagged union of document payloads. Exactly one concrete
// type exists per Kind; Document.Validate enforces the pairing.
type Content interface {
	// Kind returns the variant tag the payload belongs to.
	Kind() Kind

	// Clone returns a deep copy so callers can hand out snapshots
	// without sharing mutable state.
	Clone() Content
}

// RichTextContent is an opaque serialized markup blob. The core never
// interprets it beyond passing it through unchanged.
type RichTextContent struct {
	Markup string `json:"markup"`
}

func (RichTextContent) Kind() Kind { return KindRichText }

func (c RichTextContent) Clone() Content { return c }

// CellEntry is one spreadsheet cell. Raw is the user-typed string; a
// leading '=' marks a formula. Evaluated values are never stored here -
// they are recomputed on read so dependents can never go stale.
type CellEntry struct {
	Raw string `json:"raw"`
}

// SheetContent is a sparse cell map keyed by address ("A1"). An absent
// key means an empty cell.
type SheetContent struct {
	Cells map[string]CellEntry `json:"cells"`
}

func (SheetContent) Kind() Kind { return KindSpreadsheet }

func (c SheetContent) Clone() Content {
	cells := make(map[string]CellEntry, len(c.Cells))
	for addr, cell := range c.Cells {
		cells[addr] = cell
	}
	return SheetContent{Cells: cells}
}

// Slide is one slide in a deck.
type Slide struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Background string `json:"background"`
}

// DeckContent is an ordered sequence of slides.
type DeckContent struct {
	Slides []Slide `json:"slides"`
}

func (DeckContent) Kind() Kind { return KindSlideDeck }

func (c DeckContent) Clone() Content {
	slides := make([]Slide, len(c.Slides))
	copy(slides, c.Slides)
	return DeckContent{Slides: slides}
}

// DefaultContent synthesizes the empty payload for a kind. Used at
// document creation so content shape matches kind from the first write.
func DefaultContent(kind Kind) (Content, error) {
	switch kind {
	case KindRichText:
		return RichTextContent{}, nil
	case KindSpreadsheet:
		return SheetContent{Cells: map[string]CellEntry{}}, nil
	case KindSlideDeck:
		return DeckContent{Slides: []Slide{}}, nil
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

// Document is one persisted unit of user content.
//
// CreatedAt and SavedAt are non-decreasing; SavedAt is stamped on every
// durable write and on in-memory mutation through the session.
type Document struct {
	ID        string
	Name      string
	Kind      Kind
	Content   Content
	CreatedAt time.Time
	SavedAt   time.Time
}

// Validate checks the content-shape-matches-kind invariant. A violation
// is a programming error, not a recoverable runtime state, so callers
// on hot paths may treat a non-nil result as fatal.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document has empty id")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("document %s has unknown kind %q", d.ID, d.Kind)
	}
	if d.Content == nil {
		return fmt.Errorf("document %s has nil content", d.ID)
	}
	if got := d.Content.Kind(); got != d.Kind {
		return fmt.Errorf("document %s kind %q does not match content variant %q", d.ID, d.Kind, got)
	}
	return nil
}

// Clone returns a deep copy. The session hands clones to readers so the
// active document is never shared.
func (d *Document) Clone() *Document {
	cp := *d
	if d.Content != nil {
		cp.Content = d.Content.Clone()
	}
	return &cp
}

// NormalizeName canonicalizes a display name: NFC form, surrounding
// whitespace trimmed. Applied on create and rename so equal-looking
// names compare equal.
func NormalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

// envelope is the persisted JSON shape. The payload field is decoded
// lazily so the variant can be dispatched on kind.
type envelope struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	SavedAt   time.Time       `json:"saved_at"`
}

// MarshalJSON encodes the document as a kind-tagged envelope.
func (d *Document) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(d.Content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	return json.Marshal(envelope{
		ID:        d.ID,
		Name:      d.Name,
		Kind:      d.Kind,
		Content:   payload,
		CreatedAt: d.CreatedAt,
		SavedAt:   d.SavedAt,
	})
}

// UnmarshalJSON decodes a kind-tagged envelope, dispatching the payload
// variant on kind. The decoded record is schema-validated and then
// shape-checked; a stored record that fails either is corrupt.
func (d *Document) UnmarshalJSON(data []byte) error {
	if err := validateEnvelope(data); err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal document envelope: %w", err)
	}

	var content Content
	switch env.Kind {
	case KindRichText:
		var c RichTextContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return fmt.Errorf("unmarshal richtext content: %w", err)
		}
		content = c
	case KindSpreadsheet:
		var c SheetContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return fmt.Errorf("unmarshal spreadsheet content: %w", err)
		}
		if c.Cells == nil {
			c.Cells = map[string]CellEntry{}
		}
		content = c
	case KindSlideDeck:
		var c DeckContent
		if err := json.Unmarshal(env.Content, &c); err != nil {
			return fmt.Errorf("unmarshal slidedeck content: %w", err)
		}
		content = c
	default:
		return fmt.Errorf("document %s has unknown kind %q", env.ID, env.Kind)
	}

	d.ID = env.ID
	d.Name = env.Name
	d.Kind = env.Kind
	d.Content = content
	d.CreatedAt = env.CreatedAt
	d.SavedAt = env.SavedAt
	return d.Validate()
}
