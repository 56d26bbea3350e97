package document

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// documentSchema compiles the embedded CUE schema once per process.
func documentSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE)
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile document schema: %w", err)
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Document"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Document: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// validateEnvelope unifies a persisted JSON record with the #Document
// schema. JSON is valid CUE, so the record compiles directly.
func validateEnvelope(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}

	ctx := schema.Context()
	rec := ctx.CompileBytes(data)
	if err := rec.Err(); err != nil {
		return fmt.Errorf("parse document record: %w", err)
	}

	if err := schema.Unify(rec).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("document record violates schema: %w", err)
	}
	return nil
}
