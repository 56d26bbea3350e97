// Package settings holds the process-wide user preferences record:
// loaded once at startup, kept in memory, written whole on every change.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/store"
)

// singletonID is the fixed key of the one settings record.
const singletonID = "settings"

// Settings is the singleton preferences record. All fields have
// defaults; the record is never deleted, only replaced.
//
// No field validation happens here: out-of-range values (a negative
// autosave interval, say) are stored as-is and handled defensively by
// consumers, so a bad write can always be corrected by another write.
type Settings struct {
	Theme           string        `json:"theme"`
	AutosaveSeconds int           `json:"autosave_seconds"`
	DefaultKind     document.Kind `json:"default_kind"`
	AssistModel     string        `json:"assist_model"`
}

// Defaults returns the hard-coded first-run settings.
func Defaults() Settings {
	return Settings{
		Theme:           "system",
		AutosaveSeconds: 30,
		DefaultKind:     document.KindRichText,
		AssistModel:     "gemini-2.5-flash",
	}
}

// Registry reads and writes the settings record.
type Registry struct {
	store *store.Store
	log   *zap.Logger
}

// NewRegistry creates a Registry over the given store.
func NewRegistry(s *store.Store, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{store: s, log: log}
}

// Load returns the persisted settings, or Defaults on first run.
func (r *Registry) Load(ctx context.Context) (Settings, error) {
	body, err := r.store.Get(ctx, store.PartitionSettings, singletonID)
	if err != nil {
		return Settings{}, err
	}
	if body == nil {
		r.log.Debug("no settings record, using defaults")
		return Defaults(), nil
	}

	var s Settings
	if err := json.Unmarshal(body, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Save persists the full record. No partial patch semantics: callers
// must merge before calling.
func (r *Registry) Save(ctx context.Context, s Settings) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Put(ctx, store.PartitionSettings, singletonID, body); err != nil {
		return err
	}
	r.log.Debug("settings saved")
	return nil
}
