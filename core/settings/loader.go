// ABOUTME: Settings loader reading the store and merging it over defaults
// ABOUTME: Store failures are returned to the caller without retrying

package settings

import (
	"context"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
)

// Loader reads snapshots from a store.
type Loader struct {
	store  interfaces.SettingsStore
	logger interfaces.Logger
}

// NewLoader creates a loader.
func NewLoader(store interfaces.SettingsStore, logger interfaces.Logger) *Loader {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Loader{store: store, logger: logger}
}

// Load fetches every known key and merges the result over the defaults.
func (l *Loader) Load(ctx context.Context) (domain.Snapshot, error) {
	stored, err := l.store.Get(ctx, domain.DefaultKeys())
	if err != nil {
		l.logger.Error("Failed to load settings", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.Snapshot{}, errors.WrapError(err, "load settings")
	}
	return domain.MergeDefaults(stored), nil
}

// Save validates values against the known keys and writes them. Unknown
// keys and values of the wrong type are rejected.
func (l *Loader) Save(ctx context.Context, values map[string]any) error {
	if err := Validate(values); err != nil {
		return err
	}
	if err := l.store.Set(ctx, values); err != nil {
		l.logger.Error("Failed to save settings", map[string]interface{}{
			"error": err.Error(),
			"keys":  len(values),
		})
		return errors.WrapError(err, "save settings")
	}
	return nil
}

// Validate checks every value against the type of its default.
func Validate(values map[string]any) error {
	defaults := domain.Defaults()
	for k, v := range values {
		def, ok := defaults[k]
		if !ok {
			return &errors.ValidationError{Field: k, Message: "unknown setting"}
		}
		switch def.(type) {
		case bool:
			if _, ok := v.(bool); !ok {
				return &errors.ValidationError{Field: k, Message: "must be a boolean"}
			}
		case string:
			s, ok := v.(string)
			if !ok {
				return &errors.ValidationError{Field: k, Message: "must be a string"}
			}
			if k == domain.KeyHideByAge && domain.ParseAgeBucket(s) == domain.AgeDisabled && s != string(domain.AgeDisabled) {
				return &errors.ValidationError{Field: k, Message: "must be one of disabled, hour, day, week, month, year"}
			}
		}
	}
	return nil
}
