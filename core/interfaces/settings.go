// ABOUTME: Settings store interfaces for persisting user preferences
// ABOUTME: Stores may optionally push change notifications

package interfaces

import "context"

// SettingsStore persists setting values keyed by setting name.
//
// Example usage:
//
//	values, err := store.Get(ctx, domain.DefaultKeys())
//	if err != nil {
//		return err
//	}
//	err = store.Set(ctx, map[string]any{"hide-polls": false})
type SettingsStore interface {
	// Get returns the stored values for keys. Missing keys are simply absent.
	Get(ctx context.Context, keys []string) (map[string]any, error)

	// Set writes values, leaving other keys untouched.
	Set(ctx context.Context, values map[string]any) error
}

// SettingsWatcher is implemented by stores that can announce changes.
type SettingsWatcher interface {
	// OnChanged registers fn to be called with the changed values.
	// The returned function unregisters it.
	OnChanged(fn func(changes map[string]any)) (cancel func())
}
