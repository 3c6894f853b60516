// ABOUTME: No-op implementations of the optional page controls and logger
// ABOUTME: Used when a caller supplies no adapter for a concern

package interfaces

import (
	"context"

	"linkoff-engine/core/domain"
)

// NopToggler ignores every request.
type NopToggler struct{}

func (NopToggler) SetHiddenByClass(string, bool, domain.VisualMode) int { return 0 }
func (NopToggler) SetHiddenByClassIndex(string, int, bool, domain.VisualMode) bool {
	return false
}
func (NopToggler) SetAncestorHiddenByChildClass(string, string, bool, domain.VisualMode) int {
	return 0
}
func (NopToggler) SetContainerHidden(string, bool) bool { return false }

// NopClicker never finds anything to click.
type NopClicker struct{}

func (NopClicker) Click(context.Context, string, int) (int, error) { return 0, nil }
func (NopClicker) Count(string) int { return 0 }
func (NopClicker) ScrollToBottom(context.Context) error { return nil }

// NopAppearance ignores appearance changes.
type NopAppearance struct{}

func (NopAppearance) SetDarkMode(bool) {}
func (NopAppearance) SetWideMode(bool) {}

// NopNotifier drops messages.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{}) {}
func (NopLogger) Warn(string, map[string]interface{}) {}
func (NopLogger) Error(string, map[string]interface{}) {}
