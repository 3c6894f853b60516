// ABOUTME: Structured logging contract shared by the engine and adapters
// ABOUTME: Entries are a message plus a flat map of fields

// Package interfaces holds the contracts between the filtering core and
// the page, store, transport and logging adapters around it.
package interfaces

// Logger is implemented by infrastructure/logger/logrus and NopLogger.
//
//	logger.Debug("Item matched", map[string]interface{}{
//		"item": "urn:li:activity:42",
//		"rule": "text::Promoted",
//	})
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})

	// Error is for failures an operator should look at; recoverable
	// per-item problems belong in Warn.
	Error(msg string, fields map[string]interface{})
}
