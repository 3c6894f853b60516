// Package core contains the LinkOff filtering engine. It never touches
// HTML, HTTP or a database directly; every outside concern arrives
// through core/interfaces.
//
// The packages follow the path a settings change takes:
//
// - domain: settings snapshots, items, rules and visual modes
// - rules: compiles a snapshot into ordered keyword lists per surface
// - classifier: first-match-wins evaluation of a rule list against an item
// - state: the pristine/hidden/shown item state machine
// - reconcile: decides when a new rule list resets already-decided items
// - settings: loading, validation and the per-key diff gate
// - scan: the periodic per-surface scan loop
// - workers: serialises tick bodies onto one goroutine
// - engine: the controller wiring all of the above to a page
// - errors: typed errors shared by every layer
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Store:    store,    // implements interfaces.SettingsStore
//	    Document: document, // implements interfaces.DocumentView
//	    Logger:   logger,
//	}
//
//	ctrl, err := engine.New(deps, engine.WithConfig(engine.DefaultConfig()))
//	if err != nil {
//	    return err
//	}
//	defer ctrl.Close()
//
//	// Apply stored settings, then follow changes and navigation.
//	err = ctrl.Run(ctx)
package core
