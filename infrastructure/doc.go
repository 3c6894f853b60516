// Package infrastructure provides the adapters behind the interfaces in
// core/interfaces.
//
// - document/htmldoc: a goquery-backed page the engine scans and annotates
// - document/feeddoc: renders RSS, Atom and JSON feeds as filterable pages
// - settings/memory, settings/redis, settings/sqlite, settings/file: stores
// - http/standard: net/http client with retries for page and feed downloads
// - logger/logrus: structured logging with optional rotated files
//
// # Settings Stores
//
//	store := memory.NewStore(map[string]any{"hide-polls": false})
//
//	store, err := sqlite.NewStore("linkoff.db")
//	defer store.Close()
//
//	store, err := redis.NewStore(cfg.Store.Redis, logger)
//
// Every store can notify listeners when settings change, which is how a
// running engine picks up edits made elsewhere.
//
// # Documents
//
//	doc, err := htmldoc.Parse("https://www.linkedin.com/feed/", markup)
//	doc, err := feeddoc.Fetch(ctx, client, "https://example.com/feed.xml", time.Now())
package infrastructure
