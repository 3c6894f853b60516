// Package api is the HTTP control surface for a running LinkOff engine.
// It is built on Huma over chi, so the OpenAPI document is served at
// /openapi.json and interactive docs at /docs.
//
// # Routes
//
//	GET  /settings                     merged settings and visual mode
//	PUT  /settings                     store new values and re-apply
//	GET  /surfaces/{surface}/items     items with state, paged
//	POST /items/{id}/reveal            show one hidden item
//	GET  /document                     summary of the current page
//	POST /document                     load markup or a feed
//	POST /navigate                     change the page address
//	POST /commands/unfollow-all        409 unless on the follows page
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	api.RegisterRoutes(humaAPI, client) // *linkoff.Client
//	http.ListenAndServe(":8000", router)
//
// Errors use the RFC 7807 problem format. Validation failures map to 400,
// unknown items to 404, commands on the wrong page to 409 and store
// outages to 503.
package api
