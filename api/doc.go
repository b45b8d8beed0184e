// Package api exposes the reader over HTTP. It uses the Huma framework for
// OpenAPI documentation and request validation, on top of a chi router.
//
// # Architecture
//
//   - server.go: Huma API configuration and the Server that wires the view-models
//   - handlers/: HTTP request handlers driving the selection and feed models
//   - dto/: Data Transfer Objects for requests and responses
//   - middleware/: request logging and per-IP rate limiting
//
// # Routes
//
//	GET  /health          liveness and feature flags
//	GET  /sources         catalog with selection state, optional ?filter=
//	POST /sources/toggle  toggle one listed source
//	POST /sources         add a custom source
//	POST /sources/save    persist the selected source
//	GET  /sources/valid   whether exactly one source is selected
//	POST /feed/load       fetch the saved source and return a page of items
//	GET  /articles        readable content of an item link (?url=&title=)
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	app, err := bootstrap.New(cfg)
//	if err != nil {
//	    return err
//	}
//	server, err := api.NewServer(ctx, app, version)
//	if err != nil {
//	    return err
//	}
//	defer server.Close()
//	http.ListenAndServe(":8000", server.Router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. A feed that cannot be parsed
// carries the parser's description as its detail; every other fetch failure
// carries the generic network message.
package api
