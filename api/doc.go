// Package api provides the HTTP layer of the Feeds backend.
// It uses the Huma framework on a chi router for OpenAPI generation
// and request validation.
//
// # Layout
//
//   - server.go: router, CORS, logging and rate limit middleware
//   - handlers/: one handler per route group (extract, proxy, sync, sources)
//   - dto/: wire types and mappers to the domain model
//   - middleware/: request IDs, request logging, per-IP token buckets
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Errors
//
// Errors are flat JSON objects rather than RFC 7807 problems:
//
//	{"error": "Missing url parameter"}
//
// The extraction route adds "success": false so clients can treat every
// /extract body the same way. Extraction failures for a valid URL are not
// errors: they come back with status 200 and the reason in "error".
//
// Requests rejected before a handler runs, such as a body that is not valid
// JSON or fails schema validation, also get a flat body with "success": false
// and the parser's detail appended to "error".
package api
