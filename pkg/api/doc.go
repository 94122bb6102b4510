// Package api implements the HTTP handlers for the feed API.
//
// GET /v1/events is the main surface: the handler validates the query
// parameters it has opinions about, forwards the full query to the upstream
// Eventually API, parses every returned event description into its typed
// form, and responds with a flat JSON array. Parameters the handler does not
// recognize pass through to the upstream unchanged, so the upstream's full
// filter language (season, day, playerTags, ...) keeps working.
//
// GET /v1/ingest/status exposes the background ingest task's progress.
package api
