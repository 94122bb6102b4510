// Package cache stores raw upstream response pages keyed by request URL.
//
// Feed events are immutable once written, so a page that was fetched in full
// never needs to be fetched again. The cache keeps ingest restarts cheap: a
// catch-up run replays cached pages instead of hammering the upstream API.
//
// Two backends are provided: an in-memory store for tests and ephemeral
// deployments, and a SQLite store for persistence across restarts.
package cache
