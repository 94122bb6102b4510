// Package ingest walks the upstream feed from the start of the feed era,
// parsing every event it can and caching fetched pages so later passes replay
// from local storage. A pass pages through events in created order; after the
// initial pass completes, catch-up passes run on a cron schedule to pick up
// events published since.
//
// Ingest exists to keep the page cache warm and to surface parser regressions
// early: a grammar the parser cannot handle shows up in the ingest counters
// long before a client asks for the affected events.
package ingest
