// Package feeddump processes offline feed dumps. Its filter splits a raw
// ndjson dump into one file per sim and season, keeping only group parents
// from the feed era, sorted the way the feed presents them. The output is
// what the parser's bulk regression runs consume.
package feeddump
