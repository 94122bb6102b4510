// Fed server parses the Blaseball feed into typed events.
//
// It fronts the Eventually events API: GET /v1/events forwards the query
// upstream, parses every returned event description into its structured
// form, and responds with the parsed events as flat JSON objects. A
// background ingest task walks the whole feed to keep the page cache warm
// and to surface parser regressions.
//
// Usage:
//
//	# Start the server with default configuration
//	fed_server
//
//	# Start with a custom configuration file
//	fed_server --config /etc/fed/config.yaml
//
//	# Split a raw feed dump into filtered per-season files
//	fed_server filter --input feed_dump_iso.ndjson --output feed_dump_filtered
//
//	# Show version information
//	fed_server version
package main

func main() {
	Execute()
}
