// Package eventually contains the schema of the Eventually feed archive API
// and an HTTP client for fetching feed events from it.
//
// Eventually serves raw Blaseball feed events. Events arrive as flat JSON
// objects; related events are linked through metadata (parent, children,
// sibling ids) and the client can reassemble those groups into trees for
// parsing.
package eventually
