// Package fed turns raw feed events into strongly typed fed events.
//
// The feed stores almost all of an event's structure in its display text, so
// the core of this package is a parser for event descriptions. Parsed events
// serialize as flat JSON objects: the common fields plus a "type"
// discriminator and the payload's fields at top level.
package fed
