// Package middleware provides the HTTP middleware chain for the feed API
// server: request IDs, structured request logging, panic recovery, CORS,
// per-request timeouts, and Prometheus request metrics.
//
// The intended order, outermost first:
//
//	recovery -> logging -> requestid -> metrics -> cors -> timeout -> mux
package middleware
