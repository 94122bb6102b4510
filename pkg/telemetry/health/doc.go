// Package health implements liveness and readiness probes. Components
// register check functions with a Checker; the readiness endpoint runs them
// all concurrently and reports 503 when any component is unhealthy.
package health
