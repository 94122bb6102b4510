// Package config defines the server's configuration structures and handles
// loading them from YAML files and environment variables.
//
// Configuration is loaded in layers: file values first, then defaults for
// anything unset, then FED_SECTION_FIELD environment variable overrides, and
// finally validation. The server also runs with no configuration file at all,
// in which case every field takes its default; container deployments rely on
// this and configure through the environment.
package config
