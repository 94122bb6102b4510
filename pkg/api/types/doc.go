// Package types defines the JSON bodies the API returns for error
// conditions. Every error response is tagged with a snake_case "error"
// discriminator so clients can switch on it without inspecting messages.
package types
