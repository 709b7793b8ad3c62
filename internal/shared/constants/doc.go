// Package constants centralizes defaults shared across the CLI and server.
//
// Request timeouts, body limits and listener defaults live here so cmd/ and
// internal/ agree on them without importing each other.
package constants
