// Package protocol defines the wire format spoken between the dockhand CLI
// and the daemon.
//
// Each message is a single JSON envelope carrying a command name and a
// command-specific payload. Requests and responses share the framing;
// responses use the ok and error commands. Messages are newline-delimited on
// the socket, so payloads must not contain raw newlines (JSON encoding
// guarantees this).
package protocol
