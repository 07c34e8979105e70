package client

import "errors"

var (
	// Could not reach the daemon socket.
	ErrConnect = errors.New("failed to connect to daemon")

	// The exchange could not be encoded or decoded.
	ErrProtocol = errors.New("protocol error")

	// The daemon processed the command and reported a failure.
	ErrDaemon = errors.New("daemon error")
)
