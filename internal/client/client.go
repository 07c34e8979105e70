package client

import (
	"bufio"
	"context"
	"fmt"
	"net"

	"github.com/dockhandhq/dockhand/internal/paths"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Talks to the dockhand daemon over its Unix socket.
//
// Each call opens a fresh connection, performs a single request-response
// exchange, and closes it, mirroring the daemon's one-exchange-per-connection
// protocol.
type Client struct {
	socketPath string
}

// Creates a client for the daemon socket. An empty path uses the default
// runtime socket location.
func New(socketPath string) *Client {
	if socketPath == "" {
		socketPath = paths.Socket()
	}
	return &Client{socketPath: socketPath}
}

// Sends a command and decodes the response payload into T.
//
// An error response from the daemon is returned as an error wrapping
// [ErrDaemon] with the daemon's message.
func Call[T any](ctx context.Context, c *Client, cmd protocol.Command, payload any) (*T, error) {
	raw, err := c.exchange(ctx, cmd, payload)
	if err != nil {
		return nil, err
	}

	result, err := protocol.DecodePayload[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	return result, nil
}

// Performs one request-response exchange and returns the raw OK payload.
func (c *Client) exchange(ctx context.Context, cmd protocol.Command, payload any) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: is the daemon running? %w", ErrConnect, err)
	}
	defer conn.Close()

	// The connection has no deadline of its own; long-running commands
	// (waited deploys in particular) hold it open until the daemon responds.
	// Cancellation closes the connection, failing the pending read.
	stop := closeOnCancel(ctx, conn)
	defer stop()

	data, err := protocol.Encode(cmd, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	data = append(data, byte(10))

	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes(byte(10))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	env, raw, err := protocol.Decode(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	if env.Command == protocol.CmdError {
		msg, err := protocol.DecodePayload[protocol.ErrorResult](raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrDaemon, msg.Message)
	}

	return raw, nil
}

// Closes the connection when the context is cancelled. The returned stop
// function releases the watcher once the exchange is complete.
func closeOnCancel(ctx context.Context, conn net.Conn) func() {
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	return func() { close(done) }
}
