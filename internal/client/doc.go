// Package client implements the CLI side of the daemon protocol.
//
// Each command is a single request-response exchange over the daemon's Unix
// socket: the client writes one newline-delimited JSON envelope and reads
// one back. Error envelopes from the daemon surface as errors wrapping
// [ErrDaemon].
//
// Example usage:
//
//	c := client.New("")
//
//	status, err := client.Call[protocol.StatusResult](ctx, c, protocol.CmdStatus, nil)
//	if err != nil {
//		return err
//	}
//	fmt.Println(status.Uptime)
package client
