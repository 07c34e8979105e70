// Package server implements the dockhand daemon.
//
// The daemon listens on a Unix domain socket for JSON-encoded commands
// from the dockhand CLI. Each connection carries a single request-response
// exchange: the client sends a newline-delimited JSON envelope, the
// server dispatches the command, and writes the result back before
// closing the connection.
//
// Supported commands include building app images, deploying them, managing
// images and containers, querying daemon status, and initiating shutdown.
// Build commands are delegated to the build package and deploy commands to
// the deploy package, both of which use the runtime package for container
// operations against containerd.
//
// Example usage:
//
//	cfg, err := internal.LoadConfig()
//	if err != nil {
//	    return err
//	}
//
//	srv, err := server.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	srv.Wait()
package server
