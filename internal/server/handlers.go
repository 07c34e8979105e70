package server

import (
	"context"
	"log/slog"
	"net"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dockhandhq/dockhand/internal"
	"github.com/dockhandhq/dockhand/internal/build"
	"github.com/dockhandhq/dockhand/internal/deploy"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Handles a build command.
//
// The client ships the validated app manifest inline; the daemon resolves
// the base image and executes the pipeline against the container runtime.
func (s *Server) handleBuild(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.BuildRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}
	if req.App == nil {
		s.failf(conn, "build request missing app manifest")
		return
	}
	if err := req.App.Validate(); err != nil {
		s.fail(conn, err)
		return
	}

	output := req.Output
	if output == "" {
		output = s.output
	}

	result, err := build.Run(ctx, s.runtime, s.store, build.Options{
		App:     req.App,
		Root:    req.Root,
		Output:  output,
		BuildID: requestID(req.ID),
	})
	if err != nil {
		s.fail(conn, err)
		return
	}

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.BuildResult{
		Image:    result.Image,
		Output:   result.Output,
		CacheHit: result.CacheHit,
	})
}

// Handles a deploy command.
//
// For waited deploys the response is not written until the server process
// inside the container has exited, so the connection stays open for the
// lifetime of the app.
func (s *Server) handleDeploy(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.DeployRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}
	if req.App == nil {
		s.failf(conn, "deploy request missing app manifest")
		return
	}
	if err := req.App.Validate(); err != nil {
		s.fail(conn, err)
		return
	}

	result, err := deploy.Run(ctx, s.runtime, deploy.Options{
		App:      req.App,
		DeployID: requestID(req.ID),
		Wait:     req.Wait,
	})
	if err != nil {
		s.fail(conn, err)
		return
	}

	s.mu.Lock()
	s.deploys++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.DeployResult{
		Container:  result.Container,
		Port:       result.Port,
		ServerExit: result.ServerExit,
	})
}

// Handles an image import command.
func (s *Server) handleImageImport(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ImageImportRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	if err := s.runtime.ImportImage(ctx, req.Path, req.Tag); err != nil {
		s.fail(conn, err)
		return
	}

	s.respond(conn, protocol.CmdOK, nil)
}

// Handles an image destroy command.
func (s *Server) handleImageDestroy(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ImageDestroyRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	if err := s.runtime.DestroyImage(ctx, req.Tag); err != nil {
		s.fail(conn, err)
		return
	}

	s.respond(conn, protocol.CmdOK, nil)
}

// Handles a container stop command.
func (s *Server) handleContainerStop(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ContainerStopRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	if err := s.runtime.Container(req.Container).Stop(ctx); err != nil {
		s.fail(conn, err)
		return
	}

	s.respond(conn, protocol.CmdOK, nil)
}

// Handles a container status command.
func (s *Server) handleContainerStatus(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.ContainerStatusRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	state, err := s.runtime.Container(req.Container).Status(ctx)
	if err != nil {
		s.fail(conn, err)
		return
	}

	s.respond(conn, protocol.CmdOK, &protocol.ContainerStatusResult{
		Container: req.Container,
		State:     state,
	})
}

// Handles a status command.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	builds := s.builds
	deploys := s.deploys
	s.mu.Unlock()

	uptime := time.Since(s.startedAt).Truncate(time.Second)

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running: true,
		Version: internal.VersionString(),
		Pid:     os.Getpid(),
		Uptime:  uptime.String(),
		Builds:  builds,
		Deploys: deploys,
	})
}

// Handles a shutdown command.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	go func() {
		s.Stop()
	}()
}

// Writes an error response carrying the error message.
func (s *Server) fail(conn net.Conn, err error) {
	s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
}

func (s *Server) failf(conn net.Conn, msg string) {
	s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: msg})
}

// Returns the client-provided correlation ID or generates one.
func requestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
