// Package deploy launches built application images as containers.
//
// A deployment enforces the two-phase startup contract baked into every app
// image: the release command (typically a schema migration) runs to
// completion first, and the server only starts when it exits zero. A failed
// release destroys the container and surfaces the exit code, so a broken
// migration never leaves a half-started app behind.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "dockhand")
//	if err != nil {
//		return err
//	}
//	defer rt.Close()
//
//	result, err := deploy.Run(ctx, rt, deploy.Options{App: app})
//	if err != nil {
//		return err
//	}
//	slog.Info("app running", "container", result.Container, "port", result.Port)
package deploy
