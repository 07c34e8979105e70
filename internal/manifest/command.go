package manifest

import (
	"slices"
	"strconv"
	"strings"
)

// Address the server binds inside the container.
const BindAddr = "0.0.0.0"

// Expands the serve command's placeholders.
//
// {addr} becomes the given bind address, {port} the declared port, and
// {workers} the configured worker count. Commands without placeholders are
// returned unchanged; dockhand never guesses at server-specific flags.
func (a *App) RenderServe(addr string) string {
	r := strings.NewReplacer(
		"{addr}", addr,
		"{port}", strconv.Itoa(a.Port),
		"{workers}", strconv.Itoa(a.Serve.Workers),
	)
	return r.Replace(a.Serve.Command)
}

// Returns the OCI entrypoint baked into the built image.
//
// The entrypoint encodes the startup ordering contract: the release command
// runs first and the server only starts when it exits zero. The serve
// command replaces the shell via exec so the server is PID 1 and receives
// signals directly.
func (a *App) Entrypoint() []string {
	serve := "exec " + a.RenderServe(BindAddr)

	script := serve
	if a.Release != "" {
		script = a.Release + " && " + serve
	}

	return []string{"/bin/sh", "-c", script}
}

// Returns the image config environment as "key=value" pairs, sorted for
// deterministic image digests.
func (a *App) Environ() []string {
	if len(a.Env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(a.Env))
	for k := range a.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+a.Env[k])
	}
	return env
}
