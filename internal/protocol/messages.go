package protocol

import "github.com/dockhandhq/dockhand/internal/manifest"

// Request to build an application image from a manifest.
//
// The client loads and validates the manifest and ships it inline; Root is
// the directory the manifest was loaded from, used to resolve the dependency
// manifest and source paths on the daemon host.
type BuildRequest struct {
	ID     string        `json:"id"`
	App    *manifest.App `json:"app"`
	Root   string        `json:"root"`
	Output string        `json:"output,omitempty"`
}

// Result of a successful build.
type BuildResult struct {
	Image    string `json:"image"`
	Output   string `json:"output"`
	CacheHit bool   `json:"cache_hit"`
}

// Request to launch a previously built application.
type DeployRequest struct {
	ID   string        `json:"id"`
	App  *manifest.App `json:"app"`
	Wait bool          `json:"wait,omitempty"`
}

// Result of a deploy.
//
// ServerExit is set only for waited deploys, after the server process has
// exited.
type DeployResult struct {
	Container  string `json:"container"`
	Port       int    `json:"port"`
	ServerExit *int   `json:"server_exit,omitempty"`
}

// Request to import an OCI archive under a tag.
type ImageImportRequest struct {
	Path string `json:"path"`
	Tag  string `json:"tag"`
}

// Request to remove an image and its containers.
type ImageDestroyRequest struct {
	Tag string `json:"tag"`
}

// Request to stop a running container.
type ContainerStopRequest struct {
	Container string `json:"container"`
}

// Request for a container's lifecycle state.
type ContainerStatusRequest struct {
	Container string `json:"container"`
}

// Result of a container status query.
type ContainerStatusResult struct {
	Container string         `json:"container"`
	State     ContainerState `json:"state"`
}

// Result of a daemon status query.
type StatusResult struct {
	Running bool   `json:"running"`
	Version string `json:"version"`
	Pid     int    `json:"pid"`
	Uptime  string `json:"uptime"`
	Builds  int    `json:"builds"`
	Deploys int    `json:"deploys"`
}

// Error payload returned with [CmdError].
type ErrorResult struct {
	Message string `json:"message"`
}
