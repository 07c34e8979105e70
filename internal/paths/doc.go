// Package paths resolves XDG-compliant filesystem locations for dockhand's
// runtime files, configuration, and image store.
package paths
