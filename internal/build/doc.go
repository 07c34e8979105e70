// Package build turns an app manifest into a runnable application image.
//
// A build runs as a linear, fail-fast pipeline inside a container started
// from the app's base image: install system packages, install the dependency
// manifest, copy the application source, then commit the result with the
// image metadata (exposed port, environment, and the release-then-serve
// entrypoint) and export it as an OCI archive. Any step failing aborts the
// build; no partial image is produced.
//
// The package-and-dependency layer is cached. Its cache key digests the base
// image, the system package list, the raw dependency manifest, and the
// install command, so a source-only change reuses the cached layer, while
// any change to the dependency manifest rebuilds it. The dependency manifest
// is parsed and validated before any container is started, so a missing or
// corrupt manifest fails the build before the source tree is touched.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, store, build.Options{
//	    App:    app,
//	    Root:   ".",
//	    Output: "dist",
//	})
//	if err != nil {
//	    return err
//	}
package build
