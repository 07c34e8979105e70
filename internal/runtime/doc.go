// Package runtime manages build and app containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides image import,
// registry-free tagged starts, and container creation. OCI archives are
// imported into the content store, tagged, unpacked for the host platform,
// and used to create containers with overlayfs snapshots.
//
// Each [Container] wraps a running containerd task. Commands can be executed
// inside the container, files can be copied in as tar streams, and the
// filesystem state can be committed as a new tagged image, which is the
// mechanism behind both the dependency-layer cache and the final app image.
// Tagged images can be exported as OCI archives.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "dockhand")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartContainer(ctx, "base.tar", "quizhub-build")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "apt-get install -y ffmpeg", nil, "")
//	if err != nil {
//	    return err
//	}
//
//	if err := ctr.Commit(ctx, "app/quizhub:latest", nil); err != nil {
//	    return err
//	}
package runtime
