package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/containerd/containerd/v2/core/images/archive"
	"github.com/containerd/platforms"
)

// Filename of the OCI archive produced by ExportTag.
const exportFilename = "image.tar"

// Writes a tagged image to an OCI archive under the output directory.
//
// The archive contains only the manifest matching the host platform. The
// output directory is created if needed; the archive is written to
// output/image.tar and its full path returned. The file is created only
// after the image exists, so a failed build never leaves a partial archive.
func (rt *Runtime) ExportTag(ctx context.Context, tag, output string) (string, error) {
	p, err := platforms.Parse(defaultPlatform())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	path := filepath.Join(output, exportFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	defer f.Close()

	err = rt.client.Export(ctx, f,
		archive.WithImage(rt.client.ImageService(), tag),
		archive.WithPlatform(platforms.Only(p)),
	)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	slog.Info("image exported", "tag", tag, "path", path)
	return path, nil
}
