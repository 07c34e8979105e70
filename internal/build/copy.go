package build

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Copies a host directory tree into the container at dest.
//
// The tree is streamed as a tar archive rooted at the final path element of
// dest and extracted in dest's parent, so the destination directory is
// created by the extraction itself.
func copyHostDir(ctx context.Context, ctr Container, src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source %s is not a directory", ErrCopy, src)
	}

	if err := ctr.MkdirAll(ctx, filepath.Dir(dest)); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	pr, pw := io.Pipe()

	go func() {
		tw := tar.NewWriter(pw)
		writeErr := writeDirToTar(tw, src, filepath.Base(dest))
		tw.Close()
		pw.CloseWithError(writeErr)
	}()

	if err := ctr.CopyTo(ctx, pr, filepath.Dir(dest)); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	return nil
}

// Copies an in-memory file into a container directory.
//
// Used for the dependency manifest, which is already held in memory from
// validation. The file lands as destDir/name with the default file mode.
func copyBytes(ctx context.Context, ctr Container, data []byte, name, destDir string) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	header := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	if err := ctr.CopyTo(ctx, &buf, destDir); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	return nil
}

// Writes a directory tree to a tar writer rooted at the given archive
// prefix.
func writeDirToTar(tw *tar.Writer, hostDir, prefix string) error {
	return filepath.WalkDir(hostDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(hostDir, path)
		if err != nil {
			return err
		}

		archivePath := filepath.ToSlash(filepath.Join(prefix, relPath))
		return writeTarEntry(tw, path, archivePath, d)
	})
}

// Writes a single file or directory entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = archivePath

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(hostPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	}

	return nil
}
