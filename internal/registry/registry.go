package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/opencontainers/go-digest"
)

// Resolves base image references to OCI archives on disk.
//
// Registry references are pulled once and cached under the store directory,
// keyed by the image digest, so rebuilding against an unchanged base tag
// never re-downloads it. Local archive paths pass through untouched.
type Store struct {
	dir string // Directory holding pulled image archives.
}

// Creates a store rooted at the given directory.
//
// The directory is created lazily on the first pull.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Resolves a base reference to a local archive path and its content digest.
//
// A reference ending in .tar is treated as a local archive and digested
// directly. Anything else is parsed as a registry reference, its digest is
// fetched, and the image is pulled into the store unless an archive for that
// digest already exists. The returned digest feeds the build cache key, so
// it must identify the exact image content.
func (s *Store) Resolve(ctx context.Context, ref string) (string, digest.Digest, error) {
	if isLocalArchive(ref) {
		dgst, err := fileDigest(ref)
		if err != nil {
			return "", "", fmt.Errorf("%w: %s: %w", ErrResolve, ref, err)
		}
		return ref, dgst, nil
	}

	parsed, err := name.ParseReference(ref)
	if err != nil {
		return "", "", fmt.Errorf("%w: parse %s: %w", ErrResolve, ref, err)
	}

	img, err := remote.Image(parsed,
		remote.WithContext(ctx),
		remote.WithPlatform(v1.Platform{OS: "linux", Architecture: goruntime.GOARCH}),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: fetch %s: %w", ErrResolve, ref, err)
	}

	h, err := img.Digest()
	if err != nil {
		return "", "", fmt.Errorf("%w: digest %s: %w", ErrResolve, ref, err)
	}
	dgst := digest.Digest(h.String())

	path := s.archivePath(h)
	if _, err := os.Stat(path); err == nil {
		slog.Debug("base image cached", "ref", ref, "digest", dgst)
		return path, dgst, nil
	}

	if err := s.pull(parsed, img, path); err != nil {
		return "", "", fmt.Errorf("%w: pull %s: %w", ErrResolve, ref, err)
	}

	slog.Info("base image pulled", "ref", ref, "digest", dgst)
	return path, dgst, nil
}

// Writes the image to the store as a tar archive.
//
// The archive is written to a temporary file and renamed into place, so a
// failed pull never leaves a truncated archive behind for the digest key.
func (s *Store) pull(ref name.Reference, img v1.Image, path string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".pull-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := tarball.WriteToFile(tmpPath, ref, img); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

// Returns the archive path for an image digest.
func (s *Store) archivePath(h v1.Hash) string {
	return filepath.Join(s.dir, h.Algorithm+"-"+h.Hex+".tar")
}

// Reports whether a base reference names a local archive rather than a
// registry image.
func isLocalArchive(ref string) bool {
	return strings.HasSuffix(ref, ".tar")
}

// Computes the sha256 digest of a file's contents.
func fileDigest(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.FromReader(f)
}
