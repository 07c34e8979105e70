package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	v1 "github.com/google/go-containerregistry/pkg/v1"
)

func TestIsLocalArchive(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"python:3.12-slim", false},
		{"ghcr.io/org/app:v1", false},
		{"base.tar", true},
		{"/images/base.tar", true},
		{"./relative/base.tar", true},
	}

	for _, tt := range tests {
		if got := isLocalArchive(tt.ref); got != tt.want {
			t.Errorf("isLocalArchive(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestArchivePath(t *testing.T) {
	s := NewStore("/var/cache/images")
	h := v1.Hash{Algorithm: "sha256", Hex: "abc123"}

	got := s.archivePath(h)
	want := filepath.Join("/var/cache/images", "sha256-abc123.tar")
	if got != want {
		t.Fatalf("archivePath = %q, want %q", got, want)
	}
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.tar")
	if err := os.WriteFile(path, []byte("archive contents"), 0644); err != nil {
		t.Fatal(err)
	}

	dgst, err := fileDigest(path)
	if err != nil {
		t.Fatalf("fileDigest: %v", err)
	}
	if !strings.HasPrefix(string(dgst), "sha256:") {
		t.Fatalf("digest = %q, want sha256 algorithm", dgst)
	}

	again, err := fileDigest(path)
	if err != nil {
		t.Fatalf("fileDigest: %v", err)
	}
	if again != dgst {
		t.Fatal("fileDigest is not deterministic")
	}
}

func TestFileDigestMissing(t *testing.T) {
	if _, err := fileDigest(filepath.Join(t.TempDir(), "missing.tar")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
