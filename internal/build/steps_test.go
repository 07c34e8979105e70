package build

import (
	"strings"
	"testing"
)

func TestAptCommand(t *testing.T) {
	cmd := aptCommand([]string{"ffmpeg", "libpq-dev"})

	if !strings.HasPrefix(cmd, "apt-get update && apt-get install -y --no-install-recommends") {
		t.Fatalf("cmd = %q, missing update-then-install prefix", cmd)
	}
	if !strings.Contains(cmd, " ffmpeg libpq-dev ") {
		t.Fatalf("cmd = %q, packages not in declared order", cmd)
	}
	if !strings.HasSuffix(cmd, "rm -rf /var/lib/apt/lists/*") {
		t.Fatalf("cmd = %q, missing apt list cleanup", cmd)
	}
}

func TestPackagesCommand(t *testing.T) {
	if got := packagesCommand("", []string{"ffmpeg"}); got != aptCommand([]string{"ffmpeg"}) {
		t.Fatalf("empty template should use the apt default, got %q", got)
	}

	got := packagesCommand("apk add --no-cache {packages}", []string{"ffmpeg", "postgresql-client"})
	want := "apk add --no-cache ffmpeg postgresql-client"
	if got != want {
		t.Fatalf("packagesCommand = %q, want %q", got, want)
	}
}

func TestRenderInstall(t *testing.T) {
	tests := []struct {
		name     string
		install  string
		manifest string
		want     string
	}{
		{
			name:     "default pip command",
			install:  "pip install --no-cache-dir -r {manifest}",
			manifest: "requirements.txt",
			want:     "pip install --no-cache-dir -r requirements.txt",
		},
		{
			name:     "no placeholder",
			install:  "poetry install",
			manifest: "pyproject.toml",
			want:     "poetry install",
		},
		{
			name:     "placeholder twice",
			install:  "cat {manifest} && pip install -r {manifest}",
			manifest: "reqs.txt",
			want:     "cat reqs.txt && pip install -r reqs.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderInstall(tt.install, tt.manifest); got != tt.want {
				t.Fatalf("renderInstall = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheLabel(t *testing.T) {
	if cacheLabel(true) != "hit" || cacheLabel(false) != "miss" {
		t.Fatal("cacheLabel mismatch")
	}
}
