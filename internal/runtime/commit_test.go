package runtime

import (
	"fmt"
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestApplyMutation(t *testing.T) {
	config := ocispec.Image{}
	config.Config.Cmd = []string{"python3"}
	config.Config.Env = []string{"PATH=/usr/bin"}

	applyMutation(&config, &ImageMutation{
		Entrypoint:  []string{"/bin/sh", "-c", "exec gunicorn"},
		Env:         []string{"DJANGO_SETTINGS_MODULE=core.settings"},
		ExposedPort: 8000,
		WorkingDir:  "/app",
	})

	if len(config.Config.Entrypoint) != 3 {
		t.Fatalf("entrypoint = %v, want 3 elements", config.Config.Entrypoint)
	}
	if config.Config.Cmd != nil {
		t.Fatalf("cmd = %v, want nil after entrypoint override", config.Config.Cmd)
	}
	if len(config.Config.Env) != 2 {
		t.Fatalf("env = %v, want base plus override", config.Config.Env)
	}
	if _, ok := config.Config.ExposedPorts["8000/tcp"]; !ok {
		t.Fatalf("exposed ports = %v, want 8000/tcp", config.Config.ExposedPorts)
	}
	if config.Config.WorkingDir != "/app" {
		t.Fatalf("workdir = %q, want /app", config.Config.WorkingDir)
	}
}

func TestApplyMutationNil(t *testing.T) {
	config := ocispec.Image{}
	config.Config.Cmd = []string{"python3"}

	applyMutation(&config, nil)

	if config.Config.Cmd == nil || config.Config.Cmd[0] != "python3" {
		t.Fatal("nil mutation modified the config")
	}
	if config.Config.ExposedPorts != nil {
		t.Fatal("nil mutation set exposed ports")
	}
}

func TestApplyMutationPortOnly(t *testing.T) {
	config := ocispec.Image{}
	config.Config.Cmd = []string{"python3"}

	applyMutation(&config, &ImageMutation{ExposedPort: 9000})

	if config.Config.Cmd == nil {
		t.Fatal("port-only mutation cleared cmd")
	}
	if _, ok := config.Config.ExposedPorts["9000/tcp"]; !ok {
		t.Fatalf("exposed ports = %v, want 9000/tcp", config.Config.ExposedPorts)
	}
}

func TestManifestGCLabels(t *testing.T) {
	m := ocispec.Manifest{
		Config: ocispec.Descriptor{
			Digest: digest.FromString("config"),
		},
		Layers: []ocispec.Descriptor{
			{Digest: digest.FromString("layer0")},
			{Digest: digest.FromString("layer1")},
		},
	}

	labels := manifestGCLabels(m)

	if got := labels["containerd.io/gc.ref.content.config"]; got != m.Config.Digest.String() {
		t.Fatalf("config label = %q, want %q", got, m.Config.Digest.String())
	}

	for i, layer := range m.Layers {
		key := fmt.Sprintf("containerd.io/gc.ref.content.l.%d", i)
		if got := labels[key]; got != layer.Digest.String() {
			t.Fatalf("labels[%q] = %q, want %q", key, got, layer.Digest.String())
		}
	}

	if len(labels) != 3 {
		t.Fatalf("len(labels) = %d, want 3", len(labels))
	}
}

func TestIndexGCLabels(t *testing.T) {
	idx := ocispec.Index{
		Manifests: []ocispec.Descriptor{
			{Digest: digest.FromString("m0")},
			{Digest: digest.FromString("m1")},
		},
	}

	labels := indexGCLabels(idx)
	if len(labels) != 2 {
		t.Fatalf("len(labels) = %d, want 2", len(labels))
	}
	if labels["containerd.io/gc.ref.content.m.0"] != idx.Manifests[0].Digest.String() {
		t.Fatal("manifest 0 label mismatch")
	}
	if labels["containerd.io/gc.ref.content.m.1"] != idx.Manifests[1].Digest.String() {
		t.Fatal("manifest 1 label mismatch")
	}
}
