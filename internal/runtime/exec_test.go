package runtime

import (
	"slices"
	"testing"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name      string
		base      []string
		overrides []string
		want      []string
	}{
		{
			name:      "deploy overrides image setting",
			base:      []string{"DJANGO_SETTINGS_MODULE=core.settings", "PYTHONUNBUFFERED=1"},
			overrides: []string{"DJANGO_SETTINGS_MODULE=core.settings.production"},
			want:      []string{"DJANGO_SETTINGS_MODULE=core.settings.production", "PYTHONUNBUFFERED=1"},
		},
		{
			name:      "override adds a key the image lacks",
			base:      []string{"PATH=/usr/local/bin:/usr/bin"},
			overrides: []string{"PORT=8000"},
			want:      []string{"PATH=/usr/local/bin:/usr/bin", "PORT=8000"},
		},
		{
			name:      "no image environment",
			base:      nil,
			overrides: []string{"GUNICORN_CMD_ARGS=--workers 4"},
			want:      []string{"GUNICORN_CMD_ARGS=--workers 4"},
		},
		{
			name:      "no overrides keeps image environment",
			base:      []string{"PYTHONUNBUFFERED=1"},
			overrides: nil,
			want:      []string{"PYTHONUNBUFFERED=1"},
		},
		{
			name:      "value containing equals survives",
			base:      []string{"DATABASE_URL=postgres://app:s3cret@db/app?sslmode=disable"},
			overrides: nil,
			want:      []string{"DATABASE_URL=postgres://app:s3cret@db/app?sslmode=disable"},
		},
		{
			name:      "entries without equals are dropped",
			base:      []string{"BROKEN", "ALLOWED_HOSTS=*"},
			overrides: []string{"ALSO_BROKEN", "DEBUG=0"},
			want:      []string{"ALLOWED_HOSTS=*", "DEBUG=0"},
		},
		{
			name:      "last override wins for a repeated key",
			base:      []string{"PORT=8000"},
			overrides: []string{"PORT=8080", "PORT=9000"},
			want:      []string{"PORT=9000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeEnv(tt.base, tt.overrides)
			slices.Sort(got)
			slices.Sort(tt.want)

			if !slices.Equal(got, tt.want) {
				t.Errorf("mergeEnv = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextExecID(t *testing.T) {
	a := nextExecID()
	b := nextExecID()
	if a == b {
		t.Fatalf("nextExecID returned duplicate: %q", a)
	}
	if a == "" || b == "" {
		t.Fatal("nextExecID returned empty string")
	}
}
