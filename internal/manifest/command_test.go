package manifest

import (
	"slices"
	"testing"
)

func TestRenderServe(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{
			"all placeholders",
			"gunicorn core.wsgi --bind {addr}:{port} --workers {workers}",
			"gunicorn core.wsgi --bind 0.0.0.0:8000 --workers 4",
		},
		{
			"no placeholders",
			"python manage.py runserver",
			"python manage.py runserver",
		},
		{
			"repeated placeholder",
			"serve --host {addr} --admin-host {addr}",
			"serve --host 0.0.0.0 --admin-host 0.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := App{
				Port:  DefaultPort,
				Serve: Serve{Command: tt.command, Workers: DefaultWorkers},
			}
			if got := app.RenderServe(BindAddr); got != tt.want {
				t.Errorf("RenderServe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntrypointWithRelease(t *testing.T) {
	app := App{
		Port:    8000,
		Release: "python manage.py migrate",
		Serve:   Serve{Command: "gunicorn core.wsgi --bind {addr}:{port}", Workers: 4},
	}

	got := app.Entrypoint()
	want := []string{
		"/bin/sh", "-c",
		"python manage.py migrate && exec gunicorn core.wsgi --bind 0.0.0.0:8000",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Entrypoint = %q, want %q", got, want)
	}
}

func TestEntrypointWithoutRelease(t *testing.T) {
	app := App{
		Port:  8000,
		Serve: Serve{Command: "gunicorn core.wsgi", Workers: 4},
	}

	got := app.Entrypoint()
	want := []string{"/bin/sh", "-c", "exec gunicorn core.wsgi"}
	if !slices.Equal(got, want) {
		t.Errorf("Entrypoint = %q, want %q", got, want)
	}
}

func TestEnviron(t *testing.T) {
	app := App{Env: map[string]string{
		"DJANGO_SETTINGS_MODULE": "core.settings",
		"ALLOWED_HOSTS":          "*",
		"SECRET_KEY":             "dev",
	}}

	got := app.Environ()
	want := []string{
		"ALLOWED_HOSTS=*",
		"DJANGO_SETTINGS_MODULE=core.settings",
		"SECRET_KEY=dev",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Environ = %q, want %q", got, want)
	}
}

func TestEnvironEmpty(t *testing.T) {
	var app App
	if got := app.Environ(); got != nil {
		t.Errorf("Environ = %v, want nil", got)
	}
}
