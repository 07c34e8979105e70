// Package manifest defines the app manifest: the declarative description of
// a deployable application image.
//
// A manifest names a base image, the system packages and application
// dependencies to install, the source tree to copy, the service port, and
// the two-phase startup command (release, then serve). The build package
// turns a manifest into an image; the deploy package launches it.
//
// Example manifest (dockhand.yaml):
//
//	app: quizhub
//	base: python:3.12-slim
//	packages: [ffmpeg]
//	dependencies:
//	  manifest: requirements.txt
//	source:
//	  dest: /app
//	port: 8000
//	release: python manage.py migrate --noinput
//	serve:
//	  command: gunicorn core.wsgi:application --bind {addr}:{port} --workers {workers}
//	  workers: 4
package manifest
