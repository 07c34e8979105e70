package deploy

import "errors"

var (
	// General deployment failure.
	ErrDeploy = errors.New("deployment failed")

	// The app image has not been built.
	ErrImageMissing = errors.New("app image not found")

	// The release command exited non-zero, so the server was never started.
	ErrRelease = errors.New("release command failed")
)
