package manifest

import "errors"

var (
	ErrManifest     = errors.New("invalid app manifest")
	ErrRequirements = errors.New("invalid dependency manifest")
)
