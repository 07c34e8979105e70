package registry

import "errors"

var ErrResolve = errors.New("base image resolution failed")
