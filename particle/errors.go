package particle

import "errors"

var (
	// ErrSurfaceUnavailable marks an engine running without a render surface
	ErrSurfaceUnavailable = errors.New("particle surface unavailable")
	// ErrUnknownLaw is returned for an unregistered motion law name
	ErrUnknownLaw = errors.New("unknown motion law")
)
