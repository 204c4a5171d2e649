package pipecache

import "errors"

// Cache errors.
var (
	// ErrMissingCollaborator is returned by New when a required Config field
	// is nil.
	ErrMissingCollaborator = errors.New("pipecache: missing collaborator")

	// ErrUnmappedAddress is returned when an enabled program's GPU address
	// has no CPU mapping.
	ErrUnmappedAddress = errors.New("pipecache: shader address is not mapped")

	// ErrPointSizeZero is returned when a point list is drawn with a zero
	// fixed point size.
	ErrPointSizeZero = errors.New("pipecache: point topology with zero point size")

	// ErrNoStages is returned when a graphics key enables no program.
	ErrNoStages = errors.New("pipecache: graphics key enables no shader program")

	// ErrGenerate wraps backend code generator failures.
	ErrGenerate = errors.New("pipecache: backend code generation failed")

	// ErrBuild wraps pipeline object construction failures.
	ErrBuild = errors.New("pipecache: pipeline construction failed")

	// ErrFinish wraps GPU queue wait failures.
	ErrFinish = errors.New("pipecache: GPU queue finish failed")
)
