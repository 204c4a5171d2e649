package native

import "errors"

var (
	// ErrNilDevice is returned when a builder or queue has no HAL device.
	ErrNilDevice = errors.New("native: HAL device is nil")

	// ErrNilQueue is returned when a queue has no HAL queue.
	ErrNilQueue = errors.New("native: HAL queue is nil")

	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("native: provider does not expose HAL device and queue")

	// ErrNilModule is returned when a translated program carries no IR module.
	ErrNilModule = errors.New("native: program has no IR module")

	// ErrNoEntryPoint is returned when an IR module declares no entry point.
	ErrNoEntryPoint = errors.New("native: IR module has no entry point")

	// ErrPreludeUnsupported is returned for merged VertexA/VertexB programs.
	ErrPreludeUnsupported = errors.New("native: vertex prelude programs are not supported")

	// ErrStageUnsupported is returned for stages the HAL pipeline cannot
	// express (tessellation and geometry).
	ErrStageUnsupported = errors.New("native: shader stage not supported")

	// ErrNoVertexStage is returned for a graphics pipeline without a vertex
	// program.
	ErrNoVertexStage = errors.New("native: graphics pipeline has no vertex program")

	// ErrSpecializationUnsupported is returned for pipeline specialization
	// the SPIR-V generator cannot express.
	ErrSpecializationUnsupported = errors.New("native: specialization not supported")

	// ErrEmptyCode is returned for a backend program with no SPIR-V words.
	ErrEmptyCode = errors.New("native: empty SPIR-V code")
)
