package pipecache

import "github.com/gogpu/pipecache/shader"

// Option configures a Cache during creation.
//
// Example:
//
//	c, err := pipecache.New(cfg,
//	    pipecache.WithCompilerSettings(shader.CompilerSettings{
//	        Depth: shader.CompileDepthFlowStack,
//	    }),
//	)
type Option func(*options)

// options holds optional configuration for Cache creation.
type options struct {
	settings           shader.CompilerSettings
	maxProgramLength   int
	graphicsMainOffset uint32
	computeMainOffset  uint32
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		settings:           shader.DefaultCompilerSettings(),
		maxProgramLength:   shader.MaxProgramLength,
		graphicsMainOffset: shader.GraphicsMainOffset,
		computeMainOffset:  0,
	}
}

// WithCompilerSettings sets the settings passed to the translator for every
// program.
func WithCompilerSettings(s shader.CompilerSettings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithMaxProgramLength sets the number of 64-bit words read from guest memory
// for every program before its length is estimated. Non-positive values are
// ignored.
func WithMaxProgramLength(words int) Option {
	return func(o *options) {
		if words > 0 {
			o.maxProgramLength = words
		}
	}
}

// WithGraphicsMainOffset sets the word offset of the first instruction of
// graphics programs passed to the translator.
func WithGraphicsMainOffset(offset uint32) Option {
	return func(o *options) {
		o.graphicsMainOffset = offset
	}
}

// WithComputeMainOffset sets the word offset of the first instruction of
// compute kernels passed to the translator.
func WithComputeMainOffset(offset uint32) Option {
	return func(o *options) {
		o.computeMainOffset = offset
	}
}
