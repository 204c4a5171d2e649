package pipecache

import (
	"testing"

	"github.com/gogpu/pipecache/shader"
)

func TestOptions(t *testing.T) {
	f := newFixture(t)
	c, err := New(Config{
		Memory:     f.mem,
		State:      f.regs,
		Translator: f.tr,
		Generator:  f.gen,
		Builder:    f.build,
		Queue:      f.queue,
	},
		WithCompilerSettings(shader.CompilerSettings{Depth: shader.CompileDepthFlowStack}),
		WithMaxProgramLength(64),
		WithMaxProgramLength(-1),
		WithGraphicsMainOffset(12),
		WithComputeMainOffset(2),
	)
	if err != nil {
		t.Fatal(err)
	}
	if c.opts.settings.Depth != shader.CompileDepthFlowStack {
		t.Errorf("settings = %+v", c.opts.settings)
	}
	if c.opts.maxProgramLength != 64 {
		t.Errorf("maxProgramLength = %d, want 64", c.opts.maxProgramLength)
	}
	if c.opts.graphicsMainOffset != 12 || c.opts.computeMainOffset != 2 {
		t.Errorf("main offsets = %d, %d", c.opts.graphicsMainOffset, c.opts.computeMainOffset)
	}

	d := defaultOptions()
	if d.graphicsMainOffset != shader.GraphicsMainOffset || d.settings != shader.DefaultCompilerSettings() {
		t.Errorf("defaultOptions() = %+v", d)
	}
}
