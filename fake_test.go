package pipecache

import (
	"errors"
	"testing"

	"github.com/gogpu/pipecache/internal/guestmem"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// Guest memory layout used by the tests.
const (
	testGPUBase = shader.GPUAddr(0x10_0000)
	testCPUBase = shader.CPUAddr(0x8000_0000)
	testMemSize = 0x10_0000

	selfBranch = 0xE2400FFFFF07000F
	filler     = 0x5C98078000870001
)

// programWords encodes a program whose first instruction word is id.
func programWords(id uint64, compute bool) []uint64 {
	start := shader.GraphicsMainOffset
	if compute {
		start = 0
	}
	words := make([]uint64, start+4)
	words[start+1] = id
	words[start+2] = filler
	words[start+3] = selfBranch
	return words
}

// fakeTranslator hands out the IR registered for a program's id word.
type fakeTranslator struct {
	irs   map[uint64]*shader.IR
	err   error
	calls int
}

func (f *fakeTranslator) Translate(code []uint64, mainOffset uint32, _ shader.CompilerSettings, _ *shader.UsageRegistry) (*shader.IR, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if int(mainOffset)+1 < len(code) {
		if prog, ok := f.irs[code[mainOffset+1]]; ok {
			return prog, nil
		}
	}
	return &shader.IR{}, nil
}

type generateCall struct {
	stage   shader.Stage
	spec    Specialization
	prelude bool
}

type fakeGenerator struct {
	calls []generateCall
	err   error
}

func (g *fakeGenerator) Generate(prog *StageProgram, spec Specialization) (*BackendProgram, error) {
	g.calls = append(g.calls, generateCall{stage: prog.Stage, spec: spec, prelude: prog.Prelude != nil})
	if g.err != nil {
		return nil, g.err
	}
	return &BackendProgram{Stage: prog.Stage, EntryPoint: "main", Code: []uint32{0x07230203}}, nil
}

type fakePipeline struct {
	id        int
	destroyed bool
}

func (p *fakePipeline) Destroy() { p.destroyed = true }

type fakeBuilder struct {
	graphics []*GraphicsDescriptor
	compute  []*ComputeDescriptor
	built    []*fakePipeline
	err      error
}

func (b *fakeBuilder) BuildGraphicsPipeline(desc *GraphicsDescriptor) (PipelineObject, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.graphics = append(b.graphics, desc)
	return b.newPipeline(), nil
}

func (b *fakeBuilder) BuildComputePipeline(desc *ComputeDescriptor) (PipelineObject, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.compute = append(b.compute, desc)
	return b.newPipeline(), nil
}

func (b *fakeBuilder) newPipeline() *fakePipeline {
	p := &fakePipeline{id: len(b.built)}
	b.built = append(b.built, p)
	return p
}

type fakeQueue struct {
	finishes int
	err      error
}

func (q *fakeQueue) Finish() error {
	q.finishes++
	return q.err
}

var errFake = errors.New("fake failure")

// fixture is a cache wired to fakes over a guest memory image.
type fixture struct {
	cache *Cache
	mem   *guestmem.Memory
	regs  *state.Static
	tr    *fakeTranslator
	gen   *fakeGenerator
	build *fakeBuilder
	queue *fakeQueue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mem:   guestmem.New(),
		regs:  &state.Static{State: state.Default()},
		tr:    &fakeTranslator{irs: make(map[uint64]*shader.IR)},
		gen:   &fakeGenerator{},
		build: &fakeBuilder{},
		queue: &fakeQueue{},
	}
	f.mem.Map(testGPUBase, testCPUBase, testMemSize)

	c, err := New(Config{
		Memory:     f.mem,
		State:      f.regs,
		Translator: f.tr,
		Generator:  f.gen,
		Builder:    f.build,
		Queue:      f.queue,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.cache = c
	return f
}

// writeProgram stores a program at testGPUBase+offset with the given id and
// manifest.
func (f *fixture) writeProgram(t *testing.T, offset uint64, id uint64, compute bool, prog *shader.IR) shader.GPUAddr {
	t.Helper()
	addr := testGPUBase + shader.GPUAddr(offset)
	if err := f.mem.WriteWords(addr, programWords(id, compute)); err != nil {
		t.Fatalf("WriteWords: %v", err)
	}
	if prog != nil {
		f.tr.irs[id] = prog
	}
	return addr
}

// bindVSFS writes a vertex and a fragment program and binds them.
func (f *fixture) bindVSFS(t *testing.T) (vs, fs shader.GPUAddr) {
	t.Helper()
	vs = f.writeProgram(t, 0x1000, 1, false, nil)
	fs = f.writeProgram(t, 0x2000, 2, false, nil)
	f.regs.Bind(shader.ProgramVertexB, vs)
	f.regs.Bind(shader.ProgramFragment, fs)
	return vs, fs
}
