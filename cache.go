package pipecache

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// Config wires a Cache to its collaborators. Every field except the
// constant buffer engines and Registry is required.
type Config struct {
	Memory     shader.MemoryManager
	State      state.Source
	Translator shader.Translator
	Generator  Generator
	Builder    Builder
	Queue      Queue

	// GraphicsEngine serves constant buffers to graphics stages and
	// ComputeEngine to compute kernels.
	GraphicsEngine shader.ConstBufferEngine
	ComputeEngine  shader.ConstBufferEngine

	// Registry stores translated programs. A new registry is created when
	// nil. The cache installs itself as the registry's observer.
	Registry *shader.Registry
}

// Cache maps pipeline keys to compiled pipelines, translating and building
// them on first use.
//
// A Cache is owned by the goroutine that records draws and dispatches and is
// not safe for concurrent use.
//
// Usage:
//
//	c, err := pipecache.New(cfg)
//	key := c.CurrentGraphicsKey()
//	p, err := c.GetGraphicsPipeline(&key)
type Cache struct {
	cfg      Config
	opts     options
	registry *shader.Registry
	loader   *shader.Loader

	graphics map[GraphicsKey]*GraphicsPipeline
	compute  map[ComputeKey]*ComputePipeline

	// last is the most recently returned graphics pipeline. It is cleared
	// by removeGraphics.
	last *GraphicsPipeline

	lastShaders [shader.MaxProgram]*shader.Unit

	hits   uint64
	misses uint64
}

// New creates an empty cache.
func New(cfg Config, opts ...Option) (*Cache, error) {
	switch {
	case cfg.Memory == nil:
		return nil, fmt.Errorf("%w: memory manager", ErrMissingCollaborator)
	case cfg.State == nil:
		return nil, fmt.Errorf("%w: state source", ErrMissingCollaborator)
	case cfg.Translator == nil:
		return nil, fmt.Errorf("%w: translator", ErrMissingCollaborator)
	case cfg.Generator == nil:
		return nil, fmt.Errorf("%w: generator", ErrMissingCollaborator)
	case cfg.Builder == nil:
		return nil, fmt.Errorf("%w: builder", ErrMissingCollaborator)
	case cfg.Queue == nil:
		return nil, fmt.Errorf("%w: queue", ErrMissingCollaborator)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = shader.NewRegistry()
	}

	c := &Cache{
		cfg:      cfg,
		opts:     o,
		registry: reg,
		graphics: make(map[GraphicsKey]*GraphicsPipeline),
		compute:  make(map[ComputeKey]*ComputePipeline),
	}
	c.loader = shader.NewLoader(shader.LoaderConfig{
		Memory:           cfg.Memory,
		Translator:       cfg.Translator,
		Registry:         reg,
		Engines:          c.engine,
		Settings:         o.settings,
		MaxProgramLength: o.maxProgramLength,
	})
	reg.SetObserver(c)
	propagateLogger(Logger(), cfg.Generator, cfg.Builder, cfg.Queue)
	return c, nil
}

// engine returns the constant buffer engine serving stage.
func (c *Cache) engine(stage shader.Stage) shader.ConstBufferEngine {
	if stage == shader.StageCompute {
		return c.cfg.ComputeEngine
	}
	return c.cfg.GraphicsEngine
}

// Registry returns the registry holding translated programs.
func (c *Cache) Registry() *shader.Registry {
	return c.registry
}

// resolve returns the unit for the program at addr, translating it on first
// use.
func (c *Cache) resolve(stage shader.Stage, addr shader.GPUAddr, isCompute bool, mainOffset uint32) (*shader.Unit, error) {
	host := c.cfg.Memory.HostPointer(addr)
	if u, ok := c.registry.TryGet(host); ok {
		return u, nil
	}
	cpu, ok := c.cfg.Memory.GPUToCPUAddress(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %s program at 0x%X", ErrUnmappedAddress, stage, uint64(addr))
	}
	return c.loader.GetOrCreate(stage, addr, cpu, host, isCompute, mainOffset)
}

// GetShaders resolves the program of every enabled slot, translating
// programs seen for the first time. Disabled slots are nil. The result is
// remembered as the last shader set.
func (c *Cache) GetShaders() ([shader.MaxProgram]*shader.Unit, error) {
	var units [shader.MaxProgram]*shader.Unit
	for p := range shader.Program(shader.MaxProgram) {
		if !c.cfg.State.ProgramEnabled(p) {
			continue
		}
		u, err := c.resolve(p.Stage(), c.cfg.State.ProgramAddress(p), false, c.opts.graphicsMainOffset)
		if err != nil {
			return units, fmt.Errorf("%s program: %w", p, err)
		}
		units[p] = u
	}
	c.lastShaders = units
	return units, nil
}

// LastShaders returns the shader set of the last GetShaders call. Slots
// whose unit has since been unregistered are nil.
func (c *Cache) LastShaders() [shader.MaxProgram]*shader.Unit {
	return c.lastShaders
}

// CurrentGraphicsKey builds the key of the next draw from the state source.
func (c *Cache) CurrentGraphicsKey() GraphicsKey {
	var key GraphicsKey
	for p := range shader.Program(shader.MaxProgram) {
		if c.cfg.State.ProgramEnabled(p) {
			key.SetProgram(p, c.cfg.State.ProgramAddress(p))
		}
	}
	key.FixedState = c.cfg.State.FixedState()
	return key
}

// GetGraphicsPipeline returns the pipeline for key, building it on a miss.
// A failed build leaves no entry behind.
func (c *Cache) GetGraphicsPipeline(key *GraphicsKey) (*GraphicsPipeline, error) {
	if c.last != nil && c.last.key == *key {
		c.hits++
		return c.last, nil
	}
	if p, ok := c.graphics[*key]; ok {
		c.hits++
		c.last = p
		return p, nil
	}

	c.misses++
	hash := key.Hash()
	Logger().Info("compile graphics pipeline", "hash", fmt.Sprintf("0x%016X", hash))

	p, err := c.buildGraphics(key, hash)
	if err != nil {
		return nil, err
	}
	c.graphics[*key] = p
	c.last = p
	return p, nil
}

// GetComputePipeline returns the pipeline for key, building it on a miss.
func (c *Cache) GetComputePipeline(key *ComputeKey) (*ComputePipeline, error) {
	if p, ok := c.compute[*key]; ok {
		c.hits++
		return p, nil
	}

	c.misses++
	hash := key.Hash()
	Logger().Info("compile compute pipeline", "hash", fmt.Sprintf("0x%016X", hash))

	p, err := c.buildCompute(key, hash)
	if err != nil {
		return nil, err
	}
	c.compute[*key] = p
	return p, nil
}

// OnUnregister removes every pipeline using u. The GPU queue is finished
// once before the first removal; when that fails nothing is removed and u
// stays registered.
func (c *Cache) OnUnregister(u *shader.Unit) error {
	addr := u.GPUAddr()

	var graphics []GraphicsKey
	for key := range c.graphics {
		if key.References(addr) {
			graphics = append(graphics, key)
		}
	}
	var compute []ComputeKey
	for key := range c.compute {
		if key.Shader == addr {
			compute = append(compute, key)
		}
	}

	if len(graphics)+len(compute) > 0 {
		if err := c.cfg.Queue.Finish(); err != nil {
			return fmt.Errorf("%w: invalidate %s program at 0x%X: %w", ErrFinish, u.Stage(), uint64(addr), err)
		}
	}
	for i := range graphics {
		c.removeGraphics(&graphics[i])
	}
	for i := range compute {
		c.removeCompute(&compute[i])
	}

	for i, s := range c.lastShaders {
		if s == u {
			c.lastShaders[i] = nil
		}
	}

	if n := len(graphics) + len(compute); n > 0 {
		Logger().Info("invalidate shader",
			"stage", u.Stage().String(),
			"addr", fmt.Sprintf("0x%X", uint64(addr)),
			"graphics", len(graphics),
			"compute", len(compute))
	}
	return nil
}

// removeGraphics is the only path that deletes graphics entries.
func (c *Cache) removeGraphics(key *GraphicsKey) {
	p, ok := c.graphics[*key]
	if !ok {
		return
	}
	delete(c.graphics, *key)
	if c.last == p {
		c.last = nil
	}
	p.object.Destroy()
}

func (c *Cache) removeCompute(key *ComputeKey) {
	p, ok := c.compute[*key]
	if !ok {
		return
	}
	delete(c.compute, *key)
	p.object.Destroy()
}

// Unregister removes u from the registry together with every pipeline that
// uses it.
func (c *Cache) Unregister(u *shader.Unit) error {
	return c.registry.Unregister(u)
}

// InvalidateRegion unregisters every program overlapping the CPU range
// [addr, addr+size) and removes the pipelines that use them. It returns the
// number of programs removed.
func (c *Cache) InvalidateRegion(addr shader.CPUAddr, size uint64) (int, error) {
	return c.registry.InvalidateRegion(addr, size)
}

// Stats returns the cache hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// HitRate returns the fraction of lookups served from the cache, or zero
// before the first lookup.
func (c *Cache) HitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

// GraphicsPipelineCount returns the number of cached graphics pipelines.
func (c *Cache) GraphicsPipelineCount() int {
	return len(c.graphics)
}

// ComputePipelineCount returns the number of cached compute pipelines.
func (c *Cache) ComputePipelineCount() int {
	return len(c.compute)
}

// Destroy finishes the GPU queue and releases every cached pipeline. The
// registry keeps its programs. The cache may be reused afterwards.
func (c *Cache) Destroy() error {
	if len(c.graphics)+len(c.compute) == 0 {
		return nil
	}
	if err := c.cfg.Queue.Finish(); err != nil {
		return fmt.Errorf("%w: destroy: %w", ErrFinish, err)
	}
	for key := range c.graphics {
		c.removeGraphics(&key)
	}
	for key := range c.compute {
		c.removeCompute(&key)
	}
	return nil
}

// logBuildFailure reports a failed build at Warn unless it is a
// precondition violation the caller already gets as an error.
func logBuildFailure(kind string, hash uint64, err error) {
	if errors.Is(err, ErrUnmappedAddress) || errors.Is(err, ErrPointSizeZero) {
		return
	}
	Logger().Warn("pipeline build failed",
		slog.String("kind", kind),
		slog.String("hash", fmt.Sprintf("0x%016X", hash)),
		slog.Any("err", err))
}
