// Command pipecachedemo drives a pipeline cache through a few frames of
// draws and dispatches on a noop GPU device, rewriting guest programs
// between frames to show invalidation.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/pipecache"
	"github.com/gogpu/pipecache/backend/native"
	"github.com/gogpu/pipecache/internal/guestmem"
	"github.com/gogpu/pipecache/internal/wgsltr"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

const (
	gpuBase = shader.GPUAddr(0x1_0000_0000)
	cpuBase = shader.CPUAddr(0x7F00_0000_0000)
	memSize = 0x10_0000

	vertexAddr   = gpuBase + 0x1000
	fragmentAddr = gpuBase + 0x2000
	computeAddr  = gpuBase + 0x3000
)

func main() {
	var (
		frames  = flag.Int("frames", 4, "number of frames to record")
		rewrite = flag.Int("rewrite", 2, "rewrite the fragment program every N frames (0 disables)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	pipecache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		log.Fatalf("create instance: %v", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		log.Fatal("no adapters")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		log.Fatalf("open device: %v", err)
	}
	defer dev.Device.Destroy()

	mem := guestmem.New()
	mem.Map(gpuBase, cpuBase, memSize)
	lib := newLibrary()

	regs := &state.Static{State: state.Default()}
	regs.State.DepthStencil.Format = gputypes.TextureFormatDepth24PlusStencil8
	regs.State.DepthStencil.DepthTestEnable = true
	regs.State.VertexInput.Bindings[0] = state.VertexBinding{
		Enabled:  true,
		Stride:   8,
		StepMode: gputypes.VertexStepModeVertex,
	}
	regs.State.VertexInput.Attributes[0] = state.Attribute{
		Enabled: true,
		Type:    state.AttributeFloat,
		Format:  gputypes.VertexFormatFloat32x2,
	}

	writeProgram(mem, vertexAddr, idVertex, false)
	writeProgram(mem, fragmentAddr, idFragmentRed, false)
	writeProgram(mem, computeAddr, idCompute, true)
	regs.Bind(shader.ProgramVertexB, vertexAddr)
	regs.Bind(shader.ProgramFragment, fragmentAddr)

	cache, err := pipecache.New(pipecache.Config{
		Memory:     mem,
		State:      regs,
		Translator: lib,
		Generator:  native.NewGenerator(native.WithValidation(true)),
		Builder:    native.NewBuilder(dev.Device),
		Queue:      native.NewQueue(dev.Device, dev.Queue),
	})
	if err != nil {
		log.Fatalf("create cache: %v", err)
	}
	mem.OnWrite(func(addr shader.CPUAddr, size uint64) {
		n, err := cache.InvalidateRegion(addr, size)
		if err != nil {
			log.Printf("invalidate 0x%X+%d: %v", uint64(addr), size, err)
			return
		}
		log.Printf("guest write at 0x%X invalidated %d program(s)", uint64(addr), n)
	})

	fragment := idFragmentRed
	for frame := 0; frame < *frames; frame++ {
		if *rewrite > 0 && frame > 0 && frame%*rewrite == 0 {
			fragment = nextFragment(fragment)
			writeProgram(mem, fragmentAddr, fragment, false)
		}

		// Alternate the cull state so the cache holds two variants.
		regs.State.Rasterizer.CullEnable = frame%2 == 1
		regs.State.Rasterizer.CullFace = gputypes.CullModeBack

		key := cache.CurrentGraphicsKey()
		gp, err := cache.GetGraphicsPipeline(&key)
		if err != nil {
			log.Fatalf("frame %d: graphics pipeline: %v", frame, err)
		}
		cp, err := cache.GetComputePipeline(&pipecache.ComputeKey{
			Shader:        computeAddr,
			WorkgroupSize: [3]uint32{64, 1, 1},
		})
		if err != nil {
			log.Fatalf("frame %d: compute pipeline: %v", frame, err)
		}
		log.Printf("frame %d: graphics 0x%016X (%d bindings), compute 0x%016X",
			frame, gp.Hash(), len(gp.Layout().Bindings), cp.Hash())
	}

	hits, misses := cache.Stats()
	log.Printf("graphics=%d compute=%d hits=%d misses=%d hit rate=%.2f lowered=%d",
		cache.GraphicsPipelineCount(), cache.ComputePipelineCount(),
		hits, misses, cache.HitRate(), lib.Lowered())

	if err := cache.Destroy(); err != nil {
		log.Fatalf("destroy cache: %v", err)
	}
}

func writeProgram(mem *guestmem.Memory, addr shader.GPUAddr, id uint64, compute bool) {
	if err := mem.WriteWords(addr, wgsltr.Words(id, compute)); err != nil {
		log.Fatalf("write program 0x%X: %v", uint64(addr), err)
	}
}
