package pipecache

import (
	"github.com/gogpu/pipecache/internal/fnvhash"
	"github.com/gogpu/pipecache/shader"
	"github.com/gogpu/pipecache/state"
)

// GraphicsKey identifies a graphics pipeline. It is comparable and is used
// directly as a map key.
type GraphicsKey struct {
	// Shaders holds the GPU address of every program slot. Disabled slots
	// hold zero, which is also a valid address; EnableMask tells them apart.
	Shaders [shader.MaxProgram]shader.GPUAddr
	// EnableMask has bit p set when program slot p is enabled.
	EnableMask uint8
	FixedState state.FixedState
}

// SetProgram enables slot p with the program at addr.
func (k *GraphicsKey) SetProgram(p shader.Program, addr shader.GPUAddr) {
	k.Shaders[p] = addr
	k.EnableMask |= 1 << p
}

// References reports whether any enabled program slot of k holds addr.
func (k *GraphicsKey) References(addr shader.GPUAddr) bool {
	for p, a := range k.Shaders {
		if a == addr && k.Enabled(shader.Program(p)) {
			return true
		}
	}
	return false
}

// Enabled reports whether program slot p is enabled in k.
func (k *GraphicsKey) Enabled(p shader.Program) bool {
	return k.EnableMask&(1<<p) != 0
}

// Hash returns an FNV-1a hash of every field of k.
func (k *GraphicsKey) Hash() uint64 {
	h := fnvhash.New()
	for _, addr := range k.Shaders {
		fnvhash.Uint64(h, uint64(addr))
	}
	fnvhash.Uint32(h, uint32(k.EnableMask))
	k.FixedState.WriteHash(h)
	return h.Sum64()
}

// ComputeKey identifies a compute pipeline.
type ComputeKey struct {
	Shader           shader.GPUAddr
	WorkgroupSize    [3]uint32
	SharedMemorySize uint32
}

// Hash returns an FNV-1a hash of every field of k.
func (k *ComputeKey) Hash() uint64 {
	h := fnvhash.New()
	fnvhash.Uint64(h, uint64(k.Shader))
	for _, n := range k.WorkgroupSize {
		fnvhash.Uint32(h, n)
	}
	fnvhash.Uint32(h, k.SharedMemorySize)
	return h.Sum64()
}
