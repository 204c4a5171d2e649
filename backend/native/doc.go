// Package native builds pipecache pipelines on a gogpu/wgpu HAL device.
//
// It provides the three backend collaborators a [pipecache.Cache] needs:
//
//   - [Generator] lowers translated programs to SPIR-V with gogpu/naga
//   - [Builder] creates shader modules, layouts and pipelines on a hal.Device
//   - [Queue] waits for the device queue to drain before pipelines are freed
//
// Example:
//
//	dev, queue, err := native.FromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	cache, err := pipecache.New(pipecache.Config{
//	    Generator: native.NewGenerator(),
//	    Builder:   native.NewBuilder(dev),
//	    Queue:     native.NewQueue(dev, queue),
//	    // ...
//	})
package native
