//go:build !nogpu

package gpuprobe

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Pull in the Vulkan HAL implementation so GetBackend can find it.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/0202alcc/luvatrix-sub001/display"
)

var (
	probeOnce sync.Once
	adapters  []string
	probeErr  error
)

// probe enumerates Vulkan adapters once per process.
func probe() ([]string, error) {
	probeOnce.Do(func() {
		backend, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			probeErr = fmt.Errorf("gpuprobe: vulkan backend not available")
			return
		}
		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			probeErr = fmt.Errorf("gpuprobe: create instance: %w", err)
			return
		}
		for _, a := range instance.EnumerateAdapters(nil) {
			adapters = append(adapters, a.Info.Name)
		}
		if len(adapters) == 0 {
			probeErr = fmt.Errorf("gpuprobe: no GPU adapters found")
		}
	})
	return adapters, probeErr
}

// Available reports whether at least one GPU adapter was enumerated.
func Available() bool {
	names, err := probe()
	return err == nil && len(names) > 0
}

// Adapters returns the enumerated adapter names, empty when no GPU is
// reachable.
func Adapters() []string {
	names, _ := probe()
	return names
}

// RegisterBackend registers the "gpu" display backend when a GPU is
// available. It reports whether registration happened.
func RegisterBackend() bool {
	if !Available() {
		return false
	}
	display.Register(display.BackendGPU, func() display.Backend {
		return newGPUBackend(Adapters())
	})
	return true
}
