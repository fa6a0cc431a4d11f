//go:build !nogpu

package gpuprobe

import (
	"fmt"
	"sync"

	"github.com/0202alcc/luvatrix-sub001/display"
	"github.com/0202alcc/luvatrix-sub001/engine"
)

// gpuBackend is the display backend registered when an adapter is
// present. Presentation to an actual swapchain belongs to the embedding
// application; the backend validates and retains frames like the
// software path while advertising the GPU capability set.
type gpuBackend struct {
	mu          sync.Mutex
	initialized bool
	adapters    []string
	last        engine.FrameSnapshot
	presented   bool
}

func newGPUBackend(adapters []string) *gpuBackend {
	return &gpuBackend{adapters: adapters}
}

func (b *gpuBackend) Name() string { return display.BackendGPU }

func (b *gpuBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.adapters) == 0 {
		return display.ErrBackendNotAvailable
	}
	b.initialized = true
	return nil
}

func (b *gpuBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	b.presented = false
	b.last = engine.FrameSnapshot{}
}

func (b *gpuBackend) Present(frame engine.FrameSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return display.ErrNotInitialized
	}
	if want := frame.Width * frame.Height * 4; len(frame.Data) != want {
		return fmt.Errorf("display: frame %d has %d bytes, want %d", frame.FrameID, len(frame.Data), want)
	}
	b.last = frame
	b.presented = true
	return nil
}

func (b *gpuBackend) Capabilities() []string {
	return []string{"present", "readback", "rgba255", "gpu"}
}
