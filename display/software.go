package display

import (
	"fmt"
	"sync"

	"github.com/0202alcc/luvatrix-sub001/engine"
)

// Backend name constants.
const (
	// BackendSoftware is the always-available in-memory backend.
	BackendSoftware = "software"
	// BackendGPU is registered by the gpuprobe package when a GPU
	// adapter is reachable.
	BackendGPU = "gpu"
)

// SoftwareBackend retains the most recently presented snapshot in
// memory. It is the guaranteed fallback: headless hosts, tests, and
// image export all read frames back from it.
type SoftwareBackend struct {
	mu          sync.Mutex
	initialized bool
	last        engine.FrameSnapshot
	presented   bool
}

func init() {
	Register(BackendSoftware, func() Backend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates an uninitialized software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string { return BackendSoftware }

// Init prepares the backend.
func (b *SoftwareBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Close drops the retained frame.
func (b *SoftwareBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	b.presented = false
	b.last = engine.FrameSnapshot{}
}

// Present stores the snapshot after checking its byte length matches
// the declared dimensions.
func (b *SoftwareBackend) Present(frame engine.FrameSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return ErrNotInitialized
	}
	if want := frame.Width * frame.Height * 4; len(frame.Data) != want {
		return fmt.Errorf("display: frame %d has %d bytes, want %d", frame.FrameID, len(frame.Data), want)
	}
	b.last = frame
	b.presented = true
	return nil
}

// LastFrame returns the most recently presented snapshot, if any.
func (b *SoftwareBackend) LastFrame() (engine.FrameSnapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.presented
}

// Capabilities lists what the software path offers.
func (b *SoftwareBackend) Capabilities() []string {
	return []string{"present", "readback", "rgba255"}
}
