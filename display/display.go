package display

import (
	"errors"
	"sync"

	"github.com/0202alcc/luvatrix-sub001/engine"
)

// Common display errors.
var (
	// ErrBackendNotAvailable is returned when no requested backend is registered.
	ErrBackendNotAvailable = errors.New("display: backend not available")

	// ErrNotInitialized is returned when Present is called before Init.
	ErrNotInitialized = errors.New("display: not initialized")
)

// Backend presents completed frame snapshots to an output surface.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "gpu").
	Name() string

	// Init prepares the backend for presentation.
	Init() error

	// Close releases backend resources. The backend must not be used
	// after Close.
	Close()

	// Present displays one frame snapshot.
	Present(frame engine.FrameSnapshot) error

	// Capabilities lists the capability strings the backend offers,
	// suitable for a host.hello capability list.
	Capabilities() []string
}

// Factory creates a new backend instance.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for selection; first registered name wins.
	backendPriority = []string{BackendGPU, BackendSoftware}
)

// Register registers a backend factory under a name, replacing any
// previous registration. Typically called from init() in backend
// packages.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new backend instance by name, or nil when unregistered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend by priority, falling back
// to any registered backend. Returns nil when the registry is empty.
func Default() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}
	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}
	return nil
}

// InitDefault selects and initializes the default backend.
func InitDefault() (Backend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}
