//go:build nogpu

package gpuprobe

// Available always reports false in nogpu builds.
func Available() bool { return false }

// Adapters always returns nil in nogpu builds.
func Adapters() []string { return nil }

// RegisterBackend never registers in nogpu builds.
func RegisterBackend() bool { return false }
