package display

import (
	"testing"

	"github.com/0202alcc/luvatrix-sub001/engine"
)

func snapshot(w, h int) engine.FrameSnapshot {
	return engine.FrameSnapshot{FrameID: 1, Width: w, Height: h, Data: make([]byte, w*h*4)}
}

func TestSoftwareBackendRegistered(t *testing.T) {
	if !IsRegistered(BackendSoftware) {
		t.Fatal("software backend must self-register on import")
	}
	b := Get(BackendSoftware)
	if b == nil || b.Name() != BackendSoftware {
		t.Fatalf("Get(software) = %v", b)
	}
	if Get("holographic") != nil {
		t.Error("unknown backend should return nil")
	}
}

func TestDefaultFallsBackToSoftware(t *testing.T) {
	b, err := InitDefault()
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.Name() != BackendSoftware {
		t.Skipf("environment registered %q above software", b.Name())
	}
}

func TestSoftwarePresentRetainsFrame(t *testing.T) {
	b := NewSoftwareBackend()
	if err := b.Present(snapshot(4, 4)); err != ErrNotInitialized {
		t.Fatalf("present before init = %v, want ErrNotInitialized", err)
	}
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	snap := snapshot(4, 4)
	snap.Data[0] = 0xAB
	if err := b.Present(snap); err != nil {
		t.Fatal(err)
	}
	got, ok := b.LastFrame()
	if !ok || got.Data[0] != 0xAB || got.FrameID != 1 {
		t.Errorf("retained frame = %+v ok=%v", got, ok)
	}

	// Mismatched byte length is rejected.
	bad := snapshot(4, 4)
	bad.Data = bad.Data[:7]
	if err := b.Present(bad); err == nil {
		t.Error("short frame accepted")
	}

	b.Close()
	if _, ok := b.LastFrame(); ok {
		t.Error("Close must drop the retained frame")
	}
}

func TestRegisterUnregister(t *testing.T) {
	Register("test-sink", func() Backend { return NewSoftwareBackend() })
	defer Unregister("test-sink")
	if !IsRegistered("test-sink") {
		t.Fatal("registration lost")
	}
	found := false
	for _, name := range Available() {
		if name == "test-sink" {
			found = true
		}
	}
	if !found {
		t.Error("Available misses registered backend")
	}
	Unregister("test-sink")
	if IsRegistered("test-sink") {
		t.Error("unregister failed")
	}
}

func TestCapabilities(t *testing.T) {
	caps := NewSoftwareBackend().Capabilities()
	if len(caps) == 0 {
		t.Fatal("software backend must advertise capabilities")
	}
}
