// Command luvatrix-host runs a Luvatrix app over the stdio JSONL host
// protocol: it loads the app's page, renders it on the engine loop, and
// presents frames through the best available display backend.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
	"github.com/0202alcc/luvatrix-sub001/display"
	"github.com/0202alcc/luvatrix-sub001/display/gpuprobe"
	"github.com/0202alcc/luvatrix-sub001/engine"
	"github.com/0202alcc/luvatrix-sub001/hostproto"
)

func main() {
	var (
		appDir     = flag.String("app", ".", "application directory containing page.json")
		configPath = flag.String("config", "", "optional YAML config file")
		fps        = flag.Int("fps", 0, "frame rate target (overrides config)")
		verbose    = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *appDir != "." || cfg.AppDir == "" {
		cfg.AppDir = *appDir
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		luvatrix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	page, err := engine.LoadPage(cfg.AppDir)
	if err != nil {
		log.Fatalf("load page: %v", err)
	}
	eng, err := engine.New(page, engine.WithFPS(cfg.FPS))
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	gpuprobe.RegisterBackend()
	backend, err := display.InitDefault()
	if err != nil {
		log.Fatalf("init display: %v", err)
	}
	defer backend.Close()

	app := &hostApp{engine: eng, backend: backend, snapshotPNG: cfg.SnapshotPNG}
	if err := hostproto.RunStdio(app); err != nil {
		log.Fatalf("host session: %v", err)
	}
}

// hostApp bridges the host protocol onto the engine and a display
// backend: init starts the loop, each tick presents the latest frame,
// stop shuts the loop down.
type hostApp struct {
	engine      *engine.Engine
	backend     display.Backend
	snapshotPNG string
	lastFrame   uint64
}

func (a *hostApp) Init(hello hostproto.Hello) error {
	log := luvatrix.Logger()
	log.Info("host connected",
		slog.String("protocol_version", hello.ProtocolVersion),
		slog.Int("width", hello.Width),
		slog.Int("height", hello.Height),
		slog.Any("capabilities", hello.Capabilities))
	a.engine.Start()
	return nil
}

func (a *hostApp) Tick(event hostproto.Tick) ([]map[string]any, error) {
	snap := a.engine.Snapshot()
	ops := []map[string]any{}
	if snap.FrameID == a.lastFrame {
		return ops, nil
	}
	if err := a.backend.Present(snap); err != nil {
		return nil, err
	}
	a.lastFrame = snap.FrameID
	ops = append(ops, map[string]any{
		"op":       "present",
		"frame_id": snap.FrameID,
		"width":    snap.Width,
		"height":   snap.Height,
		"backend":  a.backend.Name(),
	})
	return ops, nil
}

func (a *hostApp) Stop() error {
	a.engine.Stop()
	if a.snapshotPNG == "" {
		return nil
	}
	snap := a.engine.Snapshot()
	if snap.FrameID == 0 {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	copy(img.Pix, snap.Data)
	f, err := os.Create(a.snapshotPNG)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
