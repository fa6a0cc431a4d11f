package engine

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
	"github.com/0202alcc/luvatrix-sub001/svg"
)

// joinTimeout bounds how long Stop waits for the render goroutine.
const joinTimeout = time.Second

// FrameSnapshot is an immutable copy of one completed frame. Data is
// RGBA, Width*Height*4 bytes, never shared with the framebuffer.
type FrameSnapshot struct {
	FrameID uint64
	Width   int
	Height  int
	Data    []byte
}

// Option configures an Engine during creation.
type Option func(*options)

type options struct {
	fps int
	log *slog.Logger
}

// WithFPS sets the target frame rate. Values below 1 clamp to 1.
func WithFPS(fps int) Option {
	return func(o *options) { o.fps = fps }
}

// WithLogger routes engine diagnostics to the given logger instead of
// the package-level default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Engine renders a Page on a dedicated goroutine at a paced frame rate.
// The render goroutine is the sole mutator of the framebuffer and clock;
// all other methods may be called from any goroutine.
type Engine struct {
	page  *Page
	fps   int
	runID string
	log   *slog.Logger

	fb    *luvatrix.FrameBuffer
	cache map[string]*svg.Document
	clock float64

	inputMu sync.Mutex
	pending []InputEvent

	frameMu    sync.Mutex
	frameID    uint64
	frameBytes []byte

	running atomic.Bool
	stopCh  chan struct{}
	done    chan struct{}
}

// New creates an idle engine for the page.
func New(page *Page, opts ...Option) (*Engine, error) {
	o := options{fps: 30, log: luvatrix.Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fps < 1 {
		o.fps = 1
	}
	fb, err := luvatrix.NewFrameBuffer(page.Width, page.Height, page.Background)
	if err != nil {
		return nil, err
	}
	return &Engine{
		page:  page,
		fps:   o.fps,
		runID: uuid.NewString(),
		log:   o.log,
		fb:    fb,
		cache: make(map[string]*svg.Document),
	}, nil
}

// RunID identifies this engine instance in logs.
func (e *Engine) RunID() string { return e.runID }

// Running reports whether the render loop is active.
func (e *Engine) Running() bool { return e.running.Load() }

// Start launches the render goroutine. Starting a running engine is a
// no-op.
func (e *Engine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.stopCh = make(chan struct{})
	e.done = make(chan struct{})
	e.log.Info("engine start",
		slog.String("run_id", e.runID),
		slog.String("page", e.page.PageID),
		slog.Int("fps", e.fps))
	go e.run()
}

// Stop signals the render goroutine to exit at its next iteration and
// waits for it with a bounded timeout. Stopping an idle engine is a
// no-op.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.stopCh)
	select {
	case <-e.done:
	case <-time.After(joinTimeout):
		e.log.Warn("engine stop timed out", slog.String("run_id", e.runID))
	}
}

// PushInput queues an input event. It never blocks.
func (e *Engine) PushInput(ev InputEvent) {
	e.inputMu.Lock()
	e.pending = append(e.pending, ev)
	e.inputMu.Unlock()
}

// Snapshot returns the most recently completed frame. Safe to call
// concurrently; before the first render the data is empty.
func (e *Engine) Snapshot() FrameSnapshot {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	return FrameSnapshot{
		FrameID: e.frameID,
		Width:   e.page.Width,
		Height:  e.page.Height,
		Data:    e.frameBytes,
	}
}

func (e *Engine) run() {
	defer close(e.done)
	targetDt := time.Second / time.Duration(e.fps)
	last := time.Now()
	for {
		select {
		case <-e.stopCh:
			return
		default:
		}
		now := time.Now()
		e.clock += now.Sub(last).Seconds()
		last = now

		e.drainInputs()
		if err := e.render(); err != nil {
			// A failing render step is fatal for the loop.
			e.log.Error("render failed",
				slog.String("run_id", e.runID),
				slog.String("error", err.Error()))
			e.running.Store(false)
			return
		}

		sleepFor := targetDt - time.Since(now)
		if sleepFor <= 0 {
			continue
		}
		select {
		case <-e.stopCh:
			return
		case <-time.After(sleepFor):
		}
	}
}

// drainInputs empties the queue without blocking. This core discards
// the events; consuming them is a downstream concern.
func (e *Engine) drainInputs() []InputEvent {
	e.inputMu.Lock()
	drained := e.pending
	e.pending = nil
	e.inputMu.Unlock()
	return drained
}

func (e *Engine) render() error {
	e.fb.Clear()
	for _, el := range e.page.Elements {
		if err := e.renderElement(el); err != nil {
			return err
		}
	}
	frame := e.fb.Bytes()
	e.frameMu.Lock()
	e.frameID++
	e.frameBytes = frame
	e.frameMu.Unlock()
	return nil
}

func (e *Engine) renderElement(el Element) error {
	doc, ok := e.cache[el.SVGPath]
	if !ok {
		var err error
		doc, err = svg.ParseFile(el.SVGPath)
		if err != nil {
			return err
		}
		e.cache[el.SVGPath] = doc
	}
	y := el.Y
	if el.Animation != nil && el.Animation["type"] == "float" {
		amp := numOr(el.Animation, "amp", 6.0)
		speed := numOr(el.Animation, "speed", 1.0)
		y += amp * (0.5 + 0.5*math.Sin(e.clock*speed))
	}
	doc.Render(e.fb, el.X, y, el.Scale, el.Opacity)
	return nil
}

func numOr(m map[string]any, key string, def float64) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}
