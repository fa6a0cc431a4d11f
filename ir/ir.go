package ir

import (
	"math"
	"sort"
	"strconv"
	"strings"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Aspect modes for mapping a page matrix onto a larger surface.
const (
	AspectStretch  = "stretch"
	AspectPreserve = "preserve"
)

// PixelFormatRGBA255 is the only pixel format the render core produces.
const PixelFormatRGBA255 = "RGBA255"

// Asset kinds.
const (
	AssetSVG   = "svg"
	AssetImage = "image"
	AssetFont  = "font"
	AssetData  = "data"
)

// MatrixSpec is the logical pixel matrix a page renders into.
type MatrixSpec struct {
	Width       int
	Height      int
	PixelFormat string
}

func (m MatrixSpec) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return luvatrix.Validatef("matrix", "width/height must be > 0, got %dx%d", m.Width, m.Height)
	}
	return nil
}

// Insets reserves space along each edge of the matrix.
type Insets struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

func (in Insets) validate() error {
	if in.Left < 0 || in.Right < 0 || in.Top < 0 || in.Bottom < 0 {
		return luvatrix.Validatef("safe_insets", "insets must be >= 0")
	}
	return nil
}

// FrameSpec declares a page-local coordinate frame as an affine basis over
// the default screen frame.
type FrameSpec struct {
	Name   string
	Origin [2]float64
	BasisX [2]float64
	BasisY [2]float64
}

func (f FrameSpec) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return luvatrix.Validatef("coordinate_frames[].name", "must be non-empty")
	}
	det := f.BasisX[0]*f.BasisY[1] - f.BasisX[1]*f.BasisY[0]
	if math.Abs(det) < 1e-9 {
		return luvatrix.Validatef("coordinate_frames", "frame %q basis vectors are singular", f.Name)
	}
	return nil
}

// CoordinateRef is a point expressed in an optional named frame. A nil
// Frame defers to the component frame and then the page default.
type CoordinateRef struct {
	X     float64
	Y     float64
	Frame *string
}

// BoundingBox is an axis-aligned box in an optional named frame.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Frame  *string
}

func (b BoundingBox) validate(path string) error {
	if b.Width < 0 || b.Height < 0 {
		return luvatrix.Validatef(path, "width/height must be >= 0")
	}
	return nil
}

// Asset references external content a component draws.
type Asset struct {
	Kind        string
	Source      string
	ContentHash *string
	Preload     bool
}

func (a Asset) validate(path string) error {
	if strings.TrimSpace(a.Source) == "" {
		return luvatrix.Validatef(path+".source", "must be non-empty")
	}
	return nil
}

// Interaction binds an input event name to an app-side handler.
type Interaction struct {
	Event           string
	Handler         string
	Args            map[string]any
	DebounceMS      *int
	ThrottleMS      *int
	StopPropagation bool
}

func (i Interaction) validate(path string) error {
	if strings.TrimSpace(i.Event) == "" {
		return luvatrix.Validatef(path+".event", "must be non-empty")
	}
	if strings.TrimSpace(i.Handler) == "" {
		return luvatrix.Validatef(path+".handler", "must be non-empty")
	}
	if i.DebounceMS != nil && *i.DebounceMS < 0 {
		return luvatrix.Validatef(path+".debounce_ms", "must be >= 0")
	}
	if i.ThrottleMS != nil && *i.ThrottleMS < 0 {
		return luvatrix.Validatef(path+".throttle_ms", "must be >= 0")
	}
	return nil
}

// Transform is a component-local scale/rotation about an anchor point.
type Transform struct {
	ScaleX      float64
	ScaleY      float64
	RotationDeg float64
	AnchorX     float64
	AnchorY     float64
}

// IdentityTransform is the no-op transform applied by default.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Semantics carries accessibility metadata.
type Semantics struct {
	Label   *string
	Role    *string
	Tooltip *string
}

// Component is a single drawable/interactive element of a page.
type Component struct {
	ID                string
	Type              string
	Position          CoordinateRef
	Width             float64
	Height            float64
	ZIndex            int
	Frame             *string
	Visible           bool
	Enabled           bool
	Opacity           float64
	Asset             *Asset
	Style             map[string]any
	Interactions      []Interaction
	VisualBounds      *BoundingBox
	InteractionBounds *BoundingBox
	Transform         Transform
	Semantics         Semantics
	StateBindings     map[string]string
	DiagnosticsSource *string
}

// NewComponent returns a component with the implicit defaults applied:
// visible, enabled, full opacity, identity transform.
func NewComponent(id, typ string, position CoordinateRef, width, height float64) Component {
	return Component{
		ID:        id,
		Type:      typ,
		Position:  position,
		Width:     width,
		Height:    height,
		Visible:   true,
		Enabled:   true,
		Opacity:   1.0,
		Transform: IdentityTransform(),
	}
}

func (c Component) validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return luvatrix.Validatef("components[].id", "must be non-empty")
	}
	path := "components[" + c.ID + "]"
	if strings.TrimSpace(c.Type) == "" {
		return luvatrix.Validatef(path+".type", "must be non-empty")
	}
	if c.Width < 0 || c.Height < 0 {
		return luvatrix.Validatef(path, "width/height must be >= 0")
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return luvatrix.Validatef(path+".opacity", "must be in [0, 1], got %g", c.Opacity)
	}
	if c.Asset != nil {
		if err := c.Asset.validate(path + ".asset"); err != nil {
			return err
		}
	}
	for i, it := range c.Interactions {
		if err := it.validate(path + ".interactions[" + strconv.Itoa(i) + "]"); err != nil {
			return err
		}
	}
	if c.VisualBounds != nil {
		if err := c.VisualBounds.validate(path + ".visual_bounds"); err != nil {
			return err
		}
	}
	if c.InteractionBounds != nil {
		if err := c.InteractionBounds.validate(path + ".interaction_bounds"); err != nil {
			return err
		}
	}
	return nil
}

// ResolvedFrame is the frame the component draws in: the component frame,
// else the position frame, else the page default.
func (c Component) ResolvedFrame(defaultFrame string) string {
	if c.Frame != nil && *c.Frame != "" {
		return *c.Frame
	}
	if c.Position.Frame != nil && *c.Position.Frame != "" {
		return *c.Position.Frame
	}
	return defaultFrame
}

// ResolvedVisualBounds is the explicit visual bounds when present,
// otherwise the position/size box in the resolved frame.
func (c Component) ResolvedVisualBounds(defaultFrame string) BoundingBox {
	if c.VisualBounds != nil {
		return *c.VisualBounds
	}
	frame := c.ResolvedFrame(defaultFrame)
	return BoundingBox{
		X:      c.Position.X,
		Y:      c.Position.Y,
		Width:  c.Width,
		Height: c.Height,
		Frame:  &frame,
	}
}

// ResolvedInteractionBounds falls back to the visual bounds when no
// explicit hit region is declared.
func (c Component) ResolvedInteractionBounds(defaultFrame string) BoundingBox {
	if c.InteractionBounds != nil {
		return *c.InteractionBounds
	}
	return c.ResolvedVisualBounds(defaultFrame)
}

// Page is a complete validated UI IR document.
type Page struct {
	IRVersion          string
	AppProtocolVersion *string
	PageID             string
	Route              *string
	Revision           int
	Matrix             MatrixSpec
	AspectMode         string
	DefaultFrame       string
	Background         string
	SafeInsets         Insets
	CoordinateFrames   []FrameSpec
	Components         []Component
	ThemeRef           *string
}

// NewPage applies defaults (pixel format, default frame, background) and
// validates every invariant eagerly. On error nothing is returned; no
// partially-valid page exists.
func NewPage(p Page) (*Page, error) {
	if p.Matrix.PixelFormat == "" {
		p.Matrix.PixelFormat = PixelFormatRGBA255
	}
	if p.DefaultFrame == "" {
		p.DefaultFrame = luvatrix.FrameScreenTL
	}
	if p.Background == "" {
		p.Background = "#000000"
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Page) validate() error {
	if strings.TrimSpace(p.IRVersion) == "" {
		return luvatrix.Validatef("ir_version", "must be non-empty")
	}
	if strings.TrimSpace(p.PageID) == "" {
		return luvatrix.Validatef("page_id", "must be non-empty")
	}
	if strings.TrimSpace(p.DefaultFrame) == "" {
		return luvatrix.Validatef("default_frame", "must be non-empty")
	}
	if p.Revision < 0 {
		return luvatrix.Validatef("revision", "must be >= 0")
	}
	if err := p.Matrix.validate(); err != nil {
		return err
	}
	if err := validateHexColor(p.Background); err != nil {
		return err
	}
	if err := p.SafeInsets.validate(); err != nil {
		return err
	}
	for _, f := range p.CoordinateFrames {
		if err := f.validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(p.Components))
	for _, c := range p.Components {
		if err := c.validate(); err != nil {
			return err
		}
		if seen[c.ID] {
			return luvatrix.Validatef("components", "duplicate component id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// OrderedComponentsForDraw returns the components sorted by ascending
// z_index, ties broken by declaration (mount) order.
func (p *Page) OrderedComponentsForDraw() []Component {
	out := make([]Component, len(p.Components))
	copy(out, p.Components)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// OrderedComponentsForHitTest returns draw order reversed, so the
// topmost component is probed first.
func (p *Page) OrderedComponentsForHitTest() []Component {
	out := p.OrderedComponentsForDraw()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// validateHexColor accepts #RRGGBB and #RRGGBBAA only.
func validateHexColor(value string) error {
	raw := strings.TrimSpace(value)
	if !strings.HasPrefix(raw, "#") {
		return luvatrix.Validatef("background", "must use hex color format, got %q", value)
	}
	hex := raw[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return luvatrix.Validatef("background", "must be #RRGGBB or #RRGGBBAA, got %q", value)
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return luvatrix.Validatef("background", "invalid hex digit in %q", value)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
