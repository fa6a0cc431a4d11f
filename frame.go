package luvatrix

import (
	"math"
	"sort"
)

// Reserved preset frame names. Presets are materialized per registry for
// its surface size and cannot be redefined.
const (
	FrameScreenTL        = "screen_tl"        // identity, y-down
	FrameCartesianBL     = "cartesian_bl"     // y-up, origin at bottom-left pixel
	FrameCartesianCenter = "cartesian_center" // y-up, origin at surface center
)

// singularEps is the determinant magnitude below which a basis is treated
// as numerically singular.
const singularEps = 1e-9

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

// Frame is a named affine basis (origin, basis_x, basis_y) over a 2D
// space. Frames are immutable once registered.
type Frame struct {
	Name   string
	Origin Point
	BasisX Point
	BasisY Point
}

// Determinant returns the determinant of the basis matrix.
func (f Frame) Determinant() float64 {
	return f.BasisX.X*f.BasisY.Y - f.BasisX.Y*f.BasisY.X
}

// Registry owns the coordinate frame definitions for one render surface.
// It converts points and vectors between any two registered frames by
// routing through a shared canonical space.
//
// Registry is not safe for concurrent mutation; define all frames during
// setup, then transforms are pure reads.
type Registry struct {
	width        int
	height       int
	defaultFrame string
	custom       map[string]Frame
}

// NewRegistry creates a registry for a surface of the given size.
// Width and height must both be positive.
func NewRegistry(width, height int) (*Registry, error) {
	if width <= 0 || height <= 0 {
		return nil, Configf("registry surface %dx%d: width and height must be > 0", width, height)
	}
	return &Registry{
		width:        width,
		height:       height,
		defaultFrame: FrameScreenTL,
		custom:       make(map[string]Frame),
	}, nil
}

// DefaultFrame returns the name of the frame used when a transform does
// not name one.
func (r *Registry) DefaultFrame() string { return r.defaultFrame }

// SetDefaultFrame changes the default frame. The frame must exist.
func (r *Registry) SetDefaultFrame(name string) error {
	if _, err := r.resolve(name); err != nil {
		return err
	}
	r.defaultFrame = name
	return nil
}

// DefineFrame registers a custom frame. The name must be non-empty and not
// collide with a reserved preset, and the basis must not be singular.
func (r *Registry) DefineFrame(name string, origin, basisX, basisY Point) error {
	if name == "" {
		return Configf("frame name must be non-empty")
	}
	if isPreset(name) {
		return Configf("frame %q is reserved as a preset frame name", name)
	}
	f := Frame{Name: name, Origin: origin, BasisX: basisX, BasisY: basisY}
	if math.Abs(f.Determinant()) < singularEps {
		return Configf("frame %q basis vectors are singular", name)
	}
	r.custom[name] = f
	return nil
}

// ListFrames returns the preset names followed by the custom frame names
// in sorted order.
func (r *Registry) ListFrames() []string {
	names := []string{FrameScreenTL, FrameCartesianBL, FrameCartesianCenter}
	custom := make([]string, 0, len(r.custom))
	for name := range r.custom {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	return append(names, custom...)
}

// TransformPoint maps a point from one frame to another. Empty frame names
// select the registry default. The mapping routes through canonical space:
// forward is origin + x*basis_x + y*basis_y, inverse solves the 2x2 system
// via the basis determinant.
func (r *Registry) TransformPoint(p Point, fromFrame, toFrame string) (Point, error) {
	src, err := r.resolve(r.orDefault(fromFrame))
	if err != nil {
		return Point{}, err
	}
	dst, err := r.resolve(r.orDefault(toFrame))
	if err != nil {
		return Point{}, err
	}
	return fromCanonical(toCanonical(p, src), dst)
}

// TransformVector maps a direction vector between frames. Vectors transform
// through the same basis change as points but ignore translation.
func (r *Registry) TransformVector(v Point, fromFrame, toFrame string) (Point, error) {
	src, err := r.resolve(r.orDefault(fromFrame))
	if err != nil {
		return Point{}, err
	}
	dst, err := r.resolve(r.orDefault(toFrame))
	if err != nil {
		return Point{}, err
	}
	return fromCanonicalVector(toCanonicalVector(v, src), dst)
}

// ToRenderCoords maps a point from the given frame (default frame when
// empty) into screen_tl, the render surface's native space.
func (r *Registry) ToRenderCoords(p Point, frame string) (Point, error) {
	return r.TransformPoint(p, frame, FrameScreenTL)
}

// FromRenderCoords maps a point from screen_tl into the given frame
// (default frame when empty).
func (r *Registry) FromRenderCoords(p Point, frame string) (Point, error) {
	return r.TransformPoint(p, FrameScreenTL, frame)
}

func (r *Registry) orDefault(name string) string {
	if name == "" {
		return r.defaultFrame
	}
	return name
}

func (r *Registry) resolve(name string) (Frame, error) {
	if f, ok := r.custom[name]; ok {
		return f, nil
	}
	switch name {
	case FrameScreenTL:
		return Frame{
			Name:   name,
			Origin: Point{0, 0},
			BasisX: Point{1, 0},
			BasisY: Point{0, 1},
		}, nil
	case FrameCartesianBL:
		return Frame{
			Name:   name,
			Origin: Point{0, float64(r.height - 1)},
			BasisX: Point{1, 0},
			BasisY: Point{0, -1},
		}, nil
	case FrameCartesianCenter:
		return Frame{
			Name:   name,
			Origin: Point{(float64(r.width) - 1) / 2, (float64(r.height) - 1) / 2},
			BasisX: Point{1, 0},
			BasisY: Point{0, -1},
		}, nil
	}
	return Frame{}, Configf("unknown coordinate frame: %q", name)
}

func isPreset(name string) bool {
	return name == FrameScreenTL || name == FrameCartesianBL || name == FrameCartesianCenter
}

func toCanonical(p Point, f Frame) Point {
	return Point{
		X: f.Origin.X + p.X*f.BasisX.X + p.Y*f.BasisY.X,
		Y: f.Origin.Y + p.X*f.BasisX.Y + p.Y*f.BasisY.Y,
	}
}

func fromCanonical(p Point, f Frame) (Point, error) {
	det := f.Determinant()
	if math.Abs(det) < singularEps {
		return Point{}, Configf("frame %q basis vectors are singular", f.Name)
	}
	dx := p.X - f.Origin.X
	dy := p.Y - f.Origin.Y
	return Point{
		X: (dx*f.BasisY.Y - dy*f.BasisY.X) / det,
		Y: (-dx*f.BasisX.Y + dy*f.BasisX.X) / det,
	}, nil
}

func toCanonicalVector(v Point, f Frame) Point {
	return Point{
		X: v.X*f.BasisX.X + v.Y*f.BasisY.X,
		Y: v.X*f.BasisX.Y + v.Y*f.BasisY.Y,
	}
}

func fromCanonicalVector(v Point, f Frame) (Point, error) {
	det := f.Determinant()
	if math.Abs(det) < singularEps {
		return Point{}, Configf("frame %q basis vectors are singular", f.Name)
	}
	return Point{
		X: (v.X*f.BasisY.Y - v.Y*f.BasisY.X) / det,
		Y: (-v.X*f.BasisX.Y + v.Y*f.BasisX.X) / det,
	}, nil
}
