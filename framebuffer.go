package luvatrix

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// FrameBuffer is an owned width x height x 4-byte RGBA pixel store plus a
// background color. It is mutated only by its clear/draw operations and
// exposes itself as an immutable byte snapshot on demand.
//
// All drawing clips silently to the buffer bounds; degenerate inputs
// (zero or negative extents) are no-ops, not errors. Blending uses
// straight alpha: out = (src*a + dst*(255-a)) / 255, with full opacity
// short-circuiting to an overwrite.
type FrameBuffer struct {
	width      int
	height     int
	background Color
	data       []uint8
}

// NewFrameBuffer creates a framebuffer cleared to the background color.
func NewFrameBuffer(width, height int, background Color) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, Configf("framebuffer %dx%d: width and height must be > 0", width, height)
	}
	fb := &FrameBuffer{
		width:      width,
		height:     height,
		background: background,
		data:       make([]uint8, width*height*4),
	}
	fb.Clear()
	return fb, nil
}

// Width returns the width of the buffer in pixels.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the height of the buffer in pixels.
func (fb *FrameBuffer) Height() int { return fb.height }

// Background returns the background color used by Clear.
func (fb *FrameBuffer) Background() Color { return fb.background }

// Bytes returns an immutable snapshot copy of the raw RGBA pixel data,
// length Width*Height*4.
func (fb *FrameBuffer) Bytes() []byte {
	out := make([]byte, len(fb.data))
	copy(out, fb.data)
	return out
}

// Clear fills the entire buffer with the background color.
func (fb *FrameBuffer) Clear() {
	fb.ClearColor(fb.background)
}

// ClearColor fills the entire buffer with the given color.
func (fb *FrameBuffer) ClearColor(c Color) {
	for i := 0; i < len(fb.data); i += 4 {
		fb.data[i+0] = c.R
		fb.data[i+1] = c.G
		fb.data[i+2] = c.B
		fb.data[i+3] = c.A
	}
}

// DrawRect fills an axis-aligned rectangle.
func (fb *FrameBuffer) DrawRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	x0 := max(0, x)
	y0 := max(0, y)
	x1 := min(fb.width, x+w)
	y1 := min(fb.height, y+h)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	if c.A == 255 {
		for yy := y0; yy < y1; yy++ {
			row := (yy*fb.width + x0) * 4
			for xx := x0; xx < x1; xx++ {
				fb.data[row+0] = c.R
				fb.data[row+1] = c.G
				fb.data[row+2] = c.B
				fb.data[row+3] = 255
				row += 4
			}
		}
		return
	}
	a := int(c.A)
	inv := 255 - a
	for yy := y0; yy < y1; yy++ {
		row := (yy*fb.width + x0) * 4
		for xx := x0; xx < x1; xx++ {
			fb.data[row+0] = uint8((int(c.R)*a + int(fb.data[row+0])*inv) / 255)
			fb.data[row+1] = uint8((int(c.G)*a + int(fb.data[row+1])*inv) / 255)
			fb.data[row+2] = uint8((int(c.B)*a + int(fb.data[row+2])*inv) / 255)
			fb.data[row+3] = 255
			row += 4
		}
	}
}

// DrawCircle fills a disk centered at (cx, cy).
func (fb *FrameBuffer) DrawCircle(cx, cy, radius int, c Color) {
	if radius <= 0 || c.A == 0 {
		return
	}
	r2 := radius * radius
	y0 := max(0, cy-radius)
	y1 := min(fb.height, cy+radius+1)
	for yy := y0; yy < y1; yy++ {
		dy := yy - cy
		dy2 := dy * dy
		if dy2 > r2 {
			continue
		}
		span := int(math.Sqrt(float64(r2 - dy2)))
		x0 := max(0, cx-span)
		x1 := min(fb.width, cx+span+1)
		if x1 > x0 {
			fb.DrawRect(x0, yy, x1-x0, 1, c)
		}
	}
}

// DrawLine draws a line segment with square thickness stamps using
// Bresenham stepping.
func (fb *FrameBuffer) DrawLine(x0, y0, x1, y1 int, c Color, thickness int) {
	if thickness <= 0 || c.A == 0 {
		return
	}
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy
	half := thickness / 2
	for {
		fb.DrawRect(x0-half, y0-half, thickness, thickness, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolyline draws line segments between consecutive points, optionally
// closing the last point back to the first. Fewer than two points is a
// no-op.
func (fb *FrameBuffer) DrawPolyline(points []image.Point, c Color, closed bool) {
	if len(points) < 2 {
		return
	}
	for i := 1; i < len(points); i++ {
		fb.DrawLine(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, c, 1)
	}
	if closed {
		last := points[len(points)-1]
		fb.DrawLine(last.X, last.Y, points[0].X, points[0].Y, c, 1)
	}
}

// At implements image.Image.
func (fb *FrameBuffer) At(x, y int) color.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return color.NRGBA{}
	}
	i := (y*fb.width + x) * 4
	return color.NRGBA{R: fb.data[i], G: fb.data[i+1], B: fb.data[i+2], A: fb.data[i+3]}
}

// Set implements draw.Image, making the buffer a valid destination for
// x/image drawing (text rendering uses this).
func (fb *FrameBuffer) Set(x, y int, c color.Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := (y*fb.width + x) * 4
	fb.data[i+0] = n.R
	fb.data[i+1] = n.G
	fb.data[i+2] = n.B
	fb.data[i+3] = n.A
}

// Bounds implements image.Image.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements image.Image.
func (fb *FrameBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage copies the buffer into a standard image.NRGBA.
func (fb *FrameBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.data)
	return img
}

// SavePNG writes the buffer contents to a PNG file.
func (fb *FrameBuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, fb.ToImage())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
