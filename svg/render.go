package svg

import (
	"image"
	"sort"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Render draws the document at (x, y) with a uniform scale applied to its
// nominal size. It is a convenience over RenderToRect.
func (d *Document) Render(fb *luvatrix.FrameBuffer, x, y, scale, opacity float64) {
	d.RenderToRect(fb, x, y, d.Width*scale, d.Height*scale, opacity)
}

// RenderToRect rasterizes every primitive from view-box space into the
// destination rectangle using independent x/y scale factors, applying
// opacity multiplicatively to each primitive's own fill/stroke alpha.
//
// Shapes draw in markup order with no sorting; later elements may occlude
// earlier ones. A zero or negative destination rectangle is a no-op, not
// an error.
func (d *Document) RenderToRect(fb *luvatrix.FrameBuffer, x, y, width, height, opacity float64) {
	if width <= 0 || height <= 0 {
		return
	}
	scaleX, scaleY := 1.0, 1.0
	if d.ViewBox.Width != 0 {
		scaleX = width / d.ViewBox.Width
	}
	if d.ViewBox.Height != 0 {
		scaleY = height / d.ViewBox.Height
	}
	vbX, vbY := d.ViewBox.X, d.ViewBox.Y
	avgScale := (absF(scaleX) + absF(scaleY)) / 2

	for _, r := range d.Rects {
		px := int(x + (r.X-vbX)*scaleX)
		py := int(y + (r.Y-vbY)*scaleY)
		pw := int(r.Width * scaleX)
		ph := int(r.Height * scaleY)
		if fill, ok := paint(r.Fill, opacity); ok {
			fb.DrawRect(px, py, pw, ph, fill)
		}
		if stroke, ok := paint(r.Stroke, opacity); ok && r.StrokeWidth > 0 {
			// Strokes are four border bands sized by the average scale.
			sw := max(1, int(r.StrokeWidth*avgScale))
			fb.DrawRect(px, py, pw, sw, stroke)
			fb.DrawRect(px, py+ph-sw, pw, sw, stroke)
			fb.DrawRect(px, py, sw, ph, stroke)
			fb.DrawRect(px+pw-sw, py, sw, ph, stroke)
		}
	}

	for _, c := range d.Circles {
		px := int(x + (c.CX-vbX)*scaleX)
		py := int(y + (c.CY-vbY)*scaleY)
		pr := max(1, int(c.R*avgScale))
		if fill, ok := paint(c.Fill, opacity); ok {
			fb.DrawCircle(px, py, pr, fill)
		}
		// Stroke draws a second disk at the same radius rather than a
		// true annulus, matching the reference renderer's approximation.
		if stroke, ok := paint(c.Stroke, opacity); ok && c.StrokeWidth > 0 {
			fb.DrawCircle(px, py, pr, stroke)
		}
	}

	for _, l := range d.Lines {
		stroke, ok := paint(l.Stroke, opacity)
		if !ok {
			continue
		}
		x0 := int(x + (l.X1-vbX)*scaleX)
		y0 := int(y + (l.Y1-vbY)*scaleY)
		x1 := int(x + (l.X2-vbX)*scaleX)
		y1 := int(y + (l.Y2-vbY)*scaleY)
		sw := max(1, int(l.StrokeWidth*avgScale))
		fb.DrawLine(x0, y0, x1, y1, stroke, sw)
	}

	for _, p := range d.Polygons {
		pts := make([]image.Point, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = image.Point{
				X: int(x + (pt.X-vbX)*scaleX),
				Y: int(y + (pt.Y-vbY)*scaleY),
			}
		}
		if fill, ok := paint(p.Fill, opacity); ok {
			fillPolygon(fb, pts, fill)
		}
		if stroke, ok := paint(p.Stroke, opacity); ok {
			fb.DrawPolyline(pts, stroke, true)
		}
	}
}

// paint resolves an optional primitive color against the draw opacity.
func paint(c *luvatrix.Color, opacity float64) (luvatrix.Color, bool) {
	if c == nil {
		return luvatrix.Color{}, false
	}
	return c.WithOpacity(opacity), true
}

// fillPolygon fills a polygon with an even-odd scanline sweep: for each
// row, edge crossings are collected, sorted, and paired into spans.
func fillPolygon(fb *luvatrix.FrameBuffer, pts []image.Point, c luvatrix.Color) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	for y := minY; y <= maxY; y++ {
		var xs []int
		for i := range pts {
			p0 := pts[i]
			p1 := pts[(i+1)%len(pts)]
			if p0.Y == p1.Y {
				continue
			}
			if y >= min(p0.Y, p1.Y) && y < max(p0.Y, p1.Y) {
				x := float64(p0.X) + float64(y-p0.Y)*float64(p1.X-p0.X)/float64(p1.Y-p0.Y)
				xs = append(xs, int(x))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			fb.DrawRect(xs[i], y, xs[i+1]-xs[i]+1, 1, c)
		}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
