package svg

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Rect is a filled and/or stroked axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
	Fill                *luvatrix.Color
	Stroke              *luvatrix.Color
	StrokeWidth         float64
}

// Circle is a filled and/or stroked disk.
type Circle struct {
	CX, CY, R   float64
	Fill        *luvatrix.Color
	Stroke      *luvatrix.Color
	StrokeWidth float64
}

// Line is a stroked line segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         *luvatrix.Color
	StrokeWidth    float64
}

// Polygon is a closed point list with optional fill and stroke.
type Polygon struct {
	Points      []luvatrix.Point
	Fill        *luvatrix.Color
	Stroke      *luvatrix.Color
	StrokeWidth float64
}

// ViewBox is the user-space region mapped onto the render destination.
type ViewBox struct {
	X, Y, Width, Height float64
}

// Document is an immutable parsed vector asset: nominal size, view box,
// and the primitives in markup order. A shape with no fill and no stroke
// still parses but draws nothing.
type Document struct {
	Width    float64
	Height   float64
	ViewBox  ViewBox
	Rects    []Rect
	Circles  []Circle
	Lines    []Line
	Polygons []Polygon
}

// Parse parses SVG markup into a Document. Unsupported elements are
// ignored; malformed rect/circle attributes default to zero, malformed
// lines (missing coordinates) and point-less polygons are skipped.
func Parse(markup string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))

	doc := &Document{}
	var sawRoot bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, luvatrix.Configf("svg markup: %v", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			sawRoot = true
			doc.applyRoot(start)
			continue
		}
		switch start.Name.Local {
		case "rect":
			doc.Rects = append(doc.Rects, parseRect(start))
		case "circle":
			doc.Circles = append(doc.Circles, parseCircle(start))
		case "line":
			if l, ok := parseLine(start); ok {
				doc.Lines = append(doc.Lines, l)
			}
		case "polygon":
			if p, ok := parsePolygon(start); ok {
				doc.Polygons = append(doc.Polygons, p)
			}
		}
	}
	if !sawRoot {
		return nil, luvatrix.Configf("svg markup: no root element")
	}
	return doc, nil
}

// ParseFile reads and parses an SVG file.
func ParseFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(raw))
}

// applyRoot resolves nominal size and view box from the root element.
// Missing view box falls back to (0, 0, width, height), or 100x100 when
// width/height are absent too; missing width/height fall back to the view
// box extent.
func (d *Document) applyRoot(root xml.StartElement) {
	attrs := attrMap(root)
	width, hasW := parseLength(attrs["width"])
	height, hasH := parseLength(attrs["height"])
	vb, hasVB := parseViewBox(attrs["viewBox"])
	if !hasVB {
		w, h := width, height
		if !hasW {
			w = 100
		}
		if !hasH {
			h = 100
		}
		vb = ViewBox{0, 0, w, h}
	}
	if !hasW {
		width = vb.Width
	}
	if !hasH {
		height = vb.Height
	}
	d.Width = width
	d.Height = height
	d.ViewBox = vb
}

func attrMap(el xml.StartElement) map[string]string {
	m := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

// parseLength parses a numeric length, tolerating a "px" suffix.
// Malformed values report ok=false and are treated as absent.
func parseLength(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	value = strings.TrimSuffix(value, "px")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lengthOr(value string, fallback float64) float64 {
	if f, ok := parseLength(value); ok {
		return f
	}
	return fallback
}

func parseViewBox(value string) (ViewBox, bool) {
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(parts) != 4 {
		return ViewBox{}, false
	}
	var nums [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return ViewBox{}, false
		}
		nums[i] = f
	}
	return ViewBox{nums[0], nums[1], nums[2], nums[3]}, true
}

func parsePaint(value string) *luvatrix.Color {
	c, ok := luvatrix.ParseColor(value)
	if !ok {
		return nil
	}
	return &c
}

func parseRect(el xml.StartElement) Rect {
	attrs := attrMap(el)
	return Rect{
		X:           lengthOr(attrs["x"], 0),
		Y:           lengthOr(attrs["y"], 0),
		Width:       lengthOr(attrs["width"], 0),
		Height:      lengthOr(attrs["height"], 0),
		Fill:        parsePaint(attrs["fill"]),
		Stroke:      parsePaint(attrs["stroke"]),
		StrokeWidth: lengthOr(attrs["stroke-width"], 0),
	}
}

func parseCircle(el xml.StartElement) Circle {
	attrs := attrMap(el)
	return Circle{
		CX:          lengthOr(attrs["cx"], 0),
		CY:          lengthOr(attrs["cy"], 0),
		R:           lengthOr(attrs["r"], 0),
		Fill:        parsePaint(attrs["fill"]),
		Stroke:      parsePaint(attrs["stroke"]),
		StrokeWidth: lengthOr(attrs["stroke-width"], 0),
	}
}

func parseLine(el xml.StartElement) (Line, bool) {
	attrs := attrMap(el)
	x1, ok1 := parseLength(attrs["x1"])
	y1, ok2 := parseLength(attrs["y1"])
	x2, ok3 := parseLength(attrs["x2"])
	y2, ok4 := parseLength(attrs["y2"])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Line{}, false
	}
	return Line{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Stroke:      parsePaint(attrs["stroke"]),
		StrokeWidth: lengthOr(attrs["stroke-width"], 1),
	}, true
}

func parsePolygon(el xml.StartElement) (Polygon, bool) {
	attrs := attrMap(el)
	points := parsePoints(attrs["points"])
	if len(points) == 0 {
		return Polygon{}, false
	}
	return Polygon{
		Points:      points,
		Fill:        parsePaint(attrs["fill"]),
		Stroke:      parsePaint(attrs["stroke"]),
		StrokeWidth: lengthOr(attrs["stroke-width"], 0),
	}, true
}

// parsePoints parses an SVG point list ("x1,y1 x2,y2 ..."), skipping pairs
// that fail to parse.
func parsePoints(value string) []luvatrix.Point {
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	var points []luvatrix.Point
	for i := 0; i+1 < len(parts); i += 2 {
		x, errX := strconv.ParseFloat(parts[i], 64)
		y, errY := strconv.ParseFloat(parts[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, luvatrix.Point{X: x, Y: y})
	}
	return points
}
