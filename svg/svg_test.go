package svg

import (
	"testing"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

const sampleMarkup = `<svg width="40" height="20" viewBox="0 0 40 20">
  <rect x="1" y="2" width="10" height="5" fill="#ff0000" stroke="#00ff00" stroke-width="2"/>
  <circle cx="20" cy="10" r="4" fill="rgb(0,0,255)"/>
  <line x1="0" y1="0" x2="10" y2="10" stroke="#ffffff"/>
  <polygon points="0,0 10,0 5,8" fill="#11223344"/>
  <text>ignored</text>
</svg>`

func TestParseSample(t *testing.T) {
	doc, err := Parse(sampleMarkup)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 40 || doc.Height != 20 {
		t.Errorf("size = %gx%g, want 40x20", doc.Width, doc.Height)
	}
	if doc.ViewBox != (ViewBox{0, 0, 40, 20}) {
		t.Errorf("viewBox = %+v", doc.ViewBox)
	}
	if len(doc.Rects) != 1 || len(doc.Circles) != 1 || len(doc.Lines) != 1 || len(doc.Polygons) != 1 {
		t.Fatalf("primitive counts = %d/%d/%d/%d", len(doc.Rects), len(doc.Circles), len(doc.Lines), len(doc.Polygons))
	}

	r := doc.Rects[0]
	if r.Fill == nil || *r.Fill != (luvatrix.Color{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("rect fill = %v", r.Fill)
	}
	if r.Stroke == nil || r.StrokeWidth != 2 {
		t.Errorf("rect stroke = %v width %g", r.Stroke, r.StrokeWidth)
	}

	c := doc.Circles[0]
	if c.Fill == nil || *c.Fill != (luvatrix.Color{R: 0, G: 0, B: 255, A: 255}) {
		t.Errorf("circle fill = %v", c.Fill)
	}
	if c.Stroke != nil {
		t.Errorf("circle stroke = %v, want none", c.Stroke)
	}

	if doc.Lines[0].StrokeWidth != 1 {
		t.Errorf("line default stroke-width = %g, want 1", doc.Lines[0].StrokeWidth)
	}

	p := doc.Polygons[0]
	if len(p.Points) != 3 {
		t.Errorf("polygon points = %d, want 3", len(p.Points))
	}
	if p.Fill == nil || *p.Fill != (luvatrix.Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}) {
		t.Errorf("polygon fill = %v", p.Fill)
	}
}

func TestParseViewBoxFallbacks(t *testing.T) {
	doc, err := Parse(`<svg width="30" height="15"></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ViewBox != (ViewBox{0, 0, 30, 15}) {
		t.Errorf("viewBox fallback = %+v, want size-derived", doc.ViewBox)
	}

	doc, err = Parse(`<svg></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ViewBox != (ViewBox{0, 0, 100, 100}) {
		t.Errorf("viewBox default = %+v, want 100x100", doc.ViewBox)
	}
	if doc.Width != 100 || doc.Height != 100 {
		t.Errorf("size default = %gx%g, want 100x100", doc.Width, doc.Height)
	}

	doc, err = Parse(`<svg viewBox="0 0 64 32"></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 64 || doc.Height != 32 {
		t.Errorf("size from viewBox = %gx%g, want 64x32", doc.Width, doc.Height)
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	doc, err := Parse(`<svg viewBox="0 0 10 10">
	  <line x1="1" y1="1" x2="5"/>
	  <polygon points="bogus words"/>
	  <polygon points=""/>
	  <rect x="oops" width="5" height="5" fill="#fff"/>
	</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("malformed line kept: %d", len(doc.Lines))
	}
	if len(doc.Polygons) != 0 {
		t.Errorf("point-less polygon kept: %d", len(doc.Polygons))
	}
	// Malformed rect coordinates default to 0, the rect itself stays.
	if len(doc.Rects) != 1 || doc.Rects[0].X != 0 {
		t.Errorf("rect with bad x = %+v", doc.Rects)
	}
}

func TestParseNoFillNoStroke(t *testing.T) {
	doc, err := Parse(`<svg viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Rects) != 1 {
		t.Fatal("invisible rect must still parse")
	}

	fb, err := luvatrix.NewFrameBuffer(10, 10, luvatrix.Black)
	if err != nil {
		t.Fatal(err)
	}
	doc.RenderToRect(fb, 0, 0, 10, 10, 1.0)
	for _, b := range fb.Bytes()[:12] {
		if b != 0 && b != 255 {
			t.Fatal("invisible rect drew pixels")
		}
	}
	if fb.Bytes()[0] != 0 {
		t.Error("invisible rect drew pixels")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("empty markup accepted")
	}
}
