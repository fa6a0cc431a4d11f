package engine

import (
	"testing"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
	"github.com/0202alcc/luvatrix-sub001/ir"
)

func svgComponent(id, fill string, x, y, w, h float64, z int) ir.Component {
	c := ir.NewComponent(id, "svg", ir.CoordinateRef{X: x, Y: y}, w, h)
	c.ZIndex = z
	c.Asset = &ir.Asset{Kind: ir.AssetSVG, Source: `<svg viewBox="0 0 4 4"><rect width="4" height="4" fill="` + fill + `"/></svg>`}
	return c
}

func irPage(t *testing.T, comps ...ir.Component) *ir.Page {
	t.Helper()
	page, err := ir.NewPage(ir.Page{
		IRVersion:  "planes-v0",
		PageID:     "render-test",
		Matrix:     ir.MatrixSpec{Width: 16, Height: 16},
		AspectMode: ir.AspectStretch,
		Components: comps,
	})
	if err != nil {
		t.Fatal(err)
	}
	return page
}

func fbPixel(fb *luvatrix.FrameBuffer, x, y int) luvatrix.Color {
	b := fb.Bytes()
	i := (y*fb.Width() + x) * 4
	return luvatrix.Color{R: b[i], G: b[i+1], B: b[i+2], A: b[i+3]}
}

func TestRenderIRZOrder(t *testing.T) {
	// Red declared last but with the lower z-index: blue must win.
	blue := svgComponent("blue", "#0000ff", 0, 0, 8, 8, 5)
	red := svgComponent("red", "#ff0000", 0, 0, 8, 8, 1)
	fb, err := RenderIR(irPage(t, blue, red))
	if err != nil {
		t.Fatal(err)
	}
	if got := fbPixel(fb, 4, 4); got != (luvatrix.Color{R: 0, G: 0, B: 255, A: 255}) {
		t.Errorf("pixel (4,4) = %+v, want blue on top", got)
	}
	if got := fbPixel(fb, 12, 12); got != luvatrix.Black {
		t.Errorf("background pixel = %+v, want black", got)
	}
}

func TestRenderIRInvisibleComponentSkipped(t *testing.T) {
	c := svgComponent("hidden", "#ff0000", 0, 0, 8, 8, 0)
	c.Visible = false
	fb, err := RenderIR(irPage(t, c))
	if err != nil {
		t.Fatal(err)
	}
	if got := fbPixel(fb, 2, 2); got != luvatrix.Black {
		t.Errorf("invisible component drew: %+v", got)
	}
}

func TestRenderIRResolvesFrames(t *testing.T) {
	// Positioned at cartesian (0,0): bottom-left corner in screen space.
	c := svgComponent("corner", "#00ff00", 0, 0, 2, 2, 0)
	frame := luvatrix.FrameCartesianBL
	c.Position.Frame = &frame
	fb, err := RenderIR(irPage(t, c))
	if err != nil {
		t.Fatal(err)
	}
	if got := fbPixel(fb, 0, 15); got != (luvatrix.Color{R: 0, G: 255, B: 0, A: 255}) {
		t.Errorf("pixel (0,15) = %+v, want green at bottom-left", got)
	}
	if got := fbPixel(fb, 0, 0); got != luvatrix.Black {
		t.Errorf("pixel (0,0) = %+v, want untouched top-left", got)
	}
}

func TestRenderIRCustomFrame(t *testing.T) {
	c := svgComponent("shifted", "#ffffff", 0, 0, 2, 2, 0)
	frame := "offset"
	c.Frame = &frame
	page, err := ir.NewPage(ir.Page{
		IRVersion:  "planes-v0",
		PageID:     "custom-frame",
		Matrix:     ir.MatrixSpec{Width: 16, Height: 16},
		AspectMode: ir.AspectStretch,
		CoordinateFrames: []ir.FrameSpec{{
			Name:   "offset",
			Origin: [2]float64{8, 8},
			BasisX: [2]float64{1, 0},
			BasisY: [2]float64{0, 1},
		}},
		Components: []ir.Component{c},
	})
	if err != nil {
		t.Fatal(err)
	}
	fb, err := RenderIR(page)
	if err != nil {
		t.Fatal(err)
	}
	if got := fbPixel(fb, 8, 8); got != luvatrix.White {
		t.Errorf("pixel (8,8) = %+v, want white via offset frame", got)
	}
}

func TestRenderIRRectAndTextStyles(t *testing.T) {
	rect := ir.NewComponent("panel", "rect", ir.CoordinateRef{X: 1, Y: 1}, 6, 6)
	rect.Style = map[string]any{"fill": "#ff00ff"}
	label := ir.NewComponent("label", "text", ir.CoordinateRef{X: 0, Y: 0}, 16, 16)
	label.ZIndex = 1
	label.Style = map[string]any{"text": "Hi", "color": "#ffffff"}

	fb, err := RenderIR(irPage(t, rect, label))
	if err != nil {
		t.Fatal(err)
	}
	if got := fbPixel(fb, 3, 3); got.B != 255 || got.R != 255 {
		t.Errorf("rect fill = %+v, want magenta", got)
	}
	var lit int
	b := fb.Bytes()
	for i := 0; i < len(b); i += 4 {
		if b[i] == 255 && b[i+1] == 255 && b[i+2] == 255 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("text drew no white pixels")
	}
}

func TestRenderIRBadBackground(t *testing.T) {
	page := irPage(t)
	page.Background = "#12"
	if _, err := RenderIR(page); err == nil {
		t.Error("malformed background accepted")
	}
}
