package engine

import (
	"strings"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
	"github.com/0202alcc/luvatrix-sub001/ir"
	"github.com/0202alcc/luvatrix-sub001/svg"
	"github.com/0202alcc/luvatrix-sub001/text"
)

// RenderIR rasterizes a compiled IR page into a fresh framebuffer.
// Components draw in z-order (mount order breaking ties), positions are
// resolved through the page's coordinate frames, and vector assets are
// parsed once per distinct source within the call.
//
// Unlike the engine loop's declaration-order element path, this is the
// ordering-guaranteed pipeline for compiled pages.
func RenderIR(page *ir.Page) (*luvatrix.FrameBuffer, error) {
	reg, err := luvatrix.NewRegistry(page.Matrix.Width, page.Matrix.Height)
	if err != nil {
		return nil, err
	}
	for _, f := range page.CoordinateFrames {
		err := reg.DefineFrame(f.Name,
			luvatrix.Point{X: f.Origin[0], Y: f.Origin[1]},
			luvatrix.Point{X: f.BasisX[0], Y: f.BasisX[1]},
			luvatrix.Point{X: f.BasisY[0], Y: f.BasisY[1]})
		if err != nil {
			return nil, err
		}
	}
	if err := reg.SetDefaultFrame(page.DefaultFrame); err != nil {
		return nil, err
	}

	background, err := luvatrix.ParseBackground(page.Background)
	if err != nil {
		return nil, err
	}
	fb, err := luvatrix.NewFrameBuffer(page.Matrix.Width, page.Matrix.Height, background)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]*svg.Document)
	fonts := text.NewSource()
	for _, comp := range page.OrderedComponentsForDraw() {
		if !comp.Visible {
			continue
		}
		frame := comp.ResolvedFrame(page.DefaultFrame)
		pos, err := reg.ToRenderCoords(luvatrix.Point{X: comp.Position.X, Y: comp.Position.Y}, frame)
		if err != nil {
			return nil, err
		}
		if err := renderComponent(fb, docs, fonts, comp, pos); err != nil {
			return nil, err
		}
	}
	return fb, nil
}

func renderComponent(fb *luvatrix.FrameBuffer, docs map[string]*svg.Document, fonts *text.Source, comp ir.Component, pos luvatrix.Point) error {
	if comp.Asset != nil && comp.Asset.Kind == ir.AssetSVG {
		doc, err := resolveDoc(docs, comp.Asset.Source)
		if err != nil {
			return err
		}
		doc.RenderToRect(fb, pos.X, pos.Y, comp.Width, comp.Height, comp.Opacity)
		return nil
	}
	switch comp.Type {
	case "text":
		content, _ := comp.Style["text"].(string)
		if content == "" {
			return nil
		}
		c := luvatrix.White
		if s, ok := comp.Style["color"].(string); ok {
			if parsed, ok := luvatrix.ParseColor(s); ok {
				c = parsed
			}
		}
		size := 13.0
		if v, ok := comp.Style["size"].(float64); ok && v > 0 {
			size = v
		}
		// Position is the text box's top-left; the baseline sits one
		// line height below it.
		_, lineH := fonts.Measure(content, size)
		fonts.Draw(fb, content, int(pos.X), int(pos.Y+lineH), size, c.WithOpacity(comp.Opacity).Color())
	case "rect":
		if s, ok := comp.Style["fill"].(string); ok {
			if fill, ok := luvatrix.ParseColor(s); ok {
				fb.DrawRect(int(pos.X), int(pos.Y), int(comp.Width), int(comp.Height), fill.WithOpacity(comp.Opacity))
			}
		}
	}
	// Other component types (viewport, containers) reserve space but
	// draw nothing themselves.
	return nil
}

// resolveDoc parses inline markup or a file path, caching per source.
func resolveDoc(docs map[string]*svg.Document, source string) (*svg.Document, error) {
	if doc, ok := docs[source]; ok {
		return doc, nil
	}
	var doc *svg.Document
	var err error
	if strings.HasPrefix(strings.TrimSpace(source), "<") {
		doc, err = svg.Parse(source)
	} else {
		doc, err = svg.ParseFile(source)
	}
	if err != nil {
		return nil, err
	}
	docs[source] = doc
	return doc, nil
}
