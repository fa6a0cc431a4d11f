package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Element is one vector asset placed on a lightweight page.
type Element struct {
	ID        string
	SVGPath   string
	X         float64
	Y         float64
	Scale     float64
	Opacity   float64
	Animation map[string]any
}

// Page is the lightweight page model the engine loop renders: a surface
// size, a background, and elements drawn in declaration order.
type Page struct {
	PageID     string
	Width      int
	Height     int
	Background luvatrix.Color
	Elements   []Element
}

// defaultBackground is used when page.json declares no parseable color.
var defaultBackground = luvatrix.Color{R: 12, G: 14, B: 18, A: 255}

type pageDoc struct {
	PageID   string `json:"page_id"`
	Viewport struct {
		Width  *int `json:"width"`
		Height *int `json:"height"`
	} `json:"viewport"`
	Background string       `json:"background"`
	Elements   []elementDoc `json:"elements"`
}

type elementDoc struct {
	ID      string         `json:"id"`
	SVG     string         `json:"svg"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Scale   *float64       `json:"scale"`
	Opacity *float64       `json:"opacity"`
	Animate map[string]any `json:"animate"`
}

// LoadPage reads <appDir>/page.json. The viewport defaults to 640x360,
// elements without an svg reference are skipped, and asset paths resolve
// relative to appDir.
func LoadPage(appDir string) (*Page, error) {
	raw, err := os.ReadFile(filepath.Join(appDir, "page.json"))
	if err != nil {
		return nil, err
	}
	var doc pageDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, luvatrix.Configf("page.json: %v", err)
	}

	width, height := 640, 360
	if doc.Viewport.Width != nil {
		width = *doc.Viewport.Width
	}
	if doc.Viewport.Height != nil {
		height = *doc.Viewport.Height
	}
	background := defaultBackground
	if c, ok := luvatrix.ParseColor(doc.Background); ok {
		background = c
	}

	elements := make([]Element, 0, len(doc.Elements))
	for _, el := range doc.Elements {
		if el.SVG == "" {
			continue
		}
		svgPath := filepath.Join(appDir, el.SVG)
		id := el.ID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(svgPath), filepath.Ext(svgPath))
		}
		scale, opacity := 1.0, 1.0
		if el.Scale != nil {
			scale = *el.Scale
		}
		if el.Opacity != nil {
			opacity = *el.Opacity
		}
		elements = append(elements, Element{
			ID:        id,
			SVGPath:   svgPath,
			X:         el.X,
			Y:         el.Y,
			Scale:     scale,
			Opacity:   opacity,
			Animation: el.Animate,
		})
	}

	pageID := doc.PageID
	if pageID == "" {
		pageID = filepath.Base(appDir)
	}
	return &Page{
		PageID:     pageID,
		Width:      width,
		Height:     height,
		Background: background,
		Elements:   elements,
	}, nil
}
