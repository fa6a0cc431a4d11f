package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

func richPage(t *testing.T) *Page {
	t.Helper()
	debounce := 16
	icon := NewComponent("icon", "svg", CoordinateRef{X: 4, Y: 8, Frame: strptr(luvatrix.FrameCartesianBL)}, 16, 16)
	icon.ZIndex = 2
	icon.Opacity = 0.75
	icon.Asset = &Asset{Kind: AssetSVG, Source: "icons/play.svg", ContentHash: strptr("abc123"), Preload: true}
	icon.Style = map[string]any{"tint": "#ffffff"}
	icon.Interactions = []Interaction{{
		Event:           "on_press_down",
		Handler:         "controls::play",
		Args:            map[string]any{"track": "current"},
		DebounceMS:      &debounce,
		StopPropagation: true,
	}}
	icon.InteractionBounds = &BoundingBox{X: 0, Y: 0, Width: 24, Height: 24, Frame: strptr(luvatrix.FrameScreenTL)}
	icon.Semantics = Semantics{Label: strptr("Play"), Role: strptr("button")}
	icon.StateBindings = map[string]string{"pressed": "player.playing"}
	icon.DiagnosticsSource = strptr("planes:controls")

	backdrop := NewComponent("backdrop", "rect", CoordinateRef{X: 0, Y: 0}, 64, 32)
	backdrop.Style = map[string]any{}
	backdrop.Interactions = []Interaction{}
	backdrop.StateBindings = map[string]string{}

	page, err := NewPage(Page{
		IRVersion:          "planes-v0",
		AppProtocolVersion: strptr("1.2.0"),
		PageID:             "page-main",
		Route:              strptr("planes:demo"),
		Revision:           3,
		Matrix:             MatrixSpec{Width: 64, Height: 32},
		AspectMode:         AspectPreserve,
		Background:         "#10203040",
		SafeInsets:         Insets{Left: 1, Right: 2, Top: 3, Bottom: 4},
		CoordinateFrames: []FrameSpec{{
			Name:   "hud",
			Origin: [2]float64{0, 31},
			BasisX: [2]float64{1, 0},
			BasisY: [2]float64{0, -1},
		}},
		Components: []Component{backdrop, icon},
		ThemeRef:   strptr("themes/dark"),
	})
	require.NoError(t, err)
	return page
}

func TestToMapFromMapRoundTrip(t *testing.T) {
	page := richPage(t)
	doc := page.ToMap()

	back, err := FromMap(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, back.ToMap(), "document form must survive a decode/encode cycle unchanged")

	assert.Equal(t, page.PageID, back.PageID)
	assert.Equal(t, page.Revision, back.Revision)
	require.Len(t, back.Components, 2)
	assert.Equal(t, page.Components[1].Interactions, back.Components[1].Interactions)
	assert.Equal(t, page.Components[1].Transform, back.Components[1].Transform)
}

func TestToMapEmitsExplicitNulls(t *testing.T) {
	page := basicPage(t, NewComponent("only", "rect", CoordinateRef{}, 1, 1))
	doc := page.ToMap()
	for _, key := range []string{"app_protocol_version", "route", "theme_ref"} {
		v, present := doc[key]
		assert.True(t, present, "missing key %q", key)
		assert.Nil(t, v, "key %q should be an explicit null", key)
	}
	comp := doc["components"].([]any)[0].(map[string]any)
	assert.Nil(t, comp["asset"])
	assert.Nil(t, comp["visual_bounds"])
	assert.Contains(t, comp, "diagnostics_source")
}

func TestFromMapFromJSON(t *testing.T) {
	const raw = `{
	  "ir_version": "planes-v0",
	  "page_id": "page-json",
	  "matrix": {"width": 320, "height": 200},
	  "aspect_mode": "stretch",
	  "default_frame": "screen_tl",
	  "components": [
	    {
	      "id": "hero",
	      "type": "svg",
	      "position": {"x": 10, "y": 20, "frame": "cartesian_bl"},
	      "width": 50,
	      "height": 40,
	      "z_index": 7,
	      "asset": {"kind": "svg", "source": "hero.svg"}
	    }
	  ]
	}`
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	page, err := FromMap(payload)
	require.NoError(t, err)
	assert.Equal(t, 320, page.Matrix.Width)
	assert.Equal(t, PixelFormatRGBA255, page.Matrix.PixelFormat)
	assert.Equal(t, "#000000", page.Background)

	hero := page.Components[0]
	assert.Equal(t, 7, hero.ZIndex)
	assert.True(t, hero.Visible)
	assert.True(t, hero.Enabled)
	assert.Equal(t, 1.0, hero.Opacity)
	assert.Equal(t, IdentityTransform(), hero.Transform)
	require.NotNil(t, hero.Asset)
	assert.Equal(t, AssetSVG, hero.Asset.Kind)
	assert.Equal(t, luvatrix.FrameCartesianBL, hero.ResolvedFrame(page.DefaultFrame))
}

func TestFromMapFieldPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		path    string
	}{
		{
			"missing matrix",
			map[string]any{"ir_version": "v", "page_id": "p", "aspect_mode": "stretch"},
			"matrix",
		},
		{
			"bad position",
			map[string]any{
				"ir_version": "v", "page_id": "p", "aspect_mode": "stretch",
				"matrix":     map[string]any{"width": 1, "height": 1},
				"components": []any{map[string]any{"id": "c", "type": "t", "position": "nope"}},
			},
			"components[c].position",
		},
		{
			"bad frame pair",
			map[string]any{
				"ir_version": "v", "page_id": "p", "aspect_mode": "stretch",
				"matrix": map[string]any{"width": 1, "height": 1},
				"coordinate_frames": []any{map[string]any{
					"name": "f", "origin": []any{1.0}, "basis_x": []any{1.0, 0.0}, "basis_y": []any{0.0, 1.0},
				}},
			},
			"coordinate_frames[].origin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.payload)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}
