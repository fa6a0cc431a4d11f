package ir

import (
	"encoding/json"
	"strconv"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// ToMap serializes the page into the document form, the exact inverse of
// FromMap. Optional fields serialize as explicit nulls so the document
// shape is stable regardless of content.
func (p *Page) ToMap() map[string]any {
	frames := make([]any, 0, len(p.CoordinateFrames))
	for _, f := range p.CoordinateFrames {
		frames = append(frames, map[string]any{
			"name":    f.Name,
			"origin":  []float64{f.Origin[0], f.Origin[1]},
			"basis_x": []float64{f.BasisX[0], f.BasisX[1]},
			"basis_y": []float64{f.BasisY[0], f.BasisY[1]},
		})
	}
	components := make([]any, 0, len(p.Components))
	for _, c := range p.Components {
		components = append(components, c.toMap())
	}
	return map[string]any{
		"ir_version":           p.IRVersion,
		"app_protocol_version": strOrNil(p.AppProtocolVersion),
		"page_id":              p.PageID,
		"route":                strOrNil(p.Route),
		"revision":             p.Revision,
		"matrix": map[string]any{
			"width":        p.Matrix.Width,
			"height":       p.Matrix.Height,
			"pixel_format": p.Matrix.PixelFormat,
		},
		"aspect_mode":   p.AspectMode,
		"default_frame": p.DefaultFrame,
		"background":    p.Background,
		"safe_insets": map[string]any{
			"left":   p.SafeInsets.Left,
			"right":  p.SafeInsets.Right,
			"top":    p.SafeInsets.Top,
			"bottom": p.SafeInsets.Bottom,
		},
		"coordinate_frames": frames,
		"components":        components,
		"theme_ref":         strOrNil(p.ThemeRef),
	}
}

func (c Component) toMap() map[string]any {
	interactions := make([]any, 0, len(c.Interactions))
	for _, it := range c.Interactions {
		var debounce, throttle any
		if it.DebounceMS != nil {
			debounce = *it.DebounceMS
		}
		if it.ThrottleMS != nil {
			throttle = *it.ThrottleMS
		}
		interactions = append(interactions, map[string]any{
			"event":            it.Event,
			"handler":          it.Handler,
			"args":             cloneAnyMap(it.Args),
			"debounce_ms":      debounce,
			"throttle_ms":      throttle,
			"stop_propagation": it.StopPropagation,
		})
	}
	var asset any
	if c.Asset != nil {
		asset = map[string]any{
			"kind":         c.Asset.Kind,
			"source":       c.Asset.Source,
			"content_hash": strOrNil(c.Asset.ContentHash),
			"preload":      c.Asset.Preload,
		}
	}
	bindings := make(map[string]any, len(c.StateBindings))
	for k, v := range c.StateBindings {
		bindings[k] = v
	}
	return map[string]any{
		"id":   c.ID,
		"type": c.Type,
		"position": map[string]any{
			"x":     c.Position.X,
			"y":     c.Position.Y,
			"frame": strOrNil(c.Position.Frame),
		},
		"width":              c.Width,
		"height":             c.Height,
		"z_index":            c.ZIndex,
		"frame":              strOrNil(c.Frame),
		"visible":            c.Visible,
		"enabled":            c.Enabled,
		"opacity":            c.Opacity,
		"asset":              asset,
		"style":              cloneAnyMap(c.Style),
		"interactions":       interactions,
		"visual_bounds":      bboxToMap(c.VisualBounds),
		"interaction_bounds": bboxToMap(c.InteractionBounds),
		"transform": map[string]any{
			"scale_x":      c.Transform.ScaleX,
			"scale_y":      c.Transform.ScaleY,
			"rotation_deg": c.Transform.RotationDeg,
			"anchor_x":     c.Transform.AnchorX,
			"anchor_y":     c.Transform.AnchorY,
		},
		"semantics": map[string]any{
			"label":   strOrNil(c.Semantics.Label),
			"role":    strOrNil(c.Semantics.Role),
			"tooltip": strOrNil(c.Semantics.Tooltip),
		},
		"state_bindings":     bindings,
		"diagnostics_source": strOrNil(c.DiagnosticsSource),
	}
}

func bboxToMap(b *BoundingBox) any {
	if b == nil {
		return nil
	}
	return map[string]any{
		"x":      b.X,
		"y":      b.Y,
		"width":  b.Width,
		"height": b.Height,
		"frame":  strOrNil(b.Frame),
	}
}

// FromMap builds a validated page from a decoded document, applying the
// document defaults (revision 0, screen_tl, black background, identity
// transform). Every failure names the offending field path.
func FromMap(payload map[string]any) (*Page, error) {
	matrixRaw, err := reqMap(payload, "matrix", "matrix")
	if err != nil {
		return nil, err
	}
	insetsRaw, err := mapOr(payload, "safe_insets", "safe_insets")
	if err != nil {
		return nil, err
	}
	irVersion, err := reqString(payload, "ir_version", "ir_version")
	if err != nil {
		return nil, err
	}
	pageID, err := reqString(payload, "page_id", "page_id")
	if err != nil {
		return nil, err
	}
	aspectMode, err := reqString(payload, "aspect_mode", "aspect_mode")
	if err != nil {
		return nil, err
	}
	width, err := reqInt(matrixRaw, "width", "matrix.width")
	if err != nil {
		return nil, err
	}
	height, err := reqInt(matrixRaw, "height", "matrix.height")
	if err != nil {
		return nil, err
	}

	frameList, err := listOr(payload, "coordinate_frames", "coordinate_frames")
	if err != nil {
		return nil, err
	}
	frames := make([]FrameSpec, 0, len(frameList))
	for _, item := range frameList {
		f, err := frameFromAny(item)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	componentList, err := listOr(payload, "components", "components")
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, len(componentList))
	for _, item := range componentList {
		c, err := componentFromAny(item)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	return NewPage(Page{
		IRVersion:          irVersion,
		AppProtocolVersion: optString(payload["app_protocol_version"]),
		PageID:             pageID,
		Route:              optString(payload["route"]),
		Revision:           intOr(payload, "revision", 0),
		Matrix: MatrixSpec{
			Width:       width,
			Height:      height,
			PixelFormat: stringOr(matrixRaw, "pixel_format", PixelFormatRGBA255),
		},
		AspectMode:   aspectMode,
		DefaultFrame: stringOr(payload, "default_frame", luvatrix.FrameScreenTL),
		Background:   stringOr(payload, "background", "#000000"),
		SafeInsets: Insets{
			Left:   floatOr(insetsRaw, "left", 0),
			Right:  floatOr(insetsRaw, "right", 0),
			Top:    floatOr(insetsRaw, "top", 0),
			Bottom: floatOr(insetsRaw, "bottom", 0),
		},
		CoordinateFrames: frames,
		Components:       components,
		ThemeRef:         optString(payload["theme_ref"]),
	})
}

func frameFromAny(item any) (FrameSpec, error) {
	raw, ok := item.(map[string]any)
	if !ok {
		return FrameSpec{}, luvatrix.Validatef("coordinate_frames[]", "must be an object")
	}
	name, err := reqString(raw, "name", "coordinate_frames[].name")
	if err != nil {
		return FrameSpec{}, err
	}
	origin, err := pairFromAny(raw["origin"], "coordinate_frames[].origin")
	if err != nil {
		return FrameSpec{}, err
	}
	basisX, err := pairFromAny(raw["basis_x"], "coordinate_frames[].basis_x")
	if err != nil {
		return FrameSpec{}, err
	}
	basisY, err := pairFromAny(raw["basis_y"], "coordinate_frames[].basis_y")
	if err != nil {
		return FrameSpec{}, err
	}
	return FrameSpec{Name: name, Origin: origin, BasisX: basisX, BasisY: basisY}, nil
}

func componentFromAny(item any) (Component, error) {
	raw, ok := item.(map[string]any)
	if !ok {
		return Component{}, luvatrix.Validatef("components[]", "must be an object")
	}
	id, err := reqString(raw, "id", "components[].id")
	if err != nil {
		return Component{}, err
	}
	path := "components[" + id + "]"
	typ, err := reqString(raw, "type", path+".type")
	if err != nil {
		return Component{}, err
	}
	posRaw, err := reqMap(raw, "position", path+".position")
	if err != nil {
		return Component{}, err
	}
	posX, err := reqFloat(posRaw, "x", path+".position.x")
	if err != nil {
		return Component{}, err
	}
	posY, err := reqFloat(posRaw, "y", path+".position.y")
	if err != nil {
		return Component{}, err
	}
	asset, err := assetFromAny(raw["asset"], path+".asset")
	if err != nil {
		return Component{}, err
	}
	visual, err := bboxFromAny(raw["visual_bounds"], path+".visual_bounds")
	if err != nil {
		return Component{}, err
	}
	hit, err := bboxFromAny(raw["interaction_bounds"], path+".interaction_bounds")
	if err != nil {
		return Component{}, err
	}
	transformRaw, err := mapOr(raw, "transform", path+".transform")
	if err != nil {
		return Component{}, err
	}
	semanticsRaw, err := mapOr(raw, "semantics", path+".semantics")
	if err != nil {
		return Component{}, err
	}
	interactionsRaw, err := listOr(raw, "interactions", path+".interactions")
	if err != nil {
		return Component{}, err
	}
	interactions := make([]Interaction, 0, len(interactionsRaw))
	for i, ir := range interactionsRaw {
		it, err := interactionFromAny(ir, path+".interactions["+strconv.Itoa(i)+"]")
		if err != nil {
			return Component{}, err
		}
		interactions = append(interactions, it)
	}
	bindings, err := stringMapOr(raw, "state_bindings", path+".state_bindings")
	if err != nil {
		return Component{}, err
	}
	style := map[string]any{}
	if s, ok := raw["style"].(map[string]any); ok {
		style = cloneAnyMap(s)
	}

	return Component{
		ID:                id,
		Type:              typ,
		Position:          CoordinateRef{X: posX, Y: posY, Frame: optString(posRaw["frame"])},
		Width:             floatOr(raw, "width", 0),
		Height:            floatOr(raw, "height", 0),
		ZIndex:            intOr(raw, "z_index", 0),
		Frame:             optString(raw["frame"]),
		Visible:           boolOr(raw, "visible", true),
		Enabled:           boolOr(raw, "enabled", true),
		Opacity:           floatOr(raw, "opacity", 1.0),
		Asset:             asset,
		Style:             style,
		Interactions:      interactions,
		VisualBounds:      visual,
		InteractionBounds: hit,
		Transform: Transform{
			ScaleX:      floatOr(transformRaw, "scale_x", 1.0),
			ScaleY:      floatOr(transformRaw, "scale_y", 1.0),
			RotationDeg: floatOr(transformRaw, "rotation_deg", 0),
			AnchorX:     floatOr(transformRaw, "anchor_x", 0),
			AnchorY:     floatOr(transformRaw, "anchor_y", 0),
		},
		Semantics: Semantics{
			Label:   optString(semanticsRaw["label"]),
			Role:    optString(semanticsRaw["role"]),
			Tooltip: optString(semanticsRaw["tooltip"]),
		},
		StateBindings:     bindings,
		DiagnosticsSource: optString(raw["diagnostics_source"]),
	}, nil
}

func assetFromAny(v any, path string) (*Asset, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	kind, err := reqString(raw, "kind", path+".kind")
	if err != nil {
		return nil, err
	}
	source, err := reqString(raw, "source", path+".source")
	if err != nil {
		return nil, err
	}
	return &Asset{
		Kind:        kind,
		Source:      source,
		ContentHash: optString(raw["content_hash"]),
		Preload:     boolOr(raw, "preload", false),
	}, nil
}

func bboxFromAny(v any, path string) (*BoundingBox, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	x, err := reqFloat(raw, "x", path+".x")
	if err != nil {
		return nil, err
	}
	y, err := reqFloat(raw, "y", path+".y")
	if err != nil {
		return nil, err
	}
	w, err := reqFloat(raw, "width", path+".width")
	if err != nil {
		return nil, err
	}
	h, err := reqFloat(raw, "height", path+".height")
	if err != nil {
		return nil, err
	}
	return &BoundingBox{X: x, Y: y, Width: w, Height: h, Frame: optString(raw["frame"])}, nil
}

func interactionFromAny(v any, path string) (Interaction, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return Interaction{}, luvatrix.Validatef(path, "must be an object")
	}
	event, err := reqString(raw, "event", path+".event")
	if err != nil {
		return Interaction{}, err
	}
	handler, err := reqString(raw, "handler", path+".handler")
	if err != nil {
		return Interaction{}, err
	}
	args := map[string]any{}
	if a, ok := raw["args"].(map[string]any); ok {
		args = cloneAnyMap(a)
	} else if raw["args"] != nil {
		return Interaction{}, luvatrix.Validatef(path+".args", "must be an object")
	}
	return Interaction{
		Event:           event,
		Handler:         handler,
		Args:            args,
		DebounceMS:      optInt(raw["debounce_ms"]),
		ThrottleMS:      optInt(raw["throttle_ms"]),
		StopPropagation: boolOr(raw, "stop_propagation", true),
	}, nil
}

// --- decoding helpers ---

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optString(v any) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func optInt(v any) *int {
	if n, ok := asFloat(v); ok {
		i := int(n)
		return &i
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func reqFloat(m map[string]any, key, path string) (float64, error) {
	f, ok := asFloat(m[key])
	if !ok {
		return 0, luvatrix.Validatef(path, "must be a number")
	}
	return f, nil
}

func floatOr(m map[string]any, key string, def float64) float64 {
	if f, ok := asFloat(m[key]); ok {
		return f
	}
	return def
}

func reqInt(m map[string]any, key, path string) (int, error) {
	f, ok := asFloat(m[key])
	if !ok {
		return 0, luvatrix.Validatef(path, "must be an integer")
	}
	return int(f), nil
}

func intOr(m map[string]any, key string, def int) int {
	if f, ok := asFloat(m[key]); ok {
		return int(f)
	}
	return def
}

func reqString(m map[string]any, key, path string) (string, error) {
	s, ok := m[key].(string)
	if !ok {
		return "", luvatrix.Validatef(path, "must be a string")
	}
	return s, nil
}

func stringOr(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

func boolOr(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func reqMap(m map[string]any, key, path string) (map[string]any, error) {
	sub, ok := m[key].(map[string]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	return sub, nil
}

// mapOr returns the nested object, an empty map when the key is absent,
// and an error when the key holds a non-object.
func mapOr(m map[string]any, key, path string) (map[string]any, error) {
	v, present := m[key]
	if !present {
		return map[string]any{}, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	return sub, nil
}

func listOr(m map[string]any, key, path string) ([]any, error) {
	v, present := m[key]
	if !present || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be a list")
	}
	return list, nil
}

func stringMapOr(m map[string]any, key, path string) (map[string]string, error) {
	v, present := m[key]
	if !present {
		return map[string]string{}, nil
	}
	out := map[string]string{}
	switch raw := v.(type) {
	case map[string]any:
		for k, val := range raw {
			s, ok := val.(string)
			if !ok {
				return nil, luvatrix.Validatef(path, "values must be strings")
			}
			out[k] = s
		}
	case map[string]string:
		for k, val := range raw {
			out[k] = val
		}
	default:
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	return out, nil
}

func pairFromAny(v any, path string) ([2]float64, error) {
	switch raw := v.(type) {
	case []any:
		if len(raw) == 2 {
			a, okA := asFloat(raw[0])
			b, okB := asFloat(raw[1])
			if okA && okB {
				return [2]float64{a, b}, nil
			}
		}
	case []float64:
		if len(raw) == 2 {
			return [2]float64{raw[0], raw[1]}, nil
		}
	case [2]float64:
		return raw, nil
	}
	return [2]float64{}, luvatrix.Validatef(path, "must be an [x, y] pair")
}

func cloneAnyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
