package planes

import (
	"fmt"
	"sort"
	"strings"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
	"github.com/0202alcc/luvatrix-sub001/ir"
)

// IRVersion tags every page produced by this compiler.
const IRVersion = "planes-v0"

// supportedHooks is the closed set of human-device-interaction hook
// names a component may bind handlers to.
var supportedHooks = map[string]bool{
	"on_press_down":       true,
	"on_press_repeat":     true,
	"on_press_hold_start": true,
	"on_press_hold_tick":  true,
	"on_press_up":         true,
	"on_press_hold_end":   true,
	"on_press_single":     true,
	"on_press_double":     true,
	"on_press_cancel":     true,
	"on_hover_start":      true,
	"on_hover_end":        true,
	"on_drag_start":       true,
	"on_drag_move":        true,
	"on_drag_end":         true,
	"on_scroll":           true,
	"on_pinch":            true,
	"on_rotate":           true,
}

// SupportedHooks returns the hook names in sorted order.
func SupportedHooks() []string {
	out := make([]string, 0, len(supportedHooks))
	for name := range supportedHooks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsSupportedHook reports whether name is a recognized interaction hook.
func IsSupportedHook(name string) bool {
	return supportedHooks[name]
}

// AppMetadata is the resolved presentation metadata of a Planes app.
// Tab fields fall back to the app title and icon when the manifest has
// no web section.
type AppMetadata struct {
	Title    string
	Icon     string
	TabTitle string
	TabIcon  string
}

// ResolveWebMetadata extracts and defaults the app presentation fields.
func ResolveWebMetadata(app map[string]any) (AppMetadata, error) {
	title, err := requireStr(app, "title", "app.title")
	if err != nil {
		return AppMetadata{}, err
	}
	icon, err := requireStr(app, "icon", "app.icon")
	if err != nil {
		return AppMetadata{}, err
	}
	web := map[string]any{}
	if raw, present := app["web"]; present && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return AppMetadata{}, luvatrix.Validatef("app.web", "must be an object")
		}
		web = m
	}
	tabTitle := title
	if v, present := web["tab_title"]; present && v != nil {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return AppMetadata{}, luvatrix.Validatef("app.web.tab_title", "must be a non-empty string")
		}
		tabTitle = s
	}
	tabIcon := icon
	if v, present := web["tab_icon"]; present && v != nil {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return AppMetadata{}, luvatrix.Validatef("app.web.tab_icon", "must be a non-empty string")
		}
		tabIcon = s
	}
	return AppMetadata{Title: title, Icon: icon, TabTitle: tabTitle, TabIcon: tabIcon}, nil
}

// Validate checks a Planes manifest without compiling it. The first
// violation aborts with the offending field path.
func Validate(payload map[string]any) error {
	if _, err := requireStr(payload, "planes_protocol_version", "planes_protocol_version"); err != nil {
		return err
	}
	app, err := expectObj(payload["app"], "app")
	if err != nil {
		return err
	}
	plane, err := expectObj(payload["plane"], "plane")
	if err != nil {
		return err
	}
	components, ok := payload["components"].([]any)
	if !ok {
		return luvatrix.Validatef("components", "must be a list")
	}
	scripts := []any{}
	if raw, present := payload["scripts"]; present {
		scripts, ok = raw.([]any)
		if !ok {
			return luvatrix.Validatef("scripts", "must be a list")
		}
	}

	if _, err := ResolveWebMetadata(app); err != nil {
		return err
	}
	if _, err := requireStr(app, "id", "app.id"); err != nil {
		return err
	}
	if _, err := requireStr(plane, "id", "plane.id"); err != nil {
		return err
	}
	if _, err := requireStr(plane, "default_frame", "plane.default_frame"); err != nil {
		return err
	}

	scriptIDs := map[string]bool{}
	for i, raw := range scripts {
		path := fmt.Sprintf("scripts[%d]", i)
		script, err := expectObj(raw, path)
		if err != nil {
			return err
		}
		id, err := requireStr(script, "id", path+".id")
		if err != nil {
			return err
		}
		if _, err := requireStr(script, "lang", path+".lang"); err != nil {
			return err
		}
		if _, err := requireStr(script, "src", path+".src"); err != nil {
			return err
		}
		if scriptIDs[id] {
			return luvatrix.Validatef(path, "duplicate script id %q", id)
		}
		scriptIDs[id] = true
	}

	componentIDs := map[string]bool{}
	for i, raw := range components {
		path := fmt.Sprintf("components[%d]", i)
		comp, err := expectObj(raw, path)
		if err != nil {
			return err
		}
		id, err := requireStr(comp, "id", path+".id")
		if err != nil {
			return err
		}
		if componentIDs[id] {
			return luvatrix.Validatef(path, "duplicate component id %q", id)
		}
		componentIDs[id] = true
		typ, err := requireStr(comp, "type", path+".type")
		if err != nil {
			return err
		}
		if _, err := expectObj(comp["position"], path+".position"); err != nil {
			return err
		}
		if _, err := expectObj(comp["size"], path+".size"); err != nil {
			return err
		}
		if raw, present := comp["z_index"]; present {
			if !isIntValue(raw) {
				return luvatrix.Validatef(path+".z_index", "must be an integer")
			}
		}
		if err := validateFunctions(comp, path, scriptIDs); err != nil {
			return err
		}
		if typ == "viewport" {
			if err := validateViewport(comp, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFunctions(comp map[string]any, path string, scriptIDs map[string]bool) error {
	raw, present := comp["functions"]
	if !present {
		return nil
	}
	functions, ok := raw.(map[string]any)
	if !ok {
		return luvatrix.Validatef(path+".functions", "must be an object")
	}
	for _, hook := range sortedKeys(functions) {
		hookPath := path + ".functions." + hook
		if !supportedHooks[hook] {
			return luvatrix.Validatef(hookPath, "unsupported hook")
		}
		target, ok := functions[hook].(string)
		if !ok || !strings.Contains(target, "::") {
			return luvatrix.Validatef(hookPath, "must use <script_id>::<function_name>")
		}
		scriptID, fnName, _ := strings.Cut(target, "::")
		if scriptID == "" || fnName == "" {
			return luvatrix.Validatef(hookPath, "invalid target %q", target)
		}
		if len(scriptIDs) > 0 && !scriptIDs[scriptID] {
			return luvatrix.Validatef(hookPath, "references unknown script %q", scriptID)
		}
	}
	return nil
}

// validateViewport enforces the viewport contract: clipping on, a
// content reference, and numeric scroll offsets.
func validateViewport(comp map[string]any, path string) error {
	props := map[string]any{}
	if raw, present := comp["props"]; present {
		var err error
		props, err = expectObj(raw, path+".props")
		if err != nil {
			return err
		}
	}
	if clip, _ := props["clip"].(bool); !clip {
		return luvatrix.Validatef(path+".props.clip", "viewport requires props.clip=true")
	}
	if _, err := requireStr(props, "content_ref", path+".props.content_ref"); err != nil {
		return err
	}
	scroll := map[string]any{}
	if raw, present := props["scroll"]; present {
		var err error
		scroll, err = expectObj(raw, path+".props.scroll")
		if err != nil {
			return err
		}
	}
	for _, axis := range []string{"x", "y"} {
		if raw, present := scroll[axis]; present && !isNumber(raw) {
			return luvatrix.Validatef(path+".props.scroll."+axis, "must be numeric")
		}
	}
	return nil
}

// Compile validates the manifest and lowers it to a UI IR page sized to
// the given matrix. Any aspect mode other than "preserve" normalizes to
// "stretch".
func Compile(payload map[string]any, matrixWidth, matrixHeight int, aspectMode string) (*ir.Page, error) {
	if err := Validate(payload); err != nil {
		return nil, err
	}
	app := payload["app"].(map[string]any)
	plane := payload["plane"].(map[string]any)
	componentsRaw := payload["components"].([]any)
	defaultFrame := plane["default_frame"].(string)

	components := make([]ir.Component, 0, len(componentsRaw))
	for i, raw := range componentsRaw {
		comp := raw.(map[string]any)
		path := fmt.Sprintf("components[%d]", i)
		built, err := compileComponent(comp, path, matrixWidth, matrixHeight)
		if err != nil {
			return nil, err
		}
		components = append(components, built)
	}

	background := "#000000"
	if raw, present := plane["background"]; present {
		bg, err := expectObj(raw, "plane.background")
		if err != nil {
			return nil, err
		}
		if color, ok := bg["color"].(string); ok {
			background = color
		}
	}
	if aspectMode != ir.AspectPreserve {
		aspectMode = ir.AspectStretch
	}
	protocolVersion := payload["planes_protocol_version"].(string)
	appID, _ := app["id"].(string)
	route := "planes:" + appID

	return ir.NewPage(ir.Page{
		IRVersion:          IRVersion,
		AppProtocolVersion: &protocolVersion,
		PageID:             plane["id"].(string),
		Route:              &route,
		Matrix:             ir.MatrixSpec{Width: matrixWidth, Height: matrixHeight},
		AspectMode:         aspectMode,
		DefaultFrame:       defaultFrame,
		Background:         background,
		Components:         components,
	})
}

func compileComponent(comp map[string]any, path string, matrixWidth, matrixHeight int) (ir.Component, error) {
	pos := comp["position"].(map[string]any)
	size := comp["size"].(map[string]any)

	var frame *string
	if raw, present := pos["frame"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return ir.Component{}, luvatrix.Validatef(path+".position.frame", "must be a string")
		}
		frame = &s
	}
	width, err := ResolveDimension(size["width"], matrixWidth, matrixHeight, path+".size.width")
	if err != nil {
		return ir.Component{}, err
	}
	height, err := ResolveDimension(size["height"], matrixWidth, matrixHeight, path+".size.height")
	if err != nil {
		return ir.Component{}, err
	}

	typ := comp["type"].(string)
	style := map[string]any{}
	if props, ok := comp["props"].(map[string]any); ok {
		style = props
	}
	var asset *ir.Asset
	if typ == "svg" {
		source, err := requireStr(style, "svg", path+".props.svg")
		if err != nil {
			return ir.Component{}, err
		}
		asset = &ir.Asset{Kind: ir.AssetSVG, Source: source}
	}

	built := ir.NewComponent(comp["id"].(string), typ, ir.CoordinateRef{
		X:     numberOr(pos, "x", 0),
		Y:     numberOr(pos, "y", 0),
		Frame: frame,
	}, width, height)
	built.ZIndex = intOr(comp, "z_index", 0)
	if v, ok := comp["visible"].(bool); ok {
		built.Visible = v
	}
	built.Style = style
	built.Asset = asset
	if raw, present := comp["functions"]; present {
		functions := raw.(map[string]any)
		// Hooks compile in sorted order so output is deterministic.
		for _, event := range sortedKeys(functions) {
			built.Interactions = append(built.Interactions, ir.Interaction{
				Event:           event,
				Handler:         functions[event].(string),
				Args:            map[string]any{},
				StopPropagation: true,
			})
		}
	}
	return built, nil
}

// ResolveDimension converts a {value, unit} size spec into logical
// pixels. vw and % resolve against the viewport width, vh against the
// height; pt and cm convert at 96 dpi.
func ResolveDimension(raw any, viewportW, viewportH int, path string) (float64, error) {
	spec, err := expectObj(raw, path)
	if err != nil {
		return 0, err
	}
	unit, err := requireStr(spec, "unit", path+".unit")
	if err != nil {
		return 0, err
	}
	value, ok := asNumber(spec["value"])
	if !ok {
		return 0, luvatrix.Validatef(path+".value", "must be numeric")
	}
	switch unit {
	case "px":
		return value, nil
	case "vw":
		return (value / 100.0) * float64(viewportW), nil
	case "vh":
		return (value / 100.0) * float64(viewportH), nil
	case "%":
		return (value / 100.0) * float64(viewportW), nil
	case "pt":
		return value * (96.0 / 72.0), nil
	case "cm":
		return value * (96.0 / 2.54), nil
	}
	return 0, luvatrix.Validatef(path+".unit", "unsupported unit %q", unit)
}

func expectObj(value any, path string) (map[string]any, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, luvatrix.Validatef(path, "must be an object")
	}
	return obj, nil
}

func requireStr(m map[string]any, key, path string) (string, error) {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", luvatrix.Validatef(path, "must be a non-empty string")
	}
	return s, nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := asNumber(v)
	return ok
}

// isIntValue accepts native ints and whole JSON floats.
func isIntValue(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return n == float64(int64(n))
	}
	return false
}

func numberOr(m map[string]any, key string, def float64) float64 {
	if n, ok := asNumber(m[key]); ok {
		return n
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	if n, ok := asNumber(m[key]); ok {
		return int(n)
	}
	return def
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
