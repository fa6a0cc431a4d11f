package engine

// EventType identifies an input event kind.
type EventType string

const (
	EventPointerMove EventType = "pointer_move"
	EventPointerDown EventType = "pointer_down"
	EventPointerUp   EventType = "pointer_up"
	EventWheel       EventType = "wheel"
	EventKeyDown     EventType = "key_down"
	EventKeyUp       EventType = "key_up"
)

// InputEvent is one host input sample. Fields beyond Type and Timestamp
// are populated per event kind: pointer events carry X/Y and Button,
// wheel events DeltaX/DeltaY, key events Key/Code.
type InputEvent struct {
	Type      EventType
	Timestamp float64
	X         float64
	Y         float64
	Button    int
	DeltaX    float64
	DeltaY    float64
	Key       string
	Code      string
	Modifiers map[string]bool
}
