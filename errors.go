package luvatrix

import "fmt"

// ConfigError reports invalid construction parameters: non-positive surface
// dimensions, a singular coordinate basis, a reserved frame name, or an
// invalid color format. Objects are never left partially constructed; a
// ConfigError means nothing was built.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "luvatrix: " + e.Msg }

// Configf builds a ConfigError with a formatted message.
func Configf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports a declarative document that fails schema or
// semantic checks. Path names the offending field (e.g.
// "components[2].functions.on_scroll") so the cause can be pinpointed
// without source inspection. A ValidationError from a compile means no
// partial IR was produced.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "luvatrix: validation: " + e.Reason
	}
	return "luvatrix: validation: " + e.Path + ": " + e.Reason
}

// Validatef builds a ValidationError for the given field path.
func Validatef(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// ProtocolError reports a malformed or out-of-sequence host message, or a
// premature end of the input stream. Protocol errors are always fatal to
// the host loop.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "luvatrix: protocol: " + e.Msg }

// Protocolf builds a ProtocolError with a formatted message.
func Protocolf(format string, args ...any) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}
