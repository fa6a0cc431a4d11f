package hostproto

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/gowebpki/jcs"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Message types.
const (
	TypeHello    = "host.hello"
	TypeTick     = "host.tick"
	TypeStop     = "host.stop"
	TypeInitOK   = "app.init_ok"
	TypeCommands = "app.commands"
	TypeStopOK   = "app.stop_ok"
)

// Hello is the validated opening handshake: a parseable semantic
// protocol version, a positive surface matrix, and a normalized
// (deduplicated, sorted) capability list.
type Hello struct {
	ProtocolVersion string
	Width           int
	Height          int
	Capabilities    []string
}

// Tick is one host-driven time step.
type Tick struct {
	DT float64
}

// App is the application object a protocol session drives.
type App interface {
	Init(hello Hello) error
	Tick(event Tick) ([]map[string]any, error)
	Stop() error
}

// Run executes one protocol session over the given streams. It returns
// nil after a clean host.stop exchange; every other termination is an
// error, protocol violations as ProtocolError.
func Run(r io.Reader, w io.Writer, app App) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	msg, err := readMessage(in)
	if err != nil {
		return err
	}
	if msg["type"] != TypeHello {
		return luvatrix.Protocolf("expected %s, got %v", TypeHello, msg["type"])
	}
	hello, err := parseHello(msg)
	if err != nil {
		return err
	}
	if err := app.Init(hello); err != nil {
		return err
	}
	if err := writeMessage(out, map[string]any{"type": TypeInitOK}); err != nil {
		return err
	}

	for {
		msg, err := readMessage(in)
		if err != nil {
			return err
		}
		switch msg["type"] {
		case TypeTick:
			dt, _ := msg["dt"].(float64)
			ops, err := app.Tick(Tick{DT: dt})
			if err != nil {
				return err
			}
			if ops == nil {
				ops = []map[string]any{}
			}
			if err := writeMessage(out, map[string]any{"type": TypeCommands, "ops": ops}); err != nil {
				return err
			}
		case TypeStop:
			if err := app.Stop(); err != nil {
				return err
			}
			return writeMessage(out, map[string]any{"type": TypeStopOK})
		default:
			return luvatrix.Protocolf("unsupported host message type %v", msg["type"])
		}
	}
}

// RunStdio runs a session over the process's standard streams.
func RunStdio(app App) error {
	return Run(os.Stdin, os.Stdout, app)
}

func parseHello(msg map[string]any) (Hello, error) {
	version, _ := msg["protocol_version"].(string)
	if _, err := semver.NewVersion(version); err != nil {
		return Hello{}, luvatrix.Protocolf("host.hello protocol_version %q: %v", version, err)
	}
	matrix, ok := msg["matrix"].(map[string]any)
	if !ok {
		return Hello{}, luvatrix.Protocolf("host.hello matrix must be an object")
	}
	width := intField(matrix, "width")
	height := intField(matrix, "height")
	if width <= 0 || height <= 0 {
		return Hello{}, luvatrix.Protocolf("host.hello matrix must be positive, got %dx%d", width, height)
	}

	capabilities := []string{}
	if raw, ok := msg["capabilities"].([]any); ok {
		seen := make(map[string]bool, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return Hello{}, luvatrix.Protocolf("host.hello capabilities must be strings")
			}
			if !seen[s] {
				seen[s] = true
				capabilities = append(capabilities, s)
			}
		}
		sort.Strings(capabilities)
	}
	return Hello{
		ProtocolVersion: version,
		Width:           width,
		Height:          height,
		Capabilities:    capabilities,
	}, nil
}

// readMessage reads one line and decodes it as a JSON object. A closed
// stream before a full line is a protocol violation.
func readMessage(in *bufio.Reader) (map[string]any, error) {
	line, err := in.ReadString('\n')
	if err == io.EOF && line == "" {
		return nil, luvatrix.Protocolf("input stream closed")
	}
	if err != nil && err != io.EOF {
		return nil, luvatrix.Protocolf("read failed: %v", err)
	}
	var msg map[string]any
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return nil, luvatrix.Protocolf("payload must be a JSON object: %v", err)
	}
	return msg, nil
}

// writeMessage emits one canonical JSON line and flushes it. JCS
// transformation guarantees deterministic key ordering.
func writeMessage(out *bufio.Writer, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return err
	}
	if _, err := out.Write(canonical); err != nil {
		return err
	}
	if err := out.WriteByte('\n'); err != nil {
		return err
	}
	return out.Flush()
}

func intField(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
