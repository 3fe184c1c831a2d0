package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"time-tracking-assistant/pkg/llmprovider"
)

var (
	// ErrInvalidStructured is returned when a JSON reply is missing or malformed.
	ErrInvalidStructured = errors.New("invalid structured reply")

	// ErrRejectedCommand is returned when the JSON reply decodes but its
	// command is unusable. The Extraction still carries the reply, as idle.
	ErrRejectedCommand = errors.New("rejected structured command")
)

// structuredReply is the JSON object requested from the model.
type structuredReply struct {
	Reply   string `json:"reply"`
	Command string `json:"command"`
	Task    string `json:"task"`
}

// ResponseSchema describes structuredReply for providers with schema support.
func ResponseSchema() *llmprovider.Schema {
	return &llmprovider.Schema{
		Type: llmprovider.TypeObject,
		Properties: map[string]*llmprovider.Schema{
			"reply": {
				Type:        llmprovider.TypeString,
				Description: "Short, friendly message shown to the user.",
			},
			"command": {
				Type:        llmprovider.TypeString,
				Description: "Action to apply to the time log.",
				Enum:        []string{string(VerbStart), string(VerbStop), string(VerbIdle)},
			},
			"task": {
				Type:        llmprovider.TypeString,
				Description: "Task name for start/stop, empty for idle.",
			},
		},
		Required:         []string{"reply", "command"},
		PropertyOrdering: []string{"reply", "command", "task"},
	}
}

// DecodeStructured parses the JSON reply object. On ErrInvalidStructured
// callers fall back to ExtractCommand; on ErrRejectedCommand the returned
// Extraction holds the reply with the idle command.
// Verbs follow the same literal, case-sensitive spellings as ParseCommand.
func DecodeStructured(raw string) (Extraction, error) {
	cleaned := sanitizeJSON(raw)

	var r structuredReply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrInvalidStructured, err)
	}

	reply := strings.TrimSpace(r.Reply)
	if reply == "" {
		return Extraction{}, fmt.Errorf("%w: empty reply", ErrInvalidStructured)
	}

	verb := strings.TrimSpace(r.Command)
	task := strings.TrimSpace(r.Task)
	rejected := Extraction{Reply: reply, Command: Idle}

	var cmd Command
	switch {
	case verb == string(VerbIdle):
		cmd = Idle
	case verb == string(VerbStart) || verb == string(VerbStop):
		if task == "" {
			return rejected, fmt.Errorf("%w: %s without task", ErrRejectedCommand, verb)
		}
		cmd = Command{Verb: Verb(verb), Task: task}
	case strings.Contains(verb, ":"):
		// "start: Foo" squeezed into the command field
		cmd = ParseCommand(verb)
		if cmd == Idle {
			return rejected, fmt.Errorf("%w: unknown command %q", ErrRejectedCommand, r.Command)
		}
	default:
		return rejected, fmt.Errorf("%w: unknown command %q", ErrRejectedCommand, r.Command)
	}

	return Extraction{Reply: reply, Command: cmd, Found: true}, nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSON strips markdown fences and prose around a JSON object.
func sanitizeJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}
