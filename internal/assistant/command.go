package assistant

import (
	"regexp"
	"strings"
)

// Verb is the action the model chose for a turn.
type Verb string

const (
	VerbStart Verb = "start"
	VerbStop  Verb = "stop"
	VerbIdle  Verb = "idle"
)

// Command is a classified model command.
type Command struct {
	Verb Verb
	Task string // empty for idle
}

// Idle is the command applied whenever nothing else could be determined.
var Idle = Command{Verb: VerbIdle}

// String renders the command in the "Command:" wire form.
func (c Command) String() string {
	if c.Verb == VerbIdle || c.Task == "" {
		return string(VerbIdle)
	}
	return string(c.Verb) + ": " + c.Task
}

// Extraction is the model output split into user-facing reply and command.
type Extraction struct {
	Reply   string
	Command Command
	// Found is false when no command could be read and Idle was assumed.
	Found bool
}

var commandLine = regexp.MustCompile(`Command:\s*(.*)`)

// ExtractCommand splits raw model text into the reply and the trailing command.
// The last "Command:" occurrence wins and is cut out of the reply. Without a
// match the whole text is the reply and the command is idle.
func ExtractCommand(raw string) Extraction {
	text := strings.TrimSpace(raw)

	matches := commandLine.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return Extraction{Reply: text, Command: Idle}
	}

	last := matches[len(matches)-1]
	cmd := strings.TrimSpace(text[last[2]:last[3]])
	reply := strings.TrimSpace(text[:last[0]] + text[last[1]:])

	return Extraction{
		Reply:   reply,
		Command: ParseCommand(cmd),
		Found:   true,
	}
}

// ParseCommand classifies a command string by its literal prefix. Anything
// other than "start:<name>" or "stop:<name>" is idle.
func ParseCommand(s string) Command {
	s = strings.TrimSpace(s)

	var verb Verb
	var rest string
	switch {
	case strings.HasPrefix(s, "start:"):
		verb, rest = VerbStart, s[len("start:"):]
	case strings.HasPrefix(s, "stop:"):
		verb, rest = VerbStop, s[len("stop:"):]
	default:
		return Idle
	}

	task := strings.TrimSpace(rest)
	if task == "" {
		return Idle
	}
	return Command{Verb: verb, Task: task}
}
