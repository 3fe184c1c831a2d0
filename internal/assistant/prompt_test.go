package assistant_test

import (
	"strings"
	"testing"

	"time-tracking-assistant/internal/assistant"
)

func TestCompile(t *testing.T) {
	prompt := assistant.Compile(assistant.PromptData{
		CurrentTime: "12:10:22 PM",
		Tasks: map[string]assistant.ActiveTask{
			"Sprint Planning": {StartTime: "11:00:00 AM", Duration: "1 hour, 10 minutes, 22 seconds"},
		},
		UserInput: "how long have I been working?",
	})

	wants := []string{
		"You are a helpful and conversational time tracking assistant",
		"Current time: 12:10:22 PM",
		`Currently running tasks: {"Sprint Planning":{"start_time":"11:00:00 AM","duration":"1 hour, 10 minutes, 22 seconds"}}`,
		"User: how long have I been working?",
		"Command: start: Market Analysis",
		"Then the Command line",
	}
	for _, want := range wants {
		if !strings.Contains(prompt, want) && !strings.Contains(strings.ToLower(prompt), strings.ToLower(want)) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "%!") {
		t.Errorf("prompt contains formatting artefacts:\n%s", prompt)
	}
	if !strings.HasSuffix(strings.TrimSpace(prompt), "User: how long have I been working?") {
		t.Errorf("user input must close the prompt")
	}
}

func TestCompile_EmptyTasksAndStructured(t *testing.T) {
	prompt := assistant.Compile(assistant.PromptData{
		CurrentTime: "09:00:00 AM",
		UserInput:   "starting on deep work",
		Structured:  true,
	})

	if !strings.Contains(prompt, "Current time: 09:00:00 AM\nCurrently running tasks: {}\n") {
		t.Errorf("expected empty task map in prompt")
	}
	if !strings.Contains(prompt, `"command": "start|stop|idle"`) {
		t.Errorf("structured prompt must describe the JSON object")
	}
}
