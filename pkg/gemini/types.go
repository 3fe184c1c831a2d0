package gemini

import "google.golang.org/genai"

// Request is a single-turn generation request.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
	MaxTokens         int

	// JSON forces an application/json reply; Schema narrows it further.
	JSON   bool
	Schema *genai.Schema
}

// Response holds the reply text and token usage.
type Response struct {
	Text  string
	Usage Usage
}

// Usage tracks token consumption reported by the API.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
