package interfaces

import "context"

// Message represents a single message in a model conversation.
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// TextModel defines the language-model capability used by the textual
// analysis pass. Implementations are cloud-backed and safe for concurrent
// use after construction.
type TextModel interface {
	// Chat generates a completion for the given conversation. The messages
	// slice should contain the system prompt followed by user messages in
	// chronological order. The response is a raw string; callers must not
	// assume it is valid JSON.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the model endpoint is reachable and responding.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the client.
	Close() error
}

// VisionModel defines the multimodal capability used by the visual analysis
// pass. One image is submitted inline alongside the prompt text.
type VisionModel interface {
	// AnalyzeImage submits the prompt and image bytes in a single multimodal
	// request and returns the raw response text.
	AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)

	// HealthCheck verifies the model endpoint is reachable and responding.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the client.
	Close() error
}
