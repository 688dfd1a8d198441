package llm

import "fmt"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of an LLM completion request.
// Content is the text of the first choice and is empty when the provider
// returned no choices.
type CompletionResponse struct {
	Content      string
	Choices      int
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// StatusError is returned when the provider answered with a non-success
// HTTP status.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }
