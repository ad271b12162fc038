package domain

import (
	"errors"
	"time"
)

// MessageRole tags a chat message with its origin.
type MessageRole string

// Possible message roles.
const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleError     MessageRole = "error"
	MessageRoleInfo      MessageRole = "info"
)

// Message-specific validation errors
var (
	// ErrMessageContentEmpty is returned when a message has no content.
	ErrMessageContentEmpty = errors.New("message content cannot be empty")

	// ErrInvalidMessageRole is returned when a message role is not one of
	// the defined roles.
	ErrInvalidMessageRole = errors.New("invalid message role")
)

// Message is one entry in a review session's chat transcript.
// HelpText carries remediation guidance for error messages; ModelName
// attributes assistant messages to the LLM that produced them.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	HelpText  string      `json:"help_text,omitempty"`
	ModelName string      `json:"model_name,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage creates a Message with the given role and content.
// Returns an error if validation fails.
func NewMessage(role MessageRole, content string) (*Message, error) {
	msg := &Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// NewAssistantMessage creates an assistant Message attributed to a model.
func NewAssistantMessage(content, modelName string) (*Message, error) {
	msg, err := NewMessage(MessageRoleAssistant, content)
	if err != nil {
		return nil, err
	}

	msg.ModelName = modelName
	return msg, nil
}

// NewErrorMessage creates an error Message carrying remediation help text.
func NewErrorMessage(content, helpText string) (*Message, error) {
	msg, err := NewMessage(MessageRoleError, content)
	if err != nil {
		return nil, err
	}

	msg.HelpText = helpText
	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	switch m.Role {
	case MessageRoleSystem, MessageRoleUser, MessageRoleAssistant,
		MessageRoleError, MessageRoleInfo:
	default:
		return ErrInvalidMessageRole
	}

	if m.Content == "" {
		return ErrMessageContentEmpty
	}

	return nil
}
