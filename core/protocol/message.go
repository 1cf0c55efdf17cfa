// Package protocol defines the conversation types shared by the model
// client, the session history, and the coordinator.
package protocol

// Role identifies the sender of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation history. Turn sequences are
// append-only and ordered; the session package bounds their length.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewTurn creates a Turn with the given role and content.
//
// Example:
//
//	turn := protocol.NewTurn(protocol.RoleUser, "check memory usage")
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content}
}
