package models

import "time"

// Role identifies the author of a chat message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one entry of an assistant conversation.
// Model-authored text is Markdown.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	HTML      string    `json:"html,omitempty"`
}
