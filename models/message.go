package models

import "time"

type MessageStatus string

const (
	MessageStatusNew  MessageStatus = "new"
	MessageStatusRead MessageStatus = "read"
)

// ContactMessage is a row of contact_messages, written only by the public contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
}
