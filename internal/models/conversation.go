package models

import "time"

// SenderYou marks messages written by the user.
const SenderYou = "You"

type Message struct {
	ID     string    `json:"id" yaml:"id"`
	Sender string    `json:"sender" yaml:"sender"`
	Text   string    `json:"text" yaml:"text"`
	SentAt time.Time `json:"sent_at" yaml:"sent_at"`
}

// Conversation is a read-only thread with a mentor or accountability
// partner. Messages are kept oldest first.
type Conversation struct {
	ID              string    `json:"id" yaml:"id"`
	ParticipantName string    `json:"participant_name" yaml:"participant_name"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	Messages        []Message `json:"messages" yaml:"messages"`
}

// FromYou reports whether the user sent m.
func (m Message) FromYou() bool {
	return m.Sender == SenderYou
}
