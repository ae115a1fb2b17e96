package models

import (
	"fmt"
	"strings"
	"time"
)

// JournalType identifies the kind of journal an entry belongs to.
type JournalType string

const (
	JournalThoughts  JournalType = "Thoughts of the Day"
	JournalJoyful    JournalType = "Joyful Journal"
	JournalReleasing JournalType = "Work Releasing"
	JournalPrayer    JournalType = "Prayer Journal"
)

// JournalTypes lists every journal type in display order.
var JournalTypes = []JournalType{
	JournalThoughts,
	JournalJoyful,
	JournalReleasing,
	JournalPrayer,
}

var journalAliases = map[string]JournalType{
	"thoughts":  JournalThoughts,
	"joyful":    JournalJoyful,
	"releasing": JournalReleasing,
	"release":   JournalReleasing,
	"prayer":    JournalPrayer,
}

// ParseJournalType accepts either the full name or a short alias
// (thoughts, joyful, releasing, prayer).
func ParseJournalType(s string) (JournalType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return JournalThoughts, nil
	}
	if t, ok := journalAliases[strings.ToLower(s)]; ok {
		return t, nil
	}
	for _, t := range JournalTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid journal type %q (valid: thoughts, joyful, releasing, prayer)", s)
}

// JournalEntry is a free-form note, optionally tied to a goal.
type JournalEntry struct {
	ID        string      `json:"id" yaml:"id"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
	Content   string      `json:"content" yaml:"content"`
	GoalID    *string     `json:"goal_id,omitempty" yaml:"goal_id,omitempty"`
	Type      JournalType `json:"type" yaml:"type"`
}
