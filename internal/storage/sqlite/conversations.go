package sqlite

import (
	"fmt"

	"github.com/julianstephens/momentum/internal/models"
)

func (s *Store) AddConversation(conv models.Conversation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO conversations (id, participant_name, created_at) VALUES (?, ?, ?)",
		conv.ID, conv.ParticipantName, formatTime(conv.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, m := range conv.Messages {
		_, err := tx.Exec(`
			INSERT INTO messages (id, conversation_id, sender, text, sent_at)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, conv.ID, m.Sender, m.Text, formatTime(m.SentAt))
		if err != nil {
			return fmt.Errorf("failed to insert message %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetAllConversations() ([]models.Conversation, error) {
	rows, err := s.db.Query("SELECT id, participant_name, created_at FROM conversations ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []models.Conversation
	index := make(map[string]int)
	for rows.Next() {
		var c models.Conversation
		var createdAt string
		if err := rows.Scan(&c.ID, &c.ParticipantName, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of conversation %s: %w", c.ID, err)
		}
		index[c.ID] = len(convs)
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return nil, nil
	}

	msgRows, err := s.db.Query("SELECT id, conversation_id, sender, text, sent_at FROM messages ORDER BY conversation_id, sent_at, id")
	if err != nil {
		return nil, err
	}
	defer msgRows.Close()

	for msgRows.Next() {
		var m models.Message
		var convID, sentAt string
		if err := msgRows.Scan(&m.ID, &convID, &m.Sender, &m.Text, &sentAt); err != nil {
			return nil, err
		}
		if m.SentAt, err = parseTime(sentAt); err != nil {
			return nil, fmt.Errorf("failed to parse sent_at of message %s: %w", m.ID, err)
		}
		if i, ok := index[convID]; ok {
			convs[i].Messages = append(convs[i].Messages, m)
		}
	}
	return convs, msgRows.Err()
}
