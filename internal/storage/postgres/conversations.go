package postgres

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

	_, err = tx.Exec("INSERT INTO conversations (id, participant_name, created_at) VALUES ($1, $2, $3)",
		conv.ID, conv.ParticipantName, conv.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, m := range conv.Messages {
		_, err := tx.Exec(`
			INSERT INTO messages (id, conversation_id, sender, text, sent_at)
			VALUES ($1, $2, $3, $4, $5)`,
			m.ID, conv.ID, m.Sender, m.Text, m.SentAt.UTC())
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
		if err := rows.Scan(&c.ID, &c.ParticipantName, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
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
		var convID string
		if err := msgRows.Scan(&m.ID, &convID, &m.Sender, &m.Text, &m.SentAt); err != nil {
			return nil, err
		}
		m.SentAt = m.SentAt.UTC()
		if i, ok := index[convID]; ok {
			convs[i].Messages = append(convs[i].Messages, m)
		}
	}
	return convs, msgRows.Err()
}
