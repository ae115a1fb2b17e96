package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
)

const checkInColumns = "id, day, physical, mental, spiritual, created_at"

func scanCheckIn(row rowScanner) (models.CheckIn, error) {
	var c models.CheckIn
	var day, createdAt string
	if err := row.Scan(&c.ID, &day, &c.Physical, &c.Mental, &c.Spiritual, &createdAt); err != nil {
		return models.CheckIn{}, err
	}

	var err error
	if c.Day, err = calendar.Parse(day); err != nil {
		return models.CheckIn{}, fmt.Errorf("failed to parse day of check-in %s: %w", c.ID, err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.CheckIn{}, fmt.Errorf("failed to parse created_at of check-in %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) AddCheckIn(c models.CheckIn) error {
	_, err := s.db.Exec(`
		INSERT INTO check_ins (`+checkInColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Day.String(), c.Physical, c.Mental, c.Spiritual, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (s *Store) GetCheckIn(day calendar.Date) (models.CheckIn, error) {
	row := s.db.QueryRow("SELECT "+checkInColumns+" FROM check_ins WHERE day = ? ORDER BY created_at LIMIT 1", day.String())
	c, err := scanCheckIn(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CheckIn{}, fmt.Errorf("check-in for %s: %w", day, storage.ErrNotFound)
		}
		return models.CheckIn{}, err
	}
	return c, nil
}

func (s *Store) GetCheckIns(start, end calendar.Date) ([]models.CheckIn, error) {
	return s.queryCheckIns("WHERE day >= ? AND day <= ?", start.String(), end.String())
}

func (s *Store) GetAllCheckIns() ([]models.CheckIn, error) {
	return s.queryCheckIns("")
}

func (s *Store) queryCheckIns(where string, args ...any) ([]models.CheckIn, error) {
	rows, err := s.db.Query("SELECT "+checkInColumns+" FROM check_ins "+where+" ORDER BY day, created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
