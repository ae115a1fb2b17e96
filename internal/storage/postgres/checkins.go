package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
)

const checkInColumns = "id, day, physical, mental, spiritual, created_at"

func scanCheckIn(row rowScanner) (models.CheckIn, error) {
	var c models.CheckIn
	var day time.Time
	if err := row.Scan(&c.ID, &day, &c.Physical, &c.Mental, &c.Spiritual, &c.CreatedAt); err != nil {
		return models.CheckIn{}, err
	}
	c.Day = calendar.FromTime(day, time.UTC)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (s *Store) AddCheckIn(c models.CheckIn) error {
	_, err := s.db.Exec(`
		INSERT INTO check_ins (`+checkInColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Day.String(), c.Physical, c.Mental, c.Spiritual, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (s *Store) GetCheckIn(day calendar.Date) (models.CheckIn, error) {
	c, err := scanCheckIn(s.db.QueryRow("SELECT "+checkInColumns+" FROM check_ins WHERE day = $1 ORDER BY created_at LIMIT 1", day.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CheckIn{}, fmt.Errorf("check-in for %s: %w", day, storage.ErrNotFound)
		}
		return models.CheckIn{}, err
	}
	return c, nil
}

func (s *Store) GetCheckIns(start, end calendar.Date) ([]models.CheckIn, error) {
	return s.queryCheckIns("WHERE day >= $1 AND day <= $2", start.String(), end.String())
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
