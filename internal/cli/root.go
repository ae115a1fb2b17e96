package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/coach"
	"github.com/julianstephens/momentum/internal/keyring"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/notifier"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/utils"
)

// Celebrator shows a short message outside the terminal, e.g. through the
// tray app.
type Celebrator interface {
	Notify(ctx context.Context, text string) error
}

type Context struct {
	Store    storage.Provider
	Notifier Celebrator
	// Generator overrides the Gemini client. Tests set it to a fake.
	Generator coach.Generator
	Clock     func() time.Time
}

// Now returns the current time from Clock, or time.Now.
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Settings loads the stored settings.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Location returns the user's configured timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return utils.LocationFromSettings(settings)
}

// Today returns the current calendar day in the user's timezone.
func (c *Context) Today() (calendar.Date, *time.Location, error) {
	loc, err := c.Location()
	if err != nil {
		return calendar.Date{}, nil, err
	}
	return calendar.FromTime(c.Now(), loc), loc, nil
}

// Coach builds a coach from settings. Without an API key, or with the coach
// disabled, every operation answers with its fallback.
func (c *Context) Coach(ctx context.Context) (*coach.Coach, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LocationFromSettings(settings)
	if err != nil {
		return nil, err
	}

	gen := c.Generator
	switch {
	case gen != nil:
	case !settings.CoachEnabled:
		logger.Debug("Coach disabled in settings")
		gen = coach.Disabled()
	default:
		key, source := keyring.ResolveAPIKey()
		g, err := coach.NewGeminiGenerator(ctx, key, settings.CoachModel)
		if err != nil {
			logger.Warn("Coach unavailable, using fallbacks", logger.KeyError, err, logger.KeyKeySource, source)
			gen = coach.Disabled()
		} else {
			gen = g
		}
	}

	return coach.New(gen, loc), nil
}

// ResolveGoal finds a goal by ID, or else by a case-insensitive title match.
// A title matching more than one goal is an error.
func (c *Context) ResolveGoal(ref string) (models.Goal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Goal{}, errors.New("goal ID or title is required")
	}

	goal, err := c.Store.GetGoal(ref)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Goal{}, err
	}

	goals, err := c.Store.GetAllGoals()
	if err != nil {
		return models.Goal{}, err
	}

	var matches []models.Goal
	for _, g := range goals {
		if strings.EqualFold(g.Title, ref) {
			matches = append(matches, g)
		}
	}
	if len(matches) == 0 {
		for _, g := range goals {
			if strings.HasPrefix(g.ID, ref) {
				matches = append(matches, g)
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Goal{}, fmt.Errorf("goal %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Goal{}, fmt.Errorf("%q matches %d goals, use the goal ID instead", ref, len(matches))
	}
}

// Celebrate sends a streak notification if notifications are enabled. A
// missing tray app is not an error.
func (c *Context) Celebrate(ctx context.Context, title string, streak int) {
	if c.Notifier == nil {
		return
	}
	settings, err := c.Settings()
	if err != nil || !settings.NotificationsEnabled {
		return
	}
	if err := c.Notifier.Notify(ctx, notifier.CelebrationMessage(title, streak)); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			logger.Debug("Tray app not running, skipping celebration")
			return
		}
		logger.Warn("Failed to send celebration", logger.KeyError, err)
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite databases are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", logger.KeyError, err)
	}
}
