package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/notifier"
)

// NotifyCmd reminds the user about streaks that break unless today is
// logged. It is meant to run from cron in the evening.
type NotifyCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	reminders, err := Reminders(ctx)
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		if c.DryRun {
			fmt.Println("No streaks at risk today.")
		}
		return nil
	}

	if c.DryRun || ctx.Notifier == nil {
		for _, r := range reminders {
			fmt.Println(r)
		}
		return nil
	}

	for _, r := range reminders {
		if err := ctx.Notifier.Notify(context.Background(), r); err != nil {
			if errors.Is(err, notifier.ErrTrayNotRunning) {
				logger.Debug("Tray app not running, skipping reminders")
				return nil
			}
			return fmt.Errorf("failed to send reminder: %w", err)
		}
	}
	return nil
}

// Reminders lists a message for every active goal whose streak is still
// alive from yesterday but has nothing logged today.
func Reminders(ctx *cli.Context) ([]string, error) {
	loc, err := ctx.Location()
	if err != nil {
		return nil, err
	}
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return nil, err
	}

	var out []string
	now := ctx.Now()
	for _, g := range goals {
		if g.Completed {
			continue
		}
		s := analytics.Summarize(g, now, loc)
		if s.LoggedToday || s.Streak == 0 {
			continue
		}
		out = append(out, notifier.ReminderMessage(g.Title, s.Streak))
	}
	return out, nil
}
