package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/utils"
	"github.com/julianstephens/momentum/internal/validation"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a new goal."`
	List     GoalListCmd     `cmd:"" help:"List goals with streaks and progress." default:"1"`
	Log      GoalLogCmd      `cmd:"" help:"Toggle progress for a goal on a day."`
	Complete GoalCompleteCmd `cmd:"" help:"Mark a goal as completed."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal and its progress."`
	Show     GoalShowCmd     `cmd:"" help:"Show a goal with its recent history."`
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Category    string `help:"Category (Health, Work, Relationships, Spiritual, Financial, Learning, Hobby)." short:"c" required:""`
	Deadline    string `help:"Deadline in YYYY-MM-DD format." short:"d" required:""`
	Description string `help:"Optional description." default:""`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	_, loc, err := ctx.Today()
	if err != nil {
		return err
	}

	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	deadline, err := calendar.Parse(c.Deadline)
	if err != nil {
		return err
	}

	goal := models.Goal{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Category:    category,
		Deadline:    deadline,
		CreatedAt:   ctx.Now(),
		Progress:    []calendar.Date{},
	}
	if err := validation.ValidateGoal(goal, loc); err != nil {
		return err
	}

	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Added goal: %s (due %s)\n", goal.Title, goal.Deadline)
	fmt.Printf("  ID: %s\n", goal.ID)
	return nil
}

type GoalListCmd struct {
	All bool `help:"Include completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	_, loc, err := ctx.Today()
	if err != nil {
		return err
	}

	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}

	now := ctx.Now()
	shown := 0
	for _, g := range goals {
		if g.Completed && !c.All {
			continue
		}
		fmt.Println(cli.FormatGoalCard(g, analytics.Summarize(g, now, loc), now))
		shown++
	}

	if shown == 0 {
		if len(goals) > 0 {
			fmt.Println("No active goals. Use --all to include completed goals.")
		} else {
			fmt.Printf("No goals yet. Add one with: %s goal add \"Title\" --category Health --deadline YYYY-MM-DD\n", constants.AppName)
		}
	}
	return nil
}

type GoalLogCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *GoalLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	now := ctx.Now()
	day, err := utils.ParseDateOrToday(c.Date, now, loc)
	if err != nil {
		return err
	}
	today := calendar.FromTime(now, loc)
	if day.After(today) {
		return fmt.Errorf("cannot log progress for a future date (%s)", day)
	}
	// Days before creation may still be toggled off to repair imported data.
	if start := calendar.FromTime(goal.CreatedAt, loc); day.Before(start) && !goal.HasProgress(day) {
		return fmt.Errorf("cannot log progress before the goal was created (%s)", start)
	}

	added, err := goal.ToggleProgress(day)
	if err != nil {
		return fmt.Errorf("%s: %w", goal.Title, err)
	}

	if !added {
		if err := ctx.Store.RemoveProgress(goal.ID, day); err != nil {
			return err
		}
		fmt.Printf("Removed progress for %q on %s\n", goal.Title, day)
		return nil
	}

	if err := ctx.Store.AddProgress(goal.ID, day); err != nil {
		return err
	}

	streak := analytics.Streak(goal.Progress, today)
	fmt.Printf("Logged progress for %q on %s (streak: %d)\n", goal.Title, day, streak)
	ctx.Celebrate(context.Background(), goal.Title, streak)
	return nil
}

type GoalCompleteCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	if err := goal.Complete(ctx.Now()); err != nil {
		return fmt.Errorf("%s: %w", goal.Title, err)
	}
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return err
	}

	fmt.Printf("🎉 Completed goal: %s\n", goal.Title)
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteGoal(goal.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted goal: %s (%d days of progress removed)\n", goal.Title, len(goal.Progress))
	return nil
}

type GoalShowCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
	Days int    `help:"Number of days of history to show." default:"14"`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	today, loc, err := ctx.Today()
	if err != nil {
		return err
	}
	now := ctx.Now()
	summary := analytics.Summarize(goal, now, loc)

	fmt.Print(cli.FormatGoalCard(goal, summary, now))
	if goal.Description != "" {
		fmt.Printf("  %s\n", goal.Description)
	}
	fmt.Printf("  Deadline: %s  ·  %d days logged\n", goal.Deadline, len(goal.Progress))

	days := c.Days
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}
	start := today.AddDays(-(days - 1))
	fmt.Printf("\n  Last %d days (%s → %s):\n", days, start, today)
	fmt.Printf("  %s\n", cli.FormatHistory(analytics.History(goal.Progress, today, days)))
	return nil
}
