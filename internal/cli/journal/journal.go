package journal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/validation"
)

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Write a journal entry."`
	List   JournalListCmd   `cmd:"" help:"List recent journal entries." default:"1"`
	Prompt JournalPromptCmd `cmd:"" help:"Show a reflection prompt to write about."`
}

type JournalAddCmd struct {
	Content string `arg:"" help:"Entry text."`
	Type    string `help:"Journal type (thoughts, joyful, releasing, prayer)." short:"t" default:"thoughts"`
	Goal    string `help:"Goal ID or title this entry relates to." short:"g" default:""`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	journalType, err := models.ParseJournalType(c.Type)
	if err != nil {
		return err
	}

	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		CreatedAt: ctx.Now(),
		Content:   strings.TrimSpace(c.Content),
		Type:      journalType,
	}

	if c.Goal != "" {
		goal, err := ctx.ResolveGoal(c.Goal)
		if err != nil {
			return err
		}
		entry.GoalID = &goal.ID
	}

	if err := validation.ValidateJournalEntry(entry); err != nil {
		return err
	}
	if err := ctx.Store.AddJournalEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Saved %s entry.\n", entry.Type)
	return nil
}

type JournalListCmd struct {
	Days int    `help:"Only show entries from the last N days (0 for all)." default:"30"`
	Type string `help:"Only show entries of this type." default:""`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var filter models.JournalType
	if c.Type != "" {
		t, err := models.ParseJournalType(c.Type)
		if err != nil {
			return err
		}
		filter = t
	}

	now := ctx.Now()
	var since *time.Time
	if c.Days > 0 {
		s := now.AddDate(0, 0, -c.Days)
		since = &s
	}
	entries, err := ctx.Store.GetJournalEntries(since)
	if err != nil {
		return err
	}

	titles := map[string]string{}
	shown := 0
	for _, e := range entries {
		if filter != "" && e.Type != filter {
			continue
		}
		shown++

		fmt.Printf("%s · %s\n", humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.Type)
		if e.GoalID != nil {
			fmt.Printf("  Goal: %s\n", goalTitle(ctx, titles, *e.GoalID))
		}
		for _, line := range strings.Split(e.Content, "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println("No journal entries found.")
	}
	return nil
}

// goalTitle looks up and caches a goal title. Entries outlive their goals.
func goalTitle(ctx *cli.Context, cache map[string]string, id string) string {
	if title, ok := cache[id]; ok {
		return title
	}
	title := "(deleted goal)"
	if g, err := ctx.Store.GetGoal(id); err == nil {
		title = g.Title
	} else if !errors.Is(err, storage.ErrNotFound) {
		title = "(unknown goal)"
	}
	cache[id] = title
	return title
}

type JournalPromptCmd struct{}

func (c *JournalPromptCmd) Run(ctx *cli.Context) error {
	prompt := constants.ReflectionPrompts[rand.IntN(len(constants.ReflectionPrompts))]
	fmt.Println(prompt)
	return nil
}
