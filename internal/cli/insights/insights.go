package insights

import (
	"fmt"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/cli/checkin"
)

type InsightsCmd struct {
	Goals bool `help:"Also show a line per goal." default:"true" negatable:""`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, loc, err := ctx.Today()
	if err != nil {
		return err
	}
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}

	now := ctx.Now()
	stats := analytics.Aggregate(goals, now)

	fmt.Println("Insights")
	fmt.Printf("  Total goals:          %d\n", stats.TotalGoals)
	fmt.Printf("  Completed goals:      %d\n", stats.CompletedGoals)
	fmt.Printf("  Longest streak:       %d days\n", stats.LongestStreak)
	if stats.MaxConsistency > 0 {
		fmt.Printf("  Most consistent goal: %s (%.0f%% of days)\n", stats.MostConsistentGoal, stats.MaxConsistency)
	} else {
		fmt.Printf("  Most consistent goal: %s\n", stats.MostConsistentGoal)
	}

	checkIns, err := ctx.Store.GetCheckIns(today.AddDays(-6), today)
	if err != nil {
		return err
	}
	if avg := checkin.Averages(checkIns); avg.Count > 0 {
		fmt.Printf("  Check-ins (7 days):   physical %.1f · mental %.1f · spiritual %.1f\n",
			avg.Physical, avg.Mental, avg.Spiritual)
	}

	if !c.Goals || len(goals) == 0 {
		return nil
	}

	fmt.Println("\nGoals")
	for _, g := range goals {
		s := analytics.Summarize(g, now, loc)
		consistency := "n/a"
		if v, ok := analytics.Consistency(g, now); ok {
			consistency = fmt.Sprintf("%.0f%%", v)
		}
		fmt.Printf("  %-30s %s %3.0f%%  streak %-3d best %-3d consistency %s\n",
			truncate(g.Title, 30), cli.ProgressBar(s.Percentage), s.Percentage, s.Streak, s.LongestStreak, consistency)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
