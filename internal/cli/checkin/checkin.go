package checkin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/validation"
)

type CheckInCmd struct {
	Record  CheckInRecordCmd  `cmd:"" help:"Record today's check-in." default:"1"`
	History CheckInHistoryCmd `cmd:"" help:"Show recent check-ins."`
}

type CheckInRecordCmd struct {
	Physical  *float64 `help:"Physical rating (0.5-5)." short:"p"`
	Mental    *float64 `help:"Mental rating (0.5-5)." short:"m"`
	Spiritual *float64 `help:"Spiritual rating (0.5-5)." short:"s"`
}

// ErrAlreadyCheckedIn is returned when today already has a check-in.
var ErrAlreadyCheckedIn = errors.New("already checked in today")

func (c *CheckInRecordCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, _, err := ctx.Today()
	if err != nil {
		return err
	}

	if existing, err := ctx.Store.GetCheckIn(today); err == nil {
		printCheckIn(existing)
		return ErrAlreadyCheckedIn
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if c.Physical == nil || c.Mental == nil || c.Spiritual == nil {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	checkIn := models.CheckIn{
		ID:        uuid.New().String(),
		Day:       today,
		Physical:  *c.Physical,
		Mental:    *c.Mental,
		Spiritual: *c.Spiritual,
		CreatedAt: ctx.Now(),
	}
	if err := validation.ValidateCheckIn(checkIn); err != nil {
		return err
	}
	if err := ctx.Store.AddCheckIn(checkIn); err != nil {
		return err
	}

	fmt.Println("Check-in saved.")
	printCheckIn(checkIn)
	return nil
}

func ratingOptions() []huh.Option[float64] {
	var opts []huh.Option[float64]
	for v := constants.MinRating; v <= constants.MaxRating; v += constants.RatingStep {
		opts = append(opts, huh.NewOption(Stars(v), v))
	}
	return opts
}

// prompt asks for any rating not given on the command line.
func (c *CheckInRecordCmd) prompt() error {
	var fields []huh.Field
	for _, r := range []struct {
		title string
		value **float64
	}{
		{"How do you feel physically?", &c.Physical},
		{"How do you feel mentally?", &c.Mental},
		{"How do you feel spiritually?", &c.Spiritual},
	} {
		if *r.value != nil {
			continue
		}
		v := 3.0
		*r.value = &v
		fields = append(fields, huh.NewSelect[float64]().
			Title(r.title).
			Options(ratingOptions()...).
			Value(*r.value))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("check-in cancelled: %w", err)
	}
	return nil
}

// Stars renders a rating as five stars with half steps. Ratings outside
// 0..5 are drawn clamped but printed as stored.
func Stars(v float64) string {
	shown := min(max(v, 0), constants.MaxRating)
	full := int(shown)
	half := shown-float64(full) >= constants.RatingStep
	empty := int(constants.MaxRating) - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("⯪")
	}
	b.WriteString(strings.Repeat("☆", empty))
	fmt.Fprintf(&b, " %.1f", v)
	return b.String()
}

func printCheckIn(ci models.CheckIn) {
	fmt.Printf("  %s\n", ci.Day)
	fmt.Printf("    Physical:  %s\n", Stars(ci.Physical))
	fmt.Printf("    Mental:    %s\n", Stars(ci.Mental))
	fmt.Printf("    Spiritual: %s\n", Stars(ci.Spiritual))
}

type CheckInHistoryCmd struct {
	Days int `help:"Number of days to show." default:"14"`
}

func (c *CheckInHistoryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, _, err := ctx.Today()
	if err != nil {
		return err
	}
	days := c.Days
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}

	checkIns, err := ctx.Store.GetCheckIns(today.AddDays(-(days - 1)), today)
	if err != nil {
		return err
	}
	if len(checkIns) == 0 {
		fmt.Printf("No check-ins in the last %d days.\n", days)
		return nil
	}

	averages := Averages(checkIns)
	fmt.Printf("%-10s  %-9s  %-9s  %-9s  %s\n", "Day", "Physical", "Mental", "Spiritual", "Avg")
	seen := map[calendar.Date]bool{}
	for _, ci := range checkIns {
		// Only the first check-in of a day counts.
		if seen[ci.Day] {
			continue
		}
		seen[ci.Day] = true
		fmt.Printf("%-10s  %-9.1f  %-9.1f  %-9.1f  %.1f\n", ci.Day, ci.Physical, ci.Mental, ci.Spiritual, ci.Average())
	}
	fmt.Printf("\nAverages over %d check-ins: physical %.1f, mental %.1f, spiritual %.1f\n",
		averages.Count, averages.Physical, averages.Mental, averages.Spiritual)
	return nil
}

// Summary holds the mean rating per dimension.
type Summary struct {
	Count     int
	Physical  float64
	Mental    float64
	Spiritual float64
}

// Averages returns the mean of each dimension, counting the first check-in
// of each day only.
func Averages(checkIns []models.CheckIn) Summary {
	var s Summary
	seen := map[calendar.Date]bool{}
	for _, ci := range checkIns {
		if seen[ci.Day] {
			continue
		}
		seen[ci.Day] = true
		s.Count++
		s.Physical += ci.Physical
		s.Mental += ci.Mental
		s.Spiritual += ci.Spiritual
	}
	if s.Count > 0 {
		n := float64(s.Count)
		s.Physical /= n
		s.Mental /= n
		s.Spiritual /= n
	}
	return s
}
