// Package calendar provides a day-granularity date type.
//
// Date carries no clock or zone, so two dates are equal exactly when they name
// the same calendar day. Converting to and from time.Time always goes through
// an explicit *time.Location.
package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Layout is the canonical string form of a Date (YYYY-MM-DD).
const Layout = "2006-01-02"

// Date is a calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the normalized date for the given year, month, and day.
// Out-of-range values roll over the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar day t falls on in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now(), loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// utc is used for day arithmetic; UTC has no DST so every day is 24h long.
func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.utc().AddDate(0, 0, n), time.UTC)
}

// Sub returns the number of whole days from u to d (d - u).
func (d Date) Sub(u Date) int {
	return int(d.utc().Sub(u.utc()).Hours() / 24)
}

func (d Date) Equal(u Date) bool  { return d == u }
func (d Date) Before(u Date) bool { return d.Sub(u) < 0 }
func (d Date) After(u Date) bool  { return d.Sub(u) > 0 }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// MarshalText encodes d as YYYY-MM-DD so JSON and YAML carry a plain string.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Sorted returns an ascending copy of dates with duplicates removed.
// The input slice is not modified.
func Sorted(dates []Date) []Date {
	out := make([]Date, len(dates))
	copy(out, dates)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	n := 0
	for i, d := range out {
		if i > 0 && d == out[n-1] {
			continue
		}
		out[n] = d
		n++
	}
	return out[:n]
}

// Contains reports whether day is present in dates.
func Contains(dates []Date, day Date) bool {
	for _, d := range dates {
		if d == day {
			return true
		}
	}
	return false
}
