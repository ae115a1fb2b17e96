package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// LocationFromSettings resolves the configured timezone.
func LocationFromSettings(settings models.Settings) (*time.Location, error) {
	return LoadLocation(settings.Timezone)
}

// TodayInTimezone returns today's date in the given timezone, so "today" follows
// the user's configured zone rather than the system's.
func TodayInTimezone(timezone string, now time.Time) (calendar.Date, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.FromTime(now, loc), nil
}

// ParseDateOrToday parses s as YYYY-MM-DD, or returns today in loc when s is empty.
func ParseDateOrToday(s string, now time.Time, loc *time.Location) (calendar.Date, error) {
	if s == "" {
		return calendar.FromTime(now, loc), nil
	}
	return calendar.Parse(s)
}
