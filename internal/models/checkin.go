package models

import (
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
)

// CheckIn is a daily self-rating across three dimensions on a 0.5-5 scale.
type CheckIn struct {
	ID        string        `json:"id" yaml:"id"`
	Day       calendar.Date `json:"day" yaml:"day"`
	Physical  float64       `json:"physical" yaml:"physical"`
	Mental    float64       `json:"mental" yaml:"mental"`
	Spiritual float64       `json:"spiritual" yaml:"spiritual"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Average returns the mean of the three ratings.
func (c CheckIn) Average() float64 {
	return (c.Physical + c.Mental + c.Spiritual) / 3
}
