// Package export writes a full snapshot of user data as YAML or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/utils"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml or json. Empty means yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use yaml or json)", s)
	}
}

// Goal is a stored goal plus the values shown on its card at export time.
type Goal struct {
	models.Goal `yaml:",inline"`
	Summary     analytics.GoalSummary `json:"summary" yaml:"summary"`
}

// Snapshot is everything momentum stores, with derived statistics.
type Snapshot struct {
	ExportedAt    time.Time             `json:"exported_at" yaml:"exported_at"`
	Version       string                `json:"version" yaml:"version"`
	Settings      models.Settings       `json:"settings" yaml:"settings"`
	Stats         analytics.Stats       `json:"stats" yaml:"stats"`
	Goals         []Goal                `json:"goals" yaml:"goals"`
	Journal       []models.JournalEntry `json:"journal" yaml:"journal"`
	CheckIns      []models.CheckIn      `json:"check_ins" yaml:"check_ins"`
	Conversations []models.Conversation `json:"conversations" yaml:"conversations"`
}

// Build reads every record from store and computes stats at now.
func Build(store storage.Provider, now time.Time) (Snapshot, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}
	loc, err := utils.LocationFromSettings(settings)
	if err != nil {
		return Snapshot{}, err
	}

	goals, err := store.GetAllGoals()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load goals: %w", err)
	}
	entries, err := store.GetAllJournalEntries()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load journal entries: %w", err)
	}
	checkIns, err := store.GetAllCheckIns()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load check-ins: %w", err)
	}
	convs, err := store.GetAllConversations()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load conversations: %w", err)
	}

	snap := Snapshot{
		ExportedAt:    now.UTC(),
		Version:       constants.Version,
		Settings:      settings,
		Stats:         analytics.Aggregate(goals, now),
		Goals:         make([]Goal, 0, len(goals)),
		Journal:       entries,
		CheckIns:      checkIns,
		Conversations: convs,
	}
	for _, g := range goals {
		snap.Goals = append(snap.Goals, Goal{Goal: g, Summary: analytics.Summarize(g, now, loc)})
	}
	if snap.Journal == nil {
		snap.Journal = []models.JournalEntry{}
	}
	if snap.CheckIns == nil {
		snap.CheckIns = []models.CheckIn{}
	}
	if snap.Conversations == nil {
		snap.Conversations = []models.Conversation{}
	}
	return snap, nil
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
