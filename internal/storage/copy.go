package storage

import "fmt"

// CopyStats counts the records moved by Copy.
type CopyStats struct {
	Goals          int
	JournalEntries int
	CheckIns       int
	Conversations  int
}

// Copy moves settings, goals with their progress, journal entries,
// check-ins and conversations from src into dst. Both providers must
// already be loaded.
// progress, when non-nil, receives one line per stage.
func Copy(src, dst Provider, progress func(string)) (CopyStats, error) {
	if progress == nil {
		progress = func(string) {}
	}
	var stats CopyStats

	progress("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return stats, fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return stats, fmt.Errorf("failed to save settings to destination: %w", err)
	}

	progress("  Migrating goals...")
	goals, err := src.GetAllGoals()
	if err != nil {
		return stats, fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, g := range goals {
		if err := dst.AddGoal(g); err != nil {
			return stats, fmt.Errorf("failed to add goal %s: %w", g.ID, err)
		}
		stats.Goals++
	}
	progress(fmt.Sprintf("    Migrated %d goals", stats.Goals))

	progress("  Migrating journal entries...")
	entries, err := src.GetAllJournalEntries()
	if err != nil {
		return stats, fmt.Errorf("failed to get journal entries from source: %w", err)
	}
	for _, e := range entries {
		if err := dst.AddJournalEntry(e); err != nil {
			return stats, fmt.Errorf("failed to add journal entry %s: %w", e.ID, err)
		}
		stats.JournalEntries++
	}
	progress(fmt.Sprintf("    Migrated %d journal entries", stats.JournalEntries))

	progress("  Migrating check-ins...")
	checkIns, err := src.GetAllCheckIns()
	if err != nil {
		return stats, fmt.Errorf("failed to get check-ins from source: %w", err)
	}
	for _, c := range checkIns {
		if err := dst.AddCheckIn(c); err != nil {
			return stats, fmt.Errorf("failed to add check-in %s: %w", c.ID, err)
		}
		stats.CheckIns++
	}
	progress(fmt.Sprintf("    Migrated %d check-ins", stats.CheckIns))

	progress("  Migrating conversations...")
	convs, err := src.GetAllConversations()
	if err != nil {
		return stats, fmt.Errorf("failed to get conversations from source: %w", err)
	}
	for _, c := range convs {
		if err := dst.AddConversation(c); err != nil {
			return stats, fmt.Errorf("failed to add conversation %s: %w", c.ID, err)
		}
		stats.Conversations++
	}
	progress(fmt.Sprintf("    Migrated %d conversations", stats.Conversations))

	return stats, nil
}
