package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/keyring"
	"github.com/julianstephens/momentum/internal/migration"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/utils"
	"github.com/julianstephens/momentum/internal/validation"
)

// migratable is implemented by stores backed by a versioned schema.
type migratable interface {
	Runner() (*migration.Runner, error)
}

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly failures do not fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Timezone setting", needsDB: true, run: checkTimezone},
	{name: "Data integrity", needsDB: true, warnOnly: true, run: checkIntegrity},
	{name: "Coach API key", warnOnly: true, run: checkAPIKey},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func versions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	m, isMigratable := ctx.Store.(migratable)
	if !isMigratable {
		return 0, 0, false, nil
	}
	runner, err := m.Runner()
	if err != nil {
		return 0, 0, false, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	_, err = utils.LocationFromSettings(settings)
	return err
}

func checkIntegrity(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllJournalEntries()
	if err != nil {
		return err
	}
	checkIns, err := ctx.Store.GetAllCheckIns()
	if err != nil {
		return err
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	result := validation.New().Check(goals, entries, checkIns, calendar.FromTime(ctx.Now(), loc), loc)
	if result.HasConflicts() {
		return fmt.Errorf("%d issue(s) found\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkAPIKey(ctx *cli.Context) error {
	if _, source := keyring.ResolveAPIKey(); source == keyring.SourceNone {
		return fmt.Errorf("no Gemini API key configured; coach commands will use built-in fallbacks")
	}
	return nil
}
