package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/postgres"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
	Demo   bool   `help:"Seed a few example goals and journal entries."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Source != "" && c.Demo {
		return errors.New("--source and --demo cannot be used together")
	}

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	if c.Demo {
		if err := seedDemo(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return nil
}

// reset deletes an existing SQLite database file.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(utils.ExpandHome(c.Source))
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// OpenStore returns the provider for a SQLite path or PostgreSQL connection
// string. Connection strings with embedded passwords are rejected.
func OpenStore(config string) (storage.Provider, error) {
	if postgres.IsConnString(config) {
		if valid, err := postgres.ValidateConnString(config); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection string contains embedded credentials. Use environment variables, .pgpass, or the OS keyring instead")
			}
			return nil, err
		}
		return postgres.New(config), nil
	}
	return sqlite.NewStore(utils.ExpandHome(config)), nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := OpenStore(sourcePath)
	if err != nil {
		return err
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	_, err = storage.Copy(sourceStore, ctx.Store, func(line string) { fmt.Println(line) })
	return err
}

func seedDemo(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("database already has %d goals; use --force to start over", len(existing))
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	goals, entries := DemoData(ctx.Now(), loc)
	for _, g := range goals {
		if err := ctx.Store.AddGoal(g); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := ctx.Store.AddJournalEntry(e); err != nil {
			return err
		}
	}
	convs := DemoConversations(ctx.Now())
	for _, conv := range convs {
		if err := ctx.Store.AddConversation(conv); err != nil {
			return err
		}
	}
	fmt.Printf("Added %d demo goals, %d journal entries and %d conversation(s).\n", len(goals), len(entries), len(convs))
	return nil
}
