package system

import (
	"fmt"

	"github.com/julianstephens/momentum/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	m, ok := ctx.Store.(migratable)
	if !ok {
		return fmt.Errorf("migrate is not supported for this storage backend")
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}

	if c.Status {
		pending, err := runner.Pending()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("Database is up to date.")
			return nil
		}
		fmt.Printf("%d pending migration(s):\n", len(pending))
		for _, p := range pending {
			fmt.Printf("  %03d %s\n", p.Version, p.Name)
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
