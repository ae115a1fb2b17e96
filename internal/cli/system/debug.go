package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/momentum/internal/cli"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show database path."`
	DumpGoal     DebugDumpGoalCmd     `cmd:"" name:"dump-goal" help:"Dump a goal with its progress as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" name:"dump-settings" help:"Dump settings as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpGoalCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (cmd *DebugDumpGoalCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	goal, err := ctx.ResolveGoal(cmd.Goal)
	if err != nil {
		return err
	}
	return printJSON(goal)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	return printJSON(settings)
}
