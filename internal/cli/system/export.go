package system

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/export"
)

type ExportCmd struct {
	Format string `help:"Output format (yaml or json)." short:"f" default:"yaml" enum:"yaml,yml,json"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path" default:""`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	snap, err := export.Build(ctx.Store, ctx.Now())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, snap, format); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Printf("Exported %d goals, %d journal entries and %d check-ins to %s\n",
			len(snap.Goals), len(snap.Journal), len(snap.CheckIns), c.Output)
	}
	return nil
}
