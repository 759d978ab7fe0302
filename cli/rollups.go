package cli

// This file contains the rollups command: run the external rollup
// calculator over a directory of raw captures and print the aggregate
// summary as JSON.

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cedarctl/cedarctl/rollup"
	"github.com/cedarctl/cedarctl/runner"
)

func (a *App) rollups(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("expected <capture-dir> <curator-dir>, got %d arguments", len(args))
	}
	captureDir, curatorDir := args[0], args[1]

	// The calculator's own streams are suppressed; its output file is
	// the only thing read.
	processor := rollup.NewProcessor(a.logger, runner.Exec{})
	if scratch := ctx.String("scratch-dir"); scratch != "" {
		processor.ScratchDir = scratch
	}

	summary, err := processor.Process(captureDir, curatorDir)
	if err != nil {
		a.logger.Error().Err(err).Str("dir", captureDir).Msg("Failed to process captures")
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	fmt.Fprintln(ctx.App.Writer, string(out))
	return nil
}
