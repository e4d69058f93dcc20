package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdtk-uq/lmrtest/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("case") {
		v, err := flags.GetStringArray("case")
		if err != nil {
			return values, fmt.Errorf("parse --case: %w", err)
		}
		values.Cases = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("name") {
		v, err := flags.GetStringArray("name")
		if err != nil {
			return values, fmt.Errorf("parse --name: %w", err)
		}
		values.Names = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("only-stage") {
		v, err := flags.GetStringArray("only-stage")
		if err != nil {
			return values, fmt.Errorf("parse --only-stage: %w", err)
		}
		values.OnlyStages = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("skip-stage") {
		v, err := flags.GetStringArray("skip-stage")
		if err != nil {
			return values, fmt.Errorf("parse --skip-stage: %w", err)
		}
		values.SkipStages = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("solver") {
		v, err := flags.GetString("solver")
		if err != nil {
			return values, fmt.Errorf("parse --solver: %w", err)
		}
		values.Solver = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("build-tool") {
		v, err := flags.GetString("build-tool")
		if err != nil {
			return values, fmt.Errorf("parse --build-tool: %w", err)
		}
		values.BuildTool = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("dry-run") {
		v, err := flags.GetBool("dry-run")
		if err != nil {
			return values, fmt.Errorf("parse --dry-run: %w", err)
		}
		values.DryRun = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
