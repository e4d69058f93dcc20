package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gdtk-uq/lmrtest/internal/config"
	"github.com/gdtk-uq/lmrtest/internal/output"
	"github.com/gdtk-uq/lmrtest/internal/runner"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute case lifecycles against the solver",
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	data, err := loadCases(root, cfg)
	if err != nil {
		return err
	}
	if len(data.cases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching cases")
		return nil
	}

	var warnings []string
	if !cfg.DryRun {
		warnings = detectBinaryWarnings(data.cases, cfg, logger)
	}

	onlyStages, err := scenario.Compile(cfg.OnlyStages)
	if err != nil {
		return err
	}
	skipStages, err := scenario.Compile(cfg.SkipStages)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Verbose:    cfg.Verbose,
		DryRun:     cfg.DryRun,
		TailLines:  20,
		Logger:     logger,
		OnlyStages: onlyStages,
		SkipStages: skipStages,
	}
	execRunner := runner.New(runOpts)
	results, summary, err := execRunner.Run(data.cases)
	if err != nil {
		return err
	}
	summary.RunID = uuid.NewString()

	if summary.TotalStages == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching stages")
		return nil
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderResults(results, summary); err != nil {
			return err
		}
		for _, msg := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
		}
	case config.FormatJSON:
		jsonReport := output.Report{
			RunID:    summary.RunID,
			Cases:    data.cases,
			Stages:   results,
			Summary:  summary,
			Warnings: warnings,
		}
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(jsonReport); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if summary.ExitCode != 0 {
		return fmt.Errorf("one or more stages failed")
	}

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
