package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdtk-uq/lmrtest/internal/config"
	"github.com/gdtk-uq/lmrtest/internal/output"
	"github.com/gdtk-uq/lmrtest/internal/report"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cases and their lifecycle stages",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := loadCases(root, cfg)
	if err != nil {
		return err
	}

	if len(data.cases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching cases")
		return nil
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderList(data.cases); err != nil {
			return err
		}
	case config.FormatJSON:
		jsonReport := output.Report{
			Cases:   data.cases,
			Summary: computeListSummary(data.cases),
		}
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(jsonReport); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	return nil
}

func computeListSummary(cases []scenario.Case) report.Summary {
	var stages int
	for _, c := range cases {
		stages += len(c.Stages())
	}
	return report.Summary{
		TotalCases:  len(cases),
		TotalStages: stages,
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}
