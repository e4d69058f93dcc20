package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lmrtest",
		Short:         "Lmrtest drives solver regression cases through their full lifecycle",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.StringArray("case", nil, "case file or fixture directory to include (repeatable)")
	persistent.StringArray("name", nil, "case name filter (repeatable)")
	persistent.StringArray("only-stage", nil, "include only matching stages")
	persistent.StringArray("skip-stage", nil, "exclude matching stages")
	persistent.String("solver", "", "solver binary used when a case does not pin one")
	persistent.String("build-tool", "", "build tool used when a case does not pin one")
	persistent.Bool("dry-run", false, "print stages without executing them")
	persistent.BoolP("verbose", "v", false, "stream solver output in real time")
	persistent.String("format", "pretty", "output format (pretty|json)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}
