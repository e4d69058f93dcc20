package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gdtk-uq/lmrtest/internal/report"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

// PrettyRenderer renders execution results in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// RenderList renders cases and their expanded stage pipelines in list mode.
func (p *PrettyRenderer) RenderList(cases []scenario.Case) error {
	for _, c := range cases {
		if _, err := fmt.Fprintf(p.out, "Case %s\n", decorateName(c.Name, c.Path)); err != nil {
			return err
		}
		for _, st := range c.Stages() {
			if _, err := fmt.Fprintf(p.out, "  %s: %s\n", st.Name, st.CommandLine()); err != nil {
				return err
			}
			for _, m := range st.Metrics {
				if _, err := fmt.Fprintf(p.out, "    metric %s (%s %s)\n", m.Name, m.Kind, m.Tag); err != nil {
					return err
				}
			}
			for _, artifact := range st.Artifacts {
				if _, err := fmt.Fprintf(p.out, "    artifact %s\n", artifact); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// RenderResults shows execution outcomes for stages with a summary table.
func (p *PrettyRenderer) RenderResults(results []report.StageResult, summary report.Summary) error {
	var current string
	var buffer bytes.Buffer

	flush := func() error {
		if buffer.Len() == 0 {
			return nil
		}
		if _, err := buffer.WriteTo(p.out); err != nil {
			return err
		}
		buffer.Reset()
		return nil
	}

	for _, res := range results {
		if current != res.CaseName {
			if err := flush(); err != nil {
				return err
			}
			current = res.CaseName
			fmt.Fprintf(&buffer, "Case %s\n", decorateName(res.CaseName, res.CasePath))
		}

		fmt.Fprintf(&buffer, "  %s %s (%s)\n", statusGlyph(res.Status), res.StageName, formatDuration(res.Duration))
		for _, failure := range res.Failures {
			fmt.Fprintf(&buffer, "    %s\n", failure)
		}
		if res.Status == "failed" && res.Stderr != "" {
			fmt.Fprintf(&buffer, "    stderr: %s\n", indent(res.Stderr, "    "))
		}
		if res.DryRun {
			fmt.Fprintf(&buffer, "    command: %s\n", res.Command)
		}
	}

	if err := flush(); err != nil {
		return err
	}

	renderSummaryTable(p.out, summary)
	return nil
}

func renderSummaryTable(out io.Writer, summary report.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Solver Regression Results (%s)", formatDuration(summary.Duration)))
	t.AppendHeader(table.Row{"Cases", "Stages", "Passed", "Failed", "Skipped", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Cases", Align: text.AlignRight},
		{Name: "Stages", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})
	status := "pass"
	if summary.ExitCode != 0 {
		status = "fail"
	}
	t.AppendRow(table.Row{
		summary.TotalCases,
		summary.TotalStages,
		summary.Passed,
		summary.Failed,
		summary.Skipped,
		status,
	})
	t.Render()
}

func decorateName(name, path string) string {
	if name == "" || name == path {
		return path
	}
	return fmt.Sprintf("%s (%s)", name, path)
}

func statusGlyph(status string) string {
	switch status {
	case "passed":
		return "✓"
	case "failed":
		return "✗"
	case "skipped":
		return "-"
	default:
		return "?"
	}
}

func indent(s, pad string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		if i == 0 {
			continue
		}
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}
