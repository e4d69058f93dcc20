// Package runner executes case pipelines against the solver CLI.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gdtk-uq/lmrtest/internal/expect"
	"github.com/gdtk-uq/lmrtest/internal/metric"
	"github.com/gdtk-uq/lmrtest/internal/report"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

// Options configure how the runner executes case stages.
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Verbose    bool
	DryRun     bool
	TailLines  int
	Env        []string
	Now        func() time.Time
	Logger     *slog.Logger
	OnlyStages []scenario.Pattern
	SkipStages []scenario.Pattern
}

// Runner executes case stages sequentially.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.TailLines <= 0 {
		opts.TailLines = 20
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{opts: opts}
}

// Run executes the provided cases returning stage results and a summary.
//
// Each case is a fixed pipeline: a stage failure skips the remaining
// stages of that case, because every stage depends on artifacts left by
// the ones before it. Later cases still run. Solver invocations are
// deterministic, so nothing is retried.
func (r *Runner) Run(cases []scenario.Case) ([]report.StageResult, report.Summary, error) {
	summary := report.Summary{TotalCases: len(cases)}
	results := make([]report.StageResult, 0)

	for _, c := range cases {
		stages := scenario.FilterStages(c.Stages(), r.opts.OnlyStages, r.opts.SkipStages)
		halted := false

		for _, st := range stages {
			summary.TotalStages++

			result := report.StageResult{
				CaseName:  c.Name,
				CasePath:  c.Path,
				StageName: st.Name,
				Command:   st.CommandLine(),
				DryRun:    r.opts.DryRun,
			}

			if halted {
				result.Status = "skipped"
				result.Failures = []string{"earlier stage failed"}
				summary.Skipped++
				results = append(results, result)
				continue
			}

			if r.opts.DryRun {
				result.Status = "skipped"
				summary.Skipped++
				results = append(results, result)
				continue
			}

			start := r.opts.Now()
			err := r.runStage(context.Background(), c, st, &result)
			result.Duration = r.opts.Now().Sub(start)
			result.DurationMS = result.Duration.Milliseconds()

			if err != nil {
				result.Status = "failed"
				result.Stdout = tailLines(result.Stdout, r.opts.TailLines)
				result.Stderr = tailLines(result.Stderr, r.opts.TailLines)
				summary.Failed++
				summary.ExitCode = 1
				halted = true
				r.opts.Logger.Error("stage failed",
					"case", c.Name,
					"stage", st.Name,
					"command", result.Command,
					"exit_code", result.ExitCode,
				)
			} else {
				result.Status = "passed"
				summary.Passed++
			}

			summary.Duration += result.Duration
			results = append(results, result)
		}
	}

	summary.DurationMS = summary.Duration.Milliseconds()
	return results, summary, nil
}

// runStage invokes the stage command with a literal argument list in
// the case directory. No shell is involved; solver arguments must never
// be re-split or interpolated.
func (r *Runner) runStage(ctx context.Context, c scenario.Case, st scenario.Stage, result *report.StageResult) error {
	cmd := exec.CommandContext(ctx, st.Command, st.Args...)
	cmd.Dir = c.Dir
	cmd.Env = r.opts.Env

	var stdoutBuf, stderrBuf strings.Builder
	if r.opts.Verbose {
		cmd.Stdout = io.MultiWriter(r.opts.Stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(r.opts.Stderr, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	runErr := cmd.Run()
	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()
	result.ExitCode = exitCode(runErr)

	if runErr != nil {
		result.Failures = append(result.Failures, fmt.Sprintf("failed during: %s", result.Command))
		return fmt.Errorf("stage %s: %s: %w", st.Name, result.Command, runErr)
	}

	r.opts.Logger.Debug("stage completed",
		"case", c.Name,
		"stage", st.Name,
		"command", result.Command,
	)

	failures := verify(c, st, result.Stdout)
	if len(failures) > 0 {
		for _, f := range failures {
			result.Failures = append(result.Failures, f.String())
		}
		return fmt.Errorf("stage %s: %d expectation(s) violated", st.Name, len(failures))
	}
	return nil
}

// verify applies the stage's metric and artifact expectations. Artifact
// checks run even when the command exited zero; a clean exit with a
// missing export directory is still a failure.
func verify(c scenario.Case, st scenario.Stage, stdout string) []expect.Failure {
	var failures []expect.Failure

	if st.Capture && len(st.Metrics) > 0 {
		specs := make([]metric.Spec, 0, len(st.Metrics))
		for _, m := range st.Metrics {
			specs = append(specs, m.Spec())
		}
		values, err := metric.Scan(stdout, specs)
		if err != nil {
			failures = append(failures, expect.Failure{
				Name:     "output",
				Expected: "parseable tagged metrics",
				Actual:   err.Error(),
				Message:  "solver output could not be parsed",
			})
		} else {
			for _, m := range st.Metrics {
				val := values[m.Name]
				var f *expect.Failure
				switch metric.Kind(m.Kind) {
				case metric.KindInt:
					f = expect.CheckInt(expect.IntMetric{
						Name:    m.Name,
						Want:    int64(m.Expect),
						Message: m.Message,
					}, val)
				case metric.KindFloat:
					f = expect.CheckFloat(expect.FloatMetric{
						Name:      m.Name,
						Want:      m.Expect,
						Tolerance: m.Tolerance,
						Message:   m.Message,
					}, val)
				}
				if f != nil {
					failures = append(failures, *f)
				}
			}
		}
	}

	for _, artifact := range st.Artifacts {
		if f := expect.CheckArtifact(c.Dir, artifact); f != nil {
			failures = append(failures, *f)
		}
	}

	return failures
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func tailLines(input string, maxLines int) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
