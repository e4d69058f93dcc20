// Package scenario defines solver regression cases and their lifecycle.
//
// A case is declared in an lmrtest.yml file sitting next to the
// simulation fixture it exercises. The case expands into a single
// ordered stage pipeline, prep through cleanup, so the artifact
// chaining between stages (grid and init files consumed by the run, a
// snapshot consumed by the restart) is explicit rather than implied by
// test ordering.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gdtk-uq/lmrtest/internal/metric"
)

// Defaults supply binary names for cases that do not pin their own.
type Defaults struct {
	Solver    string
	BuildTool string
}

// Case describes one regression case against the solver CLI.
type Case struct {
	Path string `json:"path" yaml:"-"`
	Dir  string `json:"-" yaml:"-"`

	Name      string       `json:"name" yaml:"name"`
	Solver    string       `json:"solver" yaml:"solver"`
	BuildTool string       `json:"build_tool" yaml:"build_tool"`
	// SolverVersion, when set, is checked against the solver's
	// reported version before stages run. Mismatch warns, not fails;
	// the metrics decide whether the solver still behaves.
	SolverVersion string `json:"solver_version,omitempty" yaml:"solver_version"`
	Prep      []string     `json:"prep" yaml:"prep"`
	Run       RunSpec      `json:"run" yaml:"run"`
	Snapshot  SnapshotSpec `json:"snapshot" yaml:"snapshot"`
	Restart   *RestartSpec `json:"restart,omitempty" yaml:"restart"`
	Cleanup   string       `json:"cleanup" yaml:"cleanup"`
}

// RunSpec configures the steady-state run stage.
type RunSpec struct {
	Command string       `json:"command" yaml:"command"`
	Args    []string     `json:"args,omitempty" yaml:"args"`
	Metrics []MetricSpec `json:"metrics" yaml:"metrics"`
}

// MetricSpec pairs a console-output tag with its reference value.
// Kind "int" demands exact equality; kind "float" applies the relative
// tolerance. Message is the human-readable failure text.
type MetricSpec struct {
	Name      string  `json:"name" yaml:"name"`
	Tag       string  `json:"tag" yaml:"tag"`
	Kind      string  `json:"kind" yaml:"kind"`
	Expect    float64 `json:"expect" yaml:"expect"`
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance"`
	Message   string  `json:"message,omitempty" yaml:"message"`
}

// Spec converts the declaration into a scanner spec.
func (m MetricSpec) Spec() metric.Spec {
	return metric.Spec{Name: m.Name, Tag: m.Tag, Kind: metric.Kind(m.Kind)}
}

// SnapshotSpec configures the result-export stage.
type SnapshotSpec struct {
	Command   string   `json:"command" yaml:"command"`
	Args      []string `json:"args,omitempty" yaml:"args"`
	Artifacts []string `json:"artifacts" yaml:"artifacts"`
}

// RestartSpec configures the restart-from-snapshot stage. When Metrics
// is empty the run stage's expectations are re-checked; the restarted
// run must independently reach the same final state.
type RestartSpec struct {
	Snapshot int          `json:"snapshot" yaml:"snapshot"`
	Metrics  []MetricSpec `json:"metrics,omitempty" yaml:"metrics"`
}

// Stage is one external command invocation in a case's lifecycle.
type Stage struct {
	Name      string       `json:"name"`
	Command   string       `json:"command"`
	Args      []string     `json:"args,omitempty"`
	Capture   bool         `json:"capture"`
	Metrics   []MetricSpec `json:"metrics,omitempty"`
	Artifacts []string     `json:"artifacts,omitempty"`
}

// CommandLine renders the stage invocation for messages and listings.
func (s Stage) CommandLine() string {
	if len(s.Args) == 0 {
		return s.Command
	}
	return s.Command + " " + strings.Join(s.Args, " ")
}

// Load reads and validates a case file. Path may be relative to root.
// The case executes in the directory containing its file.
func Load(root, path string, defaults Defaults) (Case, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return Case{}, fmt.Errorf("read case %q: %w", path, err)
	}

	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Case{}, fmt.Errorf("parse case %q: %w", path, err)
	}

	c.Path = path
	c.Dir = filepath.Dir(full)
	applyDefaults(&c, defaults)

	if err := validate(c); err != nil {
		return Case{}, fmt.Errorf("case %q: %w", path, err)
	}
	return c, nil
}

func applyDefaults(c *Case, defaults Defaults) {
	if c.Name == "" {
		c.Name = filepath.Base(c.Dir)
	}
	if c.Solver == "" {
		c.Solver = defaults.Solver
	}
	if c.Solver == "" {
		c.Solver = "lmr"
	}
	if c.BuildTool == "" {
		c.BuildTool = defaults.BuildTool
	}
	if c.BuildTool == "" {
		c.BuildTool = "make"
	}
	if c.Prep == nil {
		c.Prep = []string{"links", "prep-gas", "grid", "init"}
	}
	if c.Run.Command == "" {
		c.Run.Command = "run-steady"
	}
	if c.Snapshot.Command == "" {
		c.Snapshot.Command = "snapshot2vtk"
	}
	if c.Snapshot.Args == nil {
		c.Snapshot.Args = []string{"--all"}
	}
	if c.Snapshot.Artifacts == nil {
		c.Snapshot.Artifacts = []string{"vtk"}
	}
	if c.Cleanup == "" {
		c.Cleanup = "clean"
	}
	for i := range c.Run.Metrics {
		defaultMetric(&c.Run.Metrics[i])
	}
	if c.Restart != nil {
		for i := range c.Restart.Metrics {
			defaultMetric(&c.Restart.Metrics[i])
		}
	}
}

func defaultMetric(m *MetricSpec) {
	if m.Kind == string(metric.KindFloat) && m.Tolerance == 0 {
		m.Tolerance = 0.005
	}
}

func validate(c Case) error {
	if len(c.Run.Metrics) == 0 {
		return fmt.Errorf("run stage declares no metric expectations")
	}
	if err := validateMetrics(c.Run.Metrics); err != nil {
		return err
	}
	if c.Restart != nil {
		if c.Restart.Snapshot < 0 {
			return fmt.Errorf("restart snapshot index %d is negative", c.Restart.Snapshot)
		}
		if err := validateMetrics(c.Restart.Metrics); err != nil {
			return err
		}
	}
	return nil
}

func validateMetrics(metrics []MetricSpec) error {
	for _, m := range metrics {
		if m.Name == "" {
			return fmt.Errorf("metric with tag %q has no name", m.Tag)
		}
		if m.Tag == "" {
			return fmt.Errorf("metric %q has no tag", m.Name)
		}
		switch metric.Kind(m.Kind) {
		case metric.KindInt:
		case metric.KindFloat:
			if m.Expect == 0 {
				return fmt.Errorf("metric %q: relative tolerance needs a nonzero reference", m.Name)
			}
		default:
			return fmt.Errorf("metric %q: unknown kind %q", m.Name, m.Kind)
		}
	}
	return nil
}

// Stages expands the case into its ordered lifecycle pipeline:
// prep targets, run, snapshot, optional restart, cleanup.
func (c Case) Stages() []Stage {
	stages := make([]Stage, 0, len(c.Prep)+4)

	for _, tgt := range c.Prep {
		stages = append(stages, Stage{
			Name:    "prep:" + tgt,
			Command: c.BuildTool,
			Args:    []string{tgt},
		})
	}

	stages = append(stages, Stage{
		Name:    "run",
		Command: c.Solver,
		Args:    append([]string{c.Run.Command}, c.Run.Args...),
		Capture: true,
		Metrics: c.Run.Metrics,
	})

	stages = append(stages, Stage{
		Name:      "snapshot",
		Command:   c.Solver,
		Args:      append([]string{c.Snapshot.Command}, c.Snapshot.Args...),
		Artifacts: c.Snapshot.Artifacts,
	})

	if c.Restart != nil {
		metrics := c.Restart.Metrics
		if len(metrics) == 0 {
			metrics = c.Run.Metrics
		}
		args := append([]string{c.Run.Command}, c.Run.Args...)
		args = append(args, "-s", strconv.Itoa(c.Restart.Snapshot))
		stages = append(stages, Stage{
			Name:    "restart",
			Command: c.Solver,
			Args:    args,
			Capture: true,
			Metrics: metrics,
		})
	}

	stages = append(stages, Stage{
		Name:    "cleanup",
		Command: c.BuildTool,
		Args:    []string{c.Cleanup},
	})

	return stages
}
