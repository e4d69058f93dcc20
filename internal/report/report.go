package report

import "time"

// StageResult captures the outcome of a single lifecycle stage.
type StageResult struct {
	CaseName   string        `json:"case_name"`
	CasePath   string        `json:"case_path"`
	StageName  string        `json:"stage_name"`
	Command    string        `json:"command"`
	Status     string        `json:"status"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	Stdout     string        `json:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Failures   []string      `json:"failures,omitempty"`
	DryRun     bool          `json:"dry_run"`
}

// Summary aggregates harness execution results.
type Summary struct {
	RunID       string        `json:"run_id,omitempty"`
	TotalCases  int           `json:"total_cases"`
	TotalStages int           `json:"total_stages"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms"`
	ExitCode    int           `json:"exit_code"`
}
