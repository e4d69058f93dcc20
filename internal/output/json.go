package output

import (
	"encoding/json"
	"io"

	"github.com/gdtk-uq/lmrtest/internal/report"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

// JSONRenderer emits structured execution data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures the JSON output schema.
type Report struct {
	RunID    string               `json:"run_id,omitempty"`
	Cases    []scenario.Case      `json:"cases"`
	Stages   []report.StageResult `json:"stages,omitempty"`
	Summary  report.Summary       `json:"summary"`
	Warnings []string             `json:"warnings,omitempty"`
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(report Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
