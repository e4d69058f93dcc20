package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdtk-uq/lmrtest/internal/report"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
)

func TestJSONRender(t *testing.T) {
	in := Report{
		RunID: "3f6f1a2e-0000-0000-0000-000000000000",
		Cases: []scenario.Case{convexCornerCase()},
		Stages: []report.StageResult{
			{CaseName: "convex-corner single-block", StageName: "run", Status: "passed", ExitCode: 0},
		},
		Summary:  report.Summary{RunID: "3f6f1a2e-0000-0000-0000-000000000000", TotalCases: 1, TotalStages: 1, Passed: 1},
		Warnings: []string{`solver executable "lmr" not found on PATH`},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, NewJSON(buf).Render(in))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, in.RunID, decoded["run_id"])
	cases := decoded["cases"].([]any)
	require.Len(t, cases, 1)
	c := cases[0].(map[string]any)
	assert.Equal(t, "convex-corner single-block", c["name"])
	assert.Equal(t, "lmr", c["solver"])

	stages := decoded["stages"].([]any)
	require.Len(t, stages, 1)
	assert.Equal(t, "passed", stages[0].(map[string]any)["status"])

	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["passed"])

	warnings := decoded["warnings"].([]any)
	require.Len(t, warnings, 1)
}
