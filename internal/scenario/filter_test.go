package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePatterns(t *testing.T) {
	patterns, err := Compile([]string{"Run", "/^prep:/", "  ", ""})
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	assert.True(t, patterns[0].Match("restart run"))
	assert.True(t, patterns[0].Match("RUN"))
	assert.False(t, patterns[0].Match(""))

	assert.True(t, patterns[1].Match("prep:grid"))
	assert.False(t, patterns[1].Match("run"))
}

func TestCompileBadRegex(t *testing.T) {
	_, err := Compile([]string{"/((/"})
	require.Error(t, err)
}

func TestFilterCasesByName(t *testing.T) {
	cases := []Case{
		{Name: "convex-corner single-block", Path: "convex-corner/lmrtest.yml"},
		{Name: "cone20", Path: "cone20/lmrtest.yml"},
	}

	patterns, err := Compile([]string{"convex"})
	require.NoError(t, err)

	got := FilterCases(cases, patterns)
	require.Len(t, got, 1)
	assert.Equal(t, "cone20", FilterCases(cases, nil)[1].Name)
	assert.Equal(t, "convex-corner single-block", got[0].Name)
}

func TestFilterStagesOnlyAndSkip(t *testing.T) {
	stages := []Stage{
		{Name: "prep:grid", Command: "make", Args: []string{"grid"}},
		{Name: "run", Command: "lmr", Args: []string{"run-steady"}},
		{Name: "cleanup", Command: "make", Args: []string{"clean"}},
	}

	only, err := Compile([]string{"/^(run|cleanup)$/"})
	require.NoError(t, err)
	skip, err := Compile([]string{"clean"})
	require.NoError(t, err)

	got := FilterStages(stages, only, skip)
	require.Len(t, got, 1)
	assert.Equal(t, "run", got[0].Name)
}

func TestFilterStagesMatchesCommandLine(t *testing.T) {
	stages := []Stage{
		{Name: "run", Command: "lmr", Args: []string{"run-steady"}},
	}
	skip, err := Compile([]string{"run-steady"})
	require.NoError(t, err)
	assert.Empty(t, FilterStages(stages, nil, skip))
}
