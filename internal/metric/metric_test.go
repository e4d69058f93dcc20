package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convexCornerSpecs = []Spec{
	{Name: "steps", Tag: "FINAL-STEP", Kind: KindInt},
	{Name: "cfl", Tag: "FINAL-CFL", Kind: KindFloat},
}

func TestScanExtractsSecondField(t *testing.T) {
	stdout := "top of loop\nFINAL-STEP 32\nFINAL-CFL 7.292000e+03\ndone.\n"

	values, err := Scan(stdout, convexCornerSpecs)
	require.NoError(t, err)

	steps := values["steps"]
	require.True(t, steps.Found)
	assert.Equal(t, int64(32), steps.Int)

	cfl := values["cfl"]
	require.True(t, cfl.Found)
	assert.InDelta(t, 7292.0, cfl.Float, 1e-9)
}

func TestScanLastOccurrenceWins(t *testing.T) {
	stdout := "FINAL-STEP 10\nFINAL-CFL 1.0e+02\nFINAL-STEP 32\nFINAL-CFL 7.292e+03\n"

	values, err := Scan(stdout, convexCornerSpecs)
	require.NoError(t, err)

	assert.Equal(t, int64(32), values["steps"].Int)
	assert.InDelta(t, 7292.0, values["cfl"].Float, 1e-9)
}

func TestScanMissingTagIsNotFound(t *testing.T) {
	values, err := Scan("nothing tagged here\n", convexCornerSpecs)
	require.NoError(t, err)

	assert.False(t, values["steps"].Found)
	assert.False(t, values["cfl"].Found)
	assert.Zero(t, values["steps"].Int)
}

func TestScanStripsANSISequences(t *testing.T) {
	stdout := "\x1b[32mFINAL-STEP\x1b[0m 32\n"

	values, err := Scan(stdout, convexCornerSpecs[:1])
	require.NoError(t, err)

	require.True(t, values["steps"].Found)
	assert.Equal(t, int64(32), values["steps"].Int)
}

func TestScanMalformedValueField(t *testing.T) {
	_, err := Scan("FINAL-STEP thirty-two\n", convexCornerSpecs[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps")
}

func TestScanTagWithoutValueField(t *testing.T) {
	_, err := Scan("FINAL-STEP\n", convexCornerSpecs[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value field")
}

func TestScanUnknownKind(t *testing.T) {
	_, err := Scan("FINAL-STEP 32\n", []Spec{{Name: "steps", Tag: "FINAL-STEP", Kind: "bogus"}})
	require.Error(t, err)
}
