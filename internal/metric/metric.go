// Package metric extracts tagged numeric values from solver console output.
//
// The solver reports its final quantities on tagged lines, for example:
//
//	FINAL-STEP 32
//	FINAL-CFL 7.292000e+03
//
// The value is always the second whitespace-delimited field of the
// matching line. Solvers print provisional values before the final one,
// so the last occurrence of a tag wins.
package metric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// Kind selects how a metric's value field is parsed.
type Kind string

const (
	// KindInt parses the value as an integer count.
	KindInt Kind = "int"
	// KindFloat parses the value as a floating-point quantity.
	KindFloat Kind = "float"
)

// Spec identifies a metric to scan for.
type Spec struct {
	Name string
	Tag  string
	Kind Kind
}

// Value is an extracted metric. Found reports whether the tag appeared
// at all; a metric that was never reported is distinct from a reported
// zero.
type Value struct {
	Spec  Spec
	Line  string
	Int   int64
	Float float64
	Found bool
}

// Scan walks captured stdout line by line and returns one Value per
// spec, keyed by metric name. ANSI escape sequences are stripped before
// tag matching since solvers colorize their residual output. A line
// that carries a recognized tag but no parseable value field is a
// malformed-output error, not a miss.
func Scan(stdout string, specs []Spec) (map[string]Value, error) {
	values := make(map[string]Value, len(specs))
	for _, spec := range specs {
		values[spec.Name] = Value{Spec: spec}
	}

	for _, raw := range strings.Split(stdout, "\n") {
		line := stripansi.Strip(raw)
		for _, spec := range specs {
			if !strings.Contains(line, spec.Tag) {
				continue
			}
			val, err := parseLine(spec, line)
			if err != nil {
				return nil, err
			}
			values[spec.Name] = val
		}
	}

	return values, nil
}

func parseLine(spec Spec, line string) (Value, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Value{}, fmt.Errorf("metric %q: line %q carries tag %q but no value field", spec.Name, line, spec.Tag)
	}

	val := Value{Spec: spec, Line: line, Found: true}
	switch spec.Kind {
	case KindInt:
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("metric %q: parse integer %q: %w", spec.Name, fields[1], err)
		}
		val.Int = n
	case KindFloat:
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Value{}, fmt.Errorf("metric %q: parse float %q: %w", spec.Name, fields[1], err)
		}
		val.Float = f
	default:
		return Value{}, fmt.Errorf("metric %q: unknown kind %q", spec.Name, spec.Kind)
	}
	return val, nil
}
