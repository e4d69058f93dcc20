// Package expect compares observed stage outcomes against reference values.
package expect

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gdtk-uq/lmrtest/internal/metric"
)

// Failure describes a single violated expectation.
type Failure struct {
	Name     string
	Expected string
	Actual   string
	Message  string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", f.Message, f.Expected, f.Actual)
}

// IntMetric is an exact-match expectation for an integer metric.
type IntMetric struct {
	Name    string
	Want    int64
	Message string
}

// FloatMetric is a relative-tolerance expectation for a float metric.
// The check passes when |observed - Want| / Want < Tolerance.
type FloatMetric struct {
	Name      string
	Want      float64
	Tolerance float64
	Message   string
}

// CheckInt compares an observed integer metric against its reference.
// A metric that was never reported fails explicitly rather than
// comparing against a default zero.
func CheckInt(exp IntMetric, val metric.Value) *Failure {
	if !val.Found {
		return notReported(exp.Name, exp.Message, fmt.Sprintf("%d", exp.Want))
	}
	if val.Int != exp.Want {
		return &Failure{
			Name:     exp.Name,
			Expected: fmt.Sprintf("%d", exp.Want),
			Actual:   fmt.Sprintf("%d", val.Int),
			Message:  message(exp.Message, exp.Name),
		}
	}
	return nil
}

// CheckFloat compares an observed float metric against its reference
// within the configured relative tolerance.
func CheckFloat(exp FloatMetric, val metric.Value) *Failure {
	if !val.Found {
		return notReported(exp.Name, exp.Message, fmt.Sprintf("%g", exp.Want))
	}
	if math.Abs(val.Float-exp.Want)/math.Abs(exp.Want) >= exp.Tolerance {
		return &Failure{
			Name:     exp.Name,
			Expected: fmt.Sprintf("%g (within %.2f%%)", exp.Want, exp.Tolerance*100),
			Actual:   fmt.Sprintf("%g", val.Float),
			Message:  message(exp.Message, exp.Name),
		}
	}
	return nil
}

// CheckArtifact asserts that path exists under dir. The harness only
// observes filesystem state; artifacts are owned by the solver.
func CheckArtifact(dir, path string) *Failure {
	if _, err := os.Stat(filepath.Join(dir, path)); err != nil {
		return &Failure{
			Name:     path,
			Expected: fmt.Sprintf("artifact %q present", path),
			Actual:   "missing",
			Message:  fmt.Sprintf("expected artifact %q was not produced", path),
		}
	}
	return nil
}

func notReported(name, msg, want string) *Failure {
	return &Failure{
		Name:     name,
		Expected: want,
		Actual:   "metric not reported",
		Message:  message(msg, name),
	}
}

func message(msg, name string) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("expected value for %s", name)
}
