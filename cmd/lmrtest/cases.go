package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdtk-uq/lmrtest/internal/config"
	"github.com/gdtk-uq/lmrtest/internal/discovery"
	"github.com/gdtk-uq/lmrtest/internal/scenario"
	"github.com/gdtk-uq/lmrtest/internal/version"
)

// caseData bundles loaded cases with discovery metadata.
type caseData struct {
	cases []scenario.Case
}

func loadCases(root string, cfg config.Config) (caseData, error) {
	paths, err := discovery.Cases(root, cfg.Cases)
	if err != nil {
		if errors.Is(err, discovery.ErrNoCases) {
			return caseData{}, fmt.Errorf("no cases found; specify --case to provide files")
		}
		return caseData{}, err
	}

	defaults := scenario.Defaults{Solver: cfg.Solver, BuildTool: cfg.BuildTool}
	cases := make([]scenario.Case, 0, len(paths))
	for _, path := range paths {
		c, err := scenario.Load(root, path, defaults)
		if err != nil {
			return caseData{}, err
		}
		cases = append(cases, c)
	}

	namePatterns, err := scenario.Compile(cfg.Names)
	if err != nil {
		return caseData{}, err
	}
	cases = scenario.FilterCases(cases, namePatterns)

	return caseData{cases: cases}, nil
}

type probeResult struct {
	info version.Info
	err  error
}

// detectBinaryWarnings probes each distinct solver and build tool with
// --version so a missing binary is reported up front rather than four
// prep stages into the first case. Cases that pin a solver version get
// a major.minor comparison against what the binary reports.
func detectBinaryWarnings(cases []scenario.Case, cfg config.Config, logger *slog.Logger) []string {
	if !cfg.Warn.MissingSolver {
		return nil
	}

	var warnings []string
	probed := make(map[string]probeResult)
	probe := func(binary string) probeResult {
		if res, ok := probed[binary]; ok {
			return res
		}
		info, err := version.Detect(binary)
		res := probeResult{info: info, err: err}
		probed[binary] = res
		if err == nil {
			logger.Debug("detected binary", "binary", binary, "version", info.Version)
		} else if version.Missing(err) {
			warnings = append(warnings, fmt.Sprintf("executable %q not found on PATH", binary))
		}
		// A binary that runs but reports an unparseable version is
		// not worth a warning.
		return res
	}

	for _, c := range cases {
		probe(c.BuildTool)
		res := probe(c.Solver)
		if c.SolverVersion == "" || res.err != nil {
			continue
		}
		if !version.CompareMajorMinor(c.SolverVersion, res.info.Version) {
			warnings = append(warnings, fmt.Sprintf("case %q wants solver %s, binary %q reports %s",
				c.Name, c.SolverVersion, c.Solver, res.info.Version))
		}
	}
	return warnings
}
