package scenario

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern represents a compiled filter condition supporting substring and regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. Patterns
// wrapped in slashes compile as regular expressions; anything else
// matches as a case-insensitive substring.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// FilterCases keeps cases whose name or path matches any pattern.
func FilterCases(cases []Case, patterns []Pattern) []Case {
	if len(patterns) == 0 || len(cases) == 0 {
		return cases
	}
	result := make([]Case, 0, len(cases))
	for _, c := range cases {
		for _, pattern := range patterns {
			if pattern.Match(c.Name) || pattern.Match(c.Path) {
				result = append(result, c)
				break
			}
		}
	}
	return result
}

// FilterStages applies only/skip patterns to an expanded pipeline.
// Skipping a prep stage breaks the artifact chain for later stages;
// that is the caller's call to make, same as skipping a CI step.
func FilterStages(stages []Stage, onlyPatterns, skipPatterns []Pattern) []Stage {
	if len(stages) == 0 {
		return nil
	}
	result := make([]Stage, 0, len(stages))
	for _, st := range stages {
		if len(onlyPatterns) > 0 && !matchesStage(st, onlyPatterns) {
			continue
		}
		if len(skipPatterns) > 0 && matchesStage(st, skipPatterns) {
			continue
		}
		result = append(result, st)
	}
	return result
}

func matchesStage(st Stage, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(st.Name) || pattern.Match(st.CommandLine()) {
			return true
		}
	}
	return false
}
