package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoCases indicates that no case files were found during discovery.
var ErrNoCases = errors.New("no cases discovered")

// Cases returns case file paths. If explicit paths are provided they
// are validated and returned in the order given. Otherwise lmrtest.yml
// files are globbed at the root and one directory deep, sorted
// lexicographically.
func Cases(root string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return resolveExplicit(root, explicit)
	}

	patterns := []string{
		filepath.Join(root, "lmrtest.yml"),
		filepath.Join(root, "lmrtest.yaml"),
		filepath.Join(root, "*", "lmrtest.yml"),
		filepath.Join(root, "*", "lmrtest.yaml"),
	}

	matches := make(map[string]struct{})
	for _, pattern := range patterns {
		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range found {
			matches[m] = struct{}{}
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoCases
	}

	paths := make([]string, 0, len(matches))
	for p := range matches {
		paths = append(paths, mustRelOrClean(root, p))
	}
	sort.Strings(paths)

	return paths, nil
}

func resolveExplicit(root string, explicit []string) ([]string, error) {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(explicit))
	for _, input := range explicit {
		cleaned := input
		if !filepath.IsAbs(cleaned) {
			cleaned = filepath.Join(root, cleaned)
		}
		info, err := os.Stat(cleaned)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("case %q not found", input)
			}
			return nil, fmt.Errorf("stat %q: %w", input, err)
		}
		if info.IsDir() {
			// Accept a fixture directory and look for its case file.
			cleaned = filepath.Join(cleaned, "lmrtest.yml")
			if _, err := os.Stat(cleaned); err != nil {
				return nil, fmt.Errorf("case %q has no lmrtest.yml", input)
			}
		}
		rel := mustRelOrClean(root, cleaned)
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		resolved = append(resolved, rel)
	}
	if len(resolved) == 0 {
		return nil, ErrNoCases
	}
	return resolved, nil
}

func mustRelOrClean(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}
