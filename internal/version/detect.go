package version

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Info captures the version a binary reports about itself.
type Info struct {
	Name    string
	Version string
}

var versionRegex = regexp.MustCompile(`(?i)v?(\d+\.\d+(?:\.\d+)?)`)

// Detect probes a binary with `--version` and parses a semver-like
// token from its output. Used as a preflight before stages run, so a
// missing solver surfaces as a warning up front instead of a failure
// four prep stages in.
func Detect(binary string) (Info, error) {
	out, err := runCommand(binary, "--version")
	if err != nil {
		return Info{}, err
	}
	match := versionRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return Info{}, fmt.Errorf("unable to parse version from %q", out)
	}
	return Info{Name: binary, Version: match[1]}, nil
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// CompareMajorMinor compares major.minor portions of two semver-like versions.
func CompareMajorMinor(desired, actual string) bool {
	d := semverPrefix(desired)
	a := semverPrefix(actual)
	if d == "" || a == "" {
		return false
	}
	return strings.EqualFold(d, a)
}

func semverPrefix(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return ""
	}
	return fmt.Sprintf("%s.%s", parts[0], parts[1])
}

// Missing reports whether executing the command returns a not-found error.
func Missing(cmdErr error) bool {
	return errors.Is(cmdErr, exec.ErrNotFound)
}
