package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestListCommandBasic(t *testing.T) {
	root := projectRoot(t)
	chdir(t, root)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"list", "--case", filepath.Join("testdata", "convex-corner", "lmrtest.yml")})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command execute: %v", err)
	}

	want := readGolden(t, filepath.Join(root, "testdata", "golden", "list_convex.txt"))
	if diff := diffStrings(want, buf.String()); diff != "" {
		t.Fatalf("unexpected output:\n%s", diff)
	}
}

func TestListCommandJSON(t *testing.T) {
	root := projectRoot(t)
	chdir(t, root)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"list",
		"--case", filepath.Join("testdata", "convex-corner", "lmrtest.yml"),
		"--format", "json",
	})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command execute: %v", err)
	}

	var report struct {
		Cases []struct {
			Name   string `json:"name"`
			Solver string `json:"solver"`
		} `json:"cases"`
		Summary struct {
			TotalCases  int `json:"total_cases"`
			TotalStages int `json:"total_stages"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if len(report.Cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(report.Cases))
	}
	if report.Cases[0].Name != "convex-corner single-block" {
		t.Fatalf("unexpected case name %q", report.Cases[0].Name)
	}
	if report.Cases[0].Solver != "lmr" {
		t.Fatalf("expected default solver, got %q", report.Cases[0].Solver)
	}
	if report.Summary.TotalStages != 8 {
		t.Fatalf("expected 8 stages, got %d", report.Summary.TotalStages)
	}
}

func TestListCommandNameFilterNoMatch(t *testing.T) {
	root := projectRoot(t)
	chdir(t, root)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"list",
		"--case", filepath.Join("testdata", "convex-corner", "lmrtest.yml"),
		"--name", "cone20",
	})

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command execute: %v", err)
	}
	if got := buf.String(); got != "No matching cases\n" {
		t.Fatalf("expected no-match message, got %q", got)
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root := filepath.Clean(filepath.Join(wd, "..", ".."))
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("locate project root: %v", err)
	}
	return root
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %q: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}

func readGolden(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %q: %v", path, err)
	}
	return string(data)
}

func diffStrings(want, got string) string {
	if want == got {
		return ""
	}
	return "--- want\n" + want + "\n--- got\n" + got
}
