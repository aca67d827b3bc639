package testhelper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const invalidCase = `description: missing terminator
input: |-
  package P
exit: 2
errors:
  - "error: line=1 offset=9 near="
tags: [recovery]
`

func TestLoadCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_terminator.yaml")
	writeFile(t, path, invalidCase)

	tc, err := LoadCase(path)
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}

	want := &Case{
		Name:        "missing_terminator",
		Description: "missing terminator",
		Input:       "package P",
		Exit:        2,
		Errors:      []string{"error: line=1 offset=9 near="},
		Tags:        []string{"recovery"},
	}
	if diff := cmp.Diff(want, tc); diff != "" {
		t.Errorf("LoadCase() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCase_DefaultsToPass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.yaml")
	writeFile(t, path, "input: \"package P;\"\n")

	tc, err := LoadCase(path)
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}
	if tc.Exit != 0 || len(tc.Errors) != 0 {
		t.Errorf("got exit %d errors %v, want a passing case", tc.Exit, tc.Errors)
	}
}

func TestLoadCase_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"unknown field", "input: x\nouput: y\n", "field ouput not found"},
		{"bad exit", "input: x\nexit: 1\n", "invalid exit code 1"},
		{"errors on pass", "input: x\nerrors: [\"error: msg=x\"]\n", "expected to pass"},
		{"multi-line error", "input: x\nexit: 2\nerrors: [\"a\\nb\"]\n", "errors[0] spans several lines"},
		{"not yaml", "input: [\n", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "case.yaml")
			writeFile(t, path, tt.content)

			_, err := LoadCase(path)
			var caseErr *CaseError
			if !errors.As(err, &caseErr) {
				t.Fatalf("LoadCase() error = %v, want *CaseError", err)
			}
			if !strings.Contains(caseErr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", caseErr.Reason, tt.reason)
			}
		})
	}
}

func TestLoadCase_NotFound(t *testing.T) {
	_, err := LoadCase(filepath.Join(t.TempDir(), "missing.yaml"))

	var nf *CaseNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("LoadCase() error = %v, want *CaseNotFoundError", err)
	}
}

func TestLoadCase_EmptyName(t *testing.T) {
	_, err := LoadCase(filepath.Join(t.TempDir(), ".yaml"))

	var caseErr *CaseError
	if !errors.As(err, &caseErr) {
		t.Fatalf("LoadCase() error = %v, want *CaseError", err)
	}
}

func TestLoadCaseWithSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.yaml")
	writeFile(t, path, "input: x\n")

	tc, err := LoadCaseWithSuite(path, "valid")
	if err != nil {
		t.Fatalf("LoadCaseWithSuite() error = %v", err)
	}
	if tc.Suite != "valid" || tc.String() != "valid/a" {
		t.Errorf("Suite = %q, String() = %q", tc.Suite, tc.String())
	}

	if _, err := LoadCaseWithSuite(path, ""); err == nil {
		t.Error("LoadCaseWithSuite() with empty suite should fail")
	}
}

func TestLoadSuite_SortedByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "valid", "b.yaml"), "input: b\n")
	writeFile(t, filepath.Join(dir, "valid", "a.yaml"), "input: a\n")
	writeFile(t, filepath.Join(dir, "valid", "notes.txt"), "ignored")

	cases, err := LoadSuite(dir, "valid")
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}

	var names []string
	for _, c := range cases {
		names = append(names, c.String())
	}
	if diff := cmp.Diff([]string{"valid/a", "valid/b"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSuite_NotFound(t *testing.T) {
	_, err := LoadSuite(t.TempDir(), "missing")

	var nf *SuiteNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("LoadSuite() error = %v, want *SuiteNotFoundError", err)
	}
	if nf.Suite != "missing" {
		t.Errorf("Suite = %q", nf.Suite)
	}
}

func TestLoadSuite_InvalidCase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "s", "bad.yaml"), "exit: 7\n")

	if _, err := LoadSuite(dir, "s"); err == nil {
		t.Error("LoadSuite() should fail on an invalid case")
	}
}

func TestLoadAllSuites(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "valid", "a.yaml"), "input: a\n")
	writeFile(t, filepath.Join(dir, "invalid", "b.yaml"), invalidCase)
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	suites, err := LoadAllSuites(dir)
	if err != nil {
		t.Fatalf("LoadAllSuites() error = %v", err)
	}
	if len(suites) != 2 {
		t.Errorf("got %d suites, want 2 (empty suites skipped)", len(suites))
	}
	if len(suites["invalid"]) != 1 || suites["invalid"][0].Exit != 2 {
		t.Errorf("invalid suite = %+v", suites["invalid"])
	}
}

func TestLoadAllSuites_MissingDir(t *testing.T) {
	suites, err := LoadAllSuites(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadAllSuites() error = %v", err)
	}
	if len(suites) != 0 {
		t.Errorf("got %d suites, want 0", len(suites))
	}
}

func TestSuiteExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "valid", "a.yaml"), "input: a\n")
	writeFile(t, filepath.Join(dir, "file"), "")

	if !SuiteExists(dir, "valid") {
		t.Error("SuiteExists(valid) = false")
	}
	if SuiteExists(dir, "file") {
		t.Error("SuiteExists(file) = true for a regular file")
	}
	if SuiteExists(dir, "missing") {
		t.Error("SuiteExists(missing) = true")
	}
}

func TestValidateSuiteName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"valid", false},
		{"edge-cases", false},
		{"", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
	}

	for _, tt := range tests {
		if err := ValidateSuiteName(tt.name); (err != nil) != tt.wantErr {
			t.Errorf("ValidateSuiteName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestFindCorpusFrom(t *testing.T) {
	root := t.TempDir()
	corpus := filepath.Join(root, "test", "corpus")
	if err := os.MkdirAll(corpus, 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "internal", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindCorpusFrom(sub)
	if err != nil {
		t.Fatalf("FindCorpusFrom() error = %v", err)
	}
	if got != corpus {
		t.Errorf("FindCorpusFrom() = %q, want %q", got, corpus)
	}
}

func TestFindCorpusFrom_NotFound(t *testing.T) {
	_, err := FindCorpusFrom(t.TempDir())
	if !errors.Is(err, ErrCorpusNotFound) {
		t.Fatalf("FindCorpusFrom() error = %v, want ErrCorpusNotFound", err)
	}

	var nf *CorpusNotFoundError
	if !errors.As(err, &nf) || nf.StartDir == "" {
		t.Errorf("error = %#v, want *CorpusNotFoundError with StartDir", err)
	}
}

func TestCase_HasTag(t *testing.T) {
	c := Case{Tags: []string{"recovery", "kerml"}}
	if !c.HasTag("kerml") {
		t.Error("HasTag(kerml) = false")
	}
	if c.HasTag("sysml") {
		t.Error("HasTag(sysml) = true")
	}
}
