// Package integration contains integration tests for windtrader.
package integration

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/westfall/windtrader/internal/cli"
	"github.com/westfall/windtrader/pkg/testhelper"
)

var (
	corpusDirOnce sync.Once
	corpusDirPath string
)

// corpusDir returns the path to the conformance corpus.
// The result is cached since runtime.Caller is relatively expensive.
func corpusDir() string {
	corpusDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		corpusDirPath = filepath.Join(filepath.Dir(filename), "..", "corpus")
	})
	return corpusDirPath
}

func run(args []string, input string) testhelper.Result {
	var stdout, stderr bytes.Buffer
	code := cli.RunWithIO(args, strings.NewReader(input), &stdout, &stderr)
	return testhelper.Result{Exit: code, Stdout: stdout.String(), Stderr: stderr.String()}
}

func loadCorpus(t *testing.T) map[string][]testhelper.Case {
	t.Helper()

	suites, err := testhelper.LoadAllSuites(corpusDir())
	if err != nil {
		t.Fatalf("failed to load corpus: %v", err)
	}
	if len(suites["valid"]) == 0 || len(suites["invalid"]) == 0 {
		t.Fatalf("corpus at %s is missing the valid or invalid suite", corpusDir())
	}
	return suites
}

func TestCorpus(t *testing.T) {
	t.Setenv("WINDTRADER_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")

	for _, cases := range loadCorpus(t) {
		for _, tc := range cases {
			t.Run(tc.String(), func(t *testing.T) {
				if tc.Skip {
					t.Skip("marked skip")
				}

				if diff := testhelper.Compare(tc, run([]string{"check"}, tc.Input), testhelper.ModeCheck); diff != "" {
					t.Errorf("check: %s", diff)
				}
				if diff := testhelper.Compare(tc, run([]string{"echo"}, tc.Input), testhelper.ModeEcho); diff != "" {
					t.Errorf("echo: %s", diff)
				}
			})
		}
	}
}

func TestCorpus_SuitesMatchExpectations(t *testing.T) {
	for _, tc := range loadCorpus(t)["valid"] {
		if tc.Exit != 0 {
			t.Errorf("%s: valid suite case expects exit %d", tc, tc.Exit)
		}
	}
	for _, tc := range loadCorpus(t)["invalid"] {
		if tc.Exit == 0 || len(tc.Errors) == 0 {
			t.Errorf("%s: invalid suite case must expect errors", tc)
		}
	}
}

func TestCorpus_EchoOutputRevalidates(t *testing.T) {
	for _, tc := range loadCorpus(t)["valid"] {
		t.Run(tc.String(), func(t *testing.T) {
			first := run([]string{"echo"}, tc.Input)
			second := run([]string{"echo"}, first.Stdout)

			if second.Exit != 0 || second.Stdout != first.Stdout {
				t.Errorf("echo is not idempotent: first %q, second %q (exit %d)", first.Stdout, second.Stdout, second.Exit)
			}
		})
	}
}

func TestVersions(t *testing.T) {
	r := run([]string{"versions"}, "")
	if r.Exit != 0 {
		t.Fatalf("versions exit = %d, stderr = %q", r.Exit, r.Stderr)
	}

	want := []string{
		"name=windtrader",
		"mode=validator",
		"validation=parse-only",
		"go_min=1.24",
		"sysml_version=2025-07",
	}
	got := testhelper.Lines(r.Stdout)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("versions = %q, want %q", got, want)
	}
}
