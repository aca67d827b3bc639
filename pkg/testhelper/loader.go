// Package testhelper loads SysML conformance corpora and compares validator
// results against them.
//
// A corpus is a directory with one subdirectory per suite. Each suite holds
// YAML case files:
//
//	description: missing statement terminator
//	input: |-
//	  package P
//	exit: 2
//	errors:
//	  - "error: line=1 offset=9 near="
//
// Example usage in a Go test:
//
//	func TestCorpus(t *testing.T) {
//	    dir, err := testhelper.FindCorpus()
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    suites, err := testhelper.LoadAllSuites(dir)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    for _, tc := range suites["invalid"] {
//	        t.Run(tc.Name, func(t *testing.T) {
//	            if diff := testhelper.Compare(tc, run(tc.Input), testhelper.ModeCheck); diff != "" {
//	                t.Error(diff)
//	            }
//	        })
//	    }
//	}
package testhelper

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusDir is the corpus location relative to the module root.
const CorpusDir = "test/corpus"

// CaseExt is the extension of case files.
const CaseExt = ".yaml"

// Case is a single conformance case loaded from a YAML file.
type Case struct {
	// Name is the case name (derived from filename).
	Name string `yaml:"-"`

	// Suite is the suite name (directory name).
	Suite string `yaml:"-"`

	// Description provides optional documentation.
	Description string `yaml:"description,omitempty"`

	// Input is the document fed to the validator on stdin.
	Input string `yaml:"input"`

	// Exit is the expected exit code. Absent means 0.
	Exit int `yaml:"exit"`

	// Errors are the expected stderr lines, in order.
	Errors []string `yaml:"errors,omitempty"`

	// Skip marks the case as skipped if true.
	Skip bool `yaml:"skip,omitempty"`

	// Tags provides optional categorization.
	Tags []string `yaml:"tags,omitempty"`
}

// String returns "suite/name", or just the name when the suite is unset.
func (c Case) String() string {
	if c.Suite == "" {
		return c.Name
	}
	return c.Suite + "/" + c.Name
}

// HasTag reports whether the case carries tag.
func (c Case) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// Validate checks the expectation fields for consistency.
func (c Case) Validate() error {
	switch c.Exit {
	case 0:
		if len(c.Errors) > 0 {
			return errors.New("errors listed for a case expected to pass")
		}
	case 2, 3:
	default:
		return fmt.Errorf("invalid exit code %d (must be 0, 2 or 3)", c.Exit)
	}
	for i, line := range c.Errors {
		if strings.Contains(line, "\n") {
			return fmt.Errorf("errors[%d] spans several lines", i)
		}
	}
	return nil
}

// LoadSuite loads all cases from <corpusDir>/<suite>/*.yaml, sorted by name.
func LoadSuite(corpusDir, suite string) ([]Case, error) {
	if err := ValidateSuiteName(suite); err != nil {
		return nil, err
	}

	suiteDir := filepath.Join(corpusDir, suite)
	if info, err := os.Stat(suiteDir); err != nil || !info.IsDir() {
		return nil, &SuiteNotFoundError{Suite: suite, Dir: suiteDir}
	}

	files, err := filepath.Glob(filepath.Join(suiteDir, "*"+CaseExt))
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(files))
	for _, f := range files {
		tc, err := LoadCaseWithSuite(f, suite)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *tc)
	}

	return cases, nil
}

// LoadCase loads a single case from a YAML file. Suite is left empty.
func LoadCase(path string) (*Case, error) {
	if strings.TrimSuffix(filepath.Base(path), CaseExt) == "" {
		return nil, &CaseError{Path: path, Reason: "empty case name"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &CaseNotFoundError{Path: path}
		}
		return nil, err
	}

	var tc Case
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tc); err != nil {
		return nil, &CaseError{Path: path, Reason: err.Error()}
	}
	if err := tc.Validate(); err != nil {
		return nil, &CaseError{Path: path, Reason: err.Error()}
	}

	tc.Name = strings.TrimSuffix(filepath.Base(path), CaseExt)
	return &tc, nil
}

// LoadCaseWithSuite loads a case and records its suite.
func LoadCaseWithSuite(path, suite string) (*Case, error) {
	if suite == "" {
		return nil, &CaseError{Path: path, Reason: "empty suite name"}
	}
	tc, err := LoadCase(path)
	if err != nil {
		return nil, err
	}
	tc.Suite = suite
	return tc, nil
}

// LoadAllSuites loads every suite in corpusDir. Empty suites are omitted and
// a missing corpus directory yields an empty map.
func LoadAllSuites(corpusDir string) (map[string][]Case, error) {
	names, err := ListSuites(corpusDir)
	if err != nil {
		return nil, err
	}

	suites := make(map[string][]Case)
	for _, name := range names {
		cases, err := LoadSuite(corpusDir, name)
		if err != nil {
			return nil, err
		}
		if len(cases) > 0 {
			suites[name] = cases
		}
	}

	return suites, nil
}

// ListSuites returns the names of all suites in corpusDir.
func ListSuites(corpusDir string) ([]string, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var suites []string
	for _, entry := range entries {
		if entry.IsDir() {
			suites = append(suites, entry.Name())
		}
	}

	return suites, nil
}

// SuiteExists checks if a suite exists.
func SuiteExists(corpusDir, suite string) bool {
	info, err := os.Stat(filepath.Join(corpusDir, suite))
	return err == nil && info.IsDir()
}

// ValidateSuiteName rejects names that would escape the corpus directory.
func ValidateSuiteName(suite string) error {
	switch {
	case suite == "":
		return errors.New("suite name is empty")
	case suite == "." || suite == "..":
		return fmt.Errorf("invalid suite name %q", suite)
	case strings.ContainsAny(suite, `/\`):
		return fmt.Errorf("suite name %q contains a path separator", suite)
	}
	return nil
}

// FindCorpus walks up from the working directory to find the corpus.
func FindCorpus() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindCorpusFrom(cwd)
}

// FindCorpusFrom walks up from startDir until a directory containing
// CorpusDir is found, and returns the corpus path.
func FindCorpusFrom(startDir string) (string, error) {
	dir := startDir

	for {
		candidate := filepath.Join(dir, filepath.FromSlash(CorpusDir))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &CorpusNotFoundError{StartDir: startDir}
}

// ErrCorpusNotFound is matched by CorpusNotFoundError through errors.Is.
var ErrCorpusNotFound = errors.New("corpus not found")

// CorpusNotFoundError indicates no corpus directory was found.
type CorpusNotFoundError struct {
	StartDir string
}

func (e *CorpusNotFoundError) Error() string {
	return CorpusDir + " not found (searched from " + e.StartDir + ")"
}

func (e *CorpusNotFoundError) Is(target error) bool {
	return target == ErrCorpusNotFound
}

// SuiteNotFoundError indicates the suite directory does not exist.
type SuiteNotFoundError struct {
	Suite string
	Dir   string
}

func (e *SuiteNotFoundError) Error() string {
	return fmt.Sprintf("suite %q not found at %s", e.Suite, e.Dir)
}

// CaseNotFoundError indicates the case file does not exist.
type CaseNotFoundError struct {
	Path string
}

func (e *CaseNotFoundError) Error() string {
	return "case not found: " + e.Path
}

// CaseError reports a malformed case file.
type CaseError struct {
	Path   string
	Reason string
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("invalid case %s: %s", e.Path, e.Reason)
}
