package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindtraderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *WindtraderError
		expected string
	}{
		{
			name:     "message only",
			err:      &WindtraderError{Message: "bootstrap failed"},
			expected: "bootstrap failed",
		},
		{
			name:     "with command",
			err:      &WindtraderError{Command: "check", Message: "cannot read stdin"},
			expected: "check: cannot read stdin",
		},
		{
			name:     "cause not included",
			err:      &WindtraderError{Message: "wrapper", Cause: errors.New("inner")},
			expected: "wrapper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWindtraderError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &WindtraderError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	errNoCause := &WindtraderError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestWindtraderError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitRuntime},
		{"usage", KindUsage, ExitRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &WindtraderError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *WindtraderError
		kind    ErrorKind
		message string
	}{
		{"New", New("test error"), KindRuntime, "test error"},
		{"Usage", Usage("unknown command"), KindUsage, "unknown command"},
		{"Usagef", Usagef("unknown command %q", "frob"), KindUsage, `unknown command "frob"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.message)
			}
			if tt.err.Cause != nil {
				t.Errorf("Cause = %v, want nil", tt.err.Cause)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(cause, "wrapped message")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Message != "wrapped message" {
		t.Errorf("Message = %q, want %q", err.Message, "wrapped message")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return original cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitOK},
		{"runtime", New("runtime"), ExitRuntime},
		{"usage", Usage("usage"), ExitRuntime},
		{"wrapped usage", fmt.Errorf("outer: %w", Usage("usage")), ExitRuntime},
		{"generic error", errors.New("generic"), ExitRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected []string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: nil,
		},
		{
			name:     "single",
			err:      New("boom"),
			expected: []string{"boom"},
		},
		{
			name: "nested windtrader errors",
			err: Wrap(
				Wrap(errors.New("package not loadable"), "register org.eclipse.uml2.uml"),
				"bootstrap failed",
			),
			expected: []string{
				"bootstrap failed",
				"register org.eclipse.uml2.uml",
				"package not loadable",
			},
		},
		{
			name:     "fmt wrapper ends chain",
			err:      Wrap(fmt.Errorf("read stdin: %w", errors.New("broken pipe")), "cannot read input"),
			expected: []string{"cannot read input", "read stdin: broken pipe"},
		},
		{
			name:     "joined",
			err:      Wrap(errors.Join(errors.New("a"), New("b")), "several"),
			expected: []string{"several", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, Chain(tt.err)); diff != "" {
				t.Errorf("Chain() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorKindString(t *testing.T) {
	kinds := []ErrorKind{KindRuntime, KindUsage}
	seen := make(map[string]bool)

	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Errorf("Duplicate ErrorKind string: %v", s)
		}
		seen[s] = true
	}
}

func TestExitCodeConstants(t *testing.T) {
	if ExitOK != 0 {
		t.Errorf("ExitOK = %d, want 0", ExitOK)
	}
	if ExitInvalid != 2 {
		t.Errorf("ExitInvalid = %d, want 2", ExitInvalid)
	}
	if ExitRuntime != 3 {
		t.Errorf("ExitRuntime = %d, want 3", ExitRuntime)
	}
}
