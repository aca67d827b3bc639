package testhelper

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	pass := Case{Name: "ok", Suite: "valid", Input: "package P;"}
	fail := Case{
		Name:   "bad",
		Suite:  "invalid",
		Input:  "package P",
		Exit:   2,
		Errors: []string{"error: line=1 offset=9 near="},
	}

	tests := []struct {
		name     string
		c        Case
		r        Result
		mode     Mode
		wantDiff []string
	}{
		{"check pass", pass, Result{}, ModeCheck, nil},
		{"echo pass", pass, Result{Stdout: "package P;"}, ModeEcho, nil},
		{"echo fail prints nothing", fail, Result{Exit: 2, Stderr: "error: line=1 offset=9 near=\n"}, ModeEcho, nil},
		{"check fail", fail, Result{Exit: 2, Stderr: "error: line=1 offset=9 near=\n"}, ModeCheck, nil},
		{"wrong exit", pass, Result{Exit: 2}, ModeCheck, []string{"valid/ok", "exit code: got 2, want 0"}},
		{"check prints", pass, Result{Stdout: "package P;"}, ModeCheck, []string{"stdout"}},
		{"echo altered", pass, Result{Stdout: "package P;\n"}, ModeEcho, []string{"stdout"}},
		{"extra error", fail, Result{Exit: 2, Stderr: "error: line=1 offset=9 near=\nerror: msg=x\n"}, ModeCheck, []string{"stderr lines", "error: msg=x"}},
		{"unexpected stderr on pass", pass, Result{Stderr: "warning\n"}, ModeCheck, []string{"stderr lines"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := Compare(tt.c, tt.r, tt.mode)
			if tt.wantDiff == nil {
				if diff != "" {
					t.Errorf("Compare() = %q, want match", diff)
				}
				return
			}
			for _, want := range tt.wantDiff {
				if !strings.Contains(diff, want) {
					t.Errorf("Compare() = %q, want it to contain %q", diff, want)
				}
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a\n", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\nb", []string{"a", "b"}},
		{"\n", []string{""}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Lines(tt.in)); diff != "" {
			t.Errorf("Lines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
