package output

import (
	"bytes"
	"os"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_Println(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Println("hello %s", "world")

	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("Println() = %q, want %q", got, "hello world\n")
	}
}

func TestWriter_Raw(t *testing.T) {
	w, stdout, _ := newTestWriter()

	// Format verbs must pass through untouched.
	text := "attribute p = 100%d;\n"
	if err := w.Raw(text); err != nil {
		t.Fatalf("Raw() error = %v", err)
	}

	if got := stdout.String(); got != text {
		t.Errorf("Raw() = %q, want %q", got, text)
	}
}

func TestWriter_Errorln(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.Errorln("error %d", 42)

	if got := stderr.String(); got != "error 42\n" {
		t.Errorf("Errorln() = %q, want %q", got, "error 42\n")
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	tests := []struct {
		name   string
		color  bool
		expect string
	}{
		{"without color", false, "windtrader: bad thing\n"},
		{"with color", true, "\033[31mwindtrader:\033[0m bad thing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, stderr := newTestWriter()
			w.color = tt.color

			w.ErrorPrefix("bad %s", "thing")

			if got := stderr.String(); got != tt.expect {
				t.Errorf("ErrorPrefix() = %q, want %q", got, tt.expect)
			}
			if stdout.Len() != 0 {
				t.Errorf("ErrorPrefix() wrote to stdout: %q", stdout.String())
			}
		})
	}
}

func TestWriter_ErrorChain(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorChain([]string{"bootstrap failed", "load kerml", "disk full"})

	want := "windtrader: bootstrap failed\n" +
		"  caused by: load kerml\n" +
		"  caused by: disk full\n"
	if got := stderr.String(); got != want {
		t.Errorf("ErrorChain() = %q, want %q", got, want)
	}
}

func TestWriter_ErrorChain_Empty(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorChain(nil)

	if stderr.Len() != 0 {
		t.Errorf("ErrorChain(nil) wrote %q", stderr.String())
	}
}

func TestWriter_CausedBy_Color(t *testing.T) {
	w, _, stderr := newTestWriter()
	w.color = true

	w.CausedBy("x")

	if got := stderr.String(); got != "  \033[2mcaused by:\033[0m x\n" {
		t.Errorf("CausedBy() = %q", got)
	}
}

func TestColorEnabled(t *testing.T) {
	noColor := func(key string) string {
		if key == "NO_COLOR" {
			return "1"
		}
		return ""
	}
	empty := func(string) string { return "" }

	if ColorEnabled(os.Stderr, noColor) {
		t.Error("NO_COLOR should disable color")
	}
	if ColorEnabled(nil, empty) {
		t.Error("a nil file is not a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if ColorEnabled(f, empty) {
		t.Error("a regular file is not a terminal")
	}
}
