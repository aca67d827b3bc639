package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/westfall/windtrader/internal/buildinfo"
	"github.com/westfall/windtrader/internal/errors"
	"github.com/westfall/windtrader/internal/input"
	"github.com/westfall/windtrader/internal/report"
	"github.com/westfall/windtrader/internal/sysml"
	"github.com/westfall/windtrader/internal/validate"
)

// Identification reported by the versions command.
const (
	Name       = "windtrader"
	Mode       = "validator"
	Validation = "parse-only"
	GoMin      = "1.24"
)

// cmdValidate implements check and echo.
func (a *App) cmdValidate(cmd Command) int {
	text, err := input.ReadAll(a.Stdin)
	if err != nil {
		failure := errors.Wrap(err, "cannot read standard input")
		a.Out.ErrorChain(errors.Chain(failure))
		return errors.GetExitCode(failure)
	}

	outcome := a.pipeline().Validate(text)

	switch o := outcome.(type) {
	case *validate.SyntaxInvalid:
		if err := report.Write(a.Out.Stderr(), o); err != nil {
			a.Logger.Debug("cannot write report", "error", err)
		}
		if a.Logger.Enabled(context.Background(), slog.LevelDebug) {
			if err := report.WriteSnippets(a.Out.Stderr(), sysml.DefaultFilename, text, o, 0, a.Out.Color()); err != nil {
				a.Logger.Debug("cannot render diagnostics", "error", err)
			}
		}

	case *validate.RuntimeFailure:
		a.Out.ErrorChain(errors.Chain(o.Cause))

	case *validate.Success:
		if cmd == CommandEcho {
			if err := a.Out.Raw(o.RootText); err != nil {
				failure := errors.Wrap(err, "cannot write standard output")
				a.Out.ErrorChain(errors.Chain(failure))
				return errors.GetExitCode(failure)
			}
		}
	}

	a.Logger.Debug("validation finished", "command", cmd.String(), "exit", outcome.ExitCode())
	return outcome.ExitCode()
}

// cmdVersions prints the identification lines. It never reads stdin.
func (a *App) cmdVersions() int {
	version := buildinfo.Unknown
	if a.SysMLVersion != nil {
		version = a.SysMLVersion()
	}

	for _, line := range versionLines(version) {
		a.Out.Println("%s", line)
	}
	return errors.ExitOK
}

func versionLines(sysmlVersion string) []string {
	return []string{
		"name=" + Name,
		"mode=" + Mode,
		"validation=" + Validation,
		"go_min=" + GoMin,
		"sysml_version=" + sysmlVersion,
	}
}

var usageCommands = []struct {
	name        string
	description string
}{
	{"check", "parse-only validate stdin, exit 0 if valid, 2 if invalid"},
	{"echo", "parse-only validate stdin then print parsed text if valid"},
	{"versions", "print version info"},
}

// printUsage prints the command summary. Its layout is relied on by
// scripts, so it is never colored.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, "%s usage:\n", Name)
	for _, c := range usageCommands {
		fmt.Fprintf(w, "  %-10s : %s\n", c.name, c.description)
	}
}
