// Package cli provides command-line interface functionality for windtrader.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/westfall/windtrader/internal/bootstrap"
	"github.com/westfall/windtrader/internal/buildinfo"
	"github.com/westfall/windtrader/internal/errors"
	"github.com/westfall/windtrader/internal/logging"
	"github.com/westfall/windtrader/internal/output"
	"github.com/westfall/windtrader/internal/validate"
)

// Command identifies what the process was asked to do.
type Command int

const (
	CommandCheck Command = iota
	CommandEcho
	CommandVersions
	CommandUnknown
)

func (c Command) String() string {
	switch c {
	case CommandCheck:
		return "check"
	case CommandEcho:
		return "echo"
	case CommandVersions:
		return "versions"
	default:
		return "unknown"
	}
}

// ParseCommand derives the command from the process arguments. No arguments
// means check. Arguments after the command name are ignored, so "check -h"
// still validates stdin.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandCheck
	}

	switch args[0] {
	case "check":
		return CommandCheck
	case "echo":
		return CommandEcho
	case "versions":
		return CommandVersions
	default:
		return CommandUnknown
	}
}

// App runs one command against injected streams and services.
type App struct {
	Stdin  io.Reader
	Out    *output.Writer
	Logger *slog.Logger

	// Pipeline validates documents for check and echo. When nil, a
	// pipeline over the built-in metamodel is created on first use.
	Pipeline *validate.Pipeline

	// SysMLVersion reports the version line of the versions command.
	SysMLVersion func() string
}

// Run executes the CLI on the process streams and returns an exit code.
func Run(args []string) int {
	app := &App{
		Stdin:        os.Stdin,
		Out:          output.New(),
		Logger:       logging.FromEnv(),
		SysMLVersion: buildinfo.SysMLVersion,
	}
	return app.Run(args)
}

// RunWithIO is Run with explicit streams. Color is only used when stderr is
// a terminal file.
func RunWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return newApp(stdin, stdout, stderr, os.Getenv).Run(args)
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *App {
	color := false
	if f, ok := stderr.(*os.File); ok {
		color = output.ColorEnabled(f, getenv)
	}

	return &App{
		Stdin:        stdin,
		Out:          output.NewWithWriters(stdout, stderr, color),
		Logger:       logging.New(logging.ConfigFromEnv(getenv), stderr),
		SysMLVersion: buildinfo.SysMLVersion,
	}
}

// Run dispatches args and returns the exit code. Anything but check, echo
// or versions is a usage error; stdin is then never read.
func (a *App) Run(args []string) int {
	cmd := ParseCommand(args)
	a.Logger.Debug("dispatch", "command", cmd.String(), "args", args)

	switch cmd {
	case CommandVersions:
		return a.cmdVersions()
	case CommandCheck, CommandEcho:
		return a.cmdValidate(cmd)
	default:
		printUsage(a.Out.Stderr())
		err := errors.Usagef("unknown command %q", args[0])
		a.Logger.Debug("usage error", "error", err)
		return err.ExitCode()
	}
}

func (a *App) pipeline() *validate.Pipeline {
	if a.Pipeline == nil {
		b := bootstrap.Default()
		b.Logger = a.Logger
		a.Pipeline = &validate.Pipeline{
			Init:    b,
			Factory: &bootstrap.ParserFactory{Bootstrap: b},
			Logger:  a.Logger,
		}
	}
	return a.Pipeline
}
