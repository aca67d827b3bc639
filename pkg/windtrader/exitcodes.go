// Package windtrader provides public constants for scripts and build tools
// that invoke the windtrader validator.
package windtrader

// Exit codes returned by the windtrader CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitOK indicates the document is syntactically valid, or that a
	// non-validating command (versions, help) completed.
	ExitOK = 0

	// ExitInvalid indicates the document is not syntactically valid.
	ExitInvalid = 2

	// ExitRuntime indicates a usage error or an unexpected runtime failure
	// (bootstrap failure, parser construction failure, I/O error).
	ExitRuntime = 3
)
