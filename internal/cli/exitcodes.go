package cli

import (
	"errors"

	"github.com/yaklabco/leptomcp/pkg/runner"
)

// Exit codes for leptomcp.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitErrors indicates analysis completed but found error-severity issues.
	ExitErrors = 1

	// ExitWarnings indicates analysis found warnings under --strict.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors used to select the process exit code. Commands wrap
// cause details around these so main can classify without string
// matching.
var (
	// ErrIssuesFound signals findings at error severity.
	ErrIssuesFound = errors.New("issues found")

	// ErrStrictWarnings signals warnings while --strict is active.
	ErrStrictWarnings = errors.New("warnings found in strict mode")

	// ErrUsage signals invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig signals a configuration that could not be loaded.
	ErrConfig = errors.New("configuration error")

	// ErrIO signals file read or write failures.
	ErrIO = errors.New("i/o error")
)

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitErrors
	case errors.Is(err, ErrStrictWarnings):
		return ExitWarnings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// exitErrorFromResult classifies a finished run. Error findings beat
// strict warnings beat per-file I/O failures; a run that produced
// nothing but readable clean files returns nil.
func exitErrorFromResult(result *runner.Result, strict bool) error {
	if result == nil {
		return nil
	}

	if result.Stats.FindingsBySeverity["error"] > 0 {
		return ErrIssuesFound
	}

	if strict && result.Stats.FindingsBySeverity["warning"] > 0 {
		return ErrStrictWarnings
	}

	if result.Stats.FilesErrored > 0 {
		return ErrIO
	}

	return nil
}
