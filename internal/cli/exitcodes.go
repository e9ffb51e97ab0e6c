package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomolar/internal/configloader"
	"github.com/yaklabco/gomolar/pkg/fsutil"
)

// Exit codes for gomolar.
const (
	// ExitSuccess indicates every formula was evaluated.
	ExitSuccess = 0

	// ExitInvalidFormula indicates at least one formula failed to parse.
	ExitInvalidFormula = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrInvalidFormula is returned when at least one formula did not parse.
// The formulas themselves have already been reported.
var ErrInvalidFormula = errors.New("invalid formula")

// errUsage marks errors caused by how the command was invoked.
var errUsage = errors.New("invalid usage")

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidFormula):
		return ExitInvalidFormula
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
