package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

// Exit codes for gojot.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConversionErrors indicates that at least one file failed to convert.
	ExitConversionErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when one or more files fail to convert.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidUsage marks command-line usage errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading errors.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
