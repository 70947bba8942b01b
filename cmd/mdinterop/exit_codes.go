package main

import (
	"errors"
	"os"

	mdinterop "github.com/alnah/go-mdinterop"
	"github.com/alnah/go-mdinterop/internal/config"
	"github.com/alnah/go-mdinterop/internal/hints"
)

// Exit codes for the mdinterop CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Command succeeded
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, format, or document
	ExitIO         = 3 // File not found, permission denied
	ExitNotHandled = 4 // Strict paste of text the paster does not handle
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrNotHandled) {
		return ExitNotHandled
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInputTooLong) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, ErrInvalidDocument) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, mdinterop.ErrUnknownFormat) ||
		errors.Is(err, mdinterop.ErrUnknownStyle) ||
		errors.Is(err, mdinterop.ErrInvalidStyle) ||
		errors.Is(err, mdinterop.ErrPositionOutOfRange) ||
		errors.Is(err, mdinterop.ErrUnsupportedRange) ||
		errors.Is(err, mdinterop.ErrInvalidContent) ||
		errors.Is(err, mdinterop.ErrEmptyDocument) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var se *config.SearchError
		if errors.As(err, &se) {
			return hints.ForConfigNotFound(se.Tried)
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, mdinterop.ErrUnknownFormat), errors.Is(err, config.ErrInvalidFormat):
		return hints.ForUnknownFormat([]string{"markdown", "html", "text"})
	case errors.Is(err, mdinterop.ErrUnknownStyle), errors.Is(err, mdinterop.ErrInvalidStyle):
		return hints.ForUnknownStyle(mdinterop.PageStyles())
	case errors.Is(err, ErrInvalidDocument):
		return hints.ForInvalidDocument()
	case errors.Is(err, ErrNotHandled):
		var nh *notHandledError
		if errors.As(err, &nh) {
			return hints.ForNotHandled(nh.disabled)
		}
		return hints.ForNotHandled(nil)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
