package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSpecification = errors.New("invalid license specification")
	ErrInput         = errors.New("unreadable input")
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrInternal      = errors.New("internal failure")
)

// Exit codes follow sysexits(3).
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitDataErr     = 65
	ExitNoInput     = 66
	ExitUnavailable = 69
	ExitSoftware    = 70
	ExitConfig      = 78
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later exit-code classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrSpecification), errors.Is(err, ErrValidation):
		return ExitDataErr
	case errors.Is(err, ErrInput), errors.Is(err, ErrNotFound):
		return ExitNoInput
	case errors.Is(err, ErrExternalTool), errors.Is(err, ErrTimeout):
		return ExitUnavailable
	case errors.Is(err, ErrConfiguration):
		return ExitConfig
	default:
		return ExitSoftware
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
