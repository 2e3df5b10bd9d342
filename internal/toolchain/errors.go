package toolchain

import (
	"errors"
	"fmt"
)

var (
	// ErrToolchainNotFound means a required external tool is absent or
	// unusable, or a required supporting path is missing on disk.
	ErrToolchainNotFound = errors.New("toolchain not found")

	// ErrToolInvocationFailed means an external tool ran but exited
	// non-zero. Such failures are assumed non-transient; there is no retry.
	ErrToolInvocationFailed = errors.New("tool invocation failed")
)

// NotFoundError names the tool or supporting path that was missing.
type NotFoundError struct {
	Tool   string
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrToolchainNotFound.Error(), e.Tool, e.Detail)
}

func (e *NotFoundError) Unwrap() error { return ErrToolchainNotFound }

// InvocationError names the tool that failed and its exit code.
type InvocationError struct {
	Tool     string
	ExitCode int
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %s exited with code %d", ErrToolInvocationFailed.Error(), e.Tool, e.ExitCode)
}

func (e *InvocationError) Unwrap() error { return ErrToolInvocationFailed }
