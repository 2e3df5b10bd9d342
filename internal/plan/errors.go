package plan

import (
	"errors"
	"fmt"

	"wasmcc/internal/artifact"
)

var (
	// ErrAmbiguousOutputKind means no signal (emit flag, legacy flag,
	// filename extension) determined an output kind.
	ErrAmbiguousOutputKind = errors.New("could not infer output type")

	// ErrInvalidInputForTarget means an input's kind cannot participate in
	// the requested target's pipeline.
	ErrInvalidInputForTarget = errors.New("invalid input for target")

	// ErrUnsupportedOutputKind means the resolved output kind has no
	// producible pipeline.
	ErrUnsupportedOutputKind = errors.New("unsupported output type")
)

// Error wraps planning and resolution failures with a stable kind for
// errors.Is matching plus a human-readable detail.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func ambiguousOutput(path string) error {
	return &Error{Kind: ErrAmbiguousOutputKind, Msg: fmt.Sprintf("output %q has no recognized extension and no emit flag was given", path)}
}

func invalidInputf(in artifact.Input, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return &Error{Kind: ErrInvalidInputForTarget, Msg: fmt.Sprintf("%s (%s): %s", in.Path, in.Kind, detail)}
}

func unsupportedOutputf(format string, args ...any) error {
	return &Error{Kind: ErrUnsupportedOutputKind, Msg: fmt.Sprintf(format, args...)}
}
