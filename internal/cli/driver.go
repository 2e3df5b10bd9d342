package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"wasmcc/internal/artifact"
	"wasmcc/internal/plan"
	"wasmcc/internal/scratch"
	"wasmcc/internal/toolchain"
	"wasmcc/internal/trace"
)

// Result carries the semantic exit code for main and enough detail for
// black-box tests.
type Result struct {
	ExitCode int
	Warnings []plan.Warning
	Steps    []plan.Step
}

// Execute maps a canonical Invocation to a planned and executed build.
//
// Responsibilities:
//   - Classify inputs and resolve the authoritative output kind; surface
//     non-fatal resolution warnings on the error stream.
//   - Build the plan; every planning failure is reported before any
//     external process runs.
//   - Run the plan serially and finalize the invocation transcript on every
//     exit path.
//   - Translate failures to semantic exit codes.
//
// The scratch manager is owned by the caller so its teardown can run from a
// guaranteed-execution scope even when this function never returns normally
// (external process termination cancels ctx instead).
func Execute(ctx context.Context, inv Invocation, scratchMgr *scratch.Manager) (Result, error) {
	log := newLogger(os.Stderr, inv.Verbose)
	return execute(ctx, inv, scratchMgr, log)
}

func execute(ctx context.Context, inv Invocation, scratchMgr *scratch.Manager, log *logrus.Logger) (res Result, err error) {
	res.ExitCode = ExitInternalError

	inputs := artifact.ClassifyInputs(inv.Inputs, inv.InputKind)

	outSpec, warnings, err := plan.ResolveOutput(inv.Output, inv.Emit, inv.Legacy)
	res.Warnings = warnings
	for _, w := range warnings {
		log.Warn(w.String())
	}
	if err != nil {
		res.ExitCode = ExitPlanFailure
		return res, err
	}

	steps, err := plan.Build(inputs, outSpec, plan.Options{
		ExtraCompileFlags: inv.ExtraCompileFlags,
		Bindings:          inv.Bindings,
	}, scratchMgr)
	if err != nil {
		res.ExitCode = ExitPlanFailure
		return res, err
	}
	res.Steps = steps

	paths, err := toolchain.LoadPaths()
	if err != nil {
		res.ExitCode = ExitToolchainError
		return res, err
	}

	recorder := trace.NewRecorder()
	if inv.TracePath != "" {
		defer func() {
			// Always finalize the transcript, failure paths included.
			if werr := writeTranscript(inv.TracePath, recorder.Transcript()); werr != nil && err == nil {
				res.ExitCode = ExitInternalError
				err = werr
			}
		}()
	}

	executor := toolchain.NewExecutor(toolchain.NewLocator(paths), log)
	executor.Trace = recorder

	if err := executor.Execute(ctx, steps); err != nil {
		res.ExitCode = translateExecutionError(err)
		return res, err
	}

	res.ExitCode = ExitSuccess
	return res, nil
}

func translateExecutionError(err error) int {
	switch {
	case errors.Is(err, toolchain.ErrToolchainNotFound):
		return ExitToolchainError
	case errors.Is(err, toolchain.ErrToolInvocationFailed):
		return ExitPlanFailure
	default:
		return ExitInternalError
	}
}

// ExitCode extracts a semantic exit code from any driver error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr.ExitCode != 0 {
		return invErr.ExitCode
	}
	switch {
	case errors.Is(err, plan.ErrAmbiguousOutputKind),
		errors.Is(err, plan.ErrInvalidInputForTarget),
		errors.Is(err, plan.ErrUnsupportedOutputKind),
		errors.Is(err, toolchain.ErrToolInvocationFailed):
		return ExitPlanFailure
	case errors.Is(err, toolchain.ErrToolchainNotFound):
		return ExitToolchainError
	default:
		return ExitInternalError
	}
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func writeTranscript(path string, t trace.Transcript) error {
	data, err := t.CanonicalJSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writeFileAtomic(path, data, 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
