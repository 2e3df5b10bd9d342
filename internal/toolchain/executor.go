package toolchain

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"wasmcc/internal/plan"
	"wasmcc/internal/trace"
)

// Executor runs planned steps strictly in order, synchronously, one at a
// time. There is no parallelism: later steps consume files produced by
// earlier ones, so the plan is a linear chain, not a graph.
//
// There is deliberately no timeout: a hung external tool hangs the driver.
// Cancellation happens only through the context, which the driver wires to
// process signals.
type Executor struct {
	Locator *Locator

	// Stdout/Stderr receive the tools' output streams unfiltered. Nil
	// defaults to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Trace receives one event per tool invocation. Nil disables tracing.
	Trace trace.Sink

	Log *logrus.Logger

	// checked caches per-run tool probes so each tool is version-checked
	// once, immediately before its first use.
	checked map[plan.Tool]bool
}

func NewExecutor(loc *Locator, log *logrus.Logger) *Executor {
	return &Executor{
		Locator: loc,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Trace:   trace.NopSink{},
		Log:     log,
		checked: make(map[plan.Tool]bool),
	}
}

// Execute runs every step of the plan in order. The first failure aborts
// the remaining plan: a failed tool probe or precondition yields
// ErrToolchainNotFound without running any process for that step, and a
// non-zero exit yields ErrToolInvocationFailed naming the tool and code.
//
// Completed steps' outputs are left on disk; scratch cleanup belongs to the
// scratch manager, not this executor.
func (e *Executor) Execute(ctx context.Context, steps []plan.Step) error {
	for _, s := range steps {
		if err := e.ensureUsable(s); err != nil {
			return err
		}
		if err := e.checkPreconditions(s); err != nil {
			return err
		}
		if err := e.runStep(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// ensureUsable probes the step's tool with a version query before its first
// use in this run.
func (e *Executor) ensureUsable(s plan.Step) error {
	tool := s.Tool()
	if e.checked == nil {
		e.checked = make(map[plan.Tool]bool)
	}
	if ok, probed := e.checked[tool]; probed {
		if !ok {
			return &NotFoundError{Tool: tool.String(), Detail: "no usable executable at " + e.Locator.Path(tool)}
		}
		return nil
	}

	path := e.Locator.Path(tool)
	ok := e.Locator.Check(path)
	e.checked[tool] = ok
	if !ok {
		return &NotFoundError{Tool: tool.String(), Detail: "no usable executable at " + path}
	}
	return nil
}

// checkPreconditions verifies the supporting paths a step needs on disk.
func (e *Executor) checkPreconditions(s plan.Step) error {
	p := e.Locator.Paths
	switch s.(type) {
	case plan.CompileC:
		if _, err := os.Stat(p.Sysroot); err != nil {
			return &NotFoundError{Tool: plan.ToolClang.String(), Detail: "sysroot not found at " + p.Sysroot}
		}
	case plan.LinkObjects:
		libc := filepath.Join(p.LibDir, "libc.a")
		if _, err := os.Stat(libc); err != nil {
			return &NotFoundError{Tool: plan.ToolWasmLD.String(), Detail: "libc.a not found in " + p.LibDir}
		}
	case plan.Lower:
		// The version probe covers PATH-resolved backends; an explicitly
		// configured path must also exist on disk.
		if strings.ContainsRune(p.AOT, os.PathSeparator) {
			if _, err := os.Stat(p.AOT); err != nil {
				return &NotFoundError{Tool: plan.ToolAOT.String(), Detail: "backend compiler not found at " + p.AOT}
			}
		}
	}
	return nil
}

func (e *Executor) runStep(ctx context.Context, s plan.Step) error {
	argv, err := Argv(s, e.Locator.Paths)
	if err != nil {
		return err
	}

	e.Log.WithField("tool", s.Tool().String()).Debug(s.Describe())
	e.Log.Debug(strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		exitErr, ok := runErr.(*exec.ExitError)
		if !ok {
			// The tool could not be launched at all, despite the probe.
			return &NotFoundError{Tool: s.Tool().String(), Detail: runErr.Error()}
		}
		exitCode = exitErr.ExitCode()
	}

	e.record(s, argv, exitCode)

	if exitCode != 0 {
		return &InvocationError{Tool: s.Tool().String(), ExitCode: exitCode}
	}
	return nil
}

func (e *Executor) record(s plan.Step, argv []string, exitCode int) {
	if e.Trace == nil {
		return
	}
	e.Trace.Record(trace.Event{
		Step:     s.Describe(),
		Tool:     s.Tool().String(),
		Argv:     argv,
		ExitCode: exitCode,
	})
}
