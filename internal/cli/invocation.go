// Package cli canonicalizes driver invocations and maps engine outcomes to
// semantic exit codes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wasmcc/internal/artifact"
	"wasmcc/internal/plan"
)

const (
	ExitSuccess           = 0
	ExitPlanFailure       = 1
	ExitInvalidInvocation = 2
	ExitToolchainError    = 3
	ExitInternalError     = 4
)

// Invocation is the fully canonicalized description of one driver run. It is
// constructed once from CLI input and never mutated; every engine decision
// is a function of this value plus the environment-resolved toolchain paths.
type Invocation struct {
	// Inputs are the input file paths in argument order. Order is
	// significant: it is preserved into the link step.
	Inputs []string

	// InputKind overrides extension-based classification for every input
	// when not KindUnknown (the -x flag).
	InputKind artifact.Kind

	// Output is the requested output path; empty means the default name.
	Output string

	Emit   plan.EmitFlags
	Legacy plan.LegacyFlags

	// Bindings are forwarded to the lowering step.
	Bindings []string

	// ExtraCompileFlags are forwarded verbatim to the compile step:
	// repeated --cflag values followed by everything after "--".
	ExtraCompileFlags []string

	// TracePath, when set, receives a canonical JSON transcript of every
	// tool invocation.
	TracePath string

	Verbose bool
}

// InvocationError carries the semantic exit code for a rejected invocation.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Arguments after "--" are not inputs; they are forwarded verbatim to the
// compile step, after any --cflag values.
func ParseInvocation(args []string) (Invocation, error) {
	var inv Invocation
	var inputLang string
	var cflags []string
	var passthrough []string

	cmd := &cobra.Command{
		Use:           "wasmcc [flags] file... [-- compiler-flags...]",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				inv.Inputs = args[:dash]
				passthrough = args[dash:]
			} else {
				inv.Inputs = args
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringVarP(&inv.Output, "output", "o", "", "output file path")
	fl.BoolVar(&inv.Emit.Wasm, "emit-wasm", false, "produce a binary WebAssembly object")
	fl.BoolVar(&inv.Emit.Wat, "emit-wat", false, "produce textual WebAssembly")
	fl.BoolVar(&inv.Emit.Clif, "emit-clif", false, "produce backend compiler IR text")
	fl.BoolVar(&inv.Emit.Ar, "emit-ar", false, "produce a WebAssembly archive")
	fl.BoolVar(&inv.Emit.Obj, "emit-obj", false, "produce a plain native object")
	fl.BoolVar(&inv.Emit.SO, "emit-so", false, "produce a native shared object")
	fl.BoolVarP(&inv.Legacy.CompileOnly, "compile-only", "c", false, "compile only, do not link")
	fl.BoolVarP(&inv.Legacy.StopAfterWat, "stop-after-codegen", "S", false, "stop after producing textual output")
	fl.StringVarP(&inputLang, "language", "x", "", "treat all inputs as this language (c|wasm-obj|wat|wasm-ar)")
	fl.StringArrayVar(&inv.Bindings, "bindings", nil, "bindings file for the lowering step (repeatable)")
	fl.StringArrayVar(&cflags, "cflag", nil, "extra flag for the compile step (repeatable)")
	fl.StringVar(&inv.TracePath, "trace", "", "write a JSON transcript of tool invocations")
	fl.BoolVarP(&inv.Verbose, "verbose", "v", false, "log each tool invocation")

	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}

	if len(inv.Inputs) == 0 {
		return Invocation{}, invalidInvocationf("no input files")
	}
	if n := inv.Emit.Count(); n > 1 {
		return Invocation{}, invalidInvocationf("at most one --emit-* flag may be set (got %d)", n)
	}

	kind, ok := artifact.ParseInputKind(inputLang)
	if !ok {
		return Invocation{}, invalidInvocationf("unknown input language %q (expected c|wasm-obj|wat|wasm-ar)", inputLang)
	}
	inv.InputKind = kind

	inv.ExtraCompileFlags = append(cflags, passthrough...)

	return inv, nil
}
