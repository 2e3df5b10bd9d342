package plan

import (
	"wasmcc/internal/artifact"
)

// ScratchAllocator hands out uniquely named intermediate files. It is the
// only side effect planning is allowed; the scratch manager that implements
// it owns cleanup.
type ScratchAllocator interface {
	Acquire(suffix string) (string, error)
}

// Options carry invocation extras that planned steps must embed.
type Options struct {
	// ExtraCompileFlags are forwarded verbatim to every CompileC step.
	ExtraCompileFlags []string

	// Bindings are forwarded to every Lower step.
	Bindings []string
}

// Build constructs the ordered step sequence that turns inputs into the
// resolved output. All invalid combinations are rejected here, before any
// external process runs.
func Build(inputs []artifact.Input, output OutputSpec, opts Options, scratch ScratchAllocator) ([]Step, error) {
	switch output.Kind {
	case artifact.KindWasmObject:
		return planWasmObject(inputs, output, opts)
	case artifact.KindSharedObject:
		return planSharedObject(inputs, output, opts, scratch)
	case artifact.KindWat, artifact.KindClif, artifact.KindArchive,
		artifact.KindNativeObject, artifact.KindCSource, artifact.KindUnknown:
		return nil, unsupportedOutputf("no pipeline produces %s output %q", output.Kind, output.Path)
	default:
		return nil, unsupportedOutputf("no pipeline produces %s output %q", output.Kind, output.Path)
	}
}

// planWasmObject handles single-translation-unit targets: one C source is
// compiled, or one textual intermediate is assembled.
func planWasmObject(inputs []artifact.Input, output OutputSpec, opts Options) ([]Step, error) {
	if len(inputs) != 1 {
		return nil, &Error{Kind: ErrInvalidInputForTarget,
			Msg: "a wasm object is built from exactly one input"}
	}
	in := inputs[0]
	switch in.Kind {
	case artifact.KindCSource:
		return []Step{CompileC{
			Source:     in.Path,
			Object:     output.Path,
			ExtraFlags: opts.ExtraCompileFlags,
		}}, nil
	case artifact.KindWat:
		return []Step{AssembleWat{Source: in.Path, Object: output.Path}}, nil
	default:
		return nil, invalidInputf(in, "wasm objects can only be created from C or wat files")
	}
}

// planSharedObject links every input into one scratch object, then lowers
// that object to the final shared object.
//
// Raw sources are rejected rather than implicitly compiled: the driver never
// runs compile+link+lower as one shot.
func planSharedObject(inputs []artifact.Input, output OutputSpec, opts Options, scratch ScratchAllocator) ([]Step, error) {
	if len(inputs) == 0 {
		return nil, &Error{Kind: ErrInvalidInputForTarget,
			Msg: "a shared object needs at least one wasm object or archive input"}
	}
	objects := make([]string, 0, len(inputs))
	for _, in := range inputs {
		switch in.Kind {
		case artifact.KindWasmObject, artifact.KindArchive:
			objects = append(objects, in.Path)
		default:
			return nil, invalidInputf(in, "shared objects can only be created from wasm objects or archives")
		}
	}

	linked, err := scratch.Acquire(".o")
	if err != nil {
		return nil, err
	}

	return []Step{
		LinkObjects{Objects: objects, Output: linked},
		Lower{Object: linked, Output: output.Path, Bindings: opts.Bindings},
	}, nil
}
