// Package plan turns classified inputs and a resolved output kind into an
// ordered sequence of external tool invocations.
//
// Planning is a pure function of its inputs except for scratch file name
// allocation, and every planning failure is detected before any external
// process runs. A Plan is constructed once and consumed once, strictly in
// order; step outputs feed later steps only through named files.
package plan

// Tool identifies which external executable a step needs.
type Tool int

const (
	ToolClang Tool = iota
	ToolWasmLD
	ToolWat2Wasm
	ToolAOT
)

func (t Tool) String() string {
	switch t {
	case ToolClang:
		return "clang"
	case ToolWasmLD:
		return "wasm-ld"
	case ToolWat2Wasm:
		return "wat2wasm"
	case ToolAOT:
		return "wasmaot"
	default:
		return "unknown-tool"
	}
}

// Step is one planned external tool invocation. Steps carry typed,
// already-validated inputs and outputs; no type inference happens after
// planning.
type Step interface {
	// Tool names the executable the step runs.
	Tool() Tool

	// Describe is a one-line human-readable summary for logs and traces.
	Describe() string
}

// CompileC compiles a single C source file to a WebAssembly object.
type CompileC struct {
	Source string
	Object string

	// ExtraFlags are pass-through compiler flags, forwarded verbatim.
	ExtraFlags []string
}

func (s CompileC) Tool() Tool { return ToolClang }
func (s CompileC) Describe() string {
	return "compile " + s.Source + " -> " + s.Object
}

// AssembleWat assembles a textual WebAssembly file to a binary object.
type AssembleWat struct {
	Source string
	Object string
}

func (s AssembleWat) Tool() Tool { return ToolWat2Wasm }
func (s AssembleWat) Describe() string {
	return "assemble " + s.Source + " -> " + s.Object
}

// LinkObjects links WebAssembly objects and archives into a single object.
// Objects preserves caller order exactly; link order is load-bearing for
// symbol resolution.
type LinkObjects struct {
	Objects []string
	Output  string
}

func (s LinkObjects) Tool() Tool { return ToolWasmLD }
func (s LinkObjects) Describe() string {
	return "link " + joinPaths(s.Objects) + " -> " + s.Output
}

// Lower compiles a linked WebAssembly object to a native shared object via
// the ahead-of-time backend.
type Lower struct {
	Object string
	Output string

	// Bindings are forwarded to the backend as repeated --bindings flags.
	Bindings []string
}

func (s Lower) Tool() Tool { return ToolAOT }
func (s Lower) Describe() string {
	return "lower " + s.Object + " -> " + s.Output
}

func joinPaths(paths []string) string {
	out := ""
	for i, p := range paths {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}
