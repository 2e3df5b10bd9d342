// Package artifact classifies build pipeline files by semantic kind.
//
// Kinds are derived purely from filename extension (or an explicit caller
// override); file content is never inspected. Classification never fails:
// an unrecognized extension yields KindUnknown and the caller decides
// whether that is acceptable in its position.
package artifact

import "path/filepath"

// Kind is the semantic category of a file in the build pipeline.
//
// The set is closed: every decision point switches exhaustively over it so
// that adding a kind is a compile-time-visible change.
type Kind int

const (
	// KindUnknown marks an extension outside the recognized tables.
	KindUnknown Kind = iota

	// KindCSource is a C source file, input to the compile step.
	KindCSource

	// KindWasmObject is a binary WebAssembly object, not yet lowered.
	KindWasmObject

	// KindWat is a textual WebAssembly intermediate (assembly-like).
	KindWat

	// KindClif is the backend compiler's internal textual form.
	KindClif

	// KindArchive is an archive of WebAssembly objects.
	KindArchive

	// KindNativeObject is a plain native object file. It can be requested
	// (--emit-obj) but no pipeline produces it; the planner rejects it.
	KindNativeObject

	// KindSharedObject is the final loadable native artifact.
	KindSharedObject
)

func (k Kind) String() string {
	switch k {
	case KindCSource:
		return "c-source"
	case KindWasmObject:
		return "wasm-object"
	case KindWat:
		return "wat"
	case KindClif:
		return "clif"
	case KindArchive:
		return "archive"
	case KindNativeObject:
		return "native-object"
	case KindSharedObject:
		return "shared-object"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ClassifyInput maps an input filename to its Kind by extension.
//
// The table is position-specific: the same extension may classify
// differently as an output (compare ClassifyOutput). Keep the two tables
// separate even where they agree today.
func ClassifyInput(path string) Kind {
	switch filepath.Ext(path) {
	case ".c":
		return KindCSource
	case ".o", ".wasm":
		return KindWasmObject
	case ".s", ".S":
		return KindWat
	case ".a":
		return KindArchive
	default:
		return KindUnknown
	}
}

// ClassifyOutput maps an output filename to its Kind by extension.
func ClassifyOutput(path string) Kind {
	switch filepath.Ext(path) {
	case ".o", ".wasm":
		return KindWasmObject
	case ".wat":
		return KindWat
	case ".clif":
		return KindClif
	case ".ar":
		return KindArchive
	case ".so":
		return KindSharedObject
	default:
		return KindUnknown
	}
}

// Input is a classified input file. Immutable once constructed; input order
// is significant downstream (link order affects symbol resolution).
type Input struct {
	Path string
	Kind Kind
}

// ClassifyInputs classifies each path in argument order. If override is not
// KindUnknown it wins over every extension-derived kind, mirroring an
// explicit "treat inputs as language X" instruction.
func ClassifyInputs(paths []string, override Kind) []Input {
	ins := make([]Input, 0, len(paths))
	for _, p := range paths {
		k := override
		if k == KindUnknown {
			k = ClassifyInput(p)
		}
		ins = append(ins, Input{Path: p, Kind: k})
	}
	return ins
}

// ParseInputKind parses the value of an explicit input-language override.
// The empty string means "no override".
func ParseInputKind(s string) (Kind, bool) {
	switch s {
	case "":
		return KindUnknown, true
	case "c":
		return KindCSource, true
	case "wasm-obj":
		return KindWasmObject, true
	case "wat":
		return KindWat, true
	case "wasm-ar":
		return KindArchive, true
	default:
		return KindUnknown, false
	}
}
