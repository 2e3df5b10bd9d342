package plan

import (
	"fmt"

	"wasmcc/internal/artifact"
)

// DefaultOutputName is used when no output path was supplied.
const DefaultOutputName = "a.out"

// EmitFlags are the explicit output-kind flags. At most one is expected to
// be set; the CLI layer rejects invocations that set more than one.
type EmitFlags struct {
	Wasm bool // --emit-wasm: binary WebAssembly object
	Wat  bool // --emit-wat: textual WebAssembly
	Clif bool // --emit-clif: backend-internal textual form
	Ar   bool // --emit-ar: WebAssembly archive
	Obj  bool // --emit-obj: plain (native) object
	SO   bool // --emit-so: native shared object
}

// LegacyFlags are the cc-compatible single-letter mode flags, consulted only
// when no emit flag is set.
type LegacyFlags struct {
	CompileOnly  bool // -c: stop after producing a wasm object
	StopAfterWat bool // -S: stop after producing textual output
}

// OutputSpec is the fully resolved output target: exactly one authoritative
// kind, plus any non-fatal warnings gathered during resolution.
type OutputSpec struct {
	Path string
	Kind artifact.Kind
}

// Warning is a non-fatal resolution diagnostic. It never affects the exit
// code; the CLI surfaces it on the error stream.
type Warning struct {
	Msg string
}

func (w Warning) String() string { return w.Msg }

// resolverTier yields a definite kind or reports no opinion. Tiers are
// evaluated in precedence order so the chain stays auditable tier by tier.
type resolverTier func() (artifact.Kind, bool)

// ResolveOutput reconciles emit flags, legacy flags and the output filename
// extension into one authoritative output kind.
//
// Precedence, highest first: emit flags, legacy flags, filename extension.
// Explicit intent is never silently overridden by a filename convention, but
// a disagreeing extension is surfaced as a warning. If no tier yields a
// kind, resolution fails with ErrAmbiguousOutputKind.
func ResolveOutput(path string, emit EmitFlags, legacy LegacyFlags) (OutputSpec, []Warning, error) {
	if path == "" {
		path = DefaultOutputName
	}
	fromExt := artifact.ClassifyOutput(path)

	tiers := []struct {
		name string
		tier resolverTier
	}{
		{"emit flag", emit.kind},
		{"mode flag", legacy.kind},
		{"output filename", func() (artifact.Kind, bool) {
			return fromExt, fromExt != artifact.KindUnknown
		}},
	}

	var warnings []Warning
	for _, t := range tiers {
		kind, ok := t.tier()
		if !ok {
			continue
		}
		if fromExt != artifact.KindUnknown && fromExt != kind {
			warnings = append(warnings, Warning{Msg: fmt.Sprintf(
				"output type set to %s by %s; output filename %q has type %s",
				kind, t.name, path, fromExt)})
		}
		return OutputSpec{Path: path, Kind: kind}, warnings, nil
	}

	return OutputSpec{}, nil, ambiguousOutput(path)
}

func (e EmitFlags) kind() (artifact.Kind, bool) {
	switch {
	case e.Wasm:
		return artifact.KindWasmObject, true
	case e.Wat:
		return artifact.KindWat, true
	case e.Clif:
		return artifact.KindClif, true
	case e.Ar:
		return artifact.KindArchive, true
	case e.Obj:
		return artifact.KindNativeObject, true
	case e.SO:
		return artifact.KindSharedObject, true
	default:
		return artifact.KindUnknown, false
	}
}

// Count reports how many emit flags are set, for invocation validation.
func (e EmitFlags) Count() int {
	n := 0
	for _, b := range []bool{e.Wasm, e.Wat, e.Clif, e.Ar, e.Obj, e.SO} {
		if b {
			n++
		}
	}
	return n
}

func (l LegacyFlags) kind() (artifact.Kind, bool) {
	switch {
	case l.CompileOnly:
		return artifact.KindWasmObject, true
	case l.StopAfterWat:
		return artifact.KindWat, true
	default:
		return artifact.KindUnknown, false
	}
}
