package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wasmcc/internal/artifact"
)

func TestResolveOutput_EmitFlagWins(t *testing.T) {
	spec, warnings, err := ResolveOutput("out.wasm", EmitFlags{Wasm: true}, LegacyFlags{})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindWasmObject, spec.Kind)
	assert.Equal(t, "out.wasm", spec.Path)
	assert.Empty(t, warnings)
}

func TestResolveOutput_EmitFlagConflictsWithExtension(t *testing.T) {
	spec, warnings, err := ResolveOutput("out.so", EmitFlags{Wat: true}, LegacyFlags{})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindWat, spec.Kind, "explicit flag must win")
	require.Len(t, warnings, 1, "exactly one conflict warning")
	assert.Contains(t, warnings[0].Msg, "wat")
	assert.Contains(t, warnings[0].Msg, "shared-object")
}

func TestResolveOutput_LegacyFlags(t *testing.T) {
	spec, warnings, err := ResolveOutput("thing.bin", EmitFlags{}, LegacyFlags{CompileOnly: true})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindWasmObject, spec.Kind)
	assert.Empty(t, warnings)

	spec, warnings, err = ResolveOutput("thing.o", EmitFlags{}, LegacyFlags{StopAfterWat: true})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindWat, spec.Kind)
	require.Len(t, warnings, 1, "-S disagrees with .o extension")
}

func TestResolveOutput_EmitFlagShadowsLegacyFlag(t *testing.T) {
	spec, _, err := ResolveOutput("out.so", EmitFlags{SO: true}, LegacyFlags{CompileOnly: true})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindSharedObject, spec.Kind)
}

func TestResolveOutput_ExtensionOnly(t *testing.T) {
	spec, warnings, err := ResolveOutput("libfoo.so", EmitFlags{}, LegacyFlags{})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindSharedObject, spec.Kind)
	assert.Empty(t, warnings)
}

func TestResolveOutput_NoSignalFails(t *testing.T) {
	_, _, err := ResolveOutput("outfile", EmitFlags{}, LegacyFlags{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousOutputKind))
}

func TestResolveOutput_DefaultsToAOut(t *testing.T) {
	// No path and no signal: the fallback name has no recognized extension.
	_, _, err := ResolveOutput("", EmitFlags{}, LegacyFlags{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousOutputKind))

	// No path but an emit flag: the fallback name is used as the output path.
	spec, _, err := ResolveOutput("", EmitFlags{SO: true}, LegacyFlags{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputName, spec.Path)
	assert.Equal(t, artifact.KindSharedObject, spec.Kind)
}

func TestResolveOutput_EmitObjResolvesButIsRejectedLater(t *testing.T) {
	spec, _, err := ResolveOutput("out.o", EmitFlags{Obj: true}, LegacyFlags{})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindNativeObject, spec.Kind)
}

func TestEmitFlags_Count(t *testing.T) {
	assert.Equal(t, 0, EmitFlags{}.Count())
	assert.Equal(t, 1, EmitFlags{SO: true}.Count())
	assert.Equal(t, 2, EmitFlags{Wasm: true, Wat: true}.Count())
}
