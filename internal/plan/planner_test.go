package plan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wasmcc/internal/artifact"
)

// fakeScratch allocates predictable names without touching the filesystem.
type fakeScratch struct {
	n int
}

func (f *fakeScratch) Acquire(suffix string) (string, error) {
	f.n++
	return fmt.Sprintf("/tmp/scratch-%d%s", f.n, suffix), nil
}

func objOut(path string) OutputSpec {
	return OutputSpec{Path: path, Kind: artifact.KindWasmObject}
}

func soOut(path string) OutputSpec {
	return OutputSpec{Path: path, Kind: artifact.KindSharedObject}
}

func TestBuild_CompileSingleSource(t *testing.T) {
	steps, err := Build(
		[]artifact.Input{{Path: "main.c", Kind: artifact.KindCSource}},
		objOut("main.o"),
		Options{ExtraCompileFlags: []string{"-O2", "-DNDEBUG"}},
		&fakeScratch{},
	)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	c, ok := steps[0].(CompileC)
	require.True(t, ok, "expected CompileC, got %T", steps[0])
	assert.Equal(t, "main.c", c.Source)
	assert.Equal(t, "main.o", c.Object)
	assert.Equal(t, []string{"-O2", "-DNDEBUG"}, c.ExtraFlags)
}

func TestBuild_AssembleWat(t *testing.T) {
	steps, err := Build(
		[]artifact.Input{{Path: "start.s", Kind: artifact.KindWat}},
		objOut("start.o"),
		Options{},
		&fakeScratch{},
	)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	a, ok := steps[0].(AssembleWat)
	require.True(t, ok, "expected AssembleWat, got %T", steps[0])
	assert.Equal(t, "start.s", a.Source)
	assert.Equal(t, "start.o", a.Object)
}

func TestBuild_WasmObjectRejectsMultipleInputs(t *testing.T) {
	_, err := Build(
		[]artifact.Input{
			{Path: "a.c", Kind: artifact.KindCSource},
			{Path: "b.c", Kind: artifact.KindCSource},
		},
		objOut("out.o"),
		Options{},
		&fakeScratch{},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInputForTarget))
}

func TestBuild_WasmObjectRejectsObjectInput(t *testing.T) {
	_, err := Build(
		[]artifact.Input{{Path: "a.o", Kind: artifact.KindWasmObject}},
		objOut("out.o"),
		Options{},
		&fakeScratch{},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInputForTarget))
}

func TestBuild_SharedObject_LinkThenLower(t *testing.T) {
	steps, err := Build(
		[]artifact.Input{
			{Path: "obj1.o", Kind: artifact.KindWasmObject},
			{Path: "obj2.o", Kind: artifact.KindWasmObject},
		},
		soOut("lib.so"),
		Options{Bindings: []string{"bindings.json"}},
		&fakeScratch{},
	)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	link, ok := steps[0].(LinkObjects)
	require.True(t, ok, "expected LinkObjects, got %T", steps[0])
	assert.Equal(t, []string{"obj1.o", "obj2.o"}, link.Objects, "input order must be preserved")

	lower, ok := steps[1].(Lower)
	require.True(t, ok, "expected Lower, got %T", steps[1])
	assert.Equal(t, link.Output, lower.Object, "link output feeds the lowering step")
	assert.Equal(t, "lib.so", lower.Output)
	assert.Equal(t, []string{"bindings.json"}, lower.Bindings)
}

func TestBuild_SharedObject_AcceptsArchives(t *testing.T) {
	steps, err := Build(
		[]artifact.Input{
			{Path: "a.o", Kind: artifact.KindWasmObject},
			{Path: "libfoo.a", Kind: artifact.KindArchive},
		},
		soOut("lib.so"),
		Options{},
		&fakeScratch{},
	)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, []string{"a.o", "libfoo.a"}, steps[0].(LinkObjects).Objects)
}

func TestBuild_SharedObject_RejectsRawSource(t *testing.T) {
	_, err := Build(
		[]artifact.Input{{Path: "main.c", Kind: artifact.KindCSource}},
		soOut("lib.so"),
		Options{},
		&fakeScratch{},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInputForTarget))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Msg, "main.c", "error names the offending file")
	assert.Contains(t, perr.Msg, "c-source", "error names the offending kind")
}

func TestBuild_SharedObject_RejectsNoInputs(t *testing.T) {
	_, err := Build(nil, soOut("lib.so"), Options{}, &fakeScratch{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInputForTarget))
}

func TestBuild_UnsupportedTargets(t *testing.T) {
	for _, kind := range []artifact.Kind{
		artifact.KindWat,
		artifact.KindClif,
		artifact.KindArchive,
		artifact.KindNativeObject,
		artifact.KindCSource,
		artifact.KindUnknown,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			_, err := Build(
				[]artifact.Input{{Path: "a.o", Kind: artifact.KindWasmObject}},
				OutputSpec{Path: "out", Kind: kind},
				Options{},
				&fakeScratch{},
			)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedOutputKind))
		})
	}
}

// Planning twice with identical inputs yields structurally identical step
// sequences, modulo scratch file names.
func TestBuild_Deterministic(t *testing.T) {
	inputs := []artifact.Input{
		{Path: "x.o", Kind: artifact.KindWasmObject},
		{Path: "y.o", Kind: artifact.KindWasmObject},
	}
	first, err := Build(inputs, soOut("lib.so"), Options{}, &fakeScratch{})
	require.NoError(t, err)
	second, err := Build(inputs, soOut("lib.so"), Options{}, &fakeScratch{})
	require.NoError(t, err)

	require.Len(t, first, len(second))
	for i := range first {
		assert.IsType(t, first[i], second[i])
		assert.Equal(t, first[i].Tool(), second[i].Tool())
	}
	assert.Equal(t,
		first[0].(LinkObjects).Objects,
		second[0].(LinkObjects).Objects,
	)
	assert.Equal(t,
		first[1].(Lower).Output,
		second[1].(Lower).Output,
	)
}
