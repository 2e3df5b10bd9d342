package toolchain

import (
	"fmt"

	"wasmcc/internal/plan"
)

// Argv builds the full command line for a planned step. All type decisions
// were made during planning; this is pure argument assembly.
func Argv(s plan.Step, p Paths) ([]string, error) {
	switch st := s.(type) {
	case plan.CompileC:
		argv := []string{
			p.Clang,
			"-target", "wasm32-wasm",
			"-fvisibility=default",
			"--sysroot=" + p.Sysroot,
		}
		argv = append(argv, p.ExtraCFlags...)
		argv = append(argv, st.ExtraFlags...)
		argv = append(argv, "-o", st.Object, "-c", st.Source)
		return argv, nil

	case plan.AssembleWat:
		return []string{p.Wat2Wasm, st.Source, "-o", st.Object}, nil

	case plan.LinkObjects:
		argv := []string{
			p.WasmLD,
			"--allow-undefined",
			"--no-entry",
			"--no-threads",
			"-L" + p.LibDir,
			"-lc",
			"-o", st.Output,
		}
		argv = append(argv, st.Objects...)
		return argv, nil

	case plan.Lower:
		argv := []string{p.AOT, st.Object, "-o", st.Output}
		for _, b := range st.Bindings {
			argv = append(argv, "--bindings", b)
		}
		return argv, nil

	default:
		return nil, fmt.Errorf("no command for step type %T", s)
	}
}
