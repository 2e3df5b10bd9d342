// Package toolchain locates the external executables the driver depends on
// and runs planned steps against them.
package toolchain

import (
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"wasmcc/internal/plan"
)

// Compiled-in defaults, overridable per key via WASMCC_* environment
// variables or a .wasmcc.yaml config file in the working directory.
const (
	DefaultClang    = "clang"
	DefaultWasmLD   = "wasm-ld"
	DefaultWat2Wasm = "wat2wasm"
	DefaultAOT      = "wasmaot"
	DefaultSysroot  = "/opt/wasmcc/sysroot"
	DefaultLibDir   = "/opt/wasmcc/lib"
)

// Paths holds the resolved locations of every external collaborator plus
// environment-supplied extra compile flags.
type Paths struct {
	Clang    string
	WasmLD   string
	Wat2Wasm string
	AOT      string

	// Sysroot must exist on disk before any compile step runs.
	Sysroot string

	// LibDir must contain libc.a before any link step runs.
	LibDir string

	// ExtraCFlags come from WASMCC_CFLAGS, shell-split.
	ExtraCFlags []string
}

// LoadPaths resolves toolchain paths with the precedence: environment
// override, then config file value, then compiled-in default.
func LoadPaths() (Paths, error) {
	v := viper.New()
	v.SetEnvPrefix("wasmcc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("clang", DefaultClang)
	v.SetDefault("wasm-ld", DefaultWasmLD)
	v.SetDefault("wat2wasm", DefaultWat2Wasm)
	v.SetDefault("aot", DefaultAOT)
	v.SetDefault("sysroot", DefaultSysroot)
	v.SetDefault("libdir", DefaultLibDir)
	v.SetDefault("cflags", "")

	v.SetConfigName(".wasmcc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Paths{}, errors.Wrap(err, "read .wasmcc.yaml")
		}
	}

	p := Paths{
		Clang:    v.GetString("clang"),
		WasmLD:   v.GetString("wasm-ld"),
		Wat2Wasm: v.GetString("wat2wasm"),
		AOT:      v.GetString("aot"),
		Sysroot:  v.GetString("sysroot"),
		LibDir:   v.GetString("libdir"),
	}

	if raw := v.GetString("cflags"); raw != "" {
		flags, err := shlex.Split(raw)
		if err != nil {
			return Paths{}, errors.Wrap(err, "split WASMCC_CFLAGS")
		}
		p.ExtraCFlags = flags
	}

	return p, nil
}

// Locator resolves a planned tool to its executable path and probes
// usability.
type Locator struct {
	Paths Paths
}

func NewLocator(p Paths) *Locator { return &Locator{Paths: p} }

// Path returns the resolved executable path for a tool.
func (l *Locator) Path(t plan.Tool) string {
	switch t {
	case plan.ToolClang:
		return l.Paths.Clang
	case plan.ToolWasmLD:
		return l.Paths.WasmLD
	case plan.ToolWat2Wasm:
		return l.Paths.Wat2Wasm
	case plan.ToolAOT:
		return l.Paths.AOT
	default:
		return ""
	}
}

// Check invokes the tool with a version query and reports whether it is
// present and runnable. Launch failures are treated as "not usable" and
// never propagate.
func (l *Locator) Check(path string) bool {
	if path == "" {
		return false
	}
	cmd := exec.Command(path, "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}
