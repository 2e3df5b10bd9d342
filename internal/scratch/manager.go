// Package scratch manages uniquely named temporary files used to pass data
// between pipeline stages within one driver invocation.
package scratch

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Manager owns every scratch file it hands out and removes them at teardown.
//
// It replaces an ambient process-global registry with an explicitly owned
// value: the driver constructs one Manager per invocation, passes it to the
// planner, and releases it from a guaranteed-execution scope (defer plus the
// signal teardown hook). ReleaseAll is safe to call more than once.
type Manager struct {
	mu    sync.Mutex
	files []string
}

func NewManager() *Manager { return &Manager{} }

// Acquire creates a uniquely named empty file with the given suffix,
// registers it for teardown cleanup, and returns its path. The file is
// reserved for exclusive use by the caller.
func (m *Manager) Acquire(suffix string) (string, error) {
	f, err := os.CreateTemp("", "wasmcc-*"+suffix)
	if err != nil {
		return "", errors.Wrap(err, "create scratch file")
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		// The name is still registered so teardown removes the file.
		m.register(name)
		return "", errors.Wrapf(err, "close scratch file %s", name)
	}
	m.register(name)
	return name, nil
}

func (m *Manager) register(path string) {
	m.mu.Lock()
	m.files = append(m.files, path)
	m.mu.Unlock()
}

// ReleaseAll removes every registered scratch file that still exists.
// Cleanup is best-effort: files already removed are ignored and removal
// errors are swallowed, never failing the overall build.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	files := m.files
	m.files = nil
	m.mu.Unlock()

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = os.Remove(f)
	}
}
