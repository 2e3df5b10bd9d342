// Package trace records a canonical transcript of the external tool
// invocations a driver run performed.
//
// The transcript is observational only and must never affect execution
// behavior. Events appear in invocation order, which is deterministic for a
// given plan because execution is strictly serial.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Event is one external tool invocation.
//
// Determinism constraints:
//   - No timestamps or durations.
//   - No stdout/stderr captures (tool output is runtime-dependent).
type Event struct {
	// Step is the planned step's one-line description.
	Step string `json:"step"`

	// Tool is the logical tool name (not the resolved path, which is
	// environment-dependent).
	Tool string `json:"tool"`

	// Argv is the exact command line that ran, resolved path included.
	Argv []string `json:"argv"`

	// ExitCode is the tool's exit status.
	ExitCode int `json:"exitCode"`
}

// Transcript is the canonical record of one driver run.
type Transcript struct {
	Events []Event `json:"events"`
}

// Validate checks basic invariants and returns a descriptive error.
func (t *Transcript) Validate() error {
	if t == nil {
		return errors.New("transcript is nil")
	}
	for i, e := range t.Events {
		if e.Step == "" {
			return fmt.Errorf("events[%d].step is required", i)
		}
		if e.Tool == "" {
			return fmt.Errorf("events[%d].tool is required", i)
		}
		if len(e.Argv) == 0 {
			return fmt.Errorf("events[%d].argv is required", i)
		}
	}
	return nil
}

// CanonicalJSON returns the canonical JSON encoding of the transcript.
// An empty event list encodes as an empty array, not null.
func (t Transcript) CanonicalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Events == nil {
		t.Events = []Event{}
	}
	return json.Marshal(&t)
}
