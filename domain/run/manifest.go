package run

import (
	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// RunManifest records everything needed to replay a simulation run.
// It lives only as long as the run result; nothing is persisted.
type RunManifest struct {
	RunID       core.RunID                `json:"run_id"`
	Seed        uint64                    `json:"seed"`
	Samples     int                       `json:"samples"`
	Variables   []reservoir.InputVariable `json:"variables"`
	CodeVersion string                    `json:"code_version"`
	Fingerprint RunFingerprint            `json:"fingerprint"`
	CreatedAt   core.Timestamp            `json:"created_at"`
}

// NewRunManifest creates a run manifest for a simulation request
func NewRunManifest(runID core.RunID, seed uint64, samples int, vars []reservoir.InputVariable, codeVersion string) *RunManifest {
	copied := make([]reservoir.InputVariable, len(vars))
	copy(copied, vars)

	return &RunManifest{
		RunID:       runID,
		Seed:        seed,
		Samples:     samples,
		Variables:   copied,
		CodeVersion: codeVersion,
		Fingerprint: NewRunFingerprint(seed, samples, copied, codeVersion),
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete
func (r *RunManifest) Validate() error {
	if _, err := core.ParseRunID(string(r.RunID)); err != nil {
		return core.NewInvalidParameterError("run_id", err.Error())
	}
	if r.Samples <= 0 {
		return core.NewInvalidParameterError("samples", "must be positive")
	}
	if len(r.Variables) == 0 {
		return core.NewInvalidParameterError("variables", "cannot be empty")
	}
	if r.CodeVersion == "" {
		return core.NewInvalidParameterError("code_version", "cannot be empty")
	}
	if r.Fingerprint.VariablesHash.IsEmpty() || r.Fingerprint.Fingerprint.IsEmpty() {
		return core.NewInvalidParameterError("fingerprint", "must be computed")
	}
	if r.CreatedAt.IsZero() {
		return core.NewInvalidParameterError("created_at", "must be set")
	}
	return nil
}
