package run

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// RunFingerprint ensures deterministic replay: identical fingerprints mean
// identical sample sets, given the same sampling code.
type RunFingerprint struct {
	Seed          uint64    `json:"seed"`
	Samples       int       `json:"samples"`
	VariablesHash core.Hash `json:"variables_hash"`
	CodeVersion   string    `json:"code_version"`
	Fingerprint   core.Hash `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(seed uint64, samples int, vars []reservoir.InputVariable, codeVersion string) RunFingerprint {
	varsHash := computeVariablesHash(vars)

	return RunFingerprint{
		Seed:          seed,
		Samples:       samples,
		VariablesHash: varsHash,
		CodeVersion:   codeVersion,
		Fingerprint:   computeRunFingerprint(seed, samples, varsHash, codeVersion),
	}
}

// computeVariablesHash hashes the variables in their given order; order is
// part of the identity since it selects the random stream of each variable.
func computeVariablesHash(vars []reservoir.InputVariable) core.Hash {
	var data strings.Builder
	for i, v := range vars {
		p := v.Params
		fmt.Fprintf(&data, "%d:%s:%s:mu=%g,sigma=%g,min=%g,mode=%g,max=%g,alpha=%g,beta=%g;",
			i, v.Name, v.Kind, p.Mu, p.Sigma, p.Min, p.Mode, p.Max, p.Alpha, p.Beta)
	}
	return core.NewHash([]byte(data.String()))
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(seed uint64, samples int, varsHash core.Hash, codeVersion string) core.Hash {
	data := fmt.Sprintf("seed:%d|samples:%d|variables:%s|code:%s", seed, samples, varsHash, codeVersion)

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}
