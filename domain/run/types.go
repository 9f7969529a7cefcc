package run

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"trialsize/domain/core"
)

// Entry is one scenario as the sweep fingerprint sees it
type Entry struct {
	ScenarioID core.ScenarioID    `json:"scenario_id"`
	Parameters core.ParameterHash `json:"parameters"` // hash of the raw row after defaults
	OK         bool               `json:"ok"`
}

// SweepFingerprint identifies a batch by its inputs; rerunning the same
// workbook with the same critical values gives the same fingerprint
type SweepFingerprint struct {
	CriticalSource string    `json:"critical_source"`
	CodeVersion    string    `json:"code_version"`
	Entries        []Entry   `json:"entries"`
	Fingerprint    core.Hash `json:"fingerprint"` // Hash of all above
}

// NewSweepFingerprint creates a fingerprint from the batch inputs in row order
func NewSweepFingerprint(criticalSource, codeVersion string, entries []Entry) SweepFingerprint {
	return SweepFingerprint{
		CriticalSource: criticalSource,
		CodeVersion:    codeVersion,
		Entries:        entries,
		Fingerprint:    computeSweepFingerprint(criticalSource, codeVersion, entries),
	}
}

// computeSweepFingerprint generates a deterministic hash; row order matters
func computeSweepFingerprint(criticalSource, codeVersion string, entries []Entry) core.Hash {
	var rows strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&rows, "%s=%s;", e.ScenarioID, e.Parameters)
	}

	data := fmt.Sprintf("critical:%s|code:%s|scenarios:%s", criticalSource, codeVersion, rows.String())

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}
