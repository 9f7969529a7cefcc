package run

import (
	"fmt"

	"trialsize/domain/core"
)

// CodeVersion tags manifests so fingerprints change when the formulas do
const CodeVersion = "1.0.0"

// SweepManifest summarizes one batch of what-if scenarios
type SweepManifest struct {
	SweepID     core.SweepID     `json:"sweep_id"`
	Source      string           `json:"source"` // workbook path or "request"
	Scenarios   int              `json:"scenarios"`
	Failed      int              `json:"failed"`
	Fingerprint SweepFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp   `json:"created_at"`
}

// NewSweepManifest creates a manifest for a finished batch
func NewSweepManifest(source, criticalSource string, entries []Entry) *SweepManifest {
	failed := 0
	for _, e := range entries {
		if !e.OK {
			failed++
		}
	}

	return &SweepManifest{
		SweepID:     core.NewSweepID(),
		Source:      source,
		Scenarios:   len(entries),
		Failed:      failed,
		Fingerprint: NewSweepFingerprint(criticalSource, CodeVersion, entries),
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *SweepManifest) Validate() error {
	if core.ID(m.SweepID).IsEmpty() {
		return fmt.Errorf("sweep manifest: sweep_id cannot be empty")
	}
	if m.Fingerprint.CriticalSource == "" {
		return fmt.Errorf("sweep manifest: critical_source cannot be empty")
	}
	if m.Scenarios != len(m.Fingerprint.Entries) {
		return fmt.Errorf("sweep manifest: %d scenarios but %d fingerprint entries", m.Scenarios, len(m.Fingerprint.Entries))
	}
	if m.Fingerprint.Fingerprint.IsEmpty() {
		return fmt.Errorf("sweep manifest: fingerprint cannot be empty")
	}
	return nil
}
