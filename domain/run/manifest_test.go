package run

import (
	"testing"

	"trialsize/domain/core"
)

func entries() []Entry {
	return []Entry{
		{ScenarioID: "baseline", Parameters: core.ParameterHash("aaa"), OK: true},
		{ScenarioID: "no-dropout", Parameters: core.ParameterHash("bbb"), OK: true},
		{ScenarioID: "impossible", Parameters: core.ParameterHash("ccc"), OK: false},
	}
}

func TestSweepFingerprint_Deterministic(t *testing.T) {
	fp1 := NewSweepFingerprint("fixed", CodeVersion, entries())
	fp2 := NewSweepFingerprint("fixed", CodeVersion, entries())

	if fp1.Fingerprint != fp2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Fingerprint, fp2.Fingerprint)
	}
	if len(fp1.Fingerprint) != 64 {
		t.Errorf("Expected a sha256 hex digest, got %q", fp1.Fingerprint)
	}
}

func TestSweepFingerprint_Unique(t *testing.T) {
	base := NewSweepFingerprint("fixed", CodeVersion, entries())

	reordered := entries()
	reordered[0], reordered[1] = reordered[1], reordered[0]

	changed := entries()
	changed[2].Parameters = core.ParameterHash("ddd")

	testCases := []struct {
		name string
		fp   SweepFingerprint
	}{
		{"critical source", NewSweepFingerprint("derived", CodeVersion, entries())},
		{"code version", NewSweepFingerprint("fixed", "2.0.0", entries())},
		{"row order", NewSweepFingerprint("fixed", CodeVersion, reordered)},
		{"parameters", NewSweepFingerprint("fixed", CodeVersion, changed)},
		{"fewer rows", NewSweepFingerprint("fixed", CodeVersion, entries()[:2])},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp.Fingerprint == base.Fingerprint {
				t.Errorf("Changing %s should change the fingerprint", tc.name)
			}
		})
	}
}

func TestSweepManifest_CountsAndValidates(t *testing.T) {
	m := NewSweepManifest("scenarios.xlsx", "fixed", entries())

	if m.Scenarios != 3 || m.Failed != 1 {
		t.Errorf("Expected 3 scenarios with 1 failure, got %d/%d", m.Scenarios, m.Failed)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected valid manifest, got %v", err)
	}

	m.Fingerprint.CriticalSource = ""
	if err := m.Validate(); err == nil {
		t.Error("Expected error for missing critical source")
	}
}

func TestSweepManifest_IDsAreUnique(t *testing.T) {
	a := NewSweepManifest("request", "fixed", entries())
	b := NewSweepManifest("request", "fixed", entries())

	if a.SweepID == b.SweepID {
		t.Error("Expected distinct sweep IDs")
	}
	if a.Fingerprint.Fingerprint != b.Fingerprint.Fingerprint {
		t.Error("Expected identical fingerprints for identical inputs")
	}
}
