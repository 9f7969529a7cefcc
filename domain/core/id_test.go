package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseCalculationID tests calculation ID parsing
func TestParseCalculationID(t *testing.T) {
	valid := NewCalculationID()

	tests := []struct {
		input    string
		expected CalculationID
		hasError bool
	}{
		{valid.String(), valid, false},
		{"not-a-uuid", "", true},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseCalculationID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseScenarioID tests scenario ID parsing
func TestParseScenarioID(t *testing.T) {
	id, err := ParseScenarioID("  high-dropout ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != ScenarioID("high-dropout") {
		t.Errorf("Expected trimmed scenario ID, got '%s'", id)
	}
	if _, err := ParseScenarioID(""); err == nil {
		t.Error("Expected error for empty scenario ID")
	}
}

// TestComputeParameterHashOrderIndependent tests that map order does not leak into the hash
func TestComputeParameterHashOrderIndependent(t *testing.T) {
	a := ComputeParameterHash(map[string]interface{}{"sd": 2.2, "mcid": 3.0, "interim": true})
	b := ComputeParameterHash(map[string]interface{}{"interim": true, "mcid": 3.0, "sd": 2.2})
	if a != b {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}

	c := ComputeParameterHash(map[string]interface{}{"sd": 2.3, "mcid": 3.0, "interim": true})
	if a == c {
		t.Error("Expected different inputs to hash differently")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12-char short hash, got %q", a.Short())
	}
}
