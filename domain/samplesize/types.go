package samplesize

import (
	"fmt"
	"sort"

	"trialsize/domain/core"
)

// ============================================================================
// METHODS
// ============================================================================

// Method identifies one of the compared initial-size formulas
type Method string

const (
	MethodDoi     Method = "doi"     // MMSE change, Doi et al. (2017)
	MethodIto     Method = "ito"     // standardized mean difference, Ito et al. (2022)
	MethodAndrews Method = "andrews" // MCID, Andrews et al. (2019)
)

// Methods lists every method in table order
var Methods = []Method{MethodDoi, MethodIto, MethodAndrews}

// DisplayName returns the label used in comparison tables
func (m Method) DisplayName() string {
	switch m {
	case MethodDoi:
		return "Doi et al."
	case MethodIto:
		return "Ito et al."
	case MethodAndrews:
		return "Andrews et al."
	default:
		return string(m)
	}
}

// ParseMethod parses a method key
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownMethod, s)
}

// order returns the table position of a method
func (m Method) order() int {
	for i, candidate := range Methods {
		if candidate == m {
			return i
		}
	}
	return len(Methods)
}

// ============================================================================
// INPUTS
// ============================================================================

// ParameterSet is the immutable input of one calculation.
// INVARIANTS (enforced by Validate, not by Compute):
// - effect sizes, SD and design effect are finite and > 0
// - alpha and power lie in (0,1)
// - dropout lies in [0,100)
type ParameterSet struct {
	MMSEChange                 float64 `json:"mmseChange" validate:"finite,gt=0"`                 // Doi method
	StandardDeviation          float64 `json:"standardDeviation" validate:"finite,gt=0"`          // shared SD
	StandardizedMeanDifference float64 `json:"standardizedMeanDifference" validate:"finite,gt=0"` // Ito method
	Alpha                      float64 `json:"alpha" validate:"finite,gt=0,lt=1"`                 // only used by derived critical values
	Power                      float64 `json:"power" validate:"finite,gt=0,lt=1"`                 // only used by derived critical values
	MCID                       float64 `json:"minimalClinicallyImportantDifference" validate:"finite,gt=0"`
	DropoutRatePercent         float64 `json:"dropoutRatePercent" validate:"finite,gte=0,lt=100"`
	InterimAnalysis            bool    `json:"interimAnalysisEnabled"`
	DesignEffect               float64 `json:"designEffect" validate:"finite,gt=0"`
}

// DefaultParameters returns the study-design defaults the calculator opens with
func DefaultParameters() ParameterSet {
	return ParameterSet{
		MMSEChange:                 0.82,
		StandardDeviation:          2.2,
		StandardizedMeanDifference: 0.40,
		Alpha:                      0.05,
		Power:                      0.8,
		MCID:                       3,
		DropoutRatePercent:         20,
		InterimAnalysis:            true,
		DesignEffect:               1.2,
	}
}

// Fingerprint hashes the parameter values; identical inputs give identical fingerprints
func (p ParameterSet) Fingerprint() core.ParameterHash {
	return core.ComputeParameterHash(map[string]interface{}{
		FieldMMSEChange:                 p.MMSEChange,
		FieldStandardDeviation:          p.StandardDeviation,
		FieldStandardizedMeanDifference: p.StandardizedMeanDifference,
		FieldAlpha:                      p.Alpha,
		FieldPower:                      p.Power,
		FieldMCID:                       p.MCID,
		FieldDropoutRatePercent:         p.DropoutRatePercent,
		FieldInterimAnalysis:            p.InterimAnalysis,
		FieldDesignEffect:               p.DesignEffect,
	})
}

// RawParameters holds the nine fields as the user typed them
type RawParameters map[string]string

// DefaultRawParameters returns the defaults in textual form
func DefaultRawParameters() RawParameters {
	raw := make(RawParameters, len(Fields))
	for _, f := range Fields {
		raw[f.Key] = f.Default
	}
	return raw
}

// Fingerprint hashes the text as typed, so rows that fail to parse still get one
func (r RawParameters) Fingerprint() core.ParameterHash {
	fields := make(map[string]interface{}, len(r))
	for k, v := range r {
		fields[k] = v
	}
	return core.ComputeParameterHash(fields)
}

// WithDefaults fills any missing field from the defaults
func (r RawParameters) WithDefaults() RawParameters {
	out := DefaultRawParameters()
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ============================================================================
// OUTPUTS
// ============================================================================

// SampleSizeResult is the outcome for one method
type SampleSizeResult struct {
	Method           Method `json:"method"`
	Initial          int    `json:"initial"`          // unadjusted total
	Adjusted         int    `json:"adjusted"`         // after dropout, interim and design effect
	PerGroupAdjusted int    `json:"perGroupAdjusted"` // ceil(adjusted / 2)
}

// ResultSet maps each method to its result; rebuilt wholesale per calculation
type ResultSet map[Method]SampleSizeResult

// Ordered returns the results in table order
func (rs ResultSet) Ordered() []SampleSizeResult {
	out := make([]SampleSizeResult, 0, len(rs))
	for _, r := range rs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method.order() < out[j].Method.order() })
	return out
}

// Adjusted returns the adjusted totals in table order
func (rs ResultSet) Adjusted() []float64 {
	ordered := rs.Ordered()
	out := make([]float64, len(ordered))
	for i, r := range ordered {
		out[i] = float64(r.Adjusted)
	}
	return out
}

// RawResult is the unguarded float form of SampleSizeResult; NaN and Inf propagate
type RawResult struct {
	Method   Method
	Initial  float64
	Adjusted float64
	PerGroup float64
}

// RawResultSet maps each method to its unguarded result
type RawResultSet map[Method]RawResult
