package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"trialsize/domain/run"
	"trialsize/domain/samplesize"
)

// FieldValue accepts a JSON number, boolean or string and keeps its text
type FieldValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = FieldValue(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("field value must be a number, boolean or string: %w", err)
		}
		*v = FieldValue(n.String())
	}
	return nil
}

// CalculationRequest is the JSON body of POST /api/v1/calculations.
// Omitted fields take the calculator defaults.
type CalculationRequest map[string]FieldValue

// Raw converts the request into textual parameters, filling defaults
func (r CalculationRequest) Raw() samplesize.RawParameters {
	raw := make(samplesize.RawParameters, len(r))
	for k, v := range r {
		raw[k] = string(v)
	}
	return raw.WithDefaults()
}

// Unknown lists keys that do not name a field, sorted
func (r CalculationRequest) Unknown() []string {
	var unknown []string
	for k := range r {
		if !isFieldKey(k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func isFieldKey(k string) bool {
	for _, f := range samplesize.Fields {
		if f.Key == k {
			return true
		}
	}
	return false
}

// ScenarioRequest is one entry of POST /api/v1/scenarios
type ScenarioRequest struct {
	ID         string             `json:"id"`
	Parameters CalculationRequest `json:"parameters"`
}

// MethodRow is one line of the comparison table
type MethodRow struct {
	Method           samplesize.Method `json:"method"`
	Label            string            `json:"label"`
	Initial          int               `json:"initial"`
	Adjusted         int               `json:"adjusted"`
	PerGroupAdjusted int               `json:"perGroupAdjusted"`
}

// CalculationResponse is the JSON form of a Calculation
type CalculationResponse struct {
	*Calculation
	Results []MethodRow `json:"results"`
}

// NewCalculationResponse flattens a calculation for JSON output
func NewCalculationResponse(c *Calculation) CalculationResponse {
	rows := make([]MethodRow, 0, len(c.Results))
	for _, r := range c.Rows() {
		rows = append(rows, MethodRow{
			Method:           r.Method,
			Label:            r.Method.DisplayName(),
			Initial:          r.Initial,
			Adjusted:         r.Adjusted,
			PerGroupAdjusted: r.PerGroupAdjusted,
		})
	}
	return CalculationResponse{Calculation: c, Results: rows}
}

// OutcomeResponse is the JSON form of a ScenarioOutcome; Results is set only
// for rows that calculated
type OutcomeResponse struct {
	ScenarioOutcome
	Results []MethodRow `json:"results,omitempty"`
}

// SweepResponse is the JSON form of a SweepReport
type SweepResponse struct {
	Manifest *run.SweepManifest `json:"manifest"`
	Outcomes []OutcomeResponse  `json:"outcomes"`
}

// NewSweepResponse flattens every successful outcome like NewCalculationResponse
func NewSweepResponse(report *SweepReport) SweepResponse {
	outcomes := make([]OutcomeResponse, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		out := OutcomeResponse{ScenarioOutcome: o}
		if o.OK() {
			out.Results = NewCalculationResponse(o.Calculation).Results
		}
		outcomes = append(outcomes, out)
	}
	return SweepResponse{Manifest: report.Manifest, Outcomes: outcomes}
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Code   string                  `json:"code"`
	Fields []samplesize.FieldError `json:"fields,omitempty"`
}
