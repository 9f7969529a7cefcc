package models

import (
	"trialsize/domain/core"
	"trialsize/domain/run"
	"trialsize/domain/samplesize"
	"trialsize/internal/analysis"
)

// Calculation is one engine run as the shells see it
type Calculation struct {
	ID             core.CalculationID         `json:"id"`
	CreatedAt      core.Timestamp             `json:"createdAt"`
	Fingerprint    core.ParameterHash         `json:"fingerprint"`
	Parameters     samplesize.ParameterSet    `json:"parameters"`
	CriticalSource string                     `json:"criticalValueSource"`
	CriticalValues samplesize.CriticalValues  `json:"criticalValues"`
	Results        samplesize.ResultSet       `json:"-"`
	Summary        analysis.ComparisonSummary `json:"summary"`
	// AchievedPower is set when the critical-value source can estimate power
	AchievedPower map[samplesize.Method]float64 `json:"achievedPower,omitempty"`
}

// Rows returns the results in table order
func (c *Calculation) Rows() []samplesize.SampleSizeResult {
	if c == nil {
		return nil
	}
	return c.Results.Ordered()
}

// Scenario is one what-if row of a workbook
type Scenario struct {
	ID  core.ScenarioID          `json:"id"`
	Row int                      `json:"row"` // 1-based sheet row
	Raw samplesize.RawParameters `json:"raw"`
}

// ScenarioOutcome pairs a scenario with its result or its validation failure
type ScenarioOutcome struct {
	Scenario    Scenario                `json:"scenario"`
	Calculation *Calculation            `json:"calculation,omitempty"`
	Errors      []samplesize.FieldError `json:"errors,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// OK reports whether the scenario produced results
func (o ScenarioOutcome) OK() bool {
	return o.Calculation != nil
}

// SweepReport is a batch of outcomes with the manifest that identifies it
type SweepReport struct {
	Manifest *run.SweepManifest `json:"manifest"`
	Outcomes []ScenarioOutcome  `json:"outcomes"`
}
