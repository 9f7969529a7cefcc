package ports

import (
	"context"

	"trialsize/domain/samplesize"
	"trialsize/internal/references"
	"trialsize/models"
)

// CalculatorPort is what every presentation shell needs from the engine
type CalculatorPort interface {
	Calculate(ctx context.Context, raw samplesize.RawParameters) (*models.Calculation, error)
	CalculateScenarios(ctx context.Context, scenarios []models.Scenario) ([]models.ScenarioOutcome, error)
	Sweep(ctx context.Context, source string, scenarios []models.Scenario) (*models.SweepReport, error)
	Fields() []samplesize.Field
	Defaults() samplesize.RawParameters
	References() references.Content
	CriticalValueSource() string
}

// ScenarioReaderPort loads what-if rows from a file
type ScenarioReaderPort interface {
	ReadScenarios(ctx context.Context) ([]models.Scenario, error)
}
