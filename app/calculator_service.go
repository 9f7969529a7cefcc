package app

import (
	"context"
	"time"

	"trialsize/domain/core"
	"trialsize/domain/run"
	"trialsize/domain/samplesize"
	"trialsize/internal"
	"trialsize/internal/analysis"
	"trialsize/internal/errors"
	"trialsize/internal/references"
	"trialsize/models"
)

// CalculatorService runs parse, validate, engine and summary for the shells
type CalculatorService struct {
	source samplesize.CriticalValueSource
	logger *internal.Logger
	now    func() time.Time
}

// NewCalculatorService creates a calculator service; a nil source means fixed critical values
func NewCalculatorService(source samplesize.CriticalValueSource, logger *internal.Logger) *CalculatorService {
	if source == nil {
		source = samplesize.FixedCriticalValues{}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalculatorService{
		source: source,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Calculate parses the textual fields and runs the engine. Validation failures
// are returned as an AppError with code VALIDATION_ERROR wrapping the
// *samplesize.ValidationError.
func (s *CalculatorService) Calculate(ctx context.Context, raw samplesize.RawParameters) (*models.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := samplesize.ParseParameters(raw)
	if err != nil {
		if verr, ok := samplesize.AsValidationError(err); ok {
			s.logger.Debug("[Calculator] rejected input: %v", verr)
			return nil, errors.ValidationFailed(verr)
		}
		return nil, errors.Wrap(err, "failed to parse parameters")
	}

	return s.calculate(params)
}

// CalculateParameters runs the engine on an already-typed parameter set
func (s *CalculatorService) CalculateParameters(ctx context.Context, params samplesize.ParameterSet) (*models.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.calculate(params)
}

func (s *CalculatorService) calculate(params samplesize.ParameterSet) (*models.Calculation, error) {
	start := s.now()

	results, err := samplesize.Calculate(params, s.source)
	if err != nil {
		if verr, ok := samplesize.AsValidationError(err); ok {
			return nil, errors.ValidationFailed(verr)
		}
		if core.IsNonFiniteError(err) {
			s.logger.Warn("[Calculator] %v", err)
			return nil, errors.NonFiniteResult(err)
		}
		return nil, errors.Wrap(err, "calculation failed")
	}

	summary, err := analysis.Summarize(results)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize results")
	}

	calc := &models.Calculation{
		ID:             core.NewCalculationID(),
		CreatedAt:      core.NewTimestamp(start),
		Fingerprint:    params.Fingerprint(),
		Parameters:     params,
		CriticalSource: s.source.Name(),
		CriticalValues: s.source.CriticalValues(params.Alpha, params.Power),
		Results:        results,
		Summary:        summary,
	}

	if estimator, ok := s.source.(powerEstimator); ok {
		calc.AchievedPower = achievedPower(estimator, params, results)
	}

	s.logger.Info("[Calculator] %s fingerprint=%s source=%s doi=%d ito=%d andrews=%d",
		calc.ID, calc.Fingerprint.Short(), calc.CriticalSource,
		results[samplesize.MethodDoi].Adjusted,
		results[samplesize.MethodIto].Adjusted,
		results[samplesize.MethodAndrews].Adjusted)

	return calc, nil
}

// powerEstimator is implemented by critical-value sources that can invert the
// sample-size formula
type powerEstimator interface {
	AchievedPower(effectSize, alpha float64, perGroup int) float64
}

// achievedPower reads each initial size as the evaluable participants per arm,
// which is how the formula derives it
func achievedPower(estimator powerEstimator, params samplesize.ParameterSet, results samplesize.ResultSet) map[samplesize.Method]float64 {
	out := make(map[samplesize.Method]float64, len(results))
	for m, r := range results {
		out[m] = estimator.AchievedPower(samplesize.StandardizedEffect(m, params), params.Alpha, r.Initial)
	}
	return out
}

// CalculateScenarios runs every row independently; a bad row is reported in
// its outcome and does not stop the batch. Only context cancellation aborts.
func (s *CalculatorService) CalculateScenarios(ctx context.Context, scenarios []models.Scenario) ([]models.ScenarioOutcome, error) {
	outcomes := make([]models.ScenarioOutcome, 0, len(scenarios))

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome := models.ScenarioOutcome{Scenario: sc}
		calc, err := s.Calculate(ctx, sc.Raw.WithDefaults())
		if err != nil {
			if verr, ok := samplesize.AsValidationError(err); ok {
				outcome.Errors = verr.Fields
			}
			outcome.Error = err.Error()
		} else {
			outcome.Calculation = calc
		}
		outcomes = append(outcomes, outcome)
	}

	s.logger.Info("[Calculator] evaluated %d scenarios", len(outcomes))
	return outcomes, nil
}

// Sweep evaluates a batch like CalculateScenarios and fingerprints it. source
// names where the rows came from.
func (s *CalculatorService) Sweep(ctx context.Context, source string, scenarios []models.Scenario) (*models.SweepReport, error) {
	outcomes, err := s.CalculateScenarios(ctx, scenarios)
	if err != nil {
		return nil, err
	}

	entries := make([]run.Entry, 0, len(outcomes))
	for _, o := range outcomes {
		entries = append(entries, run.Entry{
			ScenarioID: o.Scenario.ID,
			Parameters: o.Scenario.Raw.WithDefaults().Fingerprint(),
			OK:         o.OK(),
		})
	}

	manifest := run.NewSweepManifest(source, s.source.Name(), entries)
	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sweep manifest")
	}

	s.logger.Info("[Calculator] sweep %s source=%s scenarios=%d failed=%d fingerprint=%s",
		manifest.SweepID, source, manifest.Scenarios, manifest.Failed, manifest.Fingerprint.Fingerprint.Short())

	return &models.SweepReport{Manifest: manifest, Outcomes: outcomes}, nil
}

// Fields returns the input metadata in form order
func (s *CalculatorService) Fields() []samplesize.Field {
	return samplesize.Fields
}

// Defaults returns the study-design defaults as text
func (s *CalculatorService) Defaults() samplesize.RawParameters {
	return samplesize.DefaultRawParameters()
}

// References returns the static caveats and bibliography
func (s *CalculatorService) References() references.Content {
	return references.Load()
}

// CriticalValueSource names the configured source
func (s *CalculatorService) CriticalValueSource() string {
	return s.source.Name()
}
