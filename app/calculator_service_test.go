package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trialsize/domain/samplesize"
	"trialsize/internal"
	"trialsize/internal/analysis/power"
	"trialsize/internal/errors"
	"trialsize/models"
)

func newTestService(t *testing.T, source samplesize.CriticalValueSource) (*CalculatorService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewCalculatorService(source, internal.NewLoggerTo(&buf, internal.LogLevelDebug)), &buf
}

func TestCalculatorService_Defaults(t *testing.T) {
	svc, logs := newTestService(t, nil)

	calc, err := svc.Calculate(context.Background(), svc.Defaults())
	require.NoError(t, err)

	assert.False(t, calc.ID.String() == "")
	assert.Equal(t, "fixed", calc.CriticalSource)
	assert.Equal(t, samplesize.CriticalValues{ZAlpha: 1.96, ZPower: 0.84}, calc.CriticalValues)
	assert.Equal(t, samplesize.DefaultParameters().Fingerprint(), calc.Fingerprint)

	rows := calc.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []int{113, 98, 9}, []int{rows[0].Initial, rows[1].Initial, rows[2].Initial})
	assert.Equal(t, []int{197, 171, 17}, []int{rows[0].Adjusted, rows[1].Adjusted, rows[2].Adjusted})
	assert.Equal(t, []int{99, 86, 9}, []int{rows[0].PerGroupAdjusted, rows[1].PerGroupAdjusted, rows[2].PerGroupAdjusted})

	assert.Equal(t, samplesize.MethodDoi, calc.Summary.Largest)
	assert.Contains(t, logs.String(), "doi=197 ito=171 andrews=17")
}

func TestCalculatorService_FreshResultEachCall(t *testing.T) {
	svc, _ := newTestService(t, nil)

	first, err := svc.Calculate(context.Background(), svc.Defaults())
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), svc.Defaults())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestCalculatorService_ValidationError(t *testing.T) {
	svc, _ := newTestService(t, nil)

	raw := svc.Defaults()
	raw[samplesize.FieldStandardizedMeanDifference] = "0"
	raw[samplesize.FieldDropoutRatePercent] = "abc"

	_, err := svc.Calculate(context.Background(), raw)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	verr, ok := samplesize.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		samplesize.FieldStandardizedMeanDifference: "must be greater than 0",
		samplesize.FieldDropoutRatePercent:         "not a number",
	}, verr.ByField())
}

func TestCalculatorService_NonFiniteResult(t *testing.T) {
	svc, _ := newTestService(t, nil)

	raw := svc.Defaults()
	raw[samplesize.FieldMCID] = "1e-200"

	_, err := svc.Calculate(context.Background(), raw)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNonFiniteResult, errors.GetCode(err))
}

func TestCalculatorService_DerivedCriticalValues(t *testing.T) {
	svc, _ := newTestService(t, power.NewDerivedCriticalValues())

	calc, err := svc.Calculate(context.Background(), svc.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "derived", calc.CriticalSource)
	assert.InDelta(t, 1.959964, calc.CriticalValues.ZAlpha, 1e-6)

	// 2*(1.959964+0.841621)^2/0.16 = 98.11 -> 99
	assert.Equal(t, 99, calc.Results[samplesize.MethodIto].Initial)

	// rounding the initial size up never loses power
	require.Len(t, calc.AchievedPower, 3)
	for m, p := range calc.AchievedPower {
		assert.GreaterOrEqual(t, p, 0.8-1e-9, m)
		assert.Less(t, p, 0.9, m)
	}
	assert.InDelta(t, power.NewDerivedCriticalValues().AchievedPower(0.4, 0.05, 99),
		calc.AchievedPower[samplesize.MethodIto], 1e-12)
}

func TestCalculatorService_FixedSourceReportsNoPower(t *testing.T) {
	svc, _ := newTestService(t, nil)

	calc, err := svc.Calculate(context.Background(), svc.Defaults())
	require.NoError(t, err)
	assert.Nil(t, calc.AchievedPower)
}

func TestCalculatorService_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, svc.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculatorService_ScenariosKeepGoingPastBadRows(t *testing.T) {
	svc, _ := newTestService(t, nil)

	scenarios := []models.Scenario{
		{ID: "baseline", Row: 2, Raw: samplesize.RawParameters{}},
		{ID: "broken", Row: 3, Raw: samplesize.RawParameters{samplesize.FieldDesignEffect: "-1"}},
		{ID: "no-dropout", Row: 4, Raw: samplesize.RawParameters{samplesize.FieldDropoutRatePercent: "0"}},
	}

	outcomes, err := svc.CalculateScenarios(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].OK())
	assert.Equal(t, 197, outcomes[0].Calculation.Results[samplesize.MethodDoi].Adjusted)

	assert.False(t, outcomes[1].OK())
	require.Len(t, outcomes[1].Errors, 1)
	assert.Equal(t, samplesize.FieldDesignEffect, outcomes[1].Errors[0].Field)

	// 113 -> 113 -> ceil(113*1.15)=130 -> ceil(130*1.2)=156
	assert.True(t, outcomes[2].OK())
	assert.Equal(t, 156, outcomes[2].Calculation.Results[samplesize.MethodDoi].Adjusted)
}

func TestCalculatorService_StaticContent(t *testing.T) {
	svc, _ := newTestService(t, nil)

	assert.Len(t, svc.Fields(), 9)
	assert.Len(t, svc.References().Caveats, 7)
	assert.Equal(t, "fixed", svc.CriticalValueSource())
}

func TestCalculatorService_SweepFingerprintsInputs(t *testing.T) {
	svc, _ := newTestService(t, nil)

	scenarios := []models.Scenario{
		{ID: "baseline", Row: 2, Raw: samplesize.RawParameters{}},
		{ID: "broken", Row: 3, Raw: samplesize.RawParameters{samplesize.FieldAlpha: "1"}},
	}

	first, err := svc.Sweep(context.Background(), "scenarios.csv", scenarios)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Manifest.Scenarios)
	assert.Equal(t, 1, first.Manifest.Failed)
	assert.Equal(t, "scenarios.csv", first.Manifest.Source)
	assert.Equal(t, "fixed", first.Manifest.Fingerprint.CriticalSource)
	require.Len(t, first.Outcomes, 2)

	// an empty row and an explicit default row describe the same study
	explicit := []models.Scenario{
		{ID: "baseline", Row: 2, Raw: samplesize.DefaultRawParameters()},
		scenarios[1],
	}
	second, err := svc.Sweep(context.Background(), "elsewhere.xlsx", explicit)
	require.NoError(t, err)
	assert.Equal(t, first.Manifest.Fingerprint.Fingerprint, second.Manifest.Fingerprint.Fingerprint)
	assert.NotEqual(t, first.Manifest.SweepID, second.Manifest.SweepID)

	derived, _ := newTestService(t, power.NewDerivedCriticalValues())
	third, err := derived.Sweep(context.Background(), "scenarios.csv", scenarios)
	require.NoError(t, err)
	assert.NotEqual(t, first.Manifest.Fingerprint.Fingerprint, third.Manifest.Fingerprint.Fingerprint)
}
