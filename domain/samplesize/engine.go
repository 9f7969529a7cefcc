package samplesize

import (
	"math"

	"trialsize/domain/core"
)

// InitialSize evaluates the unadjusted total for one method.
// Zero or missing denominators yield Inf or NaN; no guard is applied here.
func InitialSize(m Method, p ParameterSet, cv CriticalValues) float64 {
	k := cv.Multiplier()
	switch m {
	case MethodDoi:
		return math.Ceil(k * (p.StandardDeviation * p.StandardDeviation) / (p.MMSEChange * p.MMSEChange))
	case MethodIto:
		return math.Ceil(k / (p.StandardizedMeanDifference * p.StandardizedMeanDifference))
	case MethodAndrews:
		return math.Ceil(k * (p.StandardDeviation * p.StandardDeviation) / (p.MCID * p.MCID))
	default:
		return math.NaN()
	}
}

// StandardizedEffect is the effect each method plans for, in SD units
func StandardizedEffect(m Method, p ParameterSet) float64 {
	switch m {
	case MethodDoi:
		return p.MMSEChange / p.StandardDeviation
	case MethodIto:
		return p.StandardizedMeanDifference
	case MethodAndrews:
		return p.MCID / p.StandardDeviation
	default:
		return math.NaN()
	}
}

// Adjust runs the shared pipeline: dropout, then interim, then design effect.
// Each step rounds up before the next one starts.
func Adjust(n float64, p ParameterSet) float64 {
	adjusted := math.Ceil(n / (1 - p.DropoutRatePercent/100))
	if p.InterimAnalysis {
		adjusted = math.Ceil(adjusted * InterimInflation)
	}
	return math.Ceil(adjusted * p.DesignEffect)
}

// PerGroup splits an adjusted total across two arms
func PerGroup(adjusted float64) float64 {
	return math.Ceil(adjusted / 2)
}

// Compute runs every method without validation. It never fails: bad inputs
// show up as NaN or Inf entries.
func Compute(p ParameterSet, cv CriticalValues) RawResultSet {
	out := make(RawResultSet, len(Methods))
	for _, m := range Methods {
		initial := InitialSize(m, p, cv)
		adjusted := Adjust(initial, p)
		out[m] = RawResult{
			Method:   m,
			Initial:  initial,
			Adjusted: adjusted,
			PerGroup: PerGroup(adjusted),
		}
	}
	return out
}

// Calculate validates p and returns integer results. Validation failures come
// back as *ValidationError; results that overflow come back as a non-finite error.
func Calculate(p ParameterSet, source CriticalValueSource) (ResultSet, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if source == nil {
		source = FixedCriticalValues{}
	}
	return FromRaw(Compute(p, source.CriticalValues(p.Alpha, p.Power)))
}

// FromRaw converts a raw result set into integers, rejecting anything that is
// not a finite positive count
func FromRaw(raw RawResultSet) (ResultSet, error) {
	out := make(ResultSet, len(raw))
	for _, m := range Methods {
		r, ok := raw[m]
		if !ok {
			continue
		}
		initial, err := toCount(m, "initial", r.Initial)
		if err != nil {
			return nil, err
		}
		adjusted, err := toCount(m, "adjusted", r.Adjusted)
		if err != nil {
			return nil, err
		}
		perGroup, err := toCount(m, "per-group", r.PerGroup)
		if err != nil {
			return nil, err
		}
		out[m] = SampleSizeResult{
			Method:           m,
			Initial:          initial,
			Adjusted:         adjusted,
			PerGroupAdjusted: perGroup,
		}
	}
	return out, nil
}

// maxCount keeps conversions exact: every integer up to 2^53 is a float64
const maxCount = 1 << 53

func toCount(m Method, stage string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v > maxCount || v < 0 {
		return 0, core.NewNonFiniteError(string(m), stage, v)
	}
	return int(v), nil
}
