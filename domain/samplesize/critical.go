package samplesize

// Fixed critical values for a two-sided alpha of 0.05 and 80% power.
// These are rounded table values, not derived from ParameterSet.Alpha or
// ParameterSet.Power; see DerivedCriticalValues in internal/analysis/power for that.
const (
	ZAlphaTwoSided05 = 1.96
	ZPower80         = 0.84
)

// InterimInflation approximates the O'Brien-Fleming penalty of one planned
// interim look as a flat 15% increase; it is not a computed boundary.
const InterimInflation = 1.15

// CriticalValues are the normal quantiles entering the initial-size formulas
type CriticalValues struct {
	ZAlpha float64 `json:"zAlpha"` // z for alpha/2, two-sided
	ZPower float64 `json:"zPower"` // z for power
}

// Multiplier returns 2 * (zAlpha + zPower)^2
func (cv CriticalValues) Multiplier() float64 {
	sum := cv.ZAlpha + cv.ZPower
	return 2 * (sum * sum)
}

// CriticalValueSource decides which critical values a calculation uses
type CriticalValueSource interface {
	Name() string
	CriticalValues(alpha, power float64) CriticalValues
}

// FixedCriticalValues always returns 1.96 and 0.84 regardless of alpha and power
type FixedCriticalValues struct{}

func (FixedCriticalValues) Name() string { return "fixed" }

func (FixedCriticalValues) CriticalValues(alpha, power float64) CriticalValues {
	return CriticalValues{ZAlpha: ZAlphaTwoSided05, ZPower: ZPower80}
}
