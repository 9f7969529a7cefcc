package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"trialsize/domain/samplesize"
)

// StatisticalDistributions provides the normal-distribution helpers the
// sample-size formulas need
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// NormalCDF computes cumulative distribution function for standard normal
func (sd *StatisticalDistributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func (sd *StatisticalDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// DerivedCriticalValues computes z-values from the alpha and power inputs
// instead of using the fixed 1.96/0.84 pair
type DerivedCriticalValues struct {
	distributions *StatisticalDistributions
}

// NewDerivedCriticalValues creates a derived critical-value source
func NewDerivedCriticalValues() *DerivedCriticalValues {
	return &DerivedCriticalValues{distributions: NewDistributions()}
}

func (d *DerivedCriticalValues) Name() string { return "derived" }

// CriticalValues returns z(1-alpha/2) and z(power). Out-of-range inputs give
// NaN, which the engine then reports as a non-finite result.
func (d *DerivedCriticalValues) CriticalValues(alpha, power float64) samplesize.CriticalValues {
	if alpha <= 0 || alpha >= 1 || power <= 0 || power >= 1 {
		return samplesize.CriticalValues{ZAlpha: math.NaN(), ZPower: math.NaN()}
	}
	return samplesize.CriticalValues{
		ZAlpha: d.distributions.NormalQuantile(1.0 - alpha/2.0),
		ZPower: d.distributions.NormalQuantile(power),
	}
}

// AchievedPower approximates the power a two-group design reaches with
// perGroup participants per arm for a standardized effect, using the normal
// approximation Φ(δ·sqrt(n/2) − z(1−α/2))
func (d *DerivedCriticalValues) AchievedPower(effectSize, alpha float64, perGroup int) float64 {
	if perGroup <= 0 || effectSize <= 0 || alpha <= 0 || alpha >= 1 {
		return 0
	}
	zCritical := d.distributions.NormalQuantile(1.0 - alpha/2.0)
	nonCentrality := effectSize * math.Sqrt(float64(perGroup)/2.0)
	return d.distributions.NormalCDF(nonCentrality - zCritical)
}

// SourceByName resolves a configured critical-value mode
func SourceByName(name string) (samplesize.CriticalValueSource, bool) {
	switch name {
	case "", "fixed":
		return samplesize.FixedCriticalValues{}, true
	case "derived":
		return NewDerivedCriticalValues(), true
	default:
		return nil, false
	}
}
