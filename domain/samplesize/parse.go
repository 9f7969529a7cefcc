package samplesize

import (
	"math"
	"strconv"
	"strings"
)

// ParseParameters converts textual fields into a ParameterSet and validates it.
// Every unparsable or out-of-range field is reported in one *ValidationError.
// Missing fields are an error; call RawParameters.WithDefaults first to fill them.
func ParseParameters(raw RawParameters) (ParameterSet, error) {
	verr := &ValidationError{}
	var p ParameterSet

	number := func(key string) float64 {
		text, ok := raw[key]
		if !ok || strings.TrimSpace(text) == "" {
			verr.add(FieldError{Field: key, Value: text, Reason: "is required"})
			return math.NaN()
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			verr.add(FieldError{Field: key, Value: text, Reason: "not a number"})
			return math.NaN()
		}
		return v
	}

	p.MMSEChange = number(FieldMMSEChange)
	p.StandardDeviation = number(FieldStandardDeviation)
	p.StandardizedMeanDifference = number(FieldStandardizedMeanDifference)
	p.Alpha = number(FieldAlpha)
	p.Power = number(FieldPower)
	p.MCID = number(FieldMCID)
	p.DropoutRatePercent = number(FieldDropoutRatePercent)
	p.DesignEffect = number(FieldDesignEffect)

	interimText := strings.TrimSpace(raw[FieldInterimAnalysis])
	interim, err := strconv.ParseBool(interimText)
	if err != nil {
		verr.add(FieldError{Field: FieldInterimAnalysis, Value: raw[FieldInterimAnalysis], Reason: "must be true or false"})
	}
	p.InterimAnalysis = interim

	// Rule violations for fields that already failed to parse are dropped by add
	if err := Validate(p); err != nil {
		if rules, ok := AsValidationError(err); ok {
			for _, fe := range rules.Fields {
				verr.add(fe)
			}
		} else {
			return p, err
		}
	}

	if len(verr.Fields) > 0 {
		return p, verr
	}
	return p, nil
}

// ParseLenient coerces instead of rejecting: anything that is
// not a number becomes NaN and any interim value other than "true" means false.
// Pair it with Compute to see the unguarded results.
func ParseLenient(raw RawParameters) ParameterSet {
	f := func(key string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw[key]), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	return ParameterSet{
		MMSEChange:                 f(FieldMMSEChange),
		StandardDeviation:          f(FieldStandardDeviation),
		StandardizedMeanDifference: f(FieldStandardizedMeanDifference),
		Alpha:                      f(FieldAlpha),
		Power:                      f(FieldPower),
		MCID:                       f(FieldMCID),
		DropoutRatePercent:         f(FieldDropoutRatePercent),
		InterimAnalysis:            raw[FieldInterimAnalysis] == "true",
		DesignEffect:               f(FieldDesignEffect),
	}
}

// Format renders a ParameterSet back into textual fields
func (p ParameterSet) Format() RawParameters {
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return RawParameters{
		FieldMMSEChange:                 g(p.MMSEChange),
		FieldStandardDeviation:          g(p.StandardDeviation),
		FieldStandardizedMeanDifference: g(p.StandardizedMeanDifference),
		FieldAlpha:                      g(p.Alpha),
		FieldPower:                      g(p.Power),
		FieldMCID:                       g(p.MCID),
		FieldDropoutRatePercent:         g(p.DropoutRatePercent),
		FieldInterimAnalysis:            strconv.FormatBool(p.InterimAnalysis),
		FieldDesignEffect:               g(p.DesignEffect),
	}
}
