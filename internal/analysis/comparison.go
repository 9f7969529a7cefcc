package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"trialsize/domain/samplesize"
)

// ComparisonSummary describes how far apart the three methods land
type ComparisonSummary struct {
	MinAdjusted    float64           `json:"minAdjusted"`
	MaxAdjusted    float64           `json:"maxAdjusted"`
	MeanAdjusted   float64           `json:"meanAdjusted"`
	MedianAdjusted float64           `json:"medianAdjusted"`
	Spread         float64           `json:"spread"`      // max - min
	SpreadRatio    float64           `json:"spreadRatio"` // max / min
	Largest        samplesize.Method `json:"largest"`     // most demanding method
	Smallest       samplesize.Method `json:"smallest"`
}

// Summarize aggregates the adjusted totals of a result set
func Summarize(results samplesize.ResultSet) (ComparisonSummary, error) {
	data := stats.Float64Data(results.Adjusted())
	if data.Len() == 0 {
		return ComparisonSummary{}, fmt.Errorf("no results to summarize")
	}

	lowest, err := stats.Min(data)
	if err != nil {
		return ComparisonSummary{}, fmt.Errorf("min: %w", err)
	}
	highest, err := stats.Max(data)
	if err != nil {
		return ComparisonSummary{}, fmt.Errorf("max: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return ComparisonSummary{}, fmt.Errorf("mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return ComparisonSummary{}, fmt.Errorf("median: %w", err)
	}

	summary := ComparisonSummary{
		MinAdjusted:    lowest,
		MaxAdjusted:    highest,
		MeanAdjusted:   mean,
		MedianAdjusted: median,
		Spread:         highest - lowest,
	}
	if lowest > 0 {
		summary.SpreadRatio = highest / lowest
	}

	// Ties resolve to the earlier method in table order
	for _, r := range results.Ordered() {
		v := float64(r.Adjusted)
		if v == highest && summary.Largest == "" {
			summary.Largest = r.Method
		}
		if v == lowest && summary.Smallest == "" {
			summary.Smallest = r.Method
		}
	}

	return summary, nil
}
