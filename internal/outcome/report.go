package outcome

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
)

// SegmentReport is a descriptive-statistics summary of a segment's raw
// quality samples.
type SegmentReport struct {
	Segment string  `json:"segment"`
	Samples int     `json:"samples"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
}

// Report summarizes the segment's quality samples. Empty segments return a
// zeroed report rather than an error.
func (t *Tracker) Report(ctx context.Context, segment string) (SegmentReport, error) {
	samples, err := t.store.QualitySamples(ctx, segment)
	if err != nil {
		return SegmentReport{}, fmt.Errorf("quality samples for %s: %w", segment, err)
	}
	report := SegmentReport{Segment: segment, Samples: len(samples)}
	if len(samples) == 0 {
		return report, nil
	}

	data := stats.Float64Data(samples)
	if report.Mean, err = stats.Mean(data); err != nil {
		return SegmentReport{}, fmt.Errorf("mean: %w", err)
	}
	if report.Median, err = stats.Median(data); err != nil {
		return SegmentReport{}, fmt.Errorf("median: %w", err)
	}
	if len(samples) > 1 {
		if report.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return SegmentReport{}, fmt.Errorf("stddev: %w", err)
		}
	}
	return report, nil
}
