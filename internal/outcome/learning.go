package outcome

// SuccessThreshold is the quality score above which an outcome counts as a
// per-style success.
const SuccessThreshold = 0.7

// RunningAverage folds one new observation into a running mean:
// (oldAvg*n + q) / (n+1).
func RunningAverage(oldAvg float64, n int, q float64) float64 {
	return (oldAvg*float64(n) + q) / float64(n+1)
}

// SuccessRateUpdate folds one success/failure observation into a running
// success rate using the same incremental form.
func SuccessRateUpdate(oldRate float64, n int, success bool) float64 {
	s := 0.0
	if success {
		s = 1.0
	}
	return (oldRate*float64(n) + s) / float64(n+1)
}

// InsightConfidence maps a sample size to a confidence in [0,1]:
// min(n/10, 1).
func InsightConfidence(samples int) float64 {
	c := float64(samples) / 10.0
	if c > 1 {
		c = 1
	}
	return c
}
