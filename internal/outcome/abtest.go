package outcome

import "math"

// Guardrails for the significance heuristic.
const (
	abMinSampleSize   = 50
	abMinRateDiff     = 0.02
	abConfidenceCap   = 95.0
	abConfidenceFloor = 90.0
)

// ABMethod names the evaluation procedure. This is a deliberately simplified
// heuristic, not a hypothesis test; the name is surfaced so consumers never
// mistake it for one.
const ABMethod = "heuristic-v1"

// Group is one variant arm of an A/B test.
type Group struct {
	Name      string `json:"name"`
	Samples   int    `json:"samples"`
	Responses int    `json:"responses"`
}

// Rate returns the group's response rate, zero when empty.
func (g Group) Rate() float64 {
	if g.Samples == 0 {
		return 0
	}
	return float64(g.Responses) / float64(g.Samples)
}

// Evaluation is the outcome of comparing two groups.
type Evaluation struct {
	Significant bool    `json:"significant"`
	Confidence  float64 `json:"confidence"`
	Winner      string  `json:"winner,omitempty"`
	Method      string  `json:"method"`
}

// EvaluateAB compares two variant groups with the fixed heuristic:
// not significant when either group has fewer than 50 samples or the
// absolute rate difference is under 0.02; otherwise confidence =
// min(95, totalSamples/100 * |rateDiff| * 1000), significant only at
// confidence >= 90, winner is the higher-rate group ("tie" on equality).
func EvaluateAB(a, b Group) Evaluation {
	eval := Evaluation{Method: ABMethod}

	if a.Samples < abMinSampleSize || b.Samples < abMinSampleSize {
		return eval
	}
	diff := math.Abs(a.Rate() - b.Rate())
	if diff < abMinRateDiff {
		return eval
	}

	total := a.Samples + b.Samples
	eval.Confidence = math.Min(abConfidenceCap, float64(total)/100.0*diff*1000.0)
	if eval.Confidence < abConfidenceFloor {
		return eval
	}

	eval.Significant = true
	switch {
	case a.Rate() > b.Rate():
		eval.Winner = a.Name
	case b.Rate() > a.Rate():
		eval.Winner = b.Name
	default:
		eval.Winner = "tie"
	}
	return eval
}
