package subject

// Style is one of the five fixed subject-line styles. StyleOrder is the
// enumeration order used for generation and tie-breaking.
type Style string

const (
	StyleCuriosity    Style = "curiosity"
	StyleBenefit      Style = "benefit"
	StyleQuestion     Style = "question"
	StylePersonalized Style = "personalized"
	StyleSocialProof  Style = "social-proof"
)

var StyleOrder = []Style{
	StyleCuriosity, StyleBenefit, StyleQuestion, StylePersonalized, StyleSocialProof,
}

// Analysis is the structural breakdown of one candidate subject line.
type Analysis struct {
	CharCount          int      `json:"char_count"`
	WordCount          int      `json:"word_count"`
	SpamScore          float64  `json:"spam_score"`
	SpamHits           []string `json:"spam_hits,omitempty"`
	MobileOptimized    bool     `json:"mobile_optimized"`
	HasPersonalization bool     `json:"has_personalization"`
	Triggers           []string `json:"triggers,omitempty"`
	Performance        string   `json:"performance"` // low | medium | high
}

// Variant is one candidate subject line.
type Variant struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Style          Style    `json:"style"`
	Analysis       Analysis `json:"analysis"`
	PredictedScore float64  `json:"predicted_score"`
}

// Request carries the inputs for one optimization run.
type Request struct {
	Company      string
	Industry     string
	TopPainPoint string
}
