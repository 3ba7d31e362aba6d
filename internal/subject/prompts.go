package subject

import "fmt"

const systemPrompt = `You write one email subject line at a time for outreach to small business owners.
Reply with the subject line only: no quotes, no preamble, no alternatives.
Keep it under 60 characters.`

// styleInstructions is the per-style instruction template, populated with
// company name, industry, and the top pain point.
var styleInstructions = map[Style]string{
	StyleCuriosity:    "Write a curiosity-driven subject line for %s, a %s business. Hint at an insight about %s without revealing it.",
	StyleBenefit:      "Write a benefit-led subject line for %s, a %s business. Lead with the concrete outcome of solving %s.",
	StyleQuestion:     "Write a subject line for %s, a %s business, phrased as a short question about %s.",
	StylePersonalized: "Write a personalized subject line addressed to %s, a %s business, referencing their situation with %s. Use the company name.",
	StyleSocialProof:  "Write a social-proof subject line for %s, a %s business, implying that similar businesses have already solved %s.",
}

func instructionFor(style Style, req Request) string {
	return fmt.Sprintf(styleInstructions[style], req.Company, req.Industry, req.TopPainPoint)
}
