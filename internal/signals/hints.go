package signals

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// semantic classes counted as structural hints
const (
	classTeamMember  = "team-member"
	classTestimonial = "testimonial"
	classClientLogo  = "client-logo"
)

// HintsFromHTML counts elements matching the semantic classes used as
// structural hints. Unparseable or empty markup degrades to zero hints
// rather than an error: the extractor must always produce a signal set.
func HintsFromHTML(markup string) Hints {
	if strings.TrimSpace(markup) == "" {
		return Hints{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Hints{}
	}
	return Hints{
		TeamMembers:  countClass(doc, classTeamMember),
		Testimonials: countClass(doc, classTestimonial),
		ClientLogos:  countClass(doc, classClientLogo),
	}
}

func countClass(doc *goquery.Document, class string) int {
	return doc.Find(`[class*="` + class + `"]`).Length()
}
