package signals

// Keyword tables for categorical decisions. Each table is consulted by an
// ordered if/else-if chain in extract.go; changing the order of entries in a
// list does not change results, changing the chains does.

var soloKeywords = []string{
	"i am", "i'm a", "my work", "my passion", "one-woman", "one-man",
	"solo", "freelance", "about me",
}

var teamKeywords = []string{
	"our team", "our staff", "we are", "meet the team", "our people",
	"join us", "our crew",
}

var largeTeamKeywords = []string{
	"employees", "departments", "our offices", "nationwide", "headquarters",
	"career opportunities",
}

var matureKeywords = []string{
	"over 20 years", "over 25 years", "decades of", "family-owned since",
	"three generations", "second generation",
}

var establishedKeywords = []string{
	"years of experience", "established", "since 19", "since 20",
	"trusted by", "long-standing",
}

var premiumKeywords = []string{
	"luxury", "high-end", "exclusive", "bespoke", "premium", "award-winning",
	"white-glove", "concierge",
}

var professionalKeywords = []string{
	"professional", "certified", "licensed", "insured", "full-service",
	"consultation", "our clients",
}

var pricingKeywords = []string{
	"pricing", "packages", "rates", "investment", "starting at", "per hour",
	"quote",
}

var bookingKeywords = []string{
	"book now", "book online", "schedule", "reserve", "availability",
	"calendly", "appointment",
}

var growthKeywords = []string{
	"hiring", "now hiring", "expanding", "new location", "growing",
	"we're growing", "just opened", "coming soon",
}

var credibilityKeywords = []string{
	"award", "featured in", "as seen in", "certified", "accredited",
	"testimonial", "5-star", "five star", "press",
}

var revenueKeywords = []string{
	"clients served", "projects completed", "bookings", "sold out",
	"waitlist", "retainer", "enterprise",
}

var seasonalKeywords = []string{
	"seasonal", "holiday", "summer", "winter", "wedding season",
	"peak season", "off-season",
}

var advancedTechKeywords = []string{
	"client portal", "online booking", "automation", "crm", "live chat",
	"mobile app", "api",
}

var moderateTechKeywords = []string{
	"newsletter", "blog", "instagram", "facebook", "contact form",
	"gift cards",
}

var painPointKeywords = map[string]string{
	"no time":         "time pressure",
	"overwhelmed":     "time pressure",
	"behind on":       "time pressure",
	"hard to find":    "client acquisition",
	"slow season":     "inconsistent bookings",
	"last minute":     "inconsistent bookings",
	"word of mouth":   "client acquisition",
	"inquiries":       "lead follow-up",
	"get back to you": "lead follow-up",
	"fully booked":    "capacity limits",
}

// industryVocabulary maps each recognized industry to its keyword list.
// An industry is included in IndustryFocus when at least two distinct
// keywords match. Iteration follows industryOrder for determinism.
var industryOrder = []string{
	"photography", "design", "fitness", "consulting", "food", "beauty",
	"real estate",
}

var industryVocabulary = map[string][]string{
	"photography": {"wedding", "portrait", "photographer", "photography", "photoshoot", "gallery", "headshot"},
	"design":      {"branding", "logo", "web design", "graphic", "illustration", "ux"},
	"fitness":     {"gym", "training", "workout", "yoga", "pilates", "coaching session"},
	"consulting":  {"consulting", "strategy", "advisory", "audit", "roadmap"},
	"food":        {"catering", "restaurant", "menu", "bakery", "chef"},
	"beauty":      {"salon", "spa", "makeup", "skincare", "lashes", "stylist"},
	"real estate": {"listings", "realtor", "properties", "open house", "mortgage"},
}
