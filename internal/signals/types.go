package signals

// TeamSize classifies how many people appear to run the business.
type TeamSize string

const (
	TeamSolo   TeamSize = "solo"
	TeamSmall  TeamSize = "small"
	TeamMedium TeamSize = "medium"
	TeamLarge  TeamSize = "large"
)

// Maturity classifies how long the business appears to have operated.
type Maturity string

const (
	MaturityStartup     Maturity = "startup"
	MaturityEstablished Maturity = "established"
	MaturityMature      Maturity = "mature"
)

// Tier classifies how the business positions itself in its market.
type Tier string

const (
	TierHobbyist     Tier = "hobbyist"
	TierProfessional Tier = "professional"
	TierPremium      Tier = "premium"
)

// TechLevel classifies the sophistication of the business's online presence.
type TechLevel string

const (
	TechBasic    TechLevel = "basic"
	TechModerate TechLevel = "moderate"
	TechAdvanced TechLevel = "advanced"
)

// Hints carries counts of semantically meaningful page elements, supplied by
// the page content provider or derived from markup via HintsFromHTML.
type Hints struct {
	TeamMembers  int
	Testimonials int
	ClientLogos  int
}

// SignalSet is the fixed vocabulary of business signals extracted from a
// target's page content. It is created once per extraction and never mutated.
type SignalSet struct {
	TeamSize           TeamSize
	Maturity           Maturity
	Tier               Tier
	TechSophistication TechLevel

	HasPricing bool
	HasBooking bool
	Seasonal   bool

	GrowthSignals      []string
	CredibilityMarkers []string
	IndustryFocus      []string
	RevenueIndicators  []string
	PainPoints         []string
}

// Defaults returns the conservative signal set used when page content is
// missing or empty. Downstream stages always receive a valid set.
func Defaults() SignalSet {
	return SignalSet{
		TeamSize:           TeamSmall,
		Maturity:           MaturityStartup,
		Tier:               TierHobbyist,
		TechSophistication: TechBasic,
	}
}
