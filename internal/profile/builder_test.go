package profile

import (
	"reflect"
	"testing"

	"github.com/signalcraft/outreach/internal/signals"
)

func TestBuild_DefaultContext(t *testing.T) {
	// Empty context falls back to creative services / scaling / follower.
	sig := signals.Defaults()
	p := Build(sig, Context{}, nil)

	if p.Industry != DefaultIndustry {
		t.Errorf("Industry = %q, want %q", p.Industry, DefaultIndustry)
	}
	if p.BusinessStage != DefaultBusinessStage {
		t.Errorf("BusinessStage = %q, want %q", p.BusinessStage, DefaultBusinessStage)
	}
	if p.MarketPosition != DefaultMarketPosition {
		t.Errorf("MarketPosition = %q, want %q", p.MarketPosition, DefaultMarketPosition)
	}
	// Base set survives in canonical order at the front.
	for _, base := range []TriggerType{SocialProof, Authority, Consensus} {
		if !p.Prefers(base) {
			t.Errorf("base type %q missing from preferred set", base)
		}
	}
}

func TestBuild_PreferredAvoidedDisjoint(t *testing.T) {
	tests := []struct {
		name string
		sig  signals.SignalSet
		ctx  Context
	}{
		{"premium photographer", signals.SignalSet{Tier: signals.TierPremium, Maturity: signals.MaturityEstablished}, Context{Industry: "photography"}},
		{"mature consultant", signals.SignalSet{Tier: signals.TierProfessional, Maturity: signals.MaturityMature}, Context{Industry: "consulting"}},
		{"market leader", signals.Defaults(), Context{MarketPosition: "leader"}},
		{"hobbyist startup", signals.Defaults(), Context{BusinessStage: "startup"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.sig, tt.ctx, nil)
			for _, a := range p.Avoided {
				if p.Prefers(a) {
					t.Errorf("type %q is in both preferred and avoided", a)
				}
			}
			if len(p.Preferred) > MaxPreferred {
				t.Errorf("preferred set has %d types, cap is %d", len(p.Preferred), MaxPreferred)
			}
		})
	}
}

func TestBuild_ScarcityAvoidance(t *testing.T) {
	tests := []struct {
		name      string
		sig       signals.SignalSet
		ctx       Context
		wantAvoid bool
	}{
		{"premium tier avoids scarcity", signals.SignalSet{Tier: signals.TierPremium}, Context{}, true},
		{"mature business avoids scarcity", signals.SignalSet{Tier: signals.TierProfessional, Maturity: signals.MaturityMature}, Context{}, true},
		{"market leader avoids scarcity", signals.Defaults(), Context{MarketPosition: "Leader"}, true},
		{"ordinary profile allows scarcity", signals.Defaults(), Context{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.sig, tt.ctx, nil)
			if got := p.Avoids(Scarcity); got != tt.wantAvoid {
				t.Errorf("Avoids(Scarcity) = %v, want %v", got, tt.wantAvoid)
			}
		})
	}
}

func TestBuild_MaxIntensity(t *testing.T) {
	tests := []struct {
		name string
		sig  signals.SignalSet
		ctx  Context
		want Intensity
	}{
		{"premium tightens to subtle", signals.SignalSet{Tier: signals.TierPremium}, Context{BusinessStage: "startup"}, Subtle},
		{"leader tightens to subtle", signals.SignalSet{Tier: signals.TierHobbyist}, Context{MarketPosition: "leader"}, Subtle},
		{"startup loosens to strong", signals.SignalSet{Tier: signals.TierProfessional}, Context{BusinessStage: "startup"}, Strong},
		{"hobbyist loosens to strong", signals.SignalSet{Tier: signals.TierHobbyist}, Context{}, Strong},
		{"professional scaling stays moderate", signals.SignalSet{Tier: signals.TierProfessional}, Context{}, Moderate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.sig, tt.ctx, nil)
			if p.MaxIntensity != tt.want {
				t.Errorf("MaxIntensity = %q, want %q", p.MaxIntensity, tt.want)
			}
		})
	}
}

func TestBuild_IndustryAdditions(t *testing.T) {
	sig := signals.SignalSet{Tier: signals.TierProfessional}
	p := Build(sig, Context{Industry: "wedding photography"}, nil)

	// "photo" keyword adds liking and scarcity for creative industries.
	if !p.Prefers(Liking) {
		t.Errorf("preferred = %v, want liking for photo industry", p.Preferred)
	}
	if !p.Prefers(Scarcity) {
		t.Errorf("preferred = %v, want scarcity for photo industry", p.Preferred)
	}
}

func TestBuild_LearnedPreferences(t *testing.T) {
	sig := signals.SignalSet{Tier: signals.TierProfessional}
	ctx := Context{Industry: "real estate", BusinessStage: "mature"}

	tests := []struct {
		name     string
		learned  []LearnedPreference
		wantType TriggerType
		want     bool
	}{
		{"confident personalized style adds liking", []LearnedPreference{{Style: "personalized", Confidence: 0.8}}, Liking, true},
		{"low confidence is ignored", []LearnedPreference{{Style: "personalized", Confidence: 0.3}}, Liking, false},
		{"unmapped style is ignored", []LearnedPreference{{Style: "curiosity", Confidence: 0.9}}, Liking, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(sig, ctx, tt.learned)
			if got := p.Prefers(tt.wantType); got != tt.want {
				t.Errorf("Prefers(%q) = %v, want %v (preferred %v)", tt.wantType, got, tt.want, p.Preferred)
			}
		})
	}
}

func TestBuild_PainPointsMerged(t *testing.T) {
	sig := signals.SignalSet{
		Tier:       signals.TierProfessional,
		PainPoints: []string{"time pressure", "client acquisition"},
	}
	ctx := Context{PainPoints: []string{"client acquisition", "pricing pressure"}}

	p := Build(sig, ctx, nil)
	want := []string{"client acquisition", "pricing pressure", "time pressure"}
	if !reflect.DeepEqual(p.PainPoints, want) {
		t.Errorf("PainPoints = %v, want %v", p.PainPoints, want)
	}
	if p.TopPainPoint() != "client acquisition" {
		t.Errorf("TopPainPoint = %q, want %q", p.TopPainPoint(), "client acquisition")
	}
}

func TestTopPainPoint_Fallback(t *testing.T) {
	p := Profile{}
	if got := p.TopPainPoint(); got != "finding new clients" {
		t.Errorf("TopPainPoint = %q, want generic fallback", got)
	}
}

func TestRank_CanonicalOrder(t *testing.T) {
	for i, typ := range CanonicalOrder {
		if Rank(typ) != i {
			t.Errorf("Rank(%q) = %d, want %d", typ, Rank(typ), i)
		}
	}
	if Rank(TriggerType("bogus")) != len(CanonicalOrder) {
		t.Errorf("unknown type should rank last")
	}
}
