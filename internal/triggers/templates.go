package triggers

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalcraft/outreach/internal/profile"
)

//go:embed templates.yaml
var defaultTemplates []byte

// DefaultIndustry is the fallback bucket used when no industry-specific
// templates exist for a type/intensity pair.
const DefaultIndustry = "default"

type templateFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Type      string   `yaml:"type"`
	Intensity string   `yaml:"intensity"`
	Industry  string   `yaml:"industry"`
	Items     []string `yaml:"items"`
}

type bucketKey struct {
	typ       profile.TriggerType
	intensity profile.Intensity
	industry  string
}

// Bank holds rendered-content templates bucketed by type, intensity and
// industry. Banks are immutable after load.
type Bank struct {
	buckets map[bucketKey][]string
}

// LoadBank parses a yaml template document.
func LoadBank(data []byte) (*Bank, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("no templates defined")
	}
	b := &Bank{buckets: make(map[bucketKey][]string)}
	for _, e := range f.Templates {
		key := bucketKey{
			typ:       profile.TriggerType(e.Type),
			intensity: profile.Intensity(e.Intensity),
			industry:  strings.ToLower(e.Industry),
		}
		if key.industry == "" {
			key.industry = DefaultIndustry
		}
		b.buckets[key] = append(b.buckets[key], e.Items...)
	}
	return b, nil
}

// DefaultBank loads the embedded template document.
func DefaultBank() (*Bank, error) {
	return LoadBank(defaultTemplates)
}

// BankFromFile loads templates from path, falling back to the embedded
// defaults when path is empty.
func BankFromFile(path string) (*Bank, error) {
	if path == "" {
		return DefaultBank()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return LoadBank(data)
}

// Pick selects one template at random from the type+intensity+industry
// bucket, falling back to the default-industry bucket. The second return
// is false when neither bucket has templates.
func (b *Bank) Pick(rng *rand.Rand, t profile.TriggerType, intensity profile.Intensity, industry string) (string, bool) {
	key := bucketKey{typ: t, intensity: intensity, industry: normalizeIndustry(industry)}
	items := b.buckets[key]
	if len(items) == 0 {
		key.industry = DefaultIndustry
		items = b.buckets[key]
	}
	if len(items) == 0 {
		return "", false
	}
	return items[rng.Intn(len(items))], true
}

// render substitutes the industry label and pain-point context into a
// template body.
func render(tpl, industry, painPoint string) string {
	out := strings.ReplaceAll(tpl, "{industry}", industry)
	out = strings.ReplaceAll(out, "{pain_point}", painPoint)
	return out
}

// bucketRoots maps industry label substrings onto template bucket names, so
// "wedding photographer" and "photography" land in the same bucket.
var bucketRoots = []struct{ root, bucket string }{
	{"photo", "photography"},
	{"design", "design"},
	{"fitness", "fitness"},
	{"consult", "consulting"},
}

func normalizeIndustry(industry string) string {
	industry = strings.ToLower(industry)
	for _, br := range bucketRoots {
		if strings.Contains(industry, br.root) {
			return br.bucket
		}
	}
	return industry
}
