package outcome

import "testing"

func TestSegmentKey(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		focus    []string
		want     string
	}{
		{"focus plus industry", "Photography", []string{"wedding"}, "wedding_photography"},
		{"industry only", "Photography", nil, "photography"},
		{"empty everything", "", nil, "general"},
		{"empty focus string", "fitness", []string{""}, "fitness"},
		{"focus equal to industry collapses", "Consulting", []string{"consulting"}, "consulting"},
		{"punctuation becomes underscores", "Real Estate", []string{"open house"}, "open_house_real_estate"},
		{"first focus wins", "photography", []string{"portrait", "wedding"}, "portrait_photography"},
		{"empty industry with focus", "", []string{"wedding"}, "wedding_general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentKey(tt.industry, tt.focus); got != tt.want {
				t.Errorf("SegmentKey(%q, %v) = %q, want %q", tt.industry, tt.focus, got, tt.want)
			}
		})
	}
}
