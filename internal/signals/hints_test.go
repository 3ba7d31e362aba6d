package signals

import "testing"

func TestHintsFromHTML(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   Hints
	}{
		{
			"counts team members",
			`<div class="team-member">A</div><div class="team-member">B</div>`,
			Hints{TeamMembers: 2},
		},
		{
			"matches compound class names",
			`<li class="team-member-card featured">A</li>`,
			Hints{TeamMembers: 1},
		},
		{
			"counts all three hint classes",
			`<div class="team-member"></div>
			 <blockquote class="testimonial"></blockquote>
			 <blockquote class="testimonial"></blockquote>
			 <img class="client-logo">
			 <img class="client-logo">
			 <img class="client-logo">`,
			Hints{TeamMembers: 1, Testimonials: 2, ClientLogos: 3},
		},
		{"empty markup", "", Hints{}},
		{"whitespace markup", "  \n  ", Hints{}},
		{"no matching classes", `<div class="hero"><p>hello</p></div>`, Hints{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HintsFromHTML(tt.markup)
			if got != tt.want {
				t.Errorf("HintsFromHTML = %+v, want %+v", got, tt.want)
			}
		})
	}
}
