package extract

import "testing"

func TestPatternTableSpecificityOrder(t *testing.T) {
	table := NewPatternTable(DefaultPatterns())

	tests := []struct {
		heading string
		want    string
	}{
		{heading: "Best Supporting Actress", want: "Best Supporting Actress"},
		{heading: "Best Performance by an Actress in a Supporting Role", want: "Best Supporting Actress"},
		{heading: "Best Actress", want: "Best Actress"},
		{heading: "Best Actor in a Leading Role", want: "Best Actor"},
		{heading: "Best Film Editing", want: "Best Film Editing"},
		{heading: "Best Editing", want: "Best Film Editing"},
		{heading: "Best Sound Editing", want: "Best Sound"},
		{heading: "Best Picture", want: "Best Picture"},
		{heading: "Best Animated Feature Film", want: "Best Animated Feature"},
		{heading: "Best International Feature Film", want: "Best International Film"},
		{heading: "Best Original Song", want: "Best Original Song"},
		{heading: "Best Directing", want: "Best Director"},
	}
	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			pat, ok := table.Match(tt.heading)
			if !ok {
				t.Fatalf("no pattern matched %q", tt.heading)
			}
			if pat.Label != tt.want {
				t.Fatalf("heading %q matched %q, want %q", tt.heading, pat.Label, tt.want)
			}
		})
	}
}

func TestPatternTableNoMatch(t *testing.T) {
	table := NewPatternTable(DefaultPatterns())
	for _, heading := range []string{"", "Red Carpet Recap", "Ceremony Highlights"} {
		if _, ok := table.Match(heading); ok {
			t.Fatalf("did not expect a match for %q", heading)
		}
	}
}

func TestClassForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  CategoryClass
	}{
		{label: "Best Actor", want: ClassActing},
		{label: "Best Performance by an Actress", want: ClassActing},
		{label: "Best Picture", want: ClassWork},
		{label: "Best Original Screenplay", want: ClassWork},
		{label: "Best Director", want: ClassGeneric},
	}
	for _, tt := range tests {
		if got := ClassForLabel(tt.label); got != tt.want {
			t.Fatalf("ClassForLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
