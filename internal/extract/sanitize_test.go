package extract

import "testing"

func TestCleanFragment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bullet stripped", in: "• Oppenheimer", want: "Oppenheimer"},
		{name: "numbered marker stripped", in: "1. Oppenheimer", want: "Oppenheimer"},
		{name: "dash variants folded", in: "Cillian Murphy – Oppenheimer", want: "Cillian Murphy - Oppenheimer"},
		{name: "noise parenthetical removed", in: "Oppenheimer (Read our review)", want: "Oppenheimer"},
		{name: "benign parenthetical kept", in: "Cillian Murphy (Oppenheimer)", want: "Cillian Murphy (Oppenheimer)"},
		{name: "whitespace collapsed", in: "  Poor   Things  ", want: "Poor Things"},
		{name: "trailing separators trimmed", in: "Barbie -", want: "Barbie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFragment(tt.in); got != tt.want {
				t.Fatalf("CleanFragment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain title accepted", in: "Oppenheimer", want: true},
		{name: "review fragment rejected", in: "Oppenheimer (Read our review)", want: false},
		{name: "bare review rejected", in: "(Review)", want: false},
		{name: "too short", in: "A", want: false},
		{name: "no letters", in: "2024", want: false},
		{name: "excess punctuation", in: `"a"!?;:,.-...!!!b`, want: false},
		{name: "person with diacritics", in: "Pedro Almodóvar", want: true},
		{name: "too long", in: string(make([]rune, 130)), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.in); got != tt.want {
				t.Fatalf("ValidName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitNameTitle(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		class     CategoryClass
		wantName  string
		wantTitle string
	}{
		{name: "acting dash", in: "Cillian Murphy - Oppenheimer", class: ClassActing, wantName: "Cillian Murphy", wantTitle: "Oppenheimer"},
		{name: "acting colon", in: "Emma Stone: Poor Things", class: ClassActing, wantName: "Emma Stone", wantTitle: "Poor Things"},
		{name: "acting parenthetical", in: "Lily Gladstone (Killers of the Flower Moon)", class: ClassActing, wantName: "Lily Gladstone", wantTitle: "Killers of the Flower Moon"},
		{name: "acting no separator", in: "Bradley Cooper", class: ClassActing, wantName: "Bradley Cooper", wantTitle: ""},
		{name: "work keeps dash", in: "Mission: Impossible - Dead Reckoning", class: ClassWork, wantName: "Mission: Impossible - Dead Reckoning", wantTitle: ""},
		{name: "generic with separator", in: "Justine Triet - Anatomy of a Fall", class: ClassGeneric, wantName: "Justine Triet", wantTitle: "Anatomy of a Fall"},
		{name: "generic without separator", in: "Anatomy of a Fall", class: ClassGeneric, wantName: "Anatomy of a Fall", wantTitle: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotTitle := SplitNameTitle(tt.in, tt.class)
			if gotName != tt.wantName || gotTitle != tt.wantTitle {
				t.Fatalf("SplitNameTitle(%q) = (%q, %q), want (%q, %q)",
					tt.in, gotName, gotTitle, tt.wantName, tt.wantTitle)
			}
		})
	}
}
