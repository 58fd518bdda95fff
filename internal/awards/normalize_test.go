package awards

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "case folds", in: "Cillian Murphy", want: "cillian murphy"},
		{name: "diacritics stripped", in: "Pedro Almodóvar", want: "pedro almodovar"},
		{name: "whitespace collapsed", in: "  Best   Editing ", want: "best editing"},
		{name: "mixed", in: "AMÉLIE  Poulain", want: "amelie poulain"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameEqualKeys(t *testing.T) {
	// Spellings that must collide on the dedup key.
	pairs := [][2]string{
		{"Zoë Saldaña", "Zoe Saldana"},
		{"BEST PICTURE", "best picture"},
		{"Léa  Seydoux", "lea seydoux"},
	}
	for _, p := range pairs {
		if NormalizeName(p[0]) != NormalizeName(p[1]) {
			t.Fatalf("expected %q and %q to normalize equal", p[0], p[1])
		}
	}
}

func TestHTTPStatusReason(t *testing.T) {
	if got := HTTPStatusReason(500); got != "http_status:500" {
		t.Fatalf("got %q", got)
	}
}
