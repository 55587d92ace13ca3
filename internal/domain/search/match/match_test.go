package match

import "testing"

func TestVerdict_UnrequestedNeverMatches(t *testing.T) {
	v := NewVerdict(false, true)
	if v.Requested() {
		t.Error("Requested() = true")
	}
	if v.Matched() {
		t.Error("Matched() = true for unrequested field")
	}
}

func TestFeatureMatch_Ratio(t *testing.T) {
	tests := []struct {
		name      string
		matched   []string
		requested int
		want      float64
	}{
		{"all matched", []string{"balcony", "tv"}, 2, 1},
		{"half matched", []string{"balcony"}, 2, 0.5},
		{"none matched", nil, 3, 0},
		{"nothing requested", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFeatureMatch(tt.matched, tt.requested)
			if got := f.Ratio(); got != tt.want {
				t.Errorf("Ratio() = %f, want %f", got, tt.want)
			}
		})
	}
}
