package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact cents pass through", 10.25, 10.25},
		{"integer passes through", 7, 7},
		{"round down", 3.3333333, 3.33},
		{"round up", 6.6666666, 6.67},
		{"half cent rounds up", 0.005, 0.01},
		// Distinguishes the correct rounding from the legacy truncating
		// (x*100)->int form, which yields 19.00 here.
		{"binary boundary rounds up", 19.005, 19.01},
		{"another binary boundary", 2.675, 2.68},
		{"third of thirty", 30.0 / 3.0, 10.00},
		{"negative mirrors positive", -19.005, -19.01},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !Positive(0.01) || Positive(0) || Positive(-1) {
		t.Error("Positive misclassified a value")
	}
	if !NotZero(-0.5) || NotZero(0) {
		t.Error("NotZero misclassified a value")
	}
	if MoreThanOne(1) || !MoreThanOne(2) || MoreThanOne(0) {
		t.Error("MoreThanOne misclassified a count")
	}
}
