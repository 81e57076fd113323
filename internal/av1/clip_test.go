package av1

import "testing"

func TestClip3(t *testing.T) {
	tests := []struct{ lo, hi, v, want int }{
		{0, 255, 300, 255},
		{0, 255, -5, 0},
		{0, 255, 128, 128},
		{-10, 10, -20, -10},
	}
	for _, tt := range tests {
		if got := clip3(tt.lo, tt.hi, tt.v); got != tt.want {
			t.Errorf("clip3(%d,%d,%d) = %d, want %d", tt.lo, tt.hi, tt.v, got, tt.want)
		}
	}
}

func TestMinTMaxT(t *testing.T) {
	if got := minT(3, 7); got != 3 {
		t.Errorf("minT(3,7) = %d, want 3", got)
	}
	if got := maxT(3, 7); got != 7 {
		t.Errorf("maxT(3,7) = %d, want 7", got)
	}
	if got := minT(-1, -4); got != -4 {
		t.Errorf("minT(-1,-4) = %d, want -4", got)
	}
}

func TestAbsInt(t *testing.T) {
	if got := absInt(-5); got != 5 {
		t.Errorf("absInt(-5) = %d, want 5", got)
	}
	if got := absInt(5); got != 5 {
		t.Errorf("absInt(5) = %d, want 5", got)
	}
	if got := absInt(0); got != 0 {
		t.Errorf("absInt(0) = %d, want 0", got)
	}
}
