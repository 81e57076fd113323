package av1

import "testing"

func TestCoeffCdfQCtxFromBaseQIdx(t *testing.T) {
	tests := []struct {
		baseQIdx int
		want     int
	}{
		{0, 0}, {20, 0},
		{21, 1}, {60, 1},
		{61, 2}, {120, 2},
		{121, 3}, {255, 3},
	}
	for _, tt := range tests {
		if got := coeffCdfQCtxFromBaseQIdx(tt.baseQIdx); got != tt.want {
			t.Errorf("coeffCdfQCtxFromBaseQIdx(%d) = %d, want %d", tt.baseQIdx, got, tt.want)
		}
	}
}

func TestCdfCopy_Independent(t *testing.T) {
	src := []uint16{100, 32768, 0}
	dst := cdfCopy(src)
	dst[0] = 999
	if src[0] != 100 {
		t.Errorf("cdfCopy mutated its source: src[0] = %d, want 100", src[0])
	}
}

func TestNewTileModeCDFs_IndependentFromDefaults(t *testing.T) {
	t1 := NewTileModeCDFs()
	t2 := NewTileModeCDFs()

	if &t1.Skip[0][0] == &t2.Skip[0][0] {
		t.Fatalf("two TileModeCDFs instances share backing storage for Skip[0]")
	}

	orig := defaultSkipCdf[0][0]
	t1.Skip[0][0] = orig + 1
	if t2.Skip[0][0] != orig {
		t.Errorf("mutating t1.Skip leaked into t2.Skip: got %d, want %d", t2.Skip[0][0], orig)
	}
	if defaultSkipCdf[0][0] != orig {
		t.Errorf("mutating a tile's CDF mutated the package default table")
	}
}
