package av1

import "testing"

func TestMiGrid_FillAndPartitionCtx(t *testing.T) {
	g := NewMiGrid(8, 8)

	// No neighbors recorded yet: ctx must be 0 (absent neighbors count false).
	if ctx := g.PartitionCtx(0, 0, 2); ctx != 0 {
		t.Errorf("PartitionCtx at tile origin = %d, want 0", ctx)
	}

	// Fill a 4x4-MI block (wlog2=hlog2=2) at (0,0) with skip=true.
	g.FillBlock(0, 0, 2, 2, true, ModeDC, 0, 0, 0)

	// At bsl=3, the filled block's recorded wlog2/hlog2=2 counts as smaller
	// than bsl, so its neighbors see above/left true.
	if ctx := g.PartitionCtx(4, 0, 3); ctx != 1 {
		t.Errorf("PartitionCtx(4,0,3) = %d, want 1 (above neighbor smaller)", ctx)
	}
	if ctx := g.PartitionCtx(0, 4, 3); ctx != 2 {
		t.Errorf("PartitionCtx(0,4,3) = %d, want 2 (left neighbor smaller)", ctx)
	}

	if sc := g.SkipCtx(4, 0); sc != 1 {
		t.Errorf("SkipCtx(4,0) = %d, want 1 (above neighbor skipped)", sc)
	}
	if sc := g.SkipCtx(0, 0); sc != 0 {
		t.Errorf("SkipCtx(0,0) = %d, want 0 (no neighbors)", sc)
	}
}

func TestMiGrid_OutOfBounds(t *testing.T) {
	g := NewMiGrid(4, 4)
	if _, ok := g.at(-1, 0); ok {
		t.Errorf("at(-1,0) ok=true, want false")
	}
	if _, ok := g.at(0, 4); ok {
		t.Errorf("at(0,4) ok=true, want false")
	}
	if _, ok := g.at(3, 3); !ok {
		t.Errorf("at(3,3) ok=false, want true")
	}
}

func TestMiGrid_SegmentIDCtxAndPred(t *testing.T) {
	g := NewMiGrid(8, 8)

	// No neighbors: ctx=0, pred=0.
	if ctx, pred := g.SegmentIDCtxAndPred(0, 0); ctx != 0 || pred != 0 {
		t.Errorf("SegmentIDCtxAndPred(0,0) = (%d,%d), want (0,0)", ctx, pred)
	}

	// Set segment 5 at (0,0), then query (0,1): left neighbor = 5, above/UL
	// absent, so pred should follow the left-only branch.
	g.FillBlock(0, 0, 0, 0, false, ModeDC, 0, 0, 5)
	if ctx, pred := g.SegmentIDCtxAndPred(0, 1); pred != 5 || ctx != 0 {
		t.Errorf("SegmentIDCtxAndPred(0,1) = (%d,%d), want (0,5)", ctx, pred)
	}
}

func TestSizeGroup(t *testing.T) {
	tests := []struct{ wlog2, hlog2, want int }{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 2},
		{3, 3, 3},
	}
	for _, tt := range tests {
		if got := SizeGroup(tt.wlog2, tt.hlog2); got != tt.want {
			t.Errorf("SizeGroup(%d,%d) = %d, want %d", tt.wlog2, tt.hlog2, got, tt.want)
		}
	}
}

func TestIntraDirectionalIndex(t *testing.T) {
	if got := IntraDirectionalIndex(ModeV); got != 0 {
		t.Errorf("IntraDirectionalIndex(ModeV) = %d, want 0", got)
	}
	if got := IntraDirectionalIndex(ModeH); got != 1 {
		t.Errorf("IntraDirectionalIndex(ModeH) = %d, want 1", got)
	}
}
