package av1

import "testing"

func TestNegDeinterleave_RefZero(t *testing.T) {
	for diff := 0; diff < 8; diff++ {
		if got := negDeinterleave(diff, 0, 8); got != diff {
			t.Errorf("negDeinterleave(%d,0,8) = %d, want %d", diff, got, diff)
		}
	}
}

func TestNegDeinterleave_RefAtMax(t *testing.T) {
	// ref >= max-1 takes the max-diff-1 branch.
	want := []int{7, 6, 5, 4, 3, 2, 1, 0}
	for diff, w := range want {
		if got := negDeinterleave(diff, 7, 8); got != w {
			t.Errorf("negDeinterleave(%d,7,8) = %d, want %d", diff, got, w)
		}
	}
}

func TestNegDeinterleave_MidRef(t *testing.T) {
	// ref=3, max=8: 2*ref=6 < max, so diffs 0..6 zig-zag around ref and
	// diff=7, above 2*ref, is returned unchanged.
	want := map[int]int{0: 3, 1: 4, 2: 2, 3: 5, 4: 1, 5: 6, 6: 0, 7: 7}
	for diff, w := range want {
		if got := negDeinterleave(diff, 3, 8); got != w {
			t.Errorf("negDeinterleave(%d,3,8) = %d, want %d", diff, got, w)
		}
	}
}

func TestNegDeinterleave_Roundtrip(t *testing.T) {
	// For max=8 and every ref, negDeinterleave over diff=0..max-1 must be
	// a bijection onto segment values 0..max-1 (every diff maps to a
	// distinct, in-range segment).
	max := 8
	for ref := 0; ref < max; ref++ {
		seen := make(map[int]bool)
		for diff := 0; diff < max; diff++ {
			seg := negDeinterleave(diff, ref, max)
			if seg < 0 || seg >= max {
				t.Fatalf("negDeinterleave(%d,%d,%d) = %d out of range", diff, ref, max, seg)
			}
			if seen[seg] {
				t.Fatalf("negDeinterleave(ref=%d,max=%d): segment %d produced twice", ref, max, seg)
			}
			seen[seg] = true
		}
	}
}
