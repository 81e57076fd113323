package av1

import "testing"

func TestBuildScan_Horiz(t *testing.T) {
	scan := buildScan(TxClassHoriz, 2, 3)
	want := []uint16{0, 1, 2, 3, 4, 5}
	if len(scan) != len(want) {
		t.Fatalf("len(scan) = %d, want %d", len(scan), len(want))
	}
	for i, w := range want {
		if scan[i] != w {
			t.Errorf("scan[%d] = %d, want %d", i, scan[i], w)
		}
	}
}

func TestBuildScan_Vert(t *testing.T) {
	scan := buildScan(TxClassVert, 2, 3)
	want := []uint16{0, 2, 4, 1, 3, 5}
	if len(scan) != len(want) {
		t.Fatalf("len(scan) = %d, want %d", len(scan), len(want))
	}
	for i, w := range want {
		if scan[i] != w {
			t.Errorf("scan[%d] = %d, want %d", i, scan[i], w)
		}
	}
}

func TestBuildScan_2D_IsPermutation(t *testing.T) {
	w, h := 4, 4
	scan := buildScan(TxClass2D, w, h)
	if len(scan) != w*h {
		t.Fatalf("len(scan) = %d, want %d", len(scan), w*h)
	}
	seen := make(map[uint16]bool)
	for _, idx := range scan {
		if idx >= uint16(w*h) {
			t.Fatalf("scan index %d out of range for %dx%d", idx, w, h)
		}
		if seen[idx] {
			t.Fatalf("scan index %d repeated", idx)
		}
		seen[idx] = true
	}
	// The very first scan position is always the DC coefficient (0,0).
	if scan[0] != 0 {
		t.Errorf("scan[0] = %d, want 0 (DC)", scan[0])
	}
}

func TestTxClassFromType(t *testing.T) {
	if got := txClassFromType(TxTypeVDCT); got != TxClassVert {
		t.Errorf("txClassFromType(TxTypeVDCT) = %v, want TxClassVert", got)
	}
	if got := txClassFromType(TxTypeHDCT); got != TxClassHoriz {
		t.Errorf("txClassFromType(TxTypeHDCT) = %v, want TxClassHoriz", got)
	}
	if got := txClassFromType(TxTypeDCTDCT); got != TxClass2D {
		t.Errorf("txClassFromType(TxTypeDCTDCT) = %v, want TxClass2D", got)
	}
}
