package av1

import "testing"

func TestProbe_MinimalTileDoesNotPanic(t *testing.T) {
	params := &TileParams{
		MiColStart: 0, MiColEnd: 16,
		MiRowStart: 0, MiRowEnd: 16,
		SubsamplingX: 1, SubsamplingY: 1,
		TxMode: TxModeOnly4x4,
	}

	stats := Probe([]byte{0x00, 0x00, 0x00, 0x00}, params)
	if stats == nil {
		t.Fatalf("Probe returned nil stats")
	}
	if stats.SessionID == "" {
		t.Errorf("Probe did not assign a SessionID")
	}
	// Whatever the outcome (DONE/UNSUPPORTED/ERROR), the traversal must
	// terminate and report a recognized status rather than leaving the
	// zero value in place with no explanation.
	switch stats.Status {
	case StatusDone, StatusUnsupported, StatusError:
	default:
		t.Errorf("Probe returned unrecognized status %v", stats.Status)
	}
}

func TestProbe_EmptyTileIsError(t *testing.T) {
	params := &TileParams{MiColEnd: 16, MiRowEnd: 16}
	stats := Probe(nil, params)
	if stats.Status != StatusError {
		t.Errorf("Probe on empty tile data: status = %v, want StatusError", stats.Status)
	}
}
