package framehdr

import (
	"testing"

	"github.com/deepteams/avifcore/internal/obu"
)

// packBits packs a slice of 0/1 values MSB-first into bytes, zero-padding
// the final byte.
func packBits(bits []int) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func baseSeqHeader() obu.SequenceHeader {
	return obu.SequenceHeader{
		ReducedStillPictureHeader: true,
		MaxFrameWidthMinus1:       63,
		MaxFrameHeightMinus1:      63,
		SubsamplingX:              1,
		SubsamplingY:              1,
	}
}

func TestParseFrameHeader_MinimalLossless(t *testing.T) {
	bits := []int{
		0, // disable_cdf_update
		0, // allow_screen_content_tools (forced, reduced path)
		0, // render_and_frame_size_different_size
		1, // uniform_tile_spacing_flag
		0, 0, 0, 0, 0, 0, 0, 0, // base_q_idx = 0
		0, // delta_coded, Y DC
		0, // delta_coded, U DC
		0, // delta_coded, U AC
		0, // using_qmatrix
		0, // segmentation_enabled
		0, // reduced_tx_set
	}
	payload := packBits(bits)

	fh, ti, err := ParseFrameHeader(payload, baseSeqHeader())
	if err != nil {
		t.Fatalf("ParseFrameHeader: %v", err)
	}
	if !fh.CodedLossless {
		t.Errorf("CodedLossless = false, want true for base_q_idx=0 and all deltas 0")
	}
	if fh.TxMode != TxModeOnly4x4 {
		t.Errorf("TxMode = %v, want TxModeOnly4x4 when CodedLossless", fh.TxMode)
	}
	if fh.MiCols != 16 || fh.MiRows != 16 {
		t.Errorf("MiCols/MiRows = %d/%d, want 16/16 for a 64x64 frame", fh.MiCols, fh.MiRows)
	}
	if ti.TileCols != 1 || ti.TileRows != 1 {
		t.Fatalf("TileCols/TileRows = %d/%d, want 1/1", ti.TileCols, ti.TileRows)
	}
	col0, col1, row0, row1 := ti.Rect(0, 0)
	if col0 != 0 || col1 != 16 || row0 != 0 || row1 != 16 {
		t.Errorf("Rect(0,0) = (%d,%d,%d,%d), want (0,16,0,16)", col0, col1, row0, row1)
	}
}

func TestParseFrameHeader_NonZeroBaseQIndex(t *testing.T) {
	bits := []int{
		0, // disable_cdf_update
		0, // allow_screen_content_tools
		0, // render size differs
		1, // uniform_tile_spacing_flag
	}
	bits = append(bits, bitsOf(40, 8)...) // base_q_idx = 40
	bits = append(bits,
		0, // delta_coded, Y DC
		0, // delta_coded, U DC
		0, // delta_coded, U AC
		0, // using_qmatrix
		0, // segmentation_enabled
		0, // delta_q_present (base_q_idx>0, so this bit is read)
	)
	// base_q_idx>0 means the frame isn't coded-lossless, so loop_filter_params
	// (16 bits for an all-zero level/sharpness/delta_enabled reading) and
	// tx_mode_select (1 bit) are both still to come before reduced_tx_set;
	// pad with zeros rather than spell out every field, since this test only
	// asserts on BaseQIndex/CodedLossless, both already decided by here.
	bits = append(bits, make([]int, 24)...)

	payload := packBits(bits)
	fh, _, err := ParseFrameHeader(payload, baseSeqHeader())
	if err != nil {
		t.Fatalf("ParseFrameHeader: %v", err)
	}
	if fh.CodedLossless {
		t.Errorf("CodedLossless = true, want false for base_q_idx=40")
	}
	if fh.BaseQIndex != 40 {
		t.Errorf("BaseQIndex = %d, want 40", fh.BaseQIndex)
	}
}

func TestParseFrameHeader_RejectsNonReduced(t *testing.T) {
	seq := baseSeqHeader()
	seq.ReducedStillPictureHeader = false
	if _, _, err := ParseFrameHeader([]byte{0}, seq); err == nil {
		t.Fatalf("ParseFrameHeader with non-reduced sequence header should fail")
	}
}

func bitsOf(v uint32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int((v >> uint(n-1-i)) & 1)
	}
	return out
}
