package obu

import "testing"

func TestReadLEB128(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    uint64
		wantN   int
		wantErr bool
	}{
		{"single byte", []byte{0x05}, 5, 1, false},
		{"two bytes", []byte{0x80, 0x01}, 128, 2, false},
		{"zero", []byte{0x00}, 0, 1, false},
		{"truncated", []byte{0x80}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, err := ReadLEB128(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadLEB128(%v) expected error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadLEB128(%v): %v", tt.data, err)
			}
			if v != tt.want || n != tt.wantN {
				t.Errorf("ReadLEB128(%v) = (%d, %d), want (%d, %d)", tt.data, v, n, tt.want, tt.wantN)
			}
		})
	}
}

func TestSplit_SingleOBU(t *testing.T) {
	// obu_header: forbidden=0, type=SEQUENCE_HEADER(1), ext=0, has_size=1.
	header := byte(1<<3 | 1<<1)
	data := []byte{header, 0x03, 0xAA, 0xBB, 0xCC}
	obus, err := Split(data)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(obus) != 1 {
		t.Fatalf("Split returned %d obus, want 1", len(obus))
	}
	if obus[0].Type != TypeSequenceHeader {
		t.Errorf("Type = %v, want TypeSequenceHeader", obus[0].Type)
	}
	if len(obus[0].Payload) != 3 {
		t.Errorf("Payload len = %d, want 3", len(obus[0].Payload))
	}
}

func TestSplit_ForbiddenBit(t *testing.T) {
	data := []byte{0x80, 0x00}
	if _, err := Split(data); err == nil {
		t.Fatalf("Split with forbidden bit set should fail")
	}
}

func TestSplit_NoSizeFieldUnsupported(t *testing.T) {
	header := byte(1 << 3) // has_size_field=0
	data := []byte{header, 0x00}
	if _, err := Split(data); err == nil {
		t.Fatalf("Split with has_size_field=0 should fail")
	}
}

func TestSplit_TrailingZeroPadding(t *testing.T) {
	header := byte(2<<3 | 1<<1) // TEMPORAL_DELIMITER
	data := []byte{header, 0x00, 0x00, 0x00, 0x00}
	obus, err := Split(data)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(obus) != 1 {
		t.Fatalf("Split returned %d obus, want 1", len(obus))
	}
}

func TestParseSequenceHeader_ReducedStillPicture(t *testing.T) {
	// Build a minimal reduced_still_picture_header sequence header bitstream:
	// seq_profile(3)=0, still_picture(1)=1, reduced_still_picture_header(1)=1,
	// seq_level_idx[0](5)=0, frame_width_bits_minus_1(4)=7 (8 bits),
	// frame_height_bits_minus_1(4)=7 (8 bits), max_frame_width_minus_1(8)=63,
	// max_frame_height_minus_1(8)=63, use_128x128_superblock(1)=0,
	// enable_filter_intra(1)=0, enable_intra_edge_filter(1)=0,
	// enable_superres(1)=0, enable_cdef(1)=0, enable_restoration(1)=0,
	// then color_config: high_bitdepth(1)=0, mono_chrome(1)=0,
	// color_description_present_flag(1)=0, color_range(1)=0 (since default
	// transfer_characteristics=2 != SRGB), subsampling derived from profile 0
	// => 1,1 with no bits read, chroma_sample_position(2)=0,
	// separate_uv_delta_q(1)=0.
	bits := []int{
		0, 0, 0, // seq_profile = 0
		1,    // still_picture
		1,    // reduced_still_picture_header
		0, 0, 0, 0, 0, // seq_level_idx[0]
	}
	bits = append(bits, bitsOf(7, 4)...)  // frame_width_bits_minus_1 = 7
	bits = append(bits, bitsOf(7, 4)...)  // frame_height_bits_minus_1 = 7
	bits = append(bits, bitsOf(63, 8)...) // max_frame_width_minus1
	bits = append(bits, bitsOf(63, 8)...) // max_frame_height_minus1
	bits = append(bits,
		0, // use_128x128_superblock
		0, // enable_filter_intra
		0, // enable_intra_edge_filter
		0, // enable_superres
		0, // enable_cdef
		0, // enable_restoration
		0, // high_bitdepth
		0, // mono_chrome
		0, // color_description_present_flag
		0, // color_range
		0, 0, // chroma_sample_position
		0, // separate_uv_delta_q
	)

	payload := packBits(bits)
	sh, err := ParseSequenceHeader(payload)
	if err != nil {
		t.Fatalf("ParseSequenceHeader: %v", err)
	}
	if !sh.ReducedStillPictureHeader {
		t.Errorf("ReducedStillPictureHeader = false, want true")
	}
	if sh.MaxFrameWidthMinus1 != 63 || sh.MaxFrameHeightMinus1 != 63 {
		t.Errorf("max frame dims = (%d,%d), want (63,63)", sh.MaxFrameWidthMinus1, sh.MaxFrameHeightMinus1)
	}
	if sh.BitDepth != 8 {
		t.Errorf("BitDepth = %d, want 8", sh.BitDepth)
	}
	if sh.SubsamplingX != 1 || sh.SubsamplingY != 1 {
		t.Errorf("subsampling = (%d,%d), want (1,1) for profile 0", sh.SubsamplingX, sh.SubsamplingY)
	}
}

// bitsOf returns the n-bit MSB-first binary expansion of v as a []int of 0/1.
func bitsOf(v uint32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int((v >> uint(n-1-i)) & 1)
	}
	return out
}

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
