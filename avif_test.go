package avifcore

import (
	"encoding/binary"
	"testing"
)

func box(fourcc string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], fourcc)
	copy(out[8:], payload)
	return out
}

func packBits(bits []int) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func bitsOfInt(v uint32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int((v >> uint(n-1-i)) & 1)
	}
	return out
}

// wrapOBU frames payload as one OBU of the given obu_type with
// obu_has_size_field=1 and no extension, matching obu.Split's expectations.
func wrapOBU(obuType byte, payload []byte) []byte {
	header := byte(obuType<<3 | 1<<1)
	size := len(payload)
	var leb []byte
	for {
		b := byte(size & 0x7F)
		size >>= 7
		if size != 0 {
			leb = append(leb, b|0x80)
		} else {
			leb = append(leb, b)
			break
		}
	}
	out := append([]byte{header}, leb...)
	return append(out, payload...)
}

// minimalSequenceHeaderBits builds a reduced_still_picture_header sequence
// header describing a 64x64 4:2:0 8-bit profile-0 still image.
func minimalSequenceHeaderBits() []byte {
	bits := []int{
		0, 0, 0, // seq_profile = 0
		1, // still_picture
		1, // reduced_still_picture_header
		0, 0, 0, 0, 0, // seq_level_idx[0]
	}
	bits = append(bits, bitsOfInt(7, 4)...)
	bits = append(bits, bitsOfInt(7, 4)...)
	bits = append(bits, bitsOfInt(63, 8)...)
	bits = append(bits, bitsOfInt(63, 8)...)
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
	return packBits(bits)
}

// minimalFrameHeaderBits builds a lossless (base_q_idx=0), single-tile frame
// header matching minimalSequenceHeaderBits's sequence header.
func minimalFrameHeaderBits() []byte {
	bits := []int{
		0, // disable_cdf_update
		0, // allow_screen_content_tools
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
	return packBits(bits)
}

func buildMinimalAVIF(t *testing.T) []byte {
	t.Helper()

	seqHdr := wrapOBU(1, minimalSequenceHeaderBits())     // OBU_SEQUENCE_HEADER
	frameHdr := wrapOBU(3, minimalFrameHeaderBits())       // OBU_FRAME_HEADER
	tileGroup := wrapOBU(4, []byte{0x00, 0x00, 0x00, 0x00}) // OBU_TILE_GROUP
	av01 := append(append(append([]byte{}, seqHdr...), frameHdr...), tileGroup...)

	ftypBox := box("ftyp", []byte("avif"))

	pitm := make([]byte, 6)
	binary.BigEndian.PutUint16(pitm[4:6], 1)
	pitmBox := box("pitm", pitm)

	infe := make([]byte, 12)
	infe[0] = 2
	binary.BigEndian.PutUint16(infe[4:6], 1)
	copy(infe[8:12], "av01")
	infeBox := box("infe", infe)

	iinfPayload := make([]byte, 6)
	binary.BigEndian.PutUint16(iinfPayload[4:6], 1)
	iinfPayload = append(iinfPayload, infeBox...)
	iinfBox := box("iinf", iinfPayload)

	ilocPayload := []byte{0, 0, 0, 0, 0x44, 0x40}
	itemCount := make([]byte, 2)
	binary.BigEndian.PutUint16(itemCount, 1)
	ilocPayload = append(ilocPayload, itemCount...)
	ilocPayload = append(ilocPayload, 0, 1) // item_id=1
	ilocPayload = append(ilocPayload, 0, 0) // data_reference_index
	ilocPayload = append(ilocPayload, 0, 0, 0, 0) // base_offset
	ilocPayload = append(ilocPayload, 0, 1)        // extent_count=1
	extentOffsetPos := len(ilocPayload)
	ilocPayload = append(ilocPayload, 0, 0, 0, 0) // offset placeholder
	extLen := make([]byte, 4)
	binary.BigEndian.PutUint32(extLen, uint32(len(av01)))
	ilocPayload = append(ilocPayload, extLen...)
	ilocBox := box("iloc", ilocPayload)

	ilocOffsetInIloc := 8 + extentOffsetPos // past iloc's own 8-byte box header

	metaInner := append([]byte{0, 0, 0, 0}, pitmBox...)
	ilocOffsetInMetaInner := 4 + len(pitmBox) + len(iinfBox) + ilocOffsetInIloc
	metaInner = append(metaInner, iinfBox...)
	metaInner = append(metaInner, ilocBox...)
	metaBox := box("meta", metaInner)

	mdatBox := box("mdat", av01)

	data := append(append([]byte{}, ftypBox...), metaBox...)
	av01Offset := len(data) + 8 // skip mdat's own 8-byte header
	data = append(data, mdatBox...)

	// Patch the iloc extent offset now that av01Offset is known. It lives
	// inside metaBox, which starts right after ftypBox; metaBox itself
	// adds an 8-byte box header in front of metaInner.
	offsetFieldPos := len(ftypBox) + 8 + ilocOffsetInMetaInner
	binary.BigEndian.PutUint32(data[offsetFieldPos:offsetFieldPos+4], uint32(av01Offset))

	return data
}

func TestDecode_MinimalStillImage(t *testing.T) {
	data := buildMinimalAVIF(t)

	result, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !result.SeqHeader.ReducedStillPictureHeader {
		t.Errorf("ReducedStillPictureHeader = false, want true")
	}
	if !result.FrameHeader.CodedLossless {
		t.Errorf("CodedLossless = false, want true")
	}
	if len(result.Tiles) != 1 {
		t.Fatalf("len(Tiles) = %d, want 1", len(result.Tiles))
	}
}

func TestDecode_NoMetaBox(t *testing.T) {
	data := box("ftyp", []byte("avif"))
	if _, err := Decode(data, nil); err == nil {
		t.Fatalf("Decode with no meta box should fail")
	}
}
