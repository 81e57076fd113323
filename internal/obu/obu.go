// Package obu frames size-delimited AV1 Open Bitstream Units and parses
// the Sequence Header OBU's scalar fields. It sits between the container
// layer (which hands it one item's raw av01 payload) and internal/framehdr
// (which needs the Sequence Header to interpret a Frame Header OBU).
package obu

import (
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
)

// Type is an obu_type value from AV1 5.3.
type Type uint8

const (
	TypeReserved0          Type = 0
	TypeSequenceHeader     Type = 1
	TypeTemporalDelimiter  Type = 2
	TypeFrameHeader        Type = 3
	TypeTileGroup          Type = 4
	TypeMetadata           Type = 5
	TypeFrame              Type = 6
	TypeRedundantFrameHdr  Type = 7
	TypeTileList           Type = 8
	TypePadding            Type = 15
)

// OBU is one framed unit: its type and the payload bytes between the
// obu_size field and the next OBU's header.
type OBU struct {
	Type      Type
	HasExtension bool
	TemporalID   uint8
	SpatialID    uint8
	Payload      []byte
}

// ReadLEB128 decodes an AV1 leb128(): up to 8 groups of 7 bits, little-
// endian base-128, terminated by a byte whose high bit is clear. It
// returns the decoded value and the number of bytes consumed.
func ReadLEB128(data []byte) (uint64, int, error) {
	var value uint64
	for i := 0; i < 8; i++ {
		if i >= len(data) {
			return 0, 0, averr.New(averr.Truncated, "leb128 truncated")
		}
		b := data[i]
		value |= uint64(b&0x7F) << uint(7*i)
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, averr.New(averr.InvalidContainer, "leb128 exceeds 8 groups")
}

// Split frames every OBU in data. Trailing all-zero padding is accepted
// and stops the scan, mirroring the AV1 low-overhead bitstream format's
// convention for byte-aligned file padding. Every OBU must carry
// obu_has_size_field=1 (true for every AVIF still-image payload); the
// implicit to-end-of-buffer framing AV1 permits when the size field is
// omitted is not supported here.
func Split(data []byte) ([]OBU, error) {
	var obus []OBU
	off := 0
	for off < len(data) {
		if data[off] == 0 {
			allZero := true
			for z := off; z < len(data); z++ {
				if data[z] != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				break
			}
		}

		header := data[off]
		off++
		forbidden := (header >> 7) & 1
		obuType := Type((header >> 3) & 0x0F)
		extensionFlag := (header >> 2) & 1
		hasSizeField := (header >> 1) & 1

		if forbidden != 0 {
			return nil, averr.New(averr.InvalidContainer, "obu forbidden bit set")
		}
		if hasSizeField == 0 {
			return nil, averr.New(averr.UnsupportedFeature, "obu_has_size_field=0 (implicit framing) unsupported")
		}

		var o OBU
		o.Type = obuType
		if extensionFlag != 0 {
			if off >= len(data) {
				return nil, averr.New(averr.Truncated, "truncated obu extension header")
			}
			ext := data[off]
			off++
			o.HasExtension = true
			o.TemporalID = ext >> 5
			o.SpatialID = (ext >> 3) & 0x3
		}

		size, n, err := ReadLEB128(data[off:])
		if err != nil {
			return nil, err
		}
		off += n

		if size > uint64(len(data)-off) {
			return nil, averr.Newf(averr.Truncated, "obu payload of size %d overruns buffer", size)
		}
		o.Payload = data[off : off+int(size)]
		off += int(size)

		obus = append(obus, o)
	}
	return obus, nil
}

// ChromaSamplePosition mirrors AV1's chroma_sample_position enum; only its
// numeric value is retained since AVIF still images rarely depend on it
// for probing.
type ChromaSamplePosition uint8

// SequenceHeader is the scalar subset of AV1's sequence_header_obu()
// the AV1 spec §6.2 and §6.3 require: enough to size the frame, pick CDF
// tables by bit depth/monochrome, and derive chroma subsampling for
// TileParams.
type SequenceHeader struct {
	SeqProfile                 uint32
	StillPicture               bool
	ReducedStillPictureHeader  bool
	OperatingPointIdc          uint32
	FrameWidthBitsMinus1       uint32
	FrameHeightBitsMinus1      uint32
	MaxFrameWidthMinus1        uint32
	MaxFrameHeightMinus1       uint32
	FrameIDNumbersPresent      bool
	Use128x128Superblock       bool
	EnableFilterIntra          bool
	EnableIntraEdgeFilter      bool
	EnableSuperres             bool
	EnableCDEF                 bool
	EnableRestoration          bool

	BitDepth             int
	MonoChrome           bool
	SubsamplingX         int
	SubsamplingY         int
	ColorPrimaries       uint32
	TransferCharacteristics uint32
	MatrixCoefficients   uint32
	ColorRange           bool
	ChromaSamplePosition ChromaSamplePosition
	SeparateUVDeltaQ     bool
}

// ParseSequenceHeader reads sequence_header_obu()'s fields in bitstream
// order, following AV1 5.5.1/5.5.2. Fields unused by the AV1 spec's probe
// path (timing_info, decoder_model_info, operating-point loop contents
// beyond operating_point_idc[0], frame id lengths) are consumed to keep
// the reader aligned but not retained.
func ParseSequenceHeader(payload []byte) (SequenceHeader, error) {
	var sh SequenceHeader
	br := bitio.NewRawBitReader(payload)

	fail := func() (SequenceHeader, error) {
		return SequenceHeader{}, averr.New(averr.Truncated, "sequence header truncated")
	}

	profile, ok := br.ReadBits(3)
	if !ok {
		return fail()
	}
	sh.SeqProfile = profile

	stillPicture, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.StillPicture = stillPicture != 0

	reduced, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.ReducedStillPictureHeader = reduced != 0

	var decoderModelInfoPresent bool
	var bufferDelayLengthMinus1 uint32

	if sh.ReducedStillPictureHeader {
		if _, ok := br.ReadBits(5); !ok { // seq_level_idx[0]
			return fail()
		}
	} else {
		timingInfoPresent, ok := br.ReadBit()
		if !ok {
			return fail()
		}
		if timingInfoPresent != 0 {
			if _, ok := br.ReadBits(32); !ok { // num_units_in_display_tick
				return fail()
			}
			if _, ok := br.ReadBits(32); !ok { // time_scale
				return fail()
			}
			equalPictureInterval, ok := br.ReadBit()
			if !ok {
				return fail()
			}
			if equalPictureInterval != 0 {
				if _, ok := br.ReadUvlc(); !ok {
					return fail()
				}
			}
			dmip, ok := br.ReadBit()
			if !ok {
				return fail()
			}
			decoderModelInfoPresent = dmip != 0
			if decoderModelInfoPresent {
				v, ok := br.ReadBits(5)
				if !ok {
					return fail()
				}
				bufferDelayLengthMinus1 = v
				if _, ok := br.ReadBits(32); !ok { // num_units_in_decoding_tick
					return fail()
				}
				if _, ok := br.ReadBits(5); !ok { // buffer_removal_time_length_minus_1
					return fail()
				}
				if _, ok := br.ReadBits(5); !ok { // frame_presentation_time_length_minus_1
					return fail()
				}
			}
		}

		initialDisplayDelayPresent, ok := br.ReadBit()
		if !ok {
			return fail()
		}

		opCntMinus1, ok := br.ReadBits(5)
		if !ok {
			return fail()
		}
		for i := uint32(0); i <= opCntMinus1; i++ {
			idc, ok := br.ReadBits(12)
			if !ok {
				return fail()
			}
			if i == 0 {
				sh.OperatingPointIdc = idc
			}
			seqLevelIdx, ok := br.ReadBits(5)
			if !ok {
				return fail()
			}
			if seqLevelIdx > 7 {
				if _, ok := br.ReadBit(); !ok { // seq_tier
					return fail()
				}
			}
			if decoderModelInfoPresent {
				present, ok := br.ReadBit()
				if !ok {
					return fail()
				}
				if present != 0 {
					n := int(bufferDelayLengthMinus1) + 1
					if n > 32 {
						return SequenceHeader{}, averr.New(averr.UnsupportedFeature, "buffer_delay_length_minus_1 too large")
					}
					if _, ok := br.ReadBits(n); !ok {
						return fail()
					}
					if _, ok := br.ReadBits(n); !ok {
						return fail()
					}
					if _, ok := br.ReadBit(); !ok { // low_delay_mode_flag
						return fail()
					}
				}
			}
			if initialDisplayDelayPresent != 0 {
				present, ok := br.ReadBit()
				if !ok {
					return fail()
				}
				if present != 0 {
					if _, ok := br.ReadBits(4); !ok {
						return fail()
					}
				}
			}
		}
	}

	fwBitsMinus1, ok := br.ReadBits(4)
	if !ok {
		return fail()
	}
	fhBitsMinus1, ok := br.ReadBits(4)
	if !ok {
		return fail()
	}
	sh.FrameWidthBitsMinus1 = fwBitsMinus1
	sh.FrameHeightBitsMinus1 = fhBitsMinus1

	maxW, ok := br.ReadBits(int(fwBitsMinus1) + 1)
	if !ok {
		return fail()
	}
	maxH, ok := br.ReadBits(int(fhBitsMinus1) + 1)
	if !ok {
		return fail()
	}
	sh.MaxFrameWidthMinus1 = maxW
	sh.MaxFrameHeightMinus1 = maxH

	if !sh.ReducedStillPictureHeader {
		frameIDNumbersPresent, ok := br.ReadBit()
		if !ok {
			return fail()
		}
		sh.FrameIDNumbersPresent = frameIDNumbersPresent != 0
		if sh.FrameIDNumbersPresent {
			if _, ok := br.ReadBits(4); !ok { // delta_frame_id_length_minus_2
				return fail()
			}
			if _, ok := br.ReadBits(3); !ok { // additional_frame_id_length_minus_1
				return fail()
			}
		}
	}

	use128, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.Use128x128Superblock = use128 != 0

	filterIntra, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.EnableFilterIntra = filterIntra != 0

	intraEdge, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.EnableIntraEdgeFilter = intraEdge != 0

	if !sh.ReducedStillPictureHeader {
		for _, flag := range []string{"interintra_compound", "masked_compound", "warped_motion", "dual_filter"} {
			_ = flag
			if _, ok := br.ReadBit(); !ok {
				return fail()
			}
		}
		enableOrderHint, ok := br.ReadBit()
		if !ok {
			return fail()
		}
		if enableOrderHint != 0 {
			if _, ok := br.ReadBit(); !ok { // enable_jnt_comp
				return fail()
			}
			if _, ok := br.ReadBit(); !ok { // enable_ref_frame_mvs
				return fail()
			}
		}

		chooseScreenContentTools, ok := br.ReadBit()
		if !ok {
			return fail()
		}
		forceScreenContentTools := uint32(2)
		if chooseScreenContentTools == 0 {
			v, ok := br.ReadBit()
			if !ok {
				return fail()
			}
			forceScreenContentTools = v
		}
		if forceScreenContentTools > 0 {
			chooseIntegerMv, ok := br.ReadBit()
			if !ok {
				return fail()
			}
			if chooseIntegerMv == 0 {
				if _, ok := br.ReadBit(); !ok {
					return fail()
				}
			}
		}
		if enableOrderHint != 0 {
			if _, ok := br.ReadBits(3); !ok { // order_hint_bits_minus_1
				return fail()
			}
		}
	}

	superres, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.EnableSuperres = superres != 0

	cdef, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.EnableCDEF = cdef != 0

	restoration, ok := br.ReadBit()
	if !ok {
		return fail()
	}
	sh.EnableRestoration = restoration != 0

	if err := parseColorConfig(br, sh.SeqProfile, &sh); err != nil {
		return SequenceHeader{}, err
	}

	return sh, nil
}

// parseColorConfig reads color_config() per AV1 5.5.2.
func parseColorConfig(br *bitio.RawBitReader, seqProfile uint32, sh *SequenceHeader) error {
	highBitdepth, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "color_config truncated at high_bitdepth")
	}

	var twelveBit uint32
	if seqProfile == 2 && highBitdepth != 0 {
		v, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "color_config truncated at twelve_bit")
		}
		twelveBit = v
	}

	switch {
	case highBitdepth == 0:
		sh.BitDepth = 8
	case seqProfile == 2:
		if twelveBit != 0 {
			sh.BitDepth = 12
		} else {
			sh.BitDepth = 10
		}
	default:
		sh.BitDepth = 10
	}

	if seqProfile == 1 {
		sh.MonoChrome = false
	} else {
		mono, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "color_config truncated at mono_chrome")
		}
		sh.MonoChrome = mono != 0
	}

	colorDescPresent, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "color_config truncated at color_description_present_flag")
	}
	if colorDescPresent != 0 {
		cp, ok1 := br.ReadBits(8)
		tc, ok2 := br.ReadBits(8)
		mc, ok3 := br.ReadBits(8)
		if !ok1 || !ok2 || !ok3 {
			return averr.New(averr.Truncated, "color_config truncated in color description")
		}
		sh.ColorPrimaries = cp
		sh.TransferCharacteristics = tc
		sh.MatrixCoefficients = mc
	} else {
		sh.ColorPrimaries = 2
		sh.TransferCharacteristics = 2
		sh.MatrixCoefficients = 2
	}

	if sh.TransferCharacteristics == 13 { // SRGB
		sh.ColorRange = true
	} else {
		colorRange, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "color_config truncated at color_range")
		}
		sh.ColorRange = colorRange != 0
	}

	if sh.MonoChrome {
		sh.SubsamplingX = 1
		sh.SubsamplingY = 1
		return nil
	}

	if sh.ColorPrimaries == 1 && sh.TransferCharacteristics == 13 && sh.MatrixCoefficients == 0 {
		sh.SubsamplingX = 0
		sh.SubsamplingY = 0
		sep, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "color_config truncated at separate_uv_delta_q (identity matrix)")
		}
		sh.SeparateUVDeltaQ = sep != 0
		return nil
	}

	var subX, subY uint32
	switch seqProfile {
	case 0:
		subX, subY = 1, 1
	case 1:
		subX, subY = 0, 0
	default:
		if sh.BitDepth == 12 {
			sx, ok := br.ReadBit()
			if !ok {
				return averr.New(averr.Truncated, "color_config truncated at subsampling_x")
			}
			subX = sx
			if subX != 0 {
				sy, ok := br.ReadBit()
				if !ok {
					return averr.New(averr.Truncated, "color_config truncated at subsampling_y")
				}
				subY = sy
			}
		} else {
			subX, subY = 1, 0
		}
	}
	sh.SubsamplingX = int(subX)
	sh.SubsamplingY = int(subY)

	if subX != 0 && subY != 0 {
		csp, ok := br.ReadBits(2)
		if !ok {
			return averr.New(averr.Truncated, "color_config truncated at chroma_sample_position")
		}
		sh.ChromaSamplePosition = ChromaSamplePosition(csp)
	}

	sep, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "color_config truncated at separate_uv_delta_q")
	}
	sh.SeparateUVDeltaQ = sep != 0

	return nil
}
