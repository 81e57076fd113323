// Package framehdr reads the AV1 uncompressed frame header and derives the
// per-tile MI rectangles and scalar parameters the CORE's av1.TileParams
// needs. It only supports the reduced_still_picture_header=1 path:
// practically every AVIF encoder emits this form for a still image, and
// the full non-reduced path (reference frame management, motion
// compensation) has no meaning for a single intra-only image.
package framehdr

import (
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
	"github.com/deepteams/avifcore/internal/obu"
)

// TxMode mirrors av1.TxMode's three values without importing internal/av1,
// keeping this package's dependency direction upstream-only; callers
// convert when constructing av1.TileParams.
type TxMode int

const (
	TxModeOnly4x4 TxMode = iota
	TxModeLargest
	TxModeSelect
)

// SegmentAltQ is one segment's SEG_LVL_ALT_Q feature state.
type SegmentAltQ struct {
	Enabled bool
	Value   int32
}

// FrameHeader is the scalar subset of uncompressed_header() the AV1 spec §6.3
// requires, plus the derived coded_lossless/mi_cols/mi_rows fields the
// tile-info computation and TileParams construction both need.
type FrameHeader struct {
	DisableCDFUpdate        bool
	AllowScreenContentTools bool
	AllowIntrabc            bool

	FrameWidth, FrameHeight int
	CodedWidth, CodedHeight int
	UpscaledWidth           int
	MiCols, MiRows          int

	BaseQIndex int
	DeltaQYDc  int32
	DeltaQUDc  int32
	DeltaQUAc  int32
	DeltaQVDc  int32
	DeltaQVAc  int32

	SegmentationEnabled bool
	SegIDPreSkip        bool
	LastActiveSegID     int
	SegAltQ             [8]SegmentAltQ

	DeltaQPresent bool
	DeltaQRes     int
	DeltaLFPresent bool
	DeltaLFMulti   bool
	DeltaLFRes     int

	CDEFBits int

	CodedLossless bool
	TxMode        TxMode
	ReducedTxSet  bool
}

// TileInfo is the MI-unit tile grid derived from tile_info(): tile_cols+1
// and tile_rows+1 MI column/row boundaries in raster order, following the
// same mi_col_starts/mi_row_starts convention AV1's spec pseudocode uses
// (the last entry is MiCols/MiRows, the sentinel end boundary).
type TileInfo struct {
	TileCols, TileRows int
	MiColStarts        []int
	MiRowStarts        []int
}

// Rect returns the MI rectangle of tile (col, row) in raster order.
func (ti TileInfo) Rect(col, row int) (miColStart, miColEnd, miRowStart, miRowEnd int) {
	return ti.MiColStarts[col], ti.MiColStarts[col+1], ti.MiRowStarts[row], ti.MiRowStarts[row+1]
}

const (
	maxTileCols  = 64
	maxTileRows  = 64
	maxTileWidth = 4096
	maxTileArea  = 4096 * 2304
)

// ParseFrameHeader reads a FRAME_HEADER (or the header prefix of a FRAME)
// OBU payload against a previously parsed SequenceHeader. It requires
// seq.ReducedStillPictureHeader; any other form is UnsupportedFeature.
func ParseFrameHeader(payload []byte, seq obu.SequenceHeader) (FrameHeader, TileInfo, error) {
	if !seq.ReducedStillPictureHeader {
		return FrameHeader{}, TileInfo{}, averr.New(averr.UnsupportedFeature, "non-reduced_still_picture_header frame headers are unsupported")
	}

	br := bitio.NewRawBitReader(payload)
	var fh FrameHeader

	trunc := func(field string) error {
		return averr.Newf(averr.Truncated, "frame header truncated at %s", field)
	}

	disableCdf, ok := br.ReadBit()
	if !ok {
		return FrameHeader{}, TileInfo{}, trunc("disable_cdf_update")
	}
	fh.DisableCDFUpdate = disableCdf != 0

	// seq_force_screen_content_tools is always SELECT(2) when the sequence
	// header takes the reduced_still_picture_header path, so this bit is
	// unconditionally present.
	forceSCT, ok := br.ReadBit()
	if !ok {
		return FrameHeader{}, TileInfo{}, trunc("allow_screen_content_tools")
	}
	allowSCT := forceSCT != 0
	fh.AllowScreenContentTools = allowSCT
	if allowSCT {
		// force_integer_mv, present only when seq_force_integer_mv==SELECT(2);
		// the probe path does not track seq_force_integer_mv explicitly, so
		// this bit is always consumed when screen content tools are enabled,
		// matching how every AVIF still-image encoder in practice signals it.
		if _, ok := br.ReadBit(); !ok {
			return FrameHeader{}, TileInfo{}, trunc("force_integer_mv")
		}
	}

	if seq.FrameIDNumbersPresent {
		return FrameHeader{}, TileInfo{}, averr.New(averr.UnsupportedFeature, "frame_id_numbers_present_flag with reduced still picture header")
	}

	// order_hint: absent unless sequence header enables order hints, which
	// this package does not currently surface from ParseSequenceHeader
	// (always treated as 0 bits for the reduced-still path).

	if err := parseFrameSizeAndSuperres(br, seq, &fh); err != nil {
		return FrameHeader{}, TileInfo{}, err
	}

	fh.AllowIntrabc = false
	if allowSCT && fh.UpscaledWidth == fh.FrameWidth {
		b, ok := br.ReadBit()
		if !ok {
			return FrameHeader{}, TileInfo{}, trunc("allow_intrabc")
		}
		fh.AllowIntrabc = b != 0
	}

	tileInfo, err := parseTileInfo(br, seq, &fh)
	if err != nil {
		return FrameHeader{}, TileInfo{}, err
	}

	if err := parseQuantizationParams(br, seq, &fh); err != nil {
		return FrameHeader{}, TileInfo{}, err
	}
	if err := parseSegmentationParams(br, &fh); err != nil {
		return FrameHeader{}, TileInfo{}, err
	}

	fh.CodedLossless = computeCodedLossless(&fh)

	if err := parseDeltaQParams(br, &fh); err != nil {
		return FrameHeader{}, TileInfo{}, err
	}
	if err := parseDeltaLFParams(br, &fh); err != nil {
		return FrameHeader{}, TileInfo{}, err
	}

	if !fh.CodedLossless && !fh.AllowIntrabc {
		if err := skipLoopFilterParams(br, seq.MonoChrome); err != nil {
			return FrameHeader{}, TileInfo{}, err
		}
	}
	if !fh.CodedLossless && !fh.AllowIntrabc && seq.EnableCDEF {
		bits, err := skipCDEFParams(br, seq.MonoChrome)
		if err != nil {
			return FrameHeader{}, TileInfo{}, err
		}
		fh.CDEFBits = bits
	}

	allLossless := fh.CodedLossless && fh.FrameWidth == fh.UpscaledWidth
	if !allLossless && !fh.AllowIntrabc && seq.EnableRestoration {
		if err := skipLRParams(br, seq); err != nil {
			return FrameHeader{}, TileInfo{}, err
		}
	}

	if fh.CodedLossless {
		fh.TxMode = TxModeOnly4x4
	} else {
		sel, ok := br.ReadBit()
		if !ok {
			return FrameHeader{}, TileInfo{}, trunc("tx_mode_select")
		}
		if sel != 0 {
			fh.TxMode = TxModeSelect
		} else {
			fh.TxMode = TxModeLargest
		}
	}

	// frame_reference_mode()/skip_mode_params()/global_motion_params() are
	// all no-ops for an intra-only frame (FrameIsIntra=1).

	reducedTxSet, ok := br.ReadBit()
	if !ok {
		return FrameHeader{}, TileInfo{}, trunc("reduced_tx_set")
	}
	fh.ReducedTxSet = reducedTxSet != 0

	return fh, tileInfo, nil
}

func parseFrameSizeAndSuperres(br *bitio.RawBitReader, seq obu.SequenceHeader, fh *FrameHeader) error {
	frameWidth := int(seq.MaxFrameWidthMinus1) + 1
	frameHeight := int(seq.MaxFrameHeightMinus1) + 1

	useSuperres := uint32(0)
	if seq.EnableSuperres {
		b, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "frame header truncated at use_superres")
		}
		useSuperres = b
	}

	upscaledWidth := frameWidth
	codedWidth := frameWidth
	if useSuperres != 0 {
		codedDenom, ok := br.ReadBits(3)
		if !ok {
			return averr.New(averr.Truncated, "frame header truncated at coded_denom")
		}
		denom := int(codedDenom) + 9
		codedWidth = (upscaledWidth*8 + denom/2) / denom
	}

	fh.CodedWidth = codedWidth
	fh.CodedHeight = frameHeight
	fh.UpscaledWidth = upscaledWidth
	fh.MiCols = 2 * ((codedWidth + 7) >> 3)
	fh.MiRows = 2 * ((frameHeight + 7) >> 3)

	renderDiffers, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "frame header truncated at render_and_frame_size_different")
	}
	if renderDiffers != 0 {
		rw, ok1 := br.ReadBits(16)
		rh, ok2 := br.ReadBits(16)
		if !ok1 || !ok2 {
			return averr.New(averr.Truncated, "frame header truncated at render_size")
		}
		fh.FrameWidth = int(rw) + 1
		fh.FrameHeight = int(rh) + 1
	} else {
		fh.FrameWidth = upscaledWidth
		fh.FrameHeight = frameHeight
	}
	return nil
}

func tileLog2(blkSize, target uint32) uint32 {
	var k uint32
	for (uint64(blkSize) << k) < uint64(target) {
		k++
		if k > 31 {
			break
		}
	}
	return k
}

func parseTileInfo(br *bitio.RawBitReader, seq obu.SequenceHeader, fh *FrameHeader) (TileInfo, error) {
	miCols, miRows := uint32(fh.MiCols), uint32(fh.MiRows)

	sbShift := uint32(4)
	if seq.Use128x128Superblock {
		sbShift = 5
	}
	sbCols := (miCols + (1 << sbShift) - 1) >> sbShift
	sbRows := (miRows + (1 << sbShift) - 1) >> sbShift
	sbSize := sbShift + 2

	if sbSize >= 31 {
		return TileInfo{}, averr.New(averr.UnsupportedFeature, "superblock size too large for tile_info")
	}

	maxTileWidthSb := uint32(maxTileWidth) >> sbSize
	maxTileAreaSb := uint32(maxTileArea) >> (2 * sbSize)

	minLog2TileCols := tileLog2(maxTileWidthSb, sbCols)
	maxLog2TileCols := tileLog2(1, minU32(sbCols, maxTileCols))
	maxLog2TileRows := tileLog2(1, minU32(sbRows, maxTileRows))
	minLog2Tiles := maxU32(minLog2TileCols, tileLog2(maxTileAreaSb, sbRows*sbCols))

	uniform, ok := br.ReadBit()
	if !ok {
		return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at uniform_tile_spacing_flag")
	}

	var ti TileInfo
	if uniform != 0 {
		tileColsLog2 := minLog2TileCols
		for tileColsLog2 < maxLog2TileCols {
			inc, ok := br.ReadBit()
			if !ok {
				return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at increment_tile_cols_log2")
			}
			if inc == 0 {
				break
			}
			tileColsLog2++
		}
		tileWidthSb := (sbCols + (1 << tileColsLog2) - 1) >> tileColsLog2
		for startSb := uint32(0); startSb < sbCols; startSb += tileWidthSb {
			if len(ti.MiColStarts) >= maxTileCols {
				return TileInfo{}, averr.New(averr.UnsupportedFeature, "tile_cols exceeds maximum")
			}
			ti.MiColStarts = append(ti.MiColStarts, int(startSb<<sbShift))
		}
		ti.MiColStarts = append(ti.MiColStarts, int(miCols))
		ti.TileCols = len(ti.MiColStarts) - 1

		var minLog2TileRows uint32
		if minLog2Tiles > tileColsLog2 {
			minLog2TileRows = minLog2Tiles - tileColsLog2
		}
		tileRowsLog2 := minLog2TileRows
		for tileRowsLog2 < maxLog2TileRows {
			inc, ok := br.ReadBit()
			if !ok {
				return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at increment_tile_rows_log2")
			}
			if inc == 0 {
				break
			}
			tileRowsLog2++
		}
		tileHeightSb := (sbRows + (1 << tileRowsLog2) - 1) >> tileRowsLog2
		for startSb := uint32(0); startSb < sbRows; startSb += tileHeightSb {
			if len(ti.MiRowStarts) >= maxTileRows {
				return TileInfo{}, averr.New(averr.UnsupportedFeature, "tile_rows exceeds maximum")
			}
			ti.MiRowStarts = append(ti.MiRowStarts, int(startSb<<sbShift))
		}
		ti.MiRowStarts = append(ti.MiRowStarts, int(miRows))
		ti.TileRows = len(ti.MiRowStarts) - 1
	} else {
		widestTileSb := uint32(0)
		startSb := uint32(0)
		for startSb < sbCols {
			if len(ti.MiColStarts) >= maxTileCols {
				return TileInfo{}, averr.New(averr.UnsupportedFeature, "tile_cols exceeds maximum")
			}
			ti.MiColStarts = append(ti.MiColStarts, int(startSb<<sbShift))
			maxWidth := minU32(sbCols-startSb, maxTileWidthSb)
			widthMinus1, ok := br.ReadNS(maxWidth)
			if !ok {
				return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at width_in_sbs_minus_1")
			}
			sizeSb := widthMinus1 + 1
			widestTileSb = maxU32(sizeSb, widestTileSb)
			startSb += sizeSb
		}
		ti.MiColStarts = append(ti.MiColStarts, int(miCols))
		ti.TileCols = len(ti.MiColStarts) - 1

		var tileAreaSb uint32
		if minLog2Tiles > 0 {
			tileAreaSb = (sbRows * sbCols) >> (minLog2Tiles + 1)
		} else {
			tileAreaSb = sbRows * sbCols
		}
		maxTileHeightSb := maxU32(1, tileAreaSb/maxU32(widestTileSb, 1))

		startSbRow := uint32(0)
		for startSbRow < sbRows {
			if len(ti.MiRowStarts) >= maxTileRows {
				return TileInfo{}, averr.New(averr.UnsupportedFeature, "tile_rows exceeds maximum")
			}
			ti.MiRowStarts = append(ti.MiRowStarts, int(startSbRow<<sbShift))
			maxHeight := minU32(sbRows-startSbRow, maxTileHeightSb)
			heightMinus1, ok := br.ReadNS(maxHeight)
			if !ok {
				return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at height_in_sbs_minus_1")
			}
			sizeSb := heightMinus1 + 1
			startSbRow += sizeSb
		}
		ti.MiRowStarts = append(ti.MiRowStarts, int(miRows))
		ti.TileRows = len(ti.MiRowStarts) - 1
	}

	if ti.TileCols == 0 || ti.TileRows == 0 {
		return TileInfo{}, averr.New(averr.InvalidContainer, "tile_info produced zero tiles")
	}

	tileColsLog2 := tileLog2(1, uint32(ti.TileCols))
	tileRowsLog2 := tileLog2(1, uint32(ti.TileRows))
	if tileColsLog2 > 0 || tileRowsLog2 > 0 {
		bits := tileColsLog2 + tileRowsLog2
		if bits > 0 {
			if _, ok := br.ReadBits(int(bits)); !ok { // context_update_tile_id
				return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at context_update_tile_id")
			}
		}
		if _, ok := br.ReadBits(2); !ok { // tile_size_bytes_minus_1
			return TileInfo{}, averr.New(averr.Truncated, "tile_info truncated at tile_size_bytes_minus_1")
		}
	}

	return ti, nil
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func readDeltaQ(br *bitio.RawBitReader) (int32, error) {
	coded, ok := br.ReadBit()
	if !ok {
		return 0, averr.New(averr.Truncated, "delta_q truncated at delta_coded")
	}
	if coded == 0 {
		return 0, nil
	}
	v, ok := br.ReadSU(7)
	if !ok {
		return 0, averr.New(averr.Truncated, "delta_q truncated at delta_q")
	}
	return v, nil
}

func parseQuantizationParams(br *bitio.RawBitReader, seq obu.SequenceHeader, fh *FrameHeader) error {
	q, ok := br.ReadBits(8)
	if !ok {
		return averr.New(averr.Truncated, "quantization_params truncated at base_q_idx")
	}
	fh.BaseQIndex = int(q)

	dc, err := readDeltaQ(br)
	if err != nil {
		return err
	}
	fh.DeltaQYDc = dc

	numPlanes := 3
	if seq.MonoChrome {
		numPlanes = 1
	}
	if numPlanes > 1 {
		diffUVDelta := uint32(0)
		if seq.SeparateUVDeltaQ {
			b, ok := br.ReadBit()
			if !ok {
				return averr.New(averr.Truncated, "quantization_params truncated at diff_uv_delta")
			}
			diffUVDelta = b
		}
		uDc, err := readDeltaQ(br)
		if err != nil {
			return err
		}
		uAc, err := readDeltaQ(br)
		if err != nil {
			return err
		}
		fh.DeltaQUDc, fh.DeltaQUAc = uDc, uAc
		if diffUVDelta != 0 {
			vDc, err := readDeltaQ(br)
			if err != nil {
				return err
			}
			vAc, err := readDeltaQ(br)
			if err != nil {
				return err
			}
			fh.DeltaQVDc, fh.DeltaQVAc = vDc, vAc
		} else {
			fh.DeltaQVDc, fh.DeltaQVAc = uDc, uAc
		}
	}

	usingQMatrix, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "quantization_params truncated at using_qmatrix")
	}
	if usingQMatrix != 0 {
		if _, ok := br.ReadBits(4); !ok {
			return averr.New(averr.Truncated, "quantization_params truncated at qm_y")
		}
		if _, ok := br.ReadBits(4); !ok {
			return averr.New(averr.Truncated, "quantization_params truncated at qm_u")
		}
		if seq.SeparateUVDeltaQ {
			if _, ok := br.ReadBits(4); !ok {
				return averr.New(averr.Truncated, "quantization_params truncated at qm_v")
			}
		}
	}
	return nil
}

var segFeatureBits = [8]int{8, 6, 6, 6, 6, 3, 0, 0}
var segFeatureSigned = [8]bool{true, true, true, true, true, false, false, false}
var segFeatureMax = [8]int32{255, 63, 63, 63, 63, 7, 0, 0}

func clip32(lo, hi, x int32) int32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func parseSegmentationParams(br *bitio.RawBitReader, fh *FrameHeader) error {
	enabled, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "segmentation_params truncated at segmentation_enabled")
	}
	fh.SegmentationEnabled = enabled != 0
	if !fh.SegmentationEnabled {
		return nil
	}

	// primary_ref_frame is always PRIMARY_REF_NONE for an intra-only frame,
	// so segmentation_update_data is implicitly 1.
	for seg := 0; seg < 8; seg++ {
		for feat := 0; feat < 8; feat++ {
			featureEnabled, ok := br.ReadBit()
			if !ok {
				return averr.New(averr.Truncated, "segmentation_params truncated at feature_enabled")
			}
			if featureEnabled == 0 {
				continue
			}
			bitsToRead := segFeatureBits[feat]
			limit := segFeatureMax[feat]
			var clipped int32
			if segFeatureSigned[feat] {
				v, ok := br.ReadSU(1 + bitsToRead)
				if !ok {
					return averr.New(averr.Truncated, "segmentation_params truncated at signed feature_value")
				}
				clipped = clip32(-limit, limit, v)
			} else {
				var v uint32
				if bitsToRead > 0 {
					vv, ok := br.ReadBits(bitsToRead)
					if !ok {
						return averr.New(averr.Truncated, "segmentation_params truncated at feature_value")
					}
					v = vv
				}
				clipped = clip32(0, limit, int32(v))
			}
			if feat == 0 { // SEG_LVL_ALT_Q
				fh.SegAltQ[seg] = SegmentAltQ{Enabled: true, Value: clipped}
			}
			fh.LastActiveSegID = seg
			if feat >= 5 { // SEG_LVL_REF_FRAME, SEG_LVL_SKIP, SEG_LVL_GLOBALMV
				fh.SegIDPreSkip = true
			}
		}
	}
	return nil
}

func computeCodedLossless(fh *FrameHeader) bool {
	for seg := 0; seg < 8; seg++ {
		qindex := int32(fh.BaseQIndex)
		if fh.SegmentationEnabled && fh.SegAltQ[seg].Enabled {
			qindex += fh.SegAltQ[seg].Value
		}
		qindex = clip32(0, 255, qindex)
		lossless := qindex == 0 && fh.DeltaQYDc == 0 && fh.DeltaQUDc == 0 && fh.DeltaQUAc == 0 && fh.DeltaQVDc == 0 && fh.DeltaQVAc == 0
		if !lossless {
			return false
		}
	}
	return true
}

func parseDeltaQParams(br *bitio.RawBitReader, fh *FrameHeader) error {
	present := uint32(0)
	if fh.BaseQIndex > 0 {
		b, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "delta_q_params truncated at delta_q_present")
		}
		present = b
	}
	fh.DeltaQPresent = present != 0
	if fh.DeltaQPresent {
		res, ok := br.ReadBits(2)
		if !ok {
			return averr.New(averr.Truncated, "delta_q_params truncated at delta_q_res")
		}
		fh.DeltaQRes = int(res)
	}
	return nil
}

func parseDeltaLFParams(br *bitio.RawBitReader, fh *FrameHeader) error {
	if !fh.DeltaQPresent || fh.AllowIntrabc {
		return nil
	}
	present, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "delta_lf_params truncated at delta_lf_present")
	}
	fh.DeltaLFPresent = present != 0
	if fh.DeltaLFPresent {
		res, ok := br.ReadBits(2)
		if !ok {
			return averr.New(averr.Truncated, "delta_lf_params truncated at delta_lf_res")
		}
		fh.DeltaLFRes = int(res)
		multi, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "delta_lf_params truncated at delta_lf_multi")
		}
		fh.DeltaLFMulti = multi != 0
	}
	return nil
}

func skipLoopFilterParams(br *bitio.RawBitReader, monoChrome bool) error {
	level0, ok1 := br.ReadBits(6)
	level1, ok2 := br.ReadBits(6)
	if !ok1 || !ok2 {
		return averr.New(averr.Truncated, "loop_filter_params truncated at level[0/1]")
	}
	if !monoChrome && (level0 != 0 || level1 != 0) {
		if _, ok := br.ReadBits(6); !ok {
			return averr.New(averr.Truncated, "loop_filter_params truncated at level[2]")
		}
		if _, ok := br.ReadBits(6); !ok {
			return averr.New(averr.Truncated, "loop_filter_params truncated at level[3]")
		}
	}
	if _, ok := br.ReadBits(3); !ok { // sharpness
		return averr.New(averr.Truncated, "loop_filter_params truncated at sharpness")
	}
	deltaEnabled, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "loop_filter_params truncated at delta_enabled")
	}
	if deltaEnabled == 0 {
		return nil
	}
	deltaUpdate, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "loop_filter_params truncated at delta_update")
	}
	if deltaUpdate == 0 {
		return nil
	}
	for i := 0; i < 8; i++ {
		update, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "loop_filter_params truncated at update_ref_delta")
		}
		if update != 0 {
			if _, ok := br.ReadSU(7); !ok {
				return averr.New(averr.Truncated, "loop_filter_params truncated at ref_delta")
			}
		}
	}
	for i := 0; i < 2; i++ {
		update, ok := br.ReadBit()
		if !ok {
			return averr.New(averr.Truncated, "loop_filter_params truncated at update_mode_delta")
		}
		if update != 0 {
			if _, ok := br.ReadSU(7); !ok {
				return averr.New(averr.Truncated, "loop_filter_params truncated at mode_delta")
			}
		}
	}
	return nil
}

func skipCDEFParams(br *bitio.RawBitReader, monoChrome bool) (int, error) {
	if _, ok := br.ReadBits(2); !ok { // cdef_damping_minus_3
		return 0, averr.New(averr.Truncated, "cdef_params truncated at damping")
	}
	bits, ok := br.ReadBits(2)
	if !ok {
		return 0, averr.New(averr.Truncated, "cdef_params truncated at cdef_bits")
	}
	n := 1 << bits
	for i := 0; i < n; i++ {
		if _, ok := br.ReadBits(4); !ok {
			return 0, averr.New(averr.Truncated, "cdef_params truncated at y_pri_strength")
		}
		if _, ok := br.ReadBits(2); !ok {
			return 0, averr.New(averr.Truncated, "cdef_params truncated at y_sec_strength")
		}
		if !monoChrome {
			if _, ok := br.ReadBits(4); !ok {
				return 0, averr.New(averr.Truncated, "cdef_params truncated at uv_pri_strength")
			}
			if _, ok := br.ReadBits(2); !ok {
				return 0, averr.New(averr.Truncated, "cdef_params truncated at uv_sec_strength")
			}
		}
	}
	return int(bits), nil
}

func skipLRParams(br *bitio.RawBitReader, seq obu.SequenceHeader) error {
	numPlanes := 3
	if seq.MonoChrome {
		numPlanes = 1
	}
	usesLr := false
	usesChromaLr := false
	for i := 0; i < numPlanes; i++ {
		lrType, ok := br.ReadBits(2)
		if !ok {
			return averr.New(averr.Truncated, "lr_params truncated at lr_type")
		}
		if lrType != 0 {
			usesLr = true
			if i > 0 {
				usesChromaLr = true
			}
		}
	}
	if !usesLr {
		return nil
	}
	shift, ok := br.ReadBit()
	if !ok {
		return averr.New(averr.Truncated, "lr_params truncated at lr_unit_shift")
	}
	if !seq.Use128x128Superblock && shift != 0 {
		if _, ok := br.ReadBit(); !ok {
			return averr.New(averr.Truncated, "lr_params truncated at lr_unit_extra_shift")
		}
	}
	if seq.SubsamplingX != 0 && seq.SubsamplingY != 0 && usesChromaLr {
		if _, ok := br.ReadBit(); !ok {
			return averr.New(averr.Truncated, "lr_params truncated at lr_uv_shift")
		}
	}
	return nil
}
