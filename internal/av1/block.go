package av1

import (
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
)

// intraFilterModeMap implements the AV1 spec §4.6 step 12's filter-intra
// direction override: {DC, V, H, D157, DC}, indexed by the 5-way
// filter_intra_mode symbol.
var intraFilterModeMap = [5]YMode{ModeDC, ModeV, ModeH, ModeD157, ModeDC}

// cflVIndexFromSign maps a CFL alpha-sign triple's V component to its
// alpha CDF context row, per the AV1 spec §4.6 step 7's table.
var cflVIndexFromSign = map[int]int{0: 0, 1: 3, 3: 1, 4: 4, 6: 2, 7: 5}

// BlockResult is what the Probe Driver observes from one decoded leaf
// block, per the AV1 spec §6.4.
type BlockResult struct {
	R, C           int
	Wlog2, Hlog2   int
	SegmentID      int
	Skip           bool
	YMode          YMode
	AngleDeltaY    int
	UVMode         YMode
	AngleDeltaUV   int
	CflAlphaU      int
	CflAlphaV      int
	PaletteDetected bool
	UseFilterIntra bool
	FilterIntraMode int
	TxSize         TxSize
	TxType         TxType
	LumaCoeffs     []*CoeffBlockResult
	ChromaCoeffs   []*CoeffBlockResult
}

// BlockDecoder implements the Block Syntax Decoder of the AV1 spec §4.6.
type BlockDecoder struct {
	sd     *bitio.SymbolDecoder
	grid   *MiGrid
	mode   *TileModeCDFs
	coeffs *TileCoeffCDFs
	ctx    *CoeffContext
	params *TileParams

	sbDeltasRead map[[2]int]bool // superblock (r,c) -> deltas consumed
	cdefRead     map[[2]int]bool // 64x64 region origin -> cdef_idx consumed
	currentQIdx  int
	deltaLFState [4]int
}

// NewBlockDecoder binds a block decoder to one tile's shared state.
func NewBlockDecoder(sd *bitio.SymbolDecoder, grid *MiGrid, mode *TileModeCDFs, coeffs *TileCoeffCDFs, ctx *CoeffContext, params *TileParams) *BlockDecoder {
	return &BlockDecoder{
		sd: sd, grid: grid, mode: mode, coeffs: coeffs, ctx: ctx, params: params,
		sbDeltasRead: make(map[[2]int]bool),
		cdefRead:     make(map[[2]int]bool),
		currentQIdx:  params.BaseQIndex,
	}
}

// Decode runs the AV1 spec §4.6's 13-step algorithm for one leaf block.
func (bd *BlockDecoder) Decode(r, c, wlog2, hlog2 int) (*BlockResult, error) {
	res := &BlockResult{R: r, C: c, Wlog2: wlog2, Hlog2: hlog2, TxType: TxTypeDCTDCT}

	sbBsl := bd.params.sbBsl()
	sbR := (r >> uint(sbBsl)) << uint(sbBsl)
	sbC := (c >> uint(sbBsl)) << uint(sbBsl)
	sbKey := [2]int{sbR, sbC}

	segCtx, segPred := bd.grid.SegmentIDCtxAndPred(r, c)
	segmentID := 0

	// Step 1: pre-skip segment_id.
	if bd.params.SegmentationEnabled && bd.params.SegIDPreSkip {
		sid, err := bd.readSegmentID(segCtx, segPred)
		if err != nil {
			return nil, err
		}
		segmentID = sid
		bd.grid.SetSegmentID(r, c, wlog2, hlog2, segmentID)
	}

	// Step 2: skip.
	skipCtx := bd.grid.SkipCtx(r, c)
	skipSym, err := bd.sd.ReadSymbol(bd.mode.Skip[skipCtx], 2)
	if err != nil {
		return nil, err
	}
	skip := skipSym == 1
	res.Skip = skip

	// Step 3: post-skip segment_id.
	if bd.params.SegmentationEnabled && !bd.params.SegIDPreSkip {
		if skip {
			segmentID = segPred
		} else {
			sid, err := bd.readSegmentID(segCtx, segPred)
			if err != nil {
				return nil, err
			}
			segmentID = sid
		}
		bd.grid.SetSegmentID(r, c, wlog2, hlog2, segmentID)
	}
	res.SegmentID = segmentID

	// Step 4: per-superblock deltas, first block only.
	if !bd.sbDeltasRead[sbKey] {
		if bd.params.DeltaQPresent {
			if err := bd.readDeltaQIndex(); err != nil {
				return nil, err
			}
			if bd.params.DeltaLFPresent {
				if err := bd.readDeltaLF(); err != nil {
					return nil, err
				}
			}
		}
		bd.sbDeltasRead[sbKey] = true
	}
	if err := bd.maybeReadCdef(r, c); err != nil {
		return nil, err
	}

	lossless := bd.params.CodedLossless

	// Step 5: y_mode.
	sizeGroup := SizeGroup(wlog2, hlog2)
	yModeSym, err := bd.sd.ReadSymbol(bd.mode.YMode[sizeGroup], 13)
	if err != nil {
		return nil, err
	}
	yMode := YMode(yModeSym)
	res.YMode = yMode

	// Step 6: angle_delta_y.
	if isDirectionalMode(yMode) {
		idx := IntraDirectionalIndex(yMode)
		sym, err := bd.sd.ReadSymbol(bd.mode.AngleDelta[idx], 7)
		if err != nil {
			return nil, err
		}
		res.AngleDeltaY = int(sym) - 3
	}

	bwPx := 4 << wlog2
	bhPx := 4 << hlog2

	// Step 7: uv_mode + CFL.
	uvMode := yMode
	if !bd.params.MonoChrome {
		sx, sy := bd.params.SubsamplingX, bd.params.SubsamplingY
		chromaW := bwPx >> sx
		chromaH := bhPx >> sy
		cflAllowed := (chromaW <= 32 && chromaH <= 32) || (lossless && chromaW == 4 && chromaH == 4)
		var sym uint32
		if cflAllowed {
			sym, err = bd.sd.ReadSymbol(bd.mode.UVModeCflOn[yMode], 14)
		} else {
			sym, err = bd.sd.ReadSymbol(bd.mode.UVModeCflOff[yMode], 13)
		}
		if err != nil {
			return nil, err
		}
		uvMode = YMode(sym)
		if uvMode == 13 {
			uvMode = ModeUVCFL
		}
		res.UVMode = uvMode

		if uvMode == ModeUVCFL && cflAllowed {
			signSym, err := bd.sd.ReadSymbol(bd.mode.CflSign, 8)
			if err != nil {
				return nil, err
			}
			s := int(signSym)
			signU := (s + 1) / 3
			signV := (s + 1) % 3
			if signU != 0 {
				ctxU := s - 2
				if ctxU < 0 {
					ctxU = 0
				}
				a, err := bd.sd.ReadSymbol(bd.mode.CflAlpha[ctxU], 16)
				if err != nil {
					return nil, err
				}
				mag := int(a) + 1
				if signU == 1 {
					mag = -mag
				}
				res.CflAlphaU = mag
			}
			if signV != 0 {
				ctxV := cflVIndexFromSign[s]
				a, err := bd.sd.ReadSymbol(bd.mode.CflAlpha[ctxV], 16)
				if err != nil {
					return nil, err
				}
				mag := int(a) + 1
				if signV == 1 {
					mag = -mag
				}
				res.CflAlphaV = mag
			}
		}

		// Step 8: angle_delta_uv.
		if isDirectionalMode(uvMode) {
			idx := IntraDirectionalIndex(uvMode)
			sym, err := bd.sd.ReadSymbol(bd.mode.AngleDelta[idx], 7)
			if err != nil {
				return nil, err
			}
			res.AngleDeltaUV = int(sym) - 3
		}
	}

	paletteYSize := uint8(0)
	paletteUVSize := uint8(0)

	// Step 9: palette_mode_info.
	if bd.params.AllowScreenContentTools && wlog2 >= 1 && hlog2 >= 1 && bwPx <= 64 && bhPx <= 64 && yMode == ModeDC {
		bsizeCtx := paletteBsizeCtx(wlog2, hlog2)
		neighCtx := bd.grid.PaletteYCtx(r, c)
		hasY, err := bd.sd.ReadSymbol(bd.mode.PaletteYMode[bsizeCtx][neighCtx], 2)
		if err != nil {
			return nil, err
		}
		if hasY == 1 {
			szSym, err := bd.sd.ReadSymbol(bd.mode.PaletteYSize[bsizeCtx], 7)
			if err != nil {
				return nil, err
			}
			paletteYSize = uint8(szSym) + 2
			res.PaletteDetected = true
		}
		if !bd.params.MonoChrome && uvMode == ModeDC {
			uvCtx := 0
			if paletteYSize > 0 {
				uvCtx = 1
			}
			hasUV, err := bd.sd.ReadSymbol(bd.mode.PaletteUVMode[uvCtx], 2)
			if err != nil {
				return nil, err
			}
			if hasUV == 1 {
				szSym, err := bd.sd.ReadSymbol(bd.mode.PaletteUVSize[bsizeCtx], 7)
				if err != nil {
					return nil, err
				}
				paletteUVSize = uint8(szSym) + 2
				res.PaletteDetected = true
			}
		}
	}

	miSize, _ := miSizeFromLog2(wlog2, hlog2)
	bd.grid.FillBlock(r, c, wlog2, hlog2, skip, yMode, paletteYSize, paletteUVSize, segmentID)

	if res.PaletteDetected {
		// Palette color payload is out of scope: surface the milestone and
		// stop parsing this block, per the AV1 spec §4.6 step 9.
		return res, averr.New(averr.UnsupportedFeature, "palette mode detected; color payload not decoded")
	}

	// Step 10: filter_intra_mode_info.
	maxDim := bwPx
	if bhPx > maxDim {
		maxDim = bhPx
	}
	if bd.params.EnableFilterIntra && yMode == ModeDC && maxDim <= 32 && paletteYSize == 0 {
		use, err := bd.sd.ReadSymbol(bd.mode.FilterIntra[miSize], 2)
		if err != nil {
			return nil, err
		}
		if use == 1 {
			res.UseFilterIntra = true
			fiSym, err := bd.sd.ReadSymbol(bd.mode.FilterIntraMode, 5)
			if err != nil {
				return nil, err
			}
			res.FilterIntraMode = int(fiSym)
		}
	}

	// Step 11: read_tx_size.
	var tx TxSize
	if lossless {
		tx = Tx4x4
	} else {
		tx = maxTxSizeRectFromMiSize(miSize)
		if bd.params.TxMode == TxModeSelect && !(wlog2 == 0 && hlog2 == 0) {
			maxDepth := minT(maxTxDepthFromMiSize(miSize), 2)
			depth := 0
			if maxDepth > 0 {
				var depthSym uint32
				var err error
				switch {
				case maxDepth == 1:
					depthSym, err = bd.sd.ReadSymbol(bd.mode.Tx8x8[txSizeCtxGroup(miSize)], 2)
				default:
					depthSym, err = bd.readTxDepthN(miSize)
				}
				if err != nil {
					return nil, err
				}
				depth = int(depthSym)
			}
			for i := 0; i < depth; i++ {
				tx = splitTxSize(tx)
			}
		} else if bd.params.TxMode == TxModeOnly4x4 {
			tx = Tx4x4
		}
	}
	res.TxSize = tx

	// Step 12: transform_type.
	txType := TxTypeDCTDCT
	txSet := getTxSetIntra(tx, bd.params.ReducedTxSet)
	if !lossless && txSizeSqrUp(tx) <= Tx32x32 && txSet != TxSetDCTOnly && bd.currentQIdx != 0 {
		intraDir := yMode
		if res.UseFilterIntra {
			intraDir = intraFilterModeMap[res.FilterIntraMode]
		}
		sq := int(txSizeSqr(tx))
		var sym uint32
		var err error
		switch txSet {
		case TxSetIntra1:
			sym, err = bd.sd.ReadSymbol(bd.coeffs.IntraTxType1[minT(sq, 1)][intraDir], 7)
			if err == nil {
				txType = intraTxTypeSet1[sym]
			}
		case TxSetIntra2:
			sym, err = bd.sd.ReadSymbol(bd.coeffs.IntraTxType2[minT(sq, 2)][intraDir], 5)
			if err == nil {
				txType = intraTxTypeSet2[sym]
			}
		}
		if err != nil {
			return nil, err
		}
	}
	res.TxType = txType

	// Step 13: coeffs, unless skip suppresses them.
	if skip {
		return res, nil
	}

	cd := NewCoeffDecoder(bd.sd, bd.ctx, bd.coeffs)
	w4 := 1 << wlog2
	h4 := 1 << hlog2
	txW4 := 1 << (txWidthLog2(tx) - 2)
	txH4 := 1 << (txHeightLog2(tx) - 2)
	for ty := 0; ty < h4; ty += txH4 {
		for tx4 := 0; tx4 < w4; tx4 += txW4 {
			blk, err := cd.Decode(0, c+tx4, r+ty, txW4, txH4, 4<<uint(txWidthLog2(tx)-2), 4<<uint(txHeightLog2(tx)-2), tx, txType)
			if err != nil {
				return nil, err
			}
			res.LumaCoeffs = append(res.LumaCoeffs, blk)
		}
	}

	if !bd.params.MonoChrome {
		sx, sy := bd.params.SubsamplingX, bd.params.SubsamplingY
		for plane := 1; plane <= 2; plane++ {
			cTx := getTxSizeForPlane(plane, tx, wlog2, hlog2, sx, sy)
			cw4 := maxT(1<<uint(maxT(wlog2-sx, 0)), 1)
			ch4 := maxT(1<<uint(maxT(hlog2-sy, 0)), 1)
			ctxW4 := 1 << (txWidthLog2(cTx) - 2)
			ctxH4 := 1 << (txHeightLog2(cTx) - 2)
			baseX4 := c >> uint(sx)
			baseY4 := r >> uint(sy)
			for ty := 0; ty < int(ch4); ty += ctxH4 {
				for tx4 := 0; tx4 < int(cw4); tx4 += ctxW4 {
					blk, err := cd.Decode(plane, baseX4+tx4, baseY4+ty, ctxW4, ctxH4, 4<<uint(txWidthLog2(cTx)-2), 4<<uint(txHeightLog2(cTx)-2), cTx, TxTypeDCTDCT)
					if err != nil {
						return nil, err
					}
					res.ChromaCoeffs = append(res.ChromaCoeffs, blk)
				}
			}
		}
	}

	return res, nil
}

// readSegmentID decodes a segment index difference and recovers the
// segment via neg_deinterleave, per the AV1 spec §4.4/§4.6 step 1/3.
func (bd *BlockDecoder) readSegmentID(ctx, pred int) (int, error) {
	max := bd.params.LastActiveSegID + 1
	sym, err := bd.sd.ReadSymbol(bd.mode.SegmentID[ctx], max)
	if err != nil {
		return 0, err
	}
	return negDeinterleave(int(sym), pred, max), nil
}

// readDeltaQIndex implements the AV1 spec §4.6 step 4's read_delta_qindex.
func (bd *BlockDecoder) readDeltaQIndex() error {
	sym, err := bd.sd.ReadSymbol(bd.mode.DeltaQ, 4)
	if err != nil {
		return err
	}
	abs := int(sym)
	if abs == DeltaQSmall {
		remBits, err := bd.sd.ReadLiteral(3)
		if err != nil {
			return err
		}
		absBits, err := bd.sd.ReadLiteral(int(remBits) + 1)
		if err != nil {
			return err
		}
		abs = int(absBits) + (1 << (int(remBits) + 1)) + 1
	}
	if abs != 0 {
		signBit, err := bd.sd.ReadLiteral(1)
		if err != nil {
			return err
		}
		delta := abs << uint(bd.params.DeltaQRes)
		if signBit == 1 {
			delta = -delta
		}
		bd.currentQIdx = clip3(1, 255, bd.currentQIdx+delta)
	}
	return nil
}

// readDeltaLF implements the AV1 spec §4.6 step 4's read_delta_lf, looping
// over the frame's independent delta_lf channels.
func (bd *BlockDecoder) readDeltaLF() error {
	count := bd.params.FrameLFCount()
	for i := 0; i < count; i++ {
		cdf := bd.mode.DeltaLF
		sym, err := bd.sd.ReadSymbol(cdf, 4)
		if err != nil {
			return err
		}
		abs := int(sym)
		if abs == DeltaLfSmall {
			remBits, err := bd.sd.ReadLiteral(3)
			if err != nil {
				return err
			}
			absBits, err := bd.sd.ReadLiteral(int(remBits) + 1)
			if err != nil {
				return err
			}
			abs = int(absBits) + (1 << (int(remBits) + 1)) + 1
		}
		if abs != 0 {
			signBit, err := bd.sd.ReadLiteral(1)
			if err != nil {
				return err
			}
			delta := abs << uint(bd.params.DeltaLFRes)
			if signBit == 1 {
				delta = -delta
			}
			bd.deltaLFState[i] = clip3(-63, 63, bd.deltaLFState[i]+delta)
		}
	}
	return nil
}

// maybeReadCdef reads a cdef_idx literal once per 64x64 region within a
// superblock, per the AV1 spec §4.6 step 4.
func (bd *BlockDecoder) maybeReadCdef(r, c int) error {
	if bd.params.CodedLossless || !bd.params.EnableCDEF {
		return nil
	}
	regionR := (r >> 4) << 4
	regionC := (c >> 4) << 4
	key := [2]int{regionR, regionC}
	if bd.cdefRead[key] {
		return nil
	}
	bd.cdefRead[key] = true
	_, err := bd.sd.ReadLiteral(bd.params.CDEFBits)
	return err
}

func paletteBsizeCtx(wlog2, hlog2 int) int {
	maxDim := maxT(wlog2, hlog2)
	minDim := minT(wlog2, hlog2)
	ctx := maxDim + minDim - 2
	return clip3(0, 6, ctx)
}

func txSizeCtxGroup(sz MiSize) int {
	maxDim := maxT(int(kTxWidthLog2[kMaxTxSizeRect[sz]]), int(kTxHeightLog2[kMaxTxSizeRect[sz]]))
	return clip3(0, 2, maxDim-2)
}

// readTxDepthN reads a 3-symbol tx_depth from the size-tier CDF matching
// the block's max_tx_size_rect square-up class.
func (bd *BlockDecoder) readTxDepthN(sz MiSize) (uint32, error) {
	tx := kMaxTxSizeRect[sz]
	switch txSizeSqrUp(tx) {
	case Tx16x16:
		return bd.sd.ReadSymbol(bd.mode.Tx16x16[txSizeCtxGroup(sz)], 3)
	case Tx32x32:
		return bd.sd.ReadSymbol(bd.mode.Tx32x32[txSizeCtxGroup(sz)], 3)
	default:
		return bd.sd.ReadSymbol(bd.mode.Tx64x64[txSizeCtxGroup(sz)], 3)
	}
}

// getTxSetIntra mirrors get_tx_set_intra: DCTONLY above 32x32 square-up,
// INTRA_2 when reduced or at 16x16 square, else INTRA_1.
func getTxSetIntra(tx TxSize, reducedTxSet bool) TxSet {
	sqUp := txSizeSqrUp(tx)
	if sqUp > Tx32x32 {
		return TxSetDCTOnly
	}
	if reducedTxSet {
		return TxSetIntra2
	}
	if txSizeSqr(tx) == Tx16x16 {
		return TxSetIntra2
	}
	return TxSetIntra1
}

// intraTxTypeSet1/2 invert the CDF symbol back to a TxType, per the AV1 spec
// §4.6 step 12's {IDTX, DCT_DCT, V_DCT, H_DCT, ADST_ADST, ADST_DCT, DCT_ADST}
// permutation (set1 has all 7; set2 has 5, omitting V_DCT and H_DCT).
var intraTxTypeSet1 = [7]TxType{
	TxTypeIDTX, TxTypeDCTDCT, TxTypeVDCT, TxTypeHDCT,
	TxTypeADSTADST, TxTypeADSTDCT, TxTypeDCTADST,
}

var intraTxTypeSet2 = [5]TxType{
	TxTypeIDTX, TxTypeDCTDCT, TxTypeADSTADST, TxTypeADSTDCT, TxTypeDCTADST,
}
