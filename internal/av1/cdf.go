package av1

// coeffCdfQCtxFromBaseQIdx selects one of the 4 coefficient-CDF quantizer
// buckets from a frame's base_q_idx, mirroring coeff_cdf_q_ctx_from_base_q_idx.
func coeffCdfQCtxFromBaseQIdx(baseQIdx int) int {
	switch {
	case baseQIdx <= 20:
		return 0
	case baseQIdx <= 60:
		return 1
	case baseQIdx <= 120:
		return 2
	default:
		return 3
	}
}

// cdfCopy returns a fresh copy of a default CDF row so per-tile adaptation
// never mutates the package-level default tables.
func cdfCopy(src []uint16) []uint16 {
	dst := make([]uint16, len(src))
	copy(dst, src)
	return dst
}

// TileModeCDFs holds the per-tile adaptive CDFs for all non-coefficient
// syntax elements decoded in the Block Syntax Decoder (the AV1 spec §4.6):
// partition, skip, y_mode, uv_mode, angle_delta, cfl, filter_intra,
// palette, segment_id, tx_depth, delta_q, delta_lf.
type TileModeCDFs struct {
	PartitionW8   [4][]uint16
	PartitionW16  [4][]uint16
	PartitionW32  [4][]uint16
	PartitionW64  [4][]uint16
	PartitionW128 [4][]uint16

	Skip [3][]uint16

	YMode        [4][]uint16
	UVModeCflOff [13][]uint16
	UVModeCflOn  [13][]uint16
	AngleDelta   [8][]uint16

	CflSign  []uint16
	CflAlpha [6][]uint16

	FilterIntraMode []uint16
	FilterIntra     [22][]uint16

	PaletteYMode  [7][3][]uint16
	PaletteUVMode [2][]uint16
	PaletteYSize  [7][]uint16
	PaletteUVSize [7][]uint16

	SegmentID [3][]uint16

	Tx8x8   [3][]uint16
	Tx16x16 [3][]uint16
	Tx32x32 [3][]uint16
	Tx64x64 [3][]uint16

	DeltaQ  []uint16
	DeltaLF []uint16
}

// NewTileModeCDFs returns a fresh, independently-mutable copy of the mode
// default tables, one per tile per the AV1 spec §3's CDF Table Store entity.
func NewTileModeCDFs() *TileModeCDFs {
	t := &TileModeCDFs{}
	for i := range t.PartitionW8 {
		t.PartitionW8[i] = cdfCopy(defaultPartitionW8Cdf[i][:])
		t.PartitionW16[i] = cdfCopy(defaultPartitionW16Cdf[i][:])
		t.PartitionW32[i] = cdfCopy(defaultPartitionW32Cdf[i][:])
		t.PartitionW64[i] = cdfCopy(defaultPartitionW64Cdf[i][:])
		t.PartitionW128[i] = cdfCopy(defaultPartitionW128Cdf[i][:])
	}
	for i := range t.Skip {
		t.Skip[i] = cdfCopy(defaultSkipCdf[i][:])
	}
	for i := range t.YMode {
		t.YMode[i] = cdfCopy(defaultYModeCdf[i][:])
	}
	for i := range t.UVModeCflOff {
		t.UVModeCflOff[i] = cdfCopy(defaultUVModeCflNotAllowedCdf[i][:])
		t.UVModeCflOn[i] = cdfCopy(defaultUVModeCflAllowedCdf[i][:])
	}
	for i := range t.AngleDelta {
		t.AngleDelta[i] = cdfCopy(defaultAngleDeltaCdf[i][:])
	}
	t.CflSign = cdfCopy(defaultCflSignCdf[:])
	for i := range t.CflAlpha {
		t.CflAlpha[i] = cdfCopy(defaultCflAlphaCdf[i][:])
	}
	t.FilterIntraMode = cdfCopy(defaultFilterIntraModeCdf[:])
	for i := range t.FilterIntra {
		t.FilterIntra[i] = cdfCopy(defaultFilterIntraCdf[i][:])
	}
	for i := range t.PaletteYMode {
		for j := range t.PaletteYMode[i] {
			t.PaletteYMode[i][j] = cdfCopy(defaultPaletteYModeCdf[i][j][:])
		}
		t.PaletteYSize[i] = cdfCopy(defaultPaletteYSizeCdf[i][:])
		t.PaletteUVSize[i] = cdfCopy(defaultPaletteUVSizeCdf[i][:])
	}
	for i := range t.PaletteUVMode {
		t.PaletteUVMode[i] = cdfCopy(defaultPaletteUVModeCdf[i][:])
	}
	for i := range t.SegmentID {
		t.SegmentID[i] = cdfCopy(defaultSegmentIdCdf[i][:])
	}
	for i := range t.Tx8x8 {
		t.Tx8x8[i] = cdfCopy(defaultTx8x8Cdf[i][:])
		t.Tx16x16[i] = cdfCopy(defaultTx16x16Cdf[i][:])
		t.Tx32x32[i] = cdfCopy(defaultTx32x32Cdf[i][:])
		t.Tx64x64[i] = cdfCopy(defaultTx64x64Cdf[i][:])
	}
	t.DeltaQ = cdfCopy(defaultDeltaQCdf[:])
	t.DeltaLF = cdfCopy(defaultDeltaLFCdf[:])
	return t
}

// PartitionCdf selects the width-keyed partition CDF row for a context,
// per the AV1 spec §4.5: 128-wide blocks use an 8-outcome variant, 8-wide
// blocks use a 4-outcome variant, the rest use the full 10-outcome set.
func (t *TileModeCDFs) PartitionCdf(bsl, ctx int) []uint16 {
	switch bsl {
	case 1:
		return t.PartitionW8[ctx]
	case 2:
		return t.PartitionW16[ctx]
	case 3:
		return t.PartitionW32[ctx]
	case 4:
		return t.PartitionW64[ctx]
	default:
		return t.PartitionW128[ctx]
	}
}

// TileCoeffCDFs holds the per-tile, per-qctx adaptive CDFs for the
// Coefficient Decoder (the AV1 spec §4.7): one full set of txb_skip/eob_pt_*/
// eob_extra/coeff_base_eob/coeff_base/coeff_br/dc_sign tables selected at
// tile-init time by coeffCdfQCtxFromBaseQIdx and never re-selected for the
// tile's lifetime (only adapted in place).
type TileCoeffCDFs struct {
	TxbSkip       [5][13][]uint16 // [txSzCtx][ctx]
	EobPt16       [2][2][]uint16  // [planeType][ctx]
	EobPt32       [2][2][]uint16
	EobPt64       [2][2][]uint16
	EobPt128      [2][2][]uint16
	EobPt256      [2][2][]uint16
	EobPt512      [2][]uint16
	EobPt1024     [2][]uint16
	EobExtra      [2][5][9][]uint16 // [planeType][txSzCtx][ctx]
	CoeffBaseEob  [2][5][4][]uint16 // [planeType][txSzCtx][ctx]
	CoeffBase     [2][5][42][]uint16
	CoeffBr       [2][5][21][]uint16
	DCSign        [2][3][]uint16
	IntraTxType1  [2][13][]uint16 // [txSzCtx∈{0,1}][yMode]
	IntraTxType2  [3][13][]uint16 // [txSzCtx∈{0,1,2}][yMode]
}

// NewTileCoeffCDFs selects the qctx bucket for baseQIdx and returns an
// independently-mutable copy of its default tables.
func NewTileCoeffCDFs(baseQIdx int) *TileCoeffCDFs {
	q := coeffCdfQCtxFromBaseQIdx(baseQIdx)
	c := &TileCoeffCDFs{}
	for tsz := 0; tsz < 5; tsz++ {
		for ctx := 0; ctx < 13; ctx++ {
			c.TxbSkip[tsz][ctx] = cdfCopy(defaultTxbSkipCdf[q][tsz][ctx][:])
		}
	}
	for pt := 0; pt < 2; pt++ {
		for ctx := 0; ctx < 2; ctx++ {
			c.EobPt16[pt][ctx] = cdfCopy(defaultEobPt16Cdf(pt, q, ctx))
			c.EobPt32[pt][ctx] = cdfCopy(defaultEobPt32Cdf(pt, q, ctx))
			c.EobPt64[pt][ctx] = cdfCopy(defaultEobPt64Cdf(pt, q, ctx))
			c.EobPt128[pt][ctx] = cdfCopy(defaultEobPt128Cdf(pt, q, ctx))
			c.EobPt256[pt][ctx] = cdfCopy(defaultEobPt256Cdf(pt, q, ctx))
		}
		c.EobPt512[pt] = cdfCopy(defaultEobPt512Cdf(pt, q))
		c.EobPt1024[pt] = cdfCopy(defaultEobPt1024Cdf(pt, q))
		for tsz := 0; tsz < 5; tsz++ {
			for ctx := 0; ctx < 9; ctx++ {
				c.EobExtra[pt][tsz][ctx] = cdfCopy(defaultEobExtraCdf(pt, q, tsz, ctx))
			}
			for ctx := 0; ctx < 4; ctx++ {
				c.CoeffBaseEob[pt][tsz][ctx] = cdfCopy(defaultCoeffBaseEobCdf(pt, q, tsz, ctx))
			}
			for ctx := 0; ctx < 42; ctx++ {
				c.CoeffBase[pt][tsz][ctx] = cdfCopy(defaultCoeffBaseCdf(pt, q, tsz, ctx))
			}
			for ctx := 0; ctx < 21; ctx++ {
				c.CoeffBr[pt][tsz][ctx] = cdfCopy(defaultCoeffBrCdf(pt, q, tsz, ctx))
			}
		}
		for ctx := 0; ctx < 3; ctx++ {
			c.DCSign[pt][ctx] = cdfCopy(defaultDCSignCdf(pt, q, ctx))
		}
	}
	for tsz := 0; tsz < 2; tsz++ {
		for m := 0; m < 13; m++ {
			c.IntraTxType1[tsz][m] = cdfCopy(defaultIntraTxTypeSet1Cdf[tsz][m][:])
		}
	}
	for tsz := 0; tsz < 3; tsz++ {
		for m := 0; m < 13; m++ {
			c.IntraTxType2[tsz][m] = cdfCopy(defaultIntraTxTypeSet2Cdf[tsz][m][:])
		}
	}
	return c
}
