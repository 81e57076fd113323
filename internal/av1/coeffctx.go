package av1

// planeCtx holds one plane's above/left scratch, per the AV1 spec §3's
// CoeffContext entity: the last culLevel and DC sign category written by
// each decoded transform block, read back by the next block's context
// derivations. Values are clamped at write time (level in [0,63], dc in
// {0,1,2}).
type planeCtx struct {
	aboveLevel, aboveDC []uint8
	leftLevel, leftDC   []uint8
}

// CoeffContext is the per-tile, per-plane coefficient scratch of the AV1 spec
// §3/§4.3. Plane 0 is always materialized at the tile's MI dimensions;
// planes 1/2 are materialized (shifted by subsampling) only when the tile
// is not mono_chrome.
type CoeffContext struct {
	planes [3]planeCtx
	active int // 1 (mono_chrome) or 3
}

// NewCoeffContext allocates scratch for a tile of the given MI dimensions.
func NewCoeffContext(miCols, miRows, subX, subY int, monoChrome bool) *CoeffContext {
	cc := &CoeffContext{active: 1}
	cc.planes[0] = planeCtx{
		aboveLevel: make([]uint8, miCols), aboveDC: make([]uint8, miCols),
		leftLevel: make([]uint8, miRows), leftDC: make([]uint8, miRows),
	}
	if !monoChrome {
		cc.active = 3
		cw := (miCols + subX) >> subX
		ch := (miRows + subY) >> subY
		for p := 1; p <= 2; p++ {
			cc.planes[p] = planeCtx{
				aboveLevel: make([]uint8, cw), aboveDC: make([]uint8, cw),
				leftLevel: make([]uint8, ch), leftDC: make([]uint8, ch),
			}
		}
	}
	return cc
}

// TxbSkipCtx derives the all_zero context for a transform block, per
// the AV1 spec §4.3's plane-0 / plane>0 split.
func (cc *CoeffContext) TxbSkipCtx(plane, x4, y4, w4, h4 int, bwPx, bhPx int, tx TxSize) int {
	p := &cc.planes[plane]
	twPx := 1 << txWidthLog2(tx)
	thPx := 1 << txHeightLog2(tx)

	if plane == 0 {
		top := 0
		for k := 0; k < w4 && x4+k < len(p.aboveLevel); k++ {
			top = maxT(top, int(minT(p.aboveLevel[x4+k], 255)))
		}
		left := 0
		for k := 0; k < h4 && y4+k < len(p.leftLevel); k++ {
			left = maxT(left, int(minT(p.leftLevel[y4+k], 255)))
		}
		if bwPx == twPx && bhPx == thPx {
			return 0
		}
		switch {
		case top == 0 && left == 0:
			return 1
		case top == 0:
			if left > 3 {
				return 3
			}
			return 2
		case left == 0:
			if top > 3 {
				return 3
			}
			return 2
		case top <= 3 && left <= 3:
			return 4
		case top <= 3 || left <= 3:
			return 5
		default:
			return 6
		}
	}

	above := 0
	for k := 0; k < w4 && x4+k < len(p.aboveLevel); k++ {
		if p.aboveLevel[x4+k] != 0 || p.aboveDC[x4+k] != 0 {
			above = 1
		}
	}
	left := 0
	for k := 0; k < h4 && y4+k < len(p.leftLevel); k++ {
		if p.leftLevel[y4+k] != 0 || p.leftDC[y4+k] != 0 {
			left = 1
		}
	}
	ctx := above + left + 7
	if bwPx*bhPx > twPx*thPx {
		ctx += 3
	}
	return ctx
}

// DCSignCtx sums sign contributions across the block's above/left spans,
// per the AV1 spec §4.3: {0=no contribution, 1=negative, 2=positive} per cell,
// reduced to a net ctx of 0 (even/none), 1 (net negative), 2 (net positive).
func (cc *CoeffContext) DCSignCtx(plane, x4, y4, w4, h4 int) int {
	p := &cc.planes[plane]
	sum := 0
	for k := 0; k < w4 && x4+k < len(p.aboveDC); k++ {
		sum += dcCategorySign(p.aboveDC[x4+k])
	}
	for k := 0; k < h4 && y4+k < len(p.leftDC); k++ {
		sum += dcCategorySign(p.leftDC[y4+k])
	}
	switch {
	case sum < 0:
		return 1
	case sum > 0:
		return 2
	default:
		return 0
	}
}

func dcCategorySign(dc uint8) int {
	switch dc {
	case 1:
		return -1
	case 2:
		return 1
	default:
		return 0
	}
}

// sigRefDiffOffset is Sig_Ref_Diff_Offset: the 5 neighbor (row,col) offsets
// used to accumulate the magnitude sum coeff_base_ctx reads, per tx class.
// Reconstructed from the AV1 spec's neighbor pattern (DESIGN.md notes this
// as best-recall, not sourced from a retrieved .inc table).
var sigRefDiffOffset = [3][5][2]int{
	TxClass2D:    {{0, 1}, {1, 0}, {1, 1}, {0, 2}, {2, 0}},
	TxClassHoriz: {{0, 1}, {1, 0}, {0, 2}, {0, 3}, {0, 4}},
	TxClassVert:  {{1, 0}, {0, 1}, {2, 0}, {3, 0}, {4, 0}},
}

// magRefOffset is Mag_Ref_Offset_With_Tx_Class: the 3 neighbor offsets
// coeff_br_ctx sums magnitudes over, per tx class.
var magRefOffset = [3][3][2]int{
	TxClass2D:    {{0, 1}, {1, 0}, {1, 1}},
	TxClassHoriz: {{0, 1}, {1, 0}, {0, 2}},
	TxClassVert:  {{1, 0}, {0, 1}, {2, 0}},
}

func quantAt(quant []int32, row, col, w int) int {
	idx := row*w + col
	if idx < 0 || idx >= len(quant) {
		return 0
	}
	return int(quant[idx])
}

// CoeffBaseCtx derives coeff_base's context for a non-EOB scan position.
func CoeffBaseCtx(class TxClass, w, h, row, col int, quant []int32) int {
	mag := 0
	offs := sigRefDiffOffset[class]
	for _, o := range offs {
		r, c := row+o[0], col+o[1]
		if r < h && c < w {
			mag += minT(absInt(quantAt(quant, r, c, w)), 3)
		}
	}
	ctx := minT(mag>>1, 4)
	if class == TxClass2D {
		if row == 0 && col == 0 {
			return ctx
		}
		if row < 2 && col < 2 {
			ctx += 7
		} else {
			ctx += 14
		}
	} else {
		// HORIZ/VERT: per-diagonal caps {0,1,2}.
		idx := row
		if class == TxClassHoriz {
			idx = col
		}
		ctx = minT(idx, 2) + minT(mag>>1, 2)*3
	}
	return clip3(0, SigCoefContexts-1, ctx)
}

// CoeffBaseEobCtxFromC derives coeff_base_eob's context, which depends only
// on the scan position c via a 4-region split of the adjusted coefficient
// count, per the AV1 spec §4.6 step 4.
func CoeffBaseEobCtxFromC(c, numCoeffs int) int {
	switch {
	case c == 0:
		return 0
	case c <= numCoeffs/8:
		return 1
	case c <= numCoeffs/4:
		return 2
	default:
		return 3
	}
}

// CoeffBrCtx derives coeff_br's context for a scan position.
func CoeffBrCtx(class TxClass, w, h, row, col int, quant []int32) int {
	mag := 0
	for _, o := range magRefOffset[class] {
		r, c := row+o[0], col+o[1]
		if r < h && c < w {
			mag += minT(absInt(quantAt(quant, r, c, w)), CoeffBaseRange+NumBaseLevels+1)
		}
	}
	mag = minT(mag>>1, 6)
	switch class {
	case TxClass2D:
		if row < 2 && col < 2 {
			return clip3(0, LevelContexts-1, mag+7)
		}
		return clip3(0, LevelContexts-1, mag+14)
	case TxClassHoriz:
		if col == 0 {
			return clip3(0, LevelContexts-1, mag+7)
		}
		return clip3(0, LevelContexts-1, mag+14)
	default: // TxClassVert
		if row == 0 {
			return clip3(0, LevelContexts-1, mag+7)
		}
		return clip3(0, LevelContexts-1, mag+14)
	}
}

// UpdateAfterBlock writes culLevel/dcCategory back to the above/left
// scratch across the transform block's w4 columns / h4 rows, per
// the AV1 spec §4.3's closing paragraph and §4.7 step 8.
func (cc *CoeffContext) UpdateAfterBlock(plane, x4, y4, w4, h4 int, culLevel uint8, dcCategory uint8) {
	p := &cc.planes[plane]
	for k := 0; k < w4 && x4+k < len(p.aboveLevel); k++ {
		p.aboveLevel[x4+k] = culLevel
		p.aboveDC[x4+k] = dcCategory
	}
	for k := 0; k < h4 && y4+k < len(p.leftLevel); k++ {
		p.leftLevel[y4+k] = culLevel
		p.leftDC[y4+k] = dcCategory
	}
}
