package av1

// miCell is one 4x4 MI unit's worth of scratch used only for deriving later
// blocks' contexts — never for pixel reconstruction.
type miCell struct {
	wlog2, hlog2   int8
	skip           bool
	yMode          YMode
	paletteYSize   uint8
	paletteUVSize  uint8
	segmentID      int16
	valid          bool // false for cells never written (tile start)
}

// MiGrid is the tile-wide per-MI scratch of the AV1 spec §3/§4.4: it records
// just enough of each decoded block to derive the next block's partition,
// skip, segment, and palette contexts. Dimensions are fixed at
// construction to the tile's MI rectangle; all cells start zero/invalid.
type MiGrid struct {
	cols, rows int
	cells      []miCell
}

// NewMiGrid allocates a grid sized to the tile's MI rectangle.
func NewMiGrid(cols, rows int) *MiGrid {
	return &MiGrid{cols: cols, rows: rows, cells: make([]miCell, cols*rows)}
}

func (g *MiGrid) at(r, c int) (*miCell, bool) {
	if r < 0 || c < 0 || r >= g.rows || c >= g.cols {
		return nil, false
	}
	return &g.cells[r*g.cols+c], true
}

// FillBlock writes shared per-MI fields across the rectangular region a
// decoded leaf block covers, mirroring mi_fill_block/mi_set_*_block.
func (g *MiGrid) FillBlock(r, c, wlog2, hlog2 int, skip bool, yMode YMode, paletteY, paletteUV uint8, segmentID int) {
	w4 := 1 << wlog2
	h4 := 1 << hlog2
	for rr := r; rr < minT(r+h4, g.rows); rr++ {
		for cc := c; cc < minT(c+w4, g.cols); cc++ {
			cell, ok := g.at(rr, cc)
			if !ok {
				continue
			}
			cell.wlog2 = int8(wlog2)
			cell.hlog2 = int8(hlog2)
			cell.skip = skip
			cell.yMode = yMode
			cell.paletteYSize = paletteY
			cell.paletteUVSize = paletteUV
			cell.segmentID = int16(segmentID)
			cell.valid = true
		}
	}
}

// SetSegmentID overwrites only the segment id across a block's region,
// used by the pre-skip/post-skip segment_id split in the AV1 spec §4.6 steps 1/3.
func (g *MiGrid) SetSegmentID(r, c, wlog2, hlog2, segmentID int) {
	w4 := 1 << wlog2
	h4 := 1 << hlog2
	for rr := r; rr < minT(r+h4, g.rows); rr++ {
		for cc := c; cc < minT(c+w4, g.cols); cc++ {
			if cell, ok := g.at(rr, cc); ok {
				cell.segmentID = int16(segmentID)
			}
		}
	}
}

// PartitionCtx derives the 4-context (0..3) partition context at (r,c) for
// a node of block-size-log2 bsl, per the AV1 spec §4.4: ctx = 2*left + above,
// where above/left are true when the corresponding neighbor's recorded
// size-log2 is smaller than bsl (absent neighbors count as false).
func (g *MiGrid) PartitionCtx(r, c, bsl int) int {
	above := false
	if cell, ok := g.at(r-1, c); ok && cell.valid {
		above = int(cell.wlog2) < bsl
	}
	left := false
	if cell, ok := g.at(r, c-1); ok && cell.valid {
		left = int(cell.hlog2) < bsl
	}
	ctx := 0
	if left {
		ctx += 2
	}
	if above {
		ctx++
	}
	return ctx
}

// SkipCtx sums the above/left neighbors' skip bits, clamped to [0,2] by
// construction (each side contributes at most 1).
func (g *MiGrid) SkipCtx(r, c int) int {
	ctx := 0
	if cell, ok := g.at(r-1, c); ok && cell.valid && cell.skip {
		ctx++
	}
	if cell, ok := g.at(r, c-1); ok && cell.valid && cell.skip {
		ctx++
	}
	return ctx
}

// PaletteYCtx sums whether the above/left neighbors used a luma palette.
func (g *MiGrid) PaletteYCtx(r, c int) int {
	ctx := 0
	if cell, ok := g.at(r-1, c); ok && cell.valid && cell.paletteYSize > 0 {
		ctx++
	}
	if cell, ok := g.at(r, c-1); ok && cell.valid && cell.paletteYSize > 0 {
		ctx++
	}
	return ctx
}

// neighborSeg reads a neighbor's segment id, or -1 if out of bounds/unset,
// matching the "availability as -1" rule the AV1 spec §4.4 describes.
func (g *MiGrid) neighborSeg(r, c int) int {
	cell, ok := g.at(r, c)
	if !ok || !cell.valid {
		return -1
	}
	return int(cell.segmentID)
}

// SegmentIDCtxAndPred derives the 3-way segment_id context and predicted
// value from the UL/U/L neighbors, per the AV1 spec §4.4's tri-comparison rule.
func (g *MiGrid) SegmentIDCtxAndPred(r, c int) (ctx, pred int) {
	ul := g.neighborSeg(r-1, c-1)
	u := g.neighborSeg(r-1, c)
	l := g.neighborSeg(r, c-1)

	switch {
	case u == -1 && l == -1:
		return 0, 0
	case u == -1:
		pred = l
	case l == -1:
		pred = u
	default:
		if ul == u && ul == l {
			pred = u
		} else if ul == u || ul == l || u == l {
			if ul == u {
				pred = u
			} else if ul == l {
				pred = l
			} else {
				pred = u
			}
		} else {
			pred = minT(u, l)
		}
	}

	switch {
	case u == -1 || l == -1:
		ctx = 0
	case u == l && u == ul:
		ctx = 2
	case u == l || u == ul || l == ul:
		ctx = 1
	default:
		ctx = 0
	}
	return ctx, pred
}

// SizeGroup buckets a block's (wlog2,hlog2) into one of the 4 y_mode size
// groups, per the AV1 spec §4.6 step 5: classification by max MI dimension.
func SizeGroup(wlog2, hlog2 int) int {
	maxDim := maxT(wlog2, hlog2)
	switch {
	case maxDim <= 0:
		return 0
	case maxDim == 1:
		return 1
	case maxDim <= 2:
		return 2
	default:
		return 3
	}
}

// IntraDirectionalIndex maps a directional YMode to its 0..7 angle_delta
// CDF row index.
func IntraDirectionalIndex(m YMode) int {
	return int(m) - int(ModeV)
}
