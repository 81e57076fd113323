package av1

// TxSize enumerates the 19 AV1 transform block shapes (TX_SIZES_ALL).
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
	Tx64x64
	Tx4x8
	Tx8x4
	Tx8x16
	Tx16x8
	Tx16x32
	Tx32x16
	Tx32x64
	Tx64x32
	Tx4x16
	Tx16x4
	Tx8x32
	Tx32x8
	Tx16x64
	Tx64x16
	numTxSizes
)

// MiSize enumerates the 22 AV1 luma block sizes (BLOCK_SIZES_ALL) reachable
// by this kernel's intra-only partition tree.
type MiSize int

const (
	Block4x4 MiSize = iota
	Block4x8
	Block8x4
	Block8x8
	Block8x16
	Block16x8
	Block16x16
	Block16x32
	Block32x16
	Block32x32
	Block32x64
	Block64x32
	Block64x64
	Block64x128
	Block128x64
	Block128x128
	Block4x16
	Block16x4
	Block8x32
	Block32x8
	Block16x64
	Block64x16
	numMiSizes
)

// kTxWidthLog2 and kTxHeightLog2 are AV1's Tx_Width_Log2 / Tx_Height_Log2.
var kTxWidthLog2 = [numTxSizes]int{
	Tx4x4: 2, Tx8x8: 3, Tx16x16: 4, Tx32x32: 5, Tx64x64: 6,
	Tx4x8: 2, Tx8x4: 3, Tx8x16: 3, Tx16x8: 4, Tx16x32: 4, Tx32x16: 5, Tx32x64: 5, Tx64x32: 6,
	Tx4x16: 2, Tx16x4: 4, Tx8x32: 3, Tx32x8: 5, Tx16x64: 4, Tx64x16: 6,
}

var kTxHeightLog2 = [numTxSizes]int{
	Tx4x4: 2, Tx8x8: 3, Tx16x16: 4, Tx32x32: 5, Tx64x64: 6,
	Tx4x8: 3, Tx8x4: 2, Tx8x16: 4, Tx16x8: 3, Tx16x32: 5, Tx32x16: 4, Tx32x64: 6, Tx64x32: 5,
	Tx4x16: 4, Tx16x4: 2, Tx8x32: 5, Tx32x8: 3, Tx16x64: 6, Tx64x16: 4,
}

// kTxSizeSqr is Tx_Size_Sqr: the square tx size with side = min(w,h).
var kTxSizeSqr = [numTxSizes]TxSize{
	Tx4x4: Tx4x4, Tx8x8: Tx8x8, Tx16x16: Tx16x16, Tx32x32: Tx32x32, Tx64x64: Tx64x64,
	Tx4x8: Tx4x4, Tx8x4: Tx4x4, Tx8x16: Tx8x8, Tx16x8: Tx8x8, Tx16x32: Tx16x16, Tx32x16: Tx16x16, Tx32x64: Tx32x32, Tx64x32: Tx32x32,
	Tx4x16: Tx4x4, Tx16x4: Tx4x4, Tx8x32: Tx8x8, Tx32x8: Tx8x8, Tx16x64: Tx16x16, Tx64x16: Tx16x16,
}

// kTxSizeSqrUp is Tx_Size_Sqr_Up: the square tx size with side = max(w,h).
var kTxSizeSqrUp = [numTxSizes]TxSize{
	Tx4x4: Tx4x4, Tx8x8: Tx8x8, Tx16x16: Tx16x16, Tx32x32: Tx32x32, Tx64x64: Tx64x64,
	Tx4x8: Tx8x8, Tx8x4: Tx8x8, Tx8x16: Tx16x16, Tx16x8: Tx16x16, Tx16x32: Tx32x32, Tx32x16: Tx32x32, Tx32x64: Tx64x64, Tx64x32: Tx64x64,
	Tx4x16: Tx16x16, Tx16x4: Tx16x16, Tx8x32: Tx32x32, Tx32x8: Tx32x32, Tx16x64: Tx64x64, Tx64x16: Tx64x64,
}

// kAdjustedTxSize is Adjusted_Tx_Size: tx sizes with a 64-side dimension are
// coded using the 32-side transform (the high frequencies are implicitly
// zero), so this maps each tx size to the one actually used for coefficient
// coding.
var kAdjustedTxSize = [numTxSizes]TxSize{
	Tx4x4: Tx4x4, Tx8x8: Tx8x8, Tx16x16: Tx16x16, Tx32x32: Tx32x32, Tx64x64: Tx32x32,
	Tx4x8: Tx4x8, Tx8x4: Tx8x4, Tx8x16: Tx8x16, Tx16x8: Tx16x8, Tx16x32: Tx16x32, Tx32x16: Tx32x16, Tx32x64: Tx32x32, Tx64x32: Tx32x32,
	Tx4x16: Tx4x16, Tx16x4: Tx16x4, Tx8x32: Tx8x32, Tx32x8: Tx32x8, Tx16x64: Tx16x32, Tx64x16: Tx32x16,
}

// kMaxTxSizeRect is Max_Tx_Size_Rect, indexed by MiSize.
var kMaxTxSizeRect = [numMiSizes]TxSize{
	Block4x4: Tx4x4, Block4x8: Tx4x8, Block8x4: Tx8x4, Block8x8: Tx8x8,
	Block8x16: Tx8x16, Block16x8: Tx16x8, Block16x16: Tx16x16, Block16x32: Tx16x32,
	Block32x16: Tx32x16, Block32x32: Tx32x32, Block32x64: Tx32x64, Block64x32: Tx64x32,
	Block64x64: Tx64x64, Block64x128: Tx64x64, Block128x64: Tx64x64, Block128x128: Tx64x64,
	Block4x16: Tx4x16, Block16x4: Tx16x4, Block8x32: Tx8x32, Block32x8: Tx32x8,
	Block16x64: Tx16x64, Block64x16: Tx64x16,
}

// kSplitTxSize is Split_Tx_Size: the tx size after one recursive split.
var kSplitTxSize = [numTxSizes]TxSize{
	Tx4x4: Tx4x4, Tx8x8: Tx4x4, Tx16x16: Tx8x8, Tx32x32: Tx16x16, Tx64x64: Tx32x32,
	Tx4x8: Tx4x4, Tx8x4: Tx4x4, Tx8x16: Tx8x8, Tx16x8: Tx8x8, Tx16x32: Tx16x16, Tx32x16: Tx16x16, Tx32x64: Tx32x32, Tx64x32: Tx32x32,
	Tx4x16: Tx4x8, Tx16x4: Tx8x4, Tx8x32: Tx8x16, Tx32x8: Tx16x8, Tx16x64: Tx16x32, Tx64x16: Tx32x16,
}

// kMaxTxDepth is Max_Tx_Depth, indexed by MiSize.
var kMaxTxDepth = [numMiSizes]int{
	0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 4, 4, 4, 2, 2, 3, 3, 4, 4,
}

// miSizeOf maps (wlog2, hlog2) — log2 of a block's width/height in 4x4 MI
// units — to the MiSize enum. wlog2/hlog2 in [0,5].
var miSizeOf = map[[2]int]MiSize{
	{0, 0}: Block4x4, {0, 1}: Block4x8, {1, 0}: Block8x4, {1, 1}: Block8x8,
	{1, 2}: Block8x16, {2, 1}: Block16x8, {2, 2}: Block16x16, {2, 3}: Block16x32,
	{3, 2}: Block32x16, {3, 3}: Block32x32, {3, 4}: Block32x64, {4, 3}: Block64x32,
	{4, 4}: Block64x64, {4, 5}: Block64x128, {5, 4}: Block128x64, {5, 5}: Block128x128,
	{0, 2}: Block4x16, {2, 0}: Block16x4, {1, 3}: Block8x32, {3, 1}: Block32x8,
	{2, 4}: Block16x64, {4, 2}: Block64x16,
}

func miSizeFromLog2(wlog2, hlog2 int) (MiSize, bool) {
	m, ok := miSizeOf[[2]int{wlog2, hlog2}]
	return m, ok
}

func maxTxSizeRectFromMiSize(sz MiSize) TxSize { return kMaxTxSizeRect[sz] }
func maxTxDepthFromMiSize(sz MiSize) int       { return kMaxTxDepth[sz] }
func splitTxSize(sz TxSize) TxSize             { return kSplitTxSize[sz] }
func txWidthLog2(sz TxSize) int                { return kTxWidthLog2[sz] }
func txHeightLog2(sz TxSize) int               { return kTxHeightLog2[sz] }
func txSizeSqr(sz TxSize) TxSize               { return kTxSizeSqr[sz] }
func txSizeSqrUp(sz TxSize) TxSize             { return kTxSizeSqrUp[sz] }
func adjustedTxSize(sz TxSize) TxSize          { return kAdjustedTxSize[sz] }

// txSzCtx is Tx_Size_Ctx: the square-up size index clamped to TX_32X32,
// used to index most coefficient CDFs.
func txSzCtx(sz TxSize) int {
	sq := txSizeSqrUp(sz)
	return int(minT(sq, Tx32x32))
}

// getTxSizeForPlane derives the chroma transform size for a plane from the
// luma tx size, per the AV1 spec's 4.6 step 13: chroma planes use
// max_tx_size_rect of the plane-residual MI size, with 64-wide results
// capped to 32.
func getTxSizeForPlane(plane int, lumaTx TxSize, wlog2, hlog2, sx, sy int) TxSize {
	if plane == 0 {
		return lumaTx
	}
	cw := maxT(wlog2-sx, 0)
	ch := maxT(hlog2-sy, 0)
	sz, ok := miSizeFromLog2(cw, ch)
	if !ok {
		// Chroma residual falls outside the canonical MiSize grid only for
		// degenerate tiny blocks at frame boundaries; fall back to 4x4.
		return Tx4x4
	}
	tx := maxTxSizeRectFromMiSize(sz)
	switch tx {
	case Tx64x64, Tx64x32, Tx32x64:
		return Tx32x32
	case Tx64x16:
		return Tx32x16
	case Tx16x64:
		return Tx16x32
	default:
		return tx
	}
}
