package av1

import (
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
)

// CoeffBlockResult carries what the Probe Driver needs to observe from one
// transform block's coefficient decode, per the AV1 spec §6.4.
type CoeffBlockResult struct {
	AllZero       bool
	Eob           int
	CoeffBaseEob  int // base level at the eob position, 1..3
	CoeffBr       int // final br-extended level at the eob position
	DCSign        int // 0 (no DC) | 1 (negative) | 2 (positive), mirrors dc_sign symbol
	Quant         []int32
}

// eobMultisize picks which eob_pt family (16..1024) covers a tx block,
// per the AV1 spec §4.7 step 2.
func eobMultisize(widthLog2, heightLog2 int) int {
	wl := minT(widthLog2, 5)
	hl := minT(heightLog2, 5)
	return wl + hl - 4
}

// segEobFor returns the maximum valid eob for a tx block's pixel shape,
// per the AV1 spec §4.7 step 3's size cap (1024 coefficients, with the two
// 16x64/64x16 exceptions capped at 512).
func segEobFor(width, height int) int {
	n := width * height
	if n > 1024 {
		n = 1024
	}
	if (width == 16 && height == 64) || (width == 64 && height == 16) {
		n = 512
	}
	return n
}

// CoeffDecoder decodes one transform block's coefficients per the AV1 spec §4.7.
type CoeffDecoder struct {
	sd     *bitio.SymbolDecoder
	ctx    *CoeffContext
	coeffs *TileCoeffCDFs
}

// NewCoeffDecoder binds a symbol decoder, coefficient context, and the
// tile's coefficient CDFs.
func NewCoeffDecoder(sd *bitio.SymbolDecoder, ctx *CoeffContext, coeffs *TileCoeffCDFs) *CoeffDecoder {
	return &CoeffDecoder{sd: sd, ctx: ctx, coeffs: coeffs}
}

// planeType maps a plane index to the 2-way luma/chroma split the
// coefficient CDFs are keyed by.
func planeTypeOf(plane int) int {
	if plane == 0 {
		return 0
	}
	return 1
}

// Decode runs the full per-transform-block algorithm of the AV1 spec §4.7 for
// one plane's tx block at MI position (x4,y4) with MI span (w4,h4).
func (cd *CoeffDecoder) Decode(plane, x4, y4, w4, h4 int, bwPx, bhPx int, tx TxSize, txType TxType) (*CoeffBlockResult, error) {
	adj := adjustedTxSize(tx)
	width := 1 << txWidthLog2(adj)
	height := 1 << txHeightLog2(adj)
	class := txClassFromType(txType)
	pt := planeTypeOf(plane)
	tsz := txSzCtx(tx)

	allZeroCtx := cd.ctx.TxbSkipCtx(plane, x4, y4, w4, h4, bwPx, bhPx, tx)
	allZeroSym, err := cd.sd.ReadSymbol(cd.coeffs.TxbSkip[tsz][allZeroCtx], 2)
	if err != nil {
		return nil, err
	}
	if allZeroSym == 1 {
		cd.ctx.UpdateAfterBlock(plane, x4, y4, w4, h4, 0, 0)
		return &CoeffBlockResult{AllZero: true}, nil
	}

	quant := make([]int32, width*height)
	scan := buildScan(class, width, height)

	eob, err := cd.readEobPt(pt, tsz, class, width, height)
	if err != nil {
		return nil, err
	}

	numCoeffs := width * height
	baseEobCtx := CoeffBaseEobCtxFromC(eob-1, numCoeffs)
	baseEobSym, err := cd.sd.ReadSymbol(cd.coeffs.CoeffBaseEob[pt][tsz][baseEobCtx], 3)
	if err != nil {
		return nil, err
	}
	level := int(baseEobSym) + 1
	eobPos := scan[eob-1]
	eobRow := int(eobPos) >> uint(txWidthLog2(adj))
	eobCol := int(eobPos) - (eobRow << uint(txWidthLog2(adj)))

	if level > NumBaseLevels {
		lvl, err := cd.readCoeffBr(pt, tsz, class, width, height, eobRow, eobCol, quant)
		if err != nil {
			return nil, err
		}
		level += lvl
	}
	quant[eobPos] = int32(level)

	for c := eob - 2; c >= 0; c-- {
		pos := scan[c]
		r := int(pos) >> uint(txWidthLog2(adj))
		cl := int(pos) - (r << uint(txWidthLog2(adj)))
		baseCtx := CoeffBaseCtx(class, width, height, r, cl, quant)
		baseSym, err := cd.sd.ReadSymbol(cd.coeffs.CoeffBase[pt][tsz][baseCtx], 4)
		if err != nil {
			return nil, err
		}
		lvl := int(baseSym)
		if lvl > NumBaseLevels {
			br, err := cd.readCoeffBr(pt, tsz, class, width, height, r, cl, quant)
			if err != nil {
				return nil, err
			}
			lvl += br
		}
		quant[pos] = int32(lvl)
	}

	dcSignVal := 0
	culSum := 0
	for c := 0; c < eob; c++ {
		pos := scan[c]
		if quant[pos] == 0 {
			continue
		}
		var signBit uint32
		if c == 0 {
			ctx := cd.ctx.DCSignCtx(plane, x4, y4, w4, h4)
			signBit, err = cd.sd.ReadSymbol(cd.coeffs.DCSign[pt][ctx], 2)
		} else {
			signBit, err = cd.sd.ReadBool()
		}
		if err != nil {
			return nil, err
		}

		mag := int(quant[pos])
		if mag > NumBaseLevels+CoeffBaseRange {
			golombMag, err := cd.readGolomb()
			if err != nil {
				return nil, err
			}
			mag = golombMag + CoeffBaseRange + NumBaseLevels
			mag &= (1 << 20) - 1
		}
		if signBit == 1 {
			mag = -mag
		}
		quant[pos] = int32(mag)
		if c == 0 {
			if signBit == 1 {
				dcSignVal = 1
			} else {
				dcSignVal = 2
			}
		}
		abs := mag
		if abs < 0 {
			abs = -abs
		}
		culSum += abs
	}

	culLevel := minT(culSum, 63)
	cd.ctx.UpdateAfterBlock(plane, x4, y4, w4, h4, uint8(culLevel), uint8(dcSignVal))

	return &CoeffBlockResult{
		Eob:          eob,
		CoeffBaseEob: int(baseEobSym) + 1,
		CoeffBr:      level,
		DCSign:       dcSignVal,
		Quant:        quant,
	}, nil
}

// readEobPt decodes eob_pt (and, when needed, eob_extra plus raw extra
// bits) and constructs eob, per the AV1 spec §4.7 steps 2-3.
func (cd *CoeffDecoder) readEobPt(planeType, tsz int, class TxClass, width, height int) (int, error) {
	wl := txLog2Of(width)
	hl := txLog2Of(height)
	multisize := eobMultisize(wl, hl)
	ctxIdx := 0
	if class != TxClass2D {
		ctxIdx = 1
	}

	var sym uint32
	var err error
	switch multisize {
	case 0:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt16[planeType][ctxIdx], 5)
	case 1:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt32[planeType][ctxIdx], 6)
	case 2:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt64[planeType][ctxIdx], 7)
	case 3:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt128[planeType][ctxIdx], 8)
	case 4:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt256[planeType][ctxIdx], 9)
	case 5:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt512[planeType], 10)
	default:
		sym, err = cd.sd.ReadSymbol(cd.coeffs.EobPt1024[planeType], 11)
	}
	if err != nil {
		return 0, err
	}

	eobPt := int(sym) + 1
	var eob int
	if eobPt < 2 {
		eob = eobPt
	} else {
		eob = (1 << uint(eobPt-2)) + 1
	}

	if eobPt >= 3 {
		tsz5 := minT(tsz, 4)
		extraSym, err := cd.sd.ReadSymbol(cd.coeffs.EobExtra[planeType][tsz5][eobPt-3], 2)
		if err != nil {
			return 0, err
		}
		if extraSym == 1 {
			eob += 1 << uint(eobPt-3)
		}
		for bit := eobPt - 4; bit >= 0; bit-- {
			b, err := cd.sd.ReadBool()
			if err != nil {
				return 0, err
			}
			if b == 1 {
				eob += 1 << uint(bit)
			}
		}
	}

	segEob := segEobFor(width, height)
	if eob <= 0 || eob > segEob {
		return 0, averr.Newf(averr.InvalidSymbol, "eob %d out of range (1..%d)", eob, segEob)
	}
	return eob, nil
}

// readCoeffBr runs the coeff_br Exp-Golomb-like extension loop of
// the AV1 spec §4.7 step 5/6: up to 4 rounds of a 4-symbol read, each
// contributing up to 3 levels, stopping early once a round reads < 3.
func (cd *CoeffDecoder) readCoeffBr(planeType, tsz int, class TxClass, width, height, row, col int, quant []int32) (int, error) {
	total := 0
	brTsz := minT(tsz, 3)
	for i := 0; i < CoeffBaseRange/(BrCdfSize-1); i++ {
		ctx := CoeffBrCtx(class, width, height, row, col, quant)
		sym, err := cd.sd.ReadSymbol(cd.coeffs.CoeffBr[planeType][brTsz][ctx], BrCdfSize)
		if err != nil {
			return 0, err
		}
		total += int(sym)
		if int(sym) < BrCdfSize-1 {
			break
		}
	}
	return total, nil
}

// readGolomb reads the Exp-Golomb magnitude extension of the AV1 spec §4.7
// step 7: a unary-coded bit length followed by (length-1) data bits.
func (cd *CoeffDecoder) readGolomb() (int, error) {
	length := 0
	for {
		b, err := cd.sd.ReadBool()
		if err != nil {
			return 0, err
		}
		length++
		if b == 1 {
			break
		}
		if length > 20 {
			return 0, averr.New(averr.InvalidSymbol, "exp-golomb length exceeded sanity bound")
		}
	}
	x := 1
	for i := 0; i < length-1; i++ {
		b, err := cd.sd.ReadBool()
		if err != nil {
			return 0, err
		}
		x = (x << 1) | int(b)
	}
	return x, nil
}

func txLog2Of(dim int) int {
	n := 0
	for d := dim; d > 1; d >>= 1 {
		n++
	}
	return n
}
