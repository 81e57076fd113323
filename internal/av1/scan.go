package av1

// TxClass groups a transform type by how its coefficients are scanned and
// how coefficient contexts derive their neighbor offsets.
type TxClass int

const (
	TxClass2D TxClass = iota
	TxClassHoriz
	TxClassVert
)

// buildScan returns scan, a permutation of [0, w*h) mapping scan position
// to raster index (row*w + col), for the given tx class and adjusted
// transform dimensions. 2D uses an up-right anti-diagonal zigzag; HORIZ
// scans row-major (so coefficients along a row are contiguous in scan
// order); VERT scans column-major.
func buildScan(class TxClass, w, h int) []uint16 {
	scan := make([]uint16, 0, w*h)
	switch class {
	case TxClassHoriz:
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				scan = append(scan, uint16(r*w+c))
			}
		}
	case TxClassVert:
		for c := 0; c < w; c++ {
			for r := 0; r < h; r++ {
				scan = append(scan, uint16(r*w+c))
			}
		}
	default: // TxClass2D: anti-diagonal zigzag, starting each diagonal from
		// the row axis and walking toward the column axis.
		for d := 0; d <= (w-1)+(h-1); d++ {
			rowLo := maxT(0, d-(w-1))
			rowHi := minT(h-1, d)
			for r := rowLo; r <= rowHi; r++ {
				c := d - r
				scan = append(scan, uint16(r*w+c))
			}
		}
	}
	return scan
}

// txClassFromType classifies a transform type for scan-order and coefficient
// context purposes: V_DCT/H_DCT families scan directionally, everything
// else (including the identity transform) scans 2D.
func txClassFromType(t TxType) TxClass {
	switch t {
	case TxTypeVDCT, TxTypeVADST, TxTypeVFlipADST:
		return TxClassVert
	case TxTypeHDCT, TxTypeHADST, TxTypeHFlipADST:
		return TxClassHoriz
	default:
		return TxClass2D
	}
}
