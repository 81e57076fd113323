package av1

import (
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
)

// LeafVisitor is called once per partition leaf with its MI position and
// block-size-log2 dimensions, mirroring decode_partition_rec's callback
// into the block syntax decoder.
type LeafVisitor func(r, c, wlog2, hlog2 int) error

// partitionOutcomeCount is the number of symbols the per-bsl partition CDF
// encodes: 4 at bsl=1 (8-wide blocks), 10 at bsl∈{2,3,4}, 8 at bsl=5 (no
// HORZ_4/VERT_4 at 128x128).
func partitionOutcomeCount(bsl int) int {
	switch bsl {
	case 1:
		return 4
	case 5:
		return 8
	default:
		return 10
	}
}

// splitOrCdf derives a 2-symbol CDF "split-or-X" from a partition CDF by
// summing the probability mass of every outcome other than X and SPLIT,
// per the AV1 spec §4.5's boundary-forced-axis rule. keep is the cdf index of
// the outcome to preserve (PartitionHorz or PartitionVert); all indices
// besides keep and PartitionSplit contribute their mass to "split".
func splitOrCdf(cdf []uint16, n int, keep PartitionType) []uint16 {
	var splitMass uint32
	for i := 0; i < n; i++ {
		if PartitionType(i) == keep || PartitionType(i) == PartitionSplit {
			continue
		}
		var lo uint32
		if i > 0 {
			lo = uint32(cdf[i-1])
		}
		splitMass += uint32(cdf[i]) - lo
	}
	out := make([]uint16, 3)
	out[0] = uint16(splitMass) // split vs {keep}: mass assigned to "split" first
	out[1] = cdfTop
	out[2] = 0
	return out
}

const cdfTop = 1 << 15

// PartitionWalker drives the partition tree traversal of the AV1 spec §4.5.
type PartitionWalker struct {
	sd      *bitio.SymbolDecoder
	grid    *MiGrid
	cdfs    *TileModeCDFs
	params  *TileParams
	visit   LeafVisitor
}

// NewPartitionWalker builds a walker over one tile's state.
func NewPartitionWalker(sd *bitio.SymbolDecoder, grid *MiGrid, cdfs *TileModeCDFs, params *TileParams, visit LeafVisitor) *PartitionWalker {
	return &PartitionWalker{sd: sd, grid: grid, cdfs: cdfs, params: params, visit: visit}
}

// WalkSuperblock decodes the partition tree rooted at one superblock.
func (w *PartitionWalker) WalkSuperblock(r, c int) error {
	return w.decode(r, c, w.params.sbBsl())
}

func (w *PartitionWalker) decode(r, c, bsl int) error {
	if r >= w.params.MiRows() || c >= w.params.MiCols() {
		return nil
	}
	if bsl == 0 {
		return w.visit(r, c, 0, 0)
	}

	num4x4 := 1 << bsl
	half := num4x4 / 2
	hasRows := r+half < w.params.MiRows()
	hasCols := c+half < w.params.MiCols()

	var part PartitionType
	switch {
	case !hasRows && !hasCols:
		part = PartitionSplit
	case hasRows && hasCols:
		ctx := w.grid.PartitionCtx(r, c, bsl)
		cdf := w.cdfs.PartitionCdf(bsl, ctx)
		n := partitionOutcomeCount(bsl)
		sym, err := w.sd.ReadSymbol(cdf, n)
		if err != nil {
			return err
		}
		part = PartitionType(sym)
	case hasCols: // !hasRows: choose between SPLIT and HORZ
		ctx := w.grid.PartitionCtx(r, c, bsl)
		cdf := w.cdfs.PartitionCdf(bsl, ctx)
		n := partitionOutcomeCount(bsl)
		sub := splitOrCdf(cdf, n, PartitionHorz)
		sym, err := w.sd.ReadSymbol(sub, 2)
		if err != nil {
			return err
		}
		if sym == 0 {
			part = PartitionSplit
		} else {
			part = PartitionHorz
		}
	default: // hasRows only: choose between SPLIT and VERT
		ctx := w.grid.PartitionCtx(r, c, bsl)
		cdf := w.cdfs.PartitionCdf(bsl, ctx)
		n := partitionOutcomeCount(bsl)
		sub := splitOrCdf(cdf, n, PartitionVert)
		sym, err := w.sd.ReadSymbol(sub, 2)
		if err != nil {
			return err
		}
		if sym == 0 {
			part = PartitionSplit
		} else {
			part = PartitionVert
		}
	}

	switch part {
	case PartitionNone:
		return w.visit(r, c, bsl, bsl)
	case PartitionHorz:
		if err := w.visit(r, c, bsl, bsl-1); err != nil {
			return err
		}
		if hasRows {
			return w.visit(r+half, c, bsl, bsl-1)
		}
		return nil
	case PartitionVert:
		if err := w.visit(r, c, bsl-1, bsl); err != nil {
			return err
		}
		if hasCols {
			return w.visit(r, c+half, bsl-1, bsl)
		}
		return nil
	case PartitionSplit:
		if err := w.decode(r, c, bsl-1); err != nil {
			return err
		}
		if err := w.decode(r, c+half, bsl-1); err != nil {
			return err
		}
		if err := w.decode(r+half, c, bsl-1); err != nil {
			return err
		}
		return w.decode(r+half, c+half, bsl-1)
	case PartitionHorzA:
		if err := w.visit(r, c, bsl-1, bsl-1); err != nil {
			return err
		}
		if err := w.visit(r, c+half, bsl-1, bsl-1); err != nil {
			return err
		}
		if hasRows {
			return w.visit(r+half, c, bsl, bsl-1)
		}
		return nil
	case PartitionHorzB:
		if err := w.visit(r, c, bsl, bsl-1); err != nil {
			return err
		}
		if !hasRows {
			return nil
		}
		if err := w.visit(r+half, c, bsl-1, bsl-1); err != nil {
			return err
		}
		return w.visit(r+half, c+half, bsl-1, bsl-1)
	case PartitionVertA:
		if err := w.visit(r, c, bsl-1, bsl-1); err != nil {
			return err
		}
		if err := w.visit(r+half, c, bsl-1, bsl-1); err != nil {
			return err
		}
		if hasCols {
			return w.visit(r, c+half, bsl-1, bsl)
		}
		return nil
	case PartitionVertB:
		if err := w.visit(r, c, bsl-1, bsl); err != nil {
			return err
		}
		if !hasCols {
			return nil
		}
		if err := w.visit(r, c+half, bsl-1, bsl-1); err != nil {
			return err
		}
		return w.visit(r+half, c+half, bsl-1, bsl-1)
	case PartitionHorz4:
		step := num4x4 / 4
		for i := 0; i < 4; i++ {
			rr := r + i*step
			if rr >= w.params.MiRows() {
				break
			}
			if err := w.visit(rr, c, bsl, bsl-2); err != nil {
				return err
			}
		}
		return nil
	case PartitionVert4:
		step := num4x4 / 4
		for i := 0; i < 4; i++ {
			cc := c + i*step
			if cc >= w.params.MiCols() {
				break
			}
			if err := w.visit(r, cc, bsl-2, bsl); err != nil {
				return err
			}
		}
		return nil
	default:
		return averr.Newf(averr.InvalidSymbol, "unrecognized partition type %d", part)
	}
}
