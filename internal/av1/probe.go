package av1

import (
	"errors"

	"github.com/google/uuid"

	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/bitio"
)

// TileStatus is the tile-decode outcome the AV1 spec §4.6/§7 names: DONE,
// UNSUPPORTED, or ERROR.
type TileStatus int

const (
	StatusDone TileStatus = iota
	StatusUnsupported
	StatusError
)

func (s TileStatus) String() string {
	switch s {
	case StatusDone:
		return "DONE"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ProbeStats is the downstream contract of the AV1 spec §6.4: observable decode
// milestones a test suite or CLI can assert against, keyed by a SessionID
// that correlates one tile's log lines across a run.
type ProbeStats struct {
	SessionID string
	Status    TileStatus
	Err       error

	SuperblocksWalked int
	BlocksDecoded     int

	// Block0 and Block1 are the first two leaf blocks decoded in raster
	// order, captured verbatim for bit-exact regression assertions.
	Block0 *BlockResult
	Block1 *BlockResult

	// ExitSymbolOK is only meaningful when TileParams.ProbeTryExitSymbol was
	// set; it records whether exit_symbol succeeded after a full traversal,
	// per the AV1 spec §9's open-question resolution (a failure here does not by
	// itself demote Status away from DONE).
	ExitSymbolOK bool
}

// Probe runs the CORE's full pipeline over one tile's byte payload: it
// constructs the tile-scoped state (SymbolDecoder, TileModeCDFs,
// TileCoeffCDFs, CoeffContext, MiGrid), walks every superblock's partition
// tree in raster order, and returns a ProbeStats describing how far the
// traversal got.
func Probe(data []byte, params *TileParams) *ProbeStats {
	stats := &ProbeStats{SessionID: uuid.NewString()}

	if len(data) == 0 {
		stats.Status = StatusError
		stats.Err = averr.New(averr.Truncated, "empty tile payload")
		return stats
	}

	sd, err := bitio.NewSymbolDecoder(data, params.DisableCDFUpdate)
	if err != nil {
		stats.Status = StatusError
		stats.Err = err
		return stats
	}

	mode := NewTileModeCDFs()
	coeffs := NewTileCoeffCDFs(params.BaseQIndex)
	ctx := NewCoeffContext(params.MiCols(), params.MiRows(), params.SubsamplingX, params.SubsamplingY, params.MonoChrome)
	grid := NewMiGrid(params.MiCols(), params.MiRows())
	bd := NewBlockDecoder(sd, grid, mode, coeffs, ctx, params)

	visit := func(r, c, wlog2, hlog2 int) error {
		res, err := bd.Decode(r, c, wlog2, hlog2)
		if res != nil {
			if stats.Block0 == nil {
				stats.Block0 = res
			} else if stats.Block1 == nil {
				stats.Block1 = res
			}
			stats.BlocksDecoded++
		}
		return err
	}

	walker := NewPartitionWalker(sd, grid, mode, params, visit)

	sbBsl := params.sbBsl()
	sbNum4x4 := 1 << uint(sbBsl)
	for r := 0; r < params.MiRows(); r += sbNum4x4 {
		for c := 0; c < params.MiCols(); c += sbNum4x4 {
			if err := walker.WalkSuperblock(r, c); err != nil {
				var ae *averr.Error
				if errors.As(err, &ae) && ae.Kind == averr.UnsupportedFeature {
					stats.Status = StatusUnsupported
					stats.Err = err
					return stats
				}
				stats.Status = StatusError
				stats.Err = err
				return stats
			}
			stats.SuperblocksWalked++
		}
	}

	stats.Status = StatusDone

	if params.ProbeTryExitSymbol {
		stats.ExitSymbolOK = sd.Exit() == nil
	}

	return stats
}
