package av1

// TileParams carries the scalars the frame header / tile-info layer
// (internal/framehdr) supplies for one tile. It is immutable for the
// lifetime of a tile decode; only the per-tile CDFs and context scratch
// derived from it are mutated.
type TileParams struct {
	MiColStart, MiColEnd int
	MiRowStart, MiRowEnd int

	Use128x128Superblock bool
	MonoChrome           bool
	SubsamplingX         int
	SubsamplingY         int

	CodedLossless            bool
	EnableFilterIntra        bool
	AllowScreenContentTools  bool
	DisableCDFUpdate         bool
	BaseQIndex               int
	TxMode                   TxMode
	ReducedTxSet             bool

	SegmentationEnabled bool
	SegIDPreSkip        bool
	LastActiveSegID     int

	DeltaQPresent bool
	DeltaQRes     int
	DeltaLFPresent bool
	DeltaLFMulti   bool
	DeltaLFRes     int

	EnableCDEF bool
	CDEFBits   int

	// ProbeTryExitSymbol resolves the AV1 spec §9's open question: when true,
	// the probe driver traverses every superblock in the tile and then
	// calls exit_symbol, surfacing the result rather than treating it as
	// authoritative (see av1.ProbeStats.ExitSymbolOK).
	ProbeTryExitSymbol bool
}

// MiCols and MiRows report the tile's dimensions in 4x4 MI units.
func (p *TileParams) MiCols() int { return p.MiColEnd - p.MiColStart }
func (p *TileParams) MiRows() int { return p.MiRowEnd - p.MiRowStart }

// sbBsl is the superblock's block-size-log2 (num4x4 = 1<<bsl): 4 for 64x64
// superblocks, 5 for 128x128.
func (p *TileParams) sbBsl() int {
	if p.Use128x128Superblock {
		return 5
	}
	return 4
}

// FrameLFCount is the number of independent delta_lf channels: 1 unless
// DeltaLFMulti is set, in which case it's 2 for mono_chrome frames or 4
// otherwise (Y, U, V, plus a placeholder slot the spec reserves).
func (p *TileParams) FrameLFCount() int {
	if !p.DeltaLFMulti {
		return 1
	}
	if p.MonoChrome {
		return 2
	}
	return 4
}
