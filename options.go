package avifcore

// Options controls how Probe runs the CORE over a tile payload.
type Options struct {
	// DisableCDFUpdate forces the tile's disable_cdf_update behavior
	// regardless of what the frame header decoded, useful for isolating
	// whether a decode discrepancy comes from adaptation.
	DisableCDFUpdate bool

	// ProbeTryExitSymbol resolves the open question of whether exit_symbol
	// should be treated as authoritative: when true, Probe calls it after
	// a full tile traversal and reports the result in ProbeStats.ExitSymbolOK
	// without letting a failure demote the tile's status away from DONE.
	ProbeTryExitSymbol bool

	// MaxTiles bounds how many tiles Decode will probe from one frame, to
	// keep the work and memory footprint bounded against a file advertising
	// an implausible tile grid. Zero means unbounded.
	MaxTiles int
}

// DefaultOptions returns the options Decode uses when none are supplied:
// CDF adaptation left as the bitstream specifies, exit_symbol untried, and
// no cap on tile count.
func DefaultOptions() *Options {
	return &Options{}
}
