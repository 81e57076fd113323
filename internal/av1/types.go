package av1

// TxType enumerates AV1's 16 intra/inter transform type combinations. Only
// a subset is reachable from this kernel's intra-only, non-reduced-tx-set
// paths, but the full enumeration keeps txClassFromType and the CDF
// permutation tables total functions.
type TxType int

const (
	TxTypeDCTDCT TxType = iota
	TxTypeADSTDCT
	TxTypeDCTADST
	TxTypeADSTADST
	TxTypeFlipADSTDCT
	TxTypeDCTFlipADST
	TxTypeFlipADSTFlipADST
	TxTypeADSTFlipADST
	TxTypeFlipADSTADST
	TxTypeIDTX
	TxTypeVDCT
	TxTypeHDCT
	TxTypeVADST
	TxTypeHADST
	TxTypeVFlipADST
	TxTypeHFlipADST
)

// TxSet identifies which reduced permutation of TxType values a block's
// intra_tx_type CDF indexes into.
type TxSet int

const (
	TxSetDCTOnly TxSet = iota
	TxSetIntra1
	TxSetIntra2
)

// TxMode is the frame-level transform-size selection strategy.
type TxMode int

const (
	TxModeOnly4x4 TxMode = iota
	TxModeLargest
	TxModeSelect
)

// YMode enumerates the 13 intra luma prediction modes used to index
// size-group y_mode CDFs and to decide directionality for angle_delta.
type YMode int

const (
	ModeDC YMode = iota
	ModeV
	ModeH
	ModeD45
	ModeD135
	ModeD113
	ModeD157
	ModeD203
	ModeD67
	ModeSmooth
	ModeSmoothV
	ModeSmoothH
	ModePaeth
	ModeUVCFL // chroma-only: UV_CFL_PRED, never a Y mode
)

func isDirectionalMode(m YMode) bool {
	return m >= ModeV && m <= ModeD67
}

// PartitionType enumerates the 10 AV1 partition outcomes.
type PartitionType int

const (
	PartitionNone PartitionType = iota
	PartitionHorz
	PartitionVert
	PartitionSplit
	PartitionHorzA
	PartitionHorzB
	PartitionVertA
	PartitionVertB
	PartitionHorz4
	PartitionVert4
)

// Coefficient-coding constants from the AV1 bitstream spec.
const (
	NumBaseLevels   = 2
	CoeffBaseRange  = 12
	BrCdfSize       = 4
	SigCoefContexts = 42
	LevelContexts   = 21
	DeltaQSmall     = 3
	DeltaLfSmall    = 3
)
