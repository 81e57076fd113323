package avifcore

import "github.com/deepteams/avifcore/internal/averr"

// Sentinel errors for use with errors.Is, mirroring averr.Kind one for one.
// Any error returned by this package that wraps an *averr.Error compares
// equal to the matching sentinel below regardless of its diagnostic message
// or bit position.
var (
	ErrTruncated          = averr.ErrTruncated
	ErrInvalidContainer   = averr.ErrInvalidContainer
	ErrUnsupportedFeature = averr.ErrUnsupportedFeature
	ErrInvalidCdf         = averr.ErrInvalidCdf
	ErrInvalidSymbol      = averr.ErrInvalidSymbol
	ErrInvalidContext     = averr.ErrInvalidContext
	ErrInternal           = averr.ErrInternal
)
