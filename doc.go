// Package avifcore probes the AV1 tile-syntax structure of an AVIF still
// image: ISO-BMFF container parsing down to the primary item, OBU framing,
// sequence/frame header parsing, and a full entropy-coded walk of each
// tile's partition tree, block mode info, transform selection, and
// coefficient coding.
//
// It does not reconstruct pixels. There is no inverse transform, no
// prediction, and no loop filtering here — only the bitstream's syntax
// elements are decoded, for validating and instrumenting the tile kernel
// itself. The tile kernel lives in internal/av1.
//
// Basic usage:
//
//	result, err := avifcore.Decode(data, nil)
package avifcore
