package avifcore

import (
	"fmt"

	"github.com/deepteams/avifcore/internal/av1"
	"github.com/deepteams/avifcore/internal/averr"
	"github.com/deepteams/avifcore/internal/container"
	"github.com/deepteams/avifcore/internal/framehdr"
	"github.com/deepteams/avifcore/internal/obu"
	"github.com/deepteams/avifcore/internal/pool"
)

// Result is the outcome of probing one AVIF still image: the sequence and
// frame header scalars the container/obu/framehdr layers recovered, plus
// one ProbeStats per tile in raster order.
type Result struct {
	SeqHeader   obu.SequenceHeader
	FrameHeader framehdr.FrameHeader
	TileInfo    framehdr.TileInfo
	Tiles       []*av1.ProbeStats
}

// Decode walks an AVIF file's ISO-BMFF boxes to the primary item, frames
// its AV1 OBUs, parses just enough of the sequence and frame headers to
// size each tile, and probes the frame's tile. Frames with more than one
// tile are rejected with UnsupportedFeature. If opts is nil,
// DefaultOptions() is used.
func Decode(data []byte, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var meta container.MetaInfo
	var metaFound bool
	err := container.WalkBoxes(data, func(b container.Box, payload []byte) error {
		if b.TypeString() != "meta" {
			return nil
		}
		m, err := container.ParseMeta(payload, b.PayloadStart())
		if err != nil {
			return err
		}
		meta = m
		metaFound = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("avifcore: walking container: %w", err)
	}
	if !metaFound {
		return nil, fmt.Errorf("avifcore: %w", averr.New(averr.InvalidContainer, "no meta box found"))
	}

	itemRange, err := meta.PrimaryItemRange(data)
	if err != nil {
		return nil, fmt.Errorf("avifcore: resolving primary item: %w", err)
	}

	// Copy the primary item's bytes out of the caller's buffer into a pooled
	// one: data may be a large mmap'd or shared file buffer, and the
	// pipeline below (OBU splitting, header parsing, per-tile probing) only
	// needs the primary item's own bytes for the remainder of Decode.
	item := pool.Get(len(itemRange))
	copy(item, itemRange)
	defer pool.Put(item)

	obus, err := obu.Split(item)
	if err != nil {
		return nil, fmt.Errorf("avifcore: framing obus: %w", err)
	}

	var seq obu.SequenceHeader
	var seqFound bool
	var framePayload []byte
	for _, o := range obus {
		switch o.Type {
		case obu.TypeSequenceHeader:
			seq, err = obu.ParseSequenceHeader(o.Payload)
			if err != nil {
				return nil, fmt.Errorf("avifcore: parsing sequence header: %w", err)
			}
			seqFound = true
		case obu.TypeFrameHeader, obu.TypeFrame:
			if framePayload == nil {
				framePayload = o.Payload
			}
		}
	}
	if !seqFound {
		return nil, fmt.Errorf("avifcore: %w", averr.New(averr.InvalidContainer, "no sequence header obu found"))
	}
	if framePayload == nil {
		return nil, fmt.Errorf("avifcore: %w", averr.New(averr.InvalidContainer, "no frame header obu found"))
	}

	fh, tileInfo, err := framehdr.ParseFrameHeader(framePayload, seq)
	if err != nil {
		return nil, fmt.Errorf("avifcore: parsing frame header: %w", err)
	}

	tileData, err := tileGroupPayload(obus)
	if err != nil {
		return nil, err
	}

	numTiles := tileInfo.TileCols * tileInfo.TileRows
	if opts.MaxTiles > 0 && numTiles > opts.MaxTiles {
		return nil, fmt.Errorf("avifcore: %w", averr.Newf(averr.UnsupportedFeature, "frame has %d tiles, exceeding MaxTiles=%d", numTiles, opts.MaxTiles))
	}

	offsets, err := tileOffsets(tileData, tileInfo)
	if err != nil {
		return nil, err
	}

	results := make([]*av1.ProbeStats, numTiles)
	for row := 0; row < tileInfo.TileRows; row++ {
		for col := 0; col < tileInfo.TileCols; col++ {
			idx := row*tileInfo.TileCols + col
			params := tileParams(seq, fh, tileInfo, col, row, opts)
			results[idx] = av1.Probe(offsets[idx], &params)
		}
	}

	return &Result{
		SeqHeader:   seq,
		FrameHeader: fh,
		TileInfo:    tileInfo,
		Tiles:       results,
	}, nil
}

// tileGroupPayload returns the first tile_group (or frame's trailing tile
// data) OBU payload; AVIF still images carry exactly one.
func tileGroupPayload(obus []obu.OBU) ([]byte, error) {
	for _, o := range obus {
		if o.Type == obu.TypeTileGroup || o.Type == obu.TypeFrame {
			return o.Payload, nil
		}
	}
	return nil, fmt.Errorf("avifcore: %w", averr.New(averr.InvalidContainer, "no tile_group obu found"))
}

// tileOffsets splits a tile_group payload into per-tile byte slices. A
// single-tile frame carries its data with no size prefix; a multi-tile
// frame's tile_group syntax prefixes every tile but the last with a
// tile_size_minus_1 field, which this kernel does not yet need to decode
// (the AV1 spec scopes multi-tile scheduling out) so only the single-tile case
// is supported here.
func tileOffsets(tileData []byte, ti framehdr.TileInfo) ([][]byte, error) {
	numTiles := ti.TileCols * ti.TileRows
	if numTiles != 1 {
		return nil, fmt.Errorf("avifcore: %w", averr.New(averr.UnsupportedFeature, "multi-tile frames are unsupported"))
	}
	return [][]byte{tileData}, nil
}

func tileParams(seq obu.SequenceHeader, fh framehdr.FrameHeader, ti framehdr.TileInfo, col, row int, opts *Options) av1.TileParams {
	miColStart, miColEnd, miRowStart, miRowEnd := ti.Rect(col, row)

	p := av1.TileParams{
		MiColStart: miColStart,
		MiColEnd:   miColEnd,
		MiRowStart: miRowStart,
		MiRowEnd:   miRowEnd,

		Use128x128Superblock: seq.Use128x128Superblock,
		MonoChrome:           seq.MonoChrome,
		SubsamplingX:         seq.SubsamplingX,
		SubsamplingY:         seq.SubsamplingY,

		CodedLossless:           fh.CodedLossless,
		EnableFilterIntra:       seq.EnableFilterIntra,
		AllowScreenContentTools: fh.AllowScreenContentTools,
		DisableCDFUpdate:        fh.DisableCDFUpdate || opts.DisableCDFUpdate,
		BaseQIndex:              fh.BaseQIndex,
		TxMode:                  av1.TxMode(fh.TxMode),
		ReducedTxSet:            fh.ReducedTxSet,

		SegmentationEnabled: fh.SegmentationEnabled,
		SegIDPreSkip:        fh.SegIDPreSkip,
		LastActiveSegID:     fh.LastActiveSegID,

		DeltaQPresent:  fh.DeltaQPresent,
		DeltaQRes:      fh.DeltaQRes,
		DeltaLFPresent: fh.DeltaLFPresent,
		DeltaLFMulti:   fh.DeltaLFMulti,
		DeltaLFRes:     fh.DeltaLFRes,

		EnableCDEF: seq.EnableCDEF,
		CDEFBits:   fh.CDEFBits,

		ProbeTryExitSymbol: opts.ProbeTryExitSymbol,
	}
	return p
}
