package container

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/avifcore/internal/averr"
)

// Box describes one ISO-BMFF box header: its 4CC type, declared size, and
// the payload's byte range within the buffer it was read from. HeaderSize
// accounts for the 8-byte short header, the 64-bit largesize extension
// (size==1), and FullBox version/flags fields read inline for "meta".
type Box struct {
	Type       [4]byte
	Offset     int
	Size       int
	HeaderSize int
	IsFullBox  bool
	Version    uint8
	Flags      uint32
}

// PayloadStart and PayloadEnd bound the box's payload within the buffer it
// was read from (Offset-relative, not absolute file offsets).
func (b Box) PayloadStart() int { return b.Offset + b.HeaderSize }
func (b Box) PayloadEnd() int   { return b.Offset + b.Size }

func (b Box) TypeString() string { return string(b.Type[:]) }

// ReadBoxHeader reads one box header at the start of data, honoring the
// size==0 ("extends to end of buffer") and size==1 (64-bit largesize
// follows) ISO-BMFF conventions. "meta" additionally carries inline
// FullBox version/flags, which the primary-item walker needs before it can
// descend into meta's children.
func ReadBoxHeader(data []byte) (Box, error) {
	if len(data) < 8 {
		return Box{}, averr.New(averr.Truncated, "box header needs 8 bytes").WithBitPos(int64(len(data)) * 8)
	}

	var b Box
	size32 := binary.BigEndian.Uint32(data[0:4])
	copy(b.Type[:], data[4:8])
	b.HeaderSize = 8

	switch size32 {
	case 0:
		b.Size = len(data)
	case 1:
		if len(data) < 16 {
			return Box{}, averr.New(averr.Truncated, "box largesize needs 16 bytes")
		}
		large := binary.BigEndian.Uint64(data[8:16])
		b.Size = int(large)
		b.HeaderSize = 16
	default:
		b.Size = int(size32)
	}

	if b.Size < b.HeaderSize {
		return Box{}, averr.Newf(averr.InvalidContainer, "box %q size %d smaller than header %d", b.TypeString(), b.Size, b.HeaderSize)
	}
	if b.Size > len(data) {
		return Box{}, averr.Newf(averr.Truncated, "box %q declares size %d, only %d available", b.TypeString(), b.Size, len(data))
	}

	if b.TypeString() == "meta" {
		if b.HeaderSize+4 > b.Size {
			return Box{}, averr.New(averr.InvalidContainer, "meta box too small for FullBox fields")
		}
		b.IsFullBox = true
		b.Version = data[b.HeaderSize]
		b.Flags = uint32(data[b.HeaderSize+1])<<16 | uint32(data[b.HeaderSize+2])<<8 | uint32(data[b.HeaderSize+3])
		b.HeaderSize += 4
	}

	return b, nil
}

// WalkBoxes iterates the top-level boxes of data, calling visit with each
// box and its payload slice. It stops and propagates the first error,
// matching the core's no-recovery propagation policy.
func WalkBoxes(data []byte, visit func(b Box, payload []byte) error) error {
	cursor := 0
	for cursor < len(data) {
		b, err := ReadBoxHeader(data[cursor:])
		if err != nil {
			return err
		}
		b.Offset = cursor
		payload := data[cursor+b.HeaderSize : cursor+b.Size]
		if err := visit(b, payload); err != nil {
			return err
		}
		cursor += b.Size
	}
	return nil
}

// Extent is one iloc-derived byte range: offset is relative to either the
// file (ConstructionFile) or the meta box's idat payload (ConstructionIdat).
type Extent struct {
	Offset uint64
	Length uint64
}

// Construction method values from ISO/IEC 14496-12's ItemLocationBox.
const (
	ConstructionFile = 0
	ConstructionIdat = 1
	ConstructionItem = 2
)

// ItemLocation is one iloc entry: how and where to find an item's bytes.
type ItemLocation struct {
	ItemID             uint32
	ConstructionMethod uint8
	BaseOffset         uint64
	Extents            []Extent
}

// MetaInfo is the interpreted HEIF `meta` box tree: enough to resolve the
// primary item's encoded AV1 byte range, per the AV1 spec §4.8.
type MetaInfo struct {
	PrimaryItemID uint32
	ItemTypes     map[uint32][4]byte
	Locations     map[uint32]ItemLocation
	IdatOffset    int // absolute offset of idat's payload within the original file buffer
	IdatLength    int
}

// ParseMeta descends into a `meta` box's payload (as returned by
// ReadBoxHeader/WalkBoxes — version/flags already consumed) and extracts
// the primary item id (`pitm`), item types (`iinf`/`infe`), and byte
// locations (`iloc`). metaFileOffset is the absolute offset of payload's
// first byte within the original file buffer, used to make idat-relative
// iloc extents absolute.
func ParseMeta(payload []byte, metaFileOffset int) (MetaInfo, error) {
	mi := MetaInfo{ItemTypes: map[uint32][4]byte{}, Locations: map[uint32]ItemLocation{}}

	err := WalkBoxes(payload, func(b Box, childPayload []byte) error {
		switch b.TypeString() {
		case "pitm":
			id, err := parsePitm(childPayload)
			if err != nil {
				return err
			}
			mi.PrimaryItemID = id
		case "iinf":
			return parseIinf(childPayload, &mi)
		case "iloc":
			return parseIloc(childPayload, &mi)
		case "idat":
			mi.IdatOffset = metaFileOffset + b.PayloadStart()
			mi.IdatLength = len(childPayload)
		}
		return nil
	})
	if err != nil {
		return MetaInfo{}, err
	}
	if mi.PrimaryItemID == 0 {
		return MetaInfo{}, averr.New(averr.InvalidContainer, "meta box has no pitm primary item")
	}
	return mi, nil
}

func parsePitm(payload []byte) (uint32, error) {
	if len(payload) < 4 {
		return 0, averr.New(averr.Truncated, "pitm too short for FullBox header")
	}
	version := payload[0]
	switch version {
	case 0:
		if len(payload) < 6 {
			return 0, averr.New(averr.Truncated, "pitm v0 too short")
		}
		return uint32(binary.BigEndian.Uint16(payload[4:6])), nil
	case 1:
		if len(payload) < 8 {
			return 0, averr.New(averr.Truncated, "pitm v1 too short")
		}
		return binary.BigEndian.Uint32(payload[4:8]), nil
	default:
		return 0, averr.Newf(averr.UnsupportedFeature, "pitm version %d unsupported", version)
	}
}

func parseIinf(payload []byte, mi *MetaInfo) error {
	if len(payload) < 6 {
		return averr.New(averr.Truncated, "iinf too short for FullBox header")
	}
	version := payload[0]
	var entryCount int
	var cursor int
	switch version {
	case 0:
		entryCount = int(binary.BigEndian.Uint16(payload[4:6]))
		cursor = 6
	case 1:
		if len(payload) < 8 {
			return averr.New(averr.Truncated, "iinf v1 too short")
		}
		entryCount = int(binary.BigEndian.Uint32(payload[4:8]))
		cursor = 8
	default:
		return averr.Newf(averr.UnsupportedFeature, "iinf version %d unsupported", version)
	}

	for i := 0; i < entryCount; i++ {
		if cursor >= len(payload) {
			return averr.Newf(averr.Truncated, "iinf ran out of data before infe[%d/%d]", i, entryCount)
		}
		b, err := ReadBoxHeader(payload[cursor:])
		if err != nil {
			return err
		}
		if b.TypeString() != "infe" {
			return averr.Newf(averr.InvalidContainer, "iinf expected infe, got %q", b.TypeString())
		}
		id, itemType, ok, err := parseInfe(payload[cursor+b.HeaderSize : cursor+b.Size])
		if err != nil {
			return err
		}
		if ok {
			mi.ItemTypes[id] = itemType
		}
		cursor += b.Size
	}
	return nil
}

func parseInfe(payload []byte) (id uint32, itemType [4]byte, ok bool, err error) {
	if len(payload) < 4 {
		return 0, itemType, false, averr.New(averr.Truncated, "infe too short for FullBox header")
	}
	version := payload[0]
	cursor := 4
	switch version {
	case 0, 1, 2:
		if len(payload) < cursor+2 {
			return 0, itemType, false, averr.New(averr.Truncated, "infe item_id too short")
		}
		id = uint32(binary.BigEndian.Uint16(payload[cursor : cursor+2]))
		cursor += 2
	case 3:
		if len(payload) < cursor+4 {
			return 0, itemType, false, averr.New(averr.Truncated, "infe item_id(v3) too short")
		}
		id = binary.BigEndian.Uint32(payload[cursor : cursor+4])
		cursor += 4
	default:
		// Unknown infe version: skip silently, mirroring avif_metadump's
		// "unsupported infe version (skipping item metadata)" warning path.
		return 0, itemType, false, nil
	}
	cursor += 2 // item_protection_index

	if version == 2 || version == 3 {
		if len(payload) < cursor+4 {
			return 0, itemType, false, averr.New(averr.Truncated, "infe item_type too short")
		}
		copy(itemType[:], payload[cursor:cursor+4])
		return id, itemType, true, nil
	}
	return id, itemType, false, nil
}

func parseIloc(payload []byte, mi *MetaInfo) error {
	if len(payload) < 6 {
		return averr.New(averr.Truncated, "iloc too short for FullBox header")
	}
	version := payload[0]
	a, b := payload[4], payload[5]
	offsetSize := int(a>>4) & 0x0F
	lengthSize := int(a) & 0x0F
	baseOffsetSize := int(b>>4) & 0x0F
	indexSize := int(b) & 0x0F

	cursor := 6
	var itemCount int
	switch version {
	case 0, 1:
		if len(payload) < cursor+2 {
			return averr.New(averr.Truncated, "iloc item_count too short")
		}
		itemCount = int(binary.BigEndian.Uint16(payload[cursor : cursor+2]))
		cursor += 2
	case 2:
		if len(payload) < cursor+4 {
			return averr.New(averr.Truncated, "iloc item_count(v2) too short")
		}
		itemCount = int(binary.BigEndian.Uint32(payload[cursor : cursor+4]))
		cursor += 4
	default:
		return averr.Newf(averr.UnsupportedFeature, "iloc version %d unsupported", version)
	}

	readBE := func(n int) (uint64, error) {
		if n == 0 {
			return 0, nil
		}
		if cursor+n > len(payload) {
			return 0, averr.New(averr.Truncated, "iloc field read overruns payload")
		}
		var v uint64
		for i := 0; i < n; i++ {
			v = (v << 8) | uint64(payload[cursor+i])
		}
		cursor += n
		return v, nil
	}

	for i := 0; i < itemCount; i++ {
		var itemID uint32
		if version == 2 {
			v, err := readBE(4)
			if err != nil {
				return err
			}
			itemID = uint32(v)
		} else {
			v, err := readBE(2)
			if err != nil {
				return err
			}
			itemID = uint32(v)
		}

		var method uint8
		if version == 1 || version == 2 {
			v, err := readBE(2)
			if err != nil {
				return err
			}
			method = uint8(v & 0x000F)
		}

		if _, err := readBE(2); err != nil { // data_reference_index
			return err
		}

		baseOffset, err := readBE(baseOffsetSize)
		if err != nil {
			return err
		}

		extentCountRaw, err := readBE(2)
		if err != nil {
			return err
		}
		extentCount := int(extentCountRaw)

		loc := ItemLocation{ItemID: itemID, ConstructionMethod: method, BaseOffset: baseOffset}
		for e := 0; e < extentCount; e++ {
			if (version == 1 || version == 2) && indexSize > 0 {
				if _, err := readBE(indexSize); err != nil {
					return err
				}
			}
			off, err := readBE(offsetSize)
			if err != nil {
				return err
			}
			length, err := readBE(lengthSize)
			if err != nil {
				return err
			}
			loc.Extents = append(loc.Extents, Extent{Offset: baseOffset + off, Length: length})
		}
		mi.Locations[itemID] = loc
	}
	return nil
}

// PrimaryItemRange resolves the primary item's byte range against the
// original file buffer, honoring construction methods 0 (file) and 1
// (idat); method 2 (item-based construction) is explicitly unsupported
// per the AV1 spec §4.8 / the AV1 spec §6.1.
func (mi MetaInfo) PrimaryItemRange(fileData []byte) ([]byte, error) {
	itemType, ok := mi.ItemTypes[mi.PrimaryItemID]
	if !ok || string(itemType[:]) != "av01" {
		return nil, averr.Newf(averr.UnsupportedFeature, "primary item %d is not an av01 coded item", mi.PrimaryItemID)
	}
	loc, ok := mi.Locations[mi.PrimaryItemID]
	if !ok || len(loc.Extents) == 0 {
		return nil, averr.Newf(averr.InvalidContainer, "primary item %d has no iloc extents", mi.PrimaryItemID)
	}
	if loc.ConstructionMethod == ConstructionItem {
		return nil, averr.New(averr.UnsupportedFeature, "iloc construction_method=2 (item-based) unsupported")
	}
	if loc.ConstructionMethod != ConstructionFile && loc.ConstructionMethod != ConstructionIdat {
		return nil, averr.Newf(averr.UnsupportedFeature, "iloc construction_method=%d unsupported", loc.ConstructionMethod)
	}

	var out []byte
	for _, ex := range loc.Extents {
		var srcOff int
		if loc.ConstructionMethod == ConstructionFile {
			srcOff = int(ex.Offset)
		} else {
			if mi.IdatOffset == 0 && mi.IdatLength == 0 {
				return nil, averr.New(averr.InvalidContainer, "construction_method=1 but no idat box found")
			}
			if int(ex.Offset)+int(ex.Length) > mi.IdatLength {
				return nil, averr.New(averr.InvalidContainer, "idat extent overruns idat payload")
			}
			srcOff = mi.IdatOffset + int(ex.Offset)
		}
		end := srcOff + int(ex.Length)
		if end > len(fileData) || srcOff < 0 {
			return nil, averr.New(averr.Truncated, "primary item extent overruns file")
		}
		out = append(out, fileData[srcOff:end]...)
	}
	return out, nil
}

// ErrFormat is a convenience wrapper around fmt.Errorf("%w: ...", sentinel)
// for callers that prefer the standard errors.Is idiom over averr's typed
// Kind.
func ErrFormat(kind averr.Kind, format string, args ...any) error {
	return fmt.Errorf("avifcore: %w", averr.Newf(kind, format, args...))
}
