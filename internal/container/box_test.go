package container

import (
	"encoding/binary"
	"testing"
)

func box(fourcc string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], fourcc)
	copy(out[8:], payload)
	return out
}

func TestReadBoxHeader_Basic(t *testing.T) {
	data := box("ftyp", []byte("avif"))
	b, err := ReadBoxHeader(data)
	if err != nil {
		t.Fatalf("ReadBoxHeader: %v", err)
	}
	if b.TypeString() != "ftyp" {
		t.Errorf("TypeString() = %q, want ftyp", b.TypeString())
	}
	if b.Size != len(data) || b.HeaderSize != 8 {
		t.Errorf("Size=%d HeaderSize=%d, want %d 8", b.Size, b.HeaderSize, len(data))
	}
}

func TestReadBoxHeader_ToEOF(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], 0)
	copy(data[4:8], "mdat")
	data = append(data, 1, 2, 3)
	b, err := ReadBoxHeader(data)
	if err != nil {
		t.Fatalf("ReadBoxHeader: %v", err)
	}
	if b.Size != len(data) {
		t.Errorf("Size = %d, want %d (size==0 extends to buffer end)", b.Size, len(data))
	}
}

func TestReadBoxHeader_LargeSize(t *testing.T) {
	payload := []byte("x")
	data := make([]byte, 16+len(payload))
	binary.BigEndian.PutUint32(data[0:4], 1)
	copy(data[4:8], "free")
	binary.BigEndian.PutUint64(data[8:16], uint64(len(data)))
	copy(data[16:], payload)
	b, err := ReadBoxHeader(data)
	if err != nil {
		t.Fatalf("ReadBoxHeader: %v", err)
	}
	if b.HeaderSize != 16 || b.Size != len(data) {
		t.Errorf("HeaderSize=%d Size=%d, want 16 %d", b.HeaderSize, b.Size, len(data))
	}
}

func TestReadBoxHeader_Truncated(t *testing.T) {
	if _, err := ReadBoxHeader([]byte{0, 0, 0}); err == nil {
		t.Fatalf("ReadBoxHeader on 3 bytes should fail")
	}
}

func TestWalkBoxes(t *testing.T) {
	data := append(box("ftyp", []byte("avif")), box("mdat", []byte("hello"))...)
	var seen []string
	err := WalkBoxes(data, func(b Box, payload []byte) error {
		seen = append(seen, b.TypeString())
		return nil
	})
	if err != nil {
		t.Fatalf("WalkBoxes: %v", err)
	}
	if len(seen) != 2 || seen[0] != "ftyp" || seen[1] != "mdat" {
		t.Errorf("WalkBoxes visited %v, want [ftyp mdat]", seen)
	}
}

func TestParseMeta_PitmInfeIloc(t *testing.T) {
	pitm := make([]byte, 6)
	pitm[0] = 0 // version 0
	binary.BigEndian.PutUint16(pitm[4:6], 1)
	pitmBox := box("pitm", pitm)

	infePayload := make([]byte, 12)
	infePayload[0] = 2 // version 2
	binary.BigEndian.PutUint16(infePayload[4:6], 1) // item_id = 1
	// bytes [6:8] are item_protection_index, left zero.
	copy(infePayload[8:12], "av01") // item_type
	infeBox := box("infe", infePayload)

	iinfPayload := make([]byte, 6)
	iinfPayload[0] = 0
	binary.BigEndian.PutUint16(iinfPayload[4:6], 1)
	iinfPayload = append(iinfPayload, infeBox...)
	iinfBox := box("iinf", iinfPayload)

	ilocPayload := []byte{
		0,          // version
		0,          // reserved/flags continuation
		0,          // flags
		0,          // flags
		0x44, 0x40, // offset_size=4, length_size=4, base_offset_size=4, index_size=0
	}
	var itemCount [2]byte
	binary.BigEndian.PutUint16(itemCount[:], 1)
	ilocPayload = append(ilocPayload, itemCount[:]...)
	ilocPayload = append(ilocPayload, 0, 1) // item_id=1
	ilocPayload = append(ilocPayload, 0, 0) // data_reference_index
	ilocPayload = append(ilocPayload, 0, 0, 0, 0) // base_offset=0
	ilocPayload = append(ilocPayload, 0, 1) // extent_count=1
	extOffset := make([]byte, 4)
	binary.BigEndian.PutUint32(extOffset, 8)
	ilocPayload = append(ilocPayload, extOffset...)
	extLen := make([]byte, 4)
	binary.BigEndian.PutUint32(extLen, 5)
	ilocPayload = append(ilocPayload, extLen...)
	ilocBox := box("iloc", ilocPayload)

	metaPayload := append(append(pitmBox, iinfBox...), ilocBox...)

	mi, err := ParseMeta(metaPayload, 0)
	if err != nil {
		t.Fatalf("ParseMeta: %v", err)
	}
	if mi.PrimaryItemID != 1 {
		t.Fatalf("PrimaryItemID = %d, want 1", mi.PrimaryItemID)
	}
	if it := mi.ItemTypes[1]; string(it[:]) != "av01" {
		t.Fatalf("ItemTypes[1] = %q, want av01", mi.ItemTypes[1])
	}
	loc, ok := mi.Locations[1]
	if !ok || len(loc.Extents) != 1 {
		t.Fatalf("Locations[1] = %+v, ok=%v", loc, ok)
	}
	if loc.Extents[0].Offset != 8 || loc.Extents[0].Length != 5 {
		t.Errorf("Extents[0] = %+v, want {8 5}", loc.Extents[0])
	}

	fileData := make([]byte, 13)
	copy(fileData[8:13], "AV01!")
	item, err := mi.PrimaryItemRange(fileData)
	if err != nil {
		t.Fatalf("PrimaryItemRange: %v", err)
	}
	if string(item) != "AV01!" {
		t.Errorf("PrimaryItemRange = %q, want AV01!", item)
	}
}

func TestPrimaryItemRange_RejectsConstructionMethod2(t *testing.T) {
	mi := MetaInfo{
		PrimaryItemID: 1,
		ItemTypes:     map[uint32][4]byte{1: {'a', 'v', '0', '1'}},
		Locations: map[uint32]ItemLocation{
			1: {ItemID: 1, ConstructionMethod: ConstructionItem, Extents: []Extent{{Offset: 0, Length: 1}}},
		},
	}
	if _, err := mi.PrimaryItemRange([]byte{0}); err == nil {
		t.Fatalf("PrimaryItemRange with construction_method=2 should fail")
	}
}

func TestPrimaryItemRange_RejectsNonAV01(t *testing.T) {
	mi := MetaInfo{
		PrimaryItemID: 1,
		ItemTypes:     map[uint32][4]byte{1: {'m', 'i', 'm', 'e'}},
		Locations:     map[uint32]ItemLocation{1: {ItemID: 1}},
	}
	if _, err := mi.PrimaryItemRange([]byte{0}); err == nil {
		t.Fatalf("PrimaryItemRange on non-av01 item should fail")
	}
}
