package bitio

import "testing"

func TestRawBitReader_ReadBits(t *testing.T) {
	r := NewRawBitReader([]byte{0b10110010, 0b01010101})
	v, ok := r.ReadBits(4)
	if !ok || v != 0b1011 {
		t.Fatalf("ReadBits(4) = %d, %v, want 0b1011, true", v, ok)
	}
	v, ok = r.ReadBits(8)
	if !ok || v != 0b00100101 {
		t.Fatalf("ReadBits(8) = %d, %v, want 0b00100101, true", v, ok)
	}
	v, ok = r.ReadBits(4)
	if !ok || v != 0b0101 {
		t.Fatalf("ReadBits(4) = %d, %v, want 0b0101, true", v, ok)
	}
	if _, ok := r.ReadBit(); ok {
		t.Fatalf("ReadBit() past end of buffer should fail")
	}
}

func TestRawBitReader_ReadUvlc(t *testing.T) {
	tests := []struct {
		data []byte
		want uint32
	}{
		{[]byte{0b10000000}, 0},
		{[]byte{0b01000000}, 1},
		{[]byte{0b01100000}, 2},
		{[]byte{0b00100000}, 3}, // 2 leading zeros, suffix 00 -> (1<<2)-1+0=3
	}
	for _, tt := range tests {
		r := NewRawBitReader(tt.data)
		v, ok := r.ReadUvlc()
		if !ok {
			t.Fatalf("ReadUvlc(%08b) failed", tt.data[0])
		}
		if v != tt.want {
			t.Errorf("ReadUvlc(%08b) = %d, want %d", tt.data[0], v, tt.want)
		}
	}
}

func TestRawBitReader_ReadSU(t *testing.T) {
	// su(4): 4 bits, MSB is sign.
	r := NewRawBitReader([]byte{0b10010000}) // 1001 -> sign bit set, sign-extends to 9-16 = -7
	v, ok := r.ReadSU(4)
	if !ok {
		t.Fatalf("ReadSU(4) failed")
	}
	// 0b1001 with top bit set: 1001 | (~0xF) sign extended = -7
	want := int32(0b1001) - 16
	if v != want {
		t.Errorf("ReadSU(4) = %d, want %d", v, want)
	}

	r2 := NewRawBitReader([]byte{0b01110000})
	v2, ok := r2.ReadSU(4)
	if !ok || v2 != 0b0111 {
		t.Fatalf("ReadSU(4) positive = %d, %v, want 7, true", v2, ok)
	}
}

func TestRawBitReader_ReadNS(t *testing.T) {
	// n=1 always returns 0 with no bits consumed.
	r := NewRawBitReader([]byte{0xFF})
	v, ok := r.ReadNS(1)
	if !ok || v != 0 {
		t.Fatalf("ReadNS(1) = %d, %v, want 0, true", v, ok)
	}
	if r.BitPos() != 0 {
		t.Fatalf("ReadNS(1) consumed %d bits, want 0", r.BitPos())
	}

	// n=3: w=2, m=1. First bit read as (w-1)=1 bit.
	r2 := NewRawBitReader([]byte{0b00000000})
	v2, ok := r2.ReadNS(3)
	if !ok {
		t.Fatalf("ReadNS(3) failed")
	}
	if v2 != 0 {
		t.Errorf("ReadNS(3) on all-zero input = %d, want 0", v2)
	}
}

func TestRawBitReader_Truncated(t *testing.T) {
	r := NewRawBitReader([]byte{0xFF})
	if _, ok := r.ReadBits(16); ok {
		t.Fatalf("ReadBits(16) on 1-byte buffer should fail")
	}
}
