package av1

import "testing"

func TestTileParams_MiColsRows(t *testing.T) {
	p := &TileParams{MiColStart: 4, MiColEnd: 20, MiRowStart: 0, MiRowEnd: 16}
	if got := p.MiCols(); got != 16 {
		t.Errorf("MiCols() = %d, want 16", got)
	}
	if got := p.MiRows(); got != 16 {
		t.Errorf("MiRows() = %d, want 16", got)
	}
}

func TestTileParams_sbBsl(t *testing.T) {
	p := &TileParams{Use128x128Superblock: false}
	if got := p.sbBsl(); got != 4 {
		t.Errorf("sbBsl() = %d, want 4 for 64x64 superblocks", got)
	}
	p.Use128x128Superblock = true
	if got := p.sbBsl(); got != 5 {
		t.Errorf("sbBsl() = %d, want 5 for 128x128 superblocks", got)
	}
}

func TestTileParams_FrameLFCount(t *testing.T) {
	p := &TileParams{}
	if got := p.FrameLFCount(); got != 1 {
		t.Errorf("FrameLFCount() = %d, want 1 when DeltaLFMulti is false", got)
	}
	p.DeltaLFMulti = true
	p.MonoChrome = true
	if got := p.FrameLFCount(); got != 2 {
		t.Errorf("FrameLFCount() = %d, want 2 for mono_chrome+multi", got)
	}
	p.MonoChrome = false
	if got := p.FrameLFCount(); got != 4 {
		t.Errorf("FrameLFCount() = %d, want 4 for color+multi", got)
	}
}
