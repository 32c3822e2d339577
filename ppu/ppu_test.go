package ppu

import "testing"

// testCHR is a flat 8KiB pattern table, enough to exercise reads
// without a real cartridge.
type testCHR struct {
	mem [0x2000]byte
}

func (c *testCHR) CHRRead(addr uint16) uint8 { return c.mem[addr] }

func newTestPPU(m Mirroring) (*PPU, *testCHR) {
	chr := &testCHR{}
	return New(chr, m), chr
}

func TestVRAMWriteThenRead(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegADDR, 0x23)
	p.WriteRegister(RegADDR, 0x05)
	p.WriteRegister(RegDATA, 0x66)

	p.WriteRegister(RegADDR, 0x23)
	p.WriteRegister(RegADDR, 0x05)
	p.ReadRegister(RegDATA) // primes the read buffer
	if got := p.ReadRegister(RegDATA); got != 0x66 {
		t.Fatalf("VRAM read = %#02x, want $66", got)
	}
}

func TestDataReadAutoIncrementsAddr(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegADDR, 0x21)
	p.WriteRegister(RegADDR, 0xFF)
	p.ReadRegister(RegDATA)
	if p.addr != 0x2200 {
		t.Fatalf("addr after read = %#04x, want $2200", p.addr)
	}
}

func TestDataIncrementStepFromCtrl(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegCTRL, ctrlVRAMIncrement)
	p.WriteRegister(RegADDR, 0x21)
	p.WriteRegister(RegADDR, 0xFF)
	p.ReadRegister(RegDATA)
	if p.addr != 0x221F {
		t.Fatalf("addr after buffered read with +32 increment = %#04x, want $221F", p.addr)
	}
}

func TestBaseNametableAddrFromCtrlLowBits(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegCTRL, 0x02)
	if got := p.BaseNametableAddr(); got != 0x2800 {
		t.Fatalf("BaseNametableAddr() = %#04x, want $2800", got)
	}
}

func TestScrollAndAddrShareOneWriteLatch(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegSCROLL, 0x10) // consumes the latch's "first write" slot
	p.WriteRegister(RegADDR, 0x23)   // this must land as the *second* write, not the first
	p.WriteRegister(RegADDR, 0x05)
	if p.addr != 0x0523 {
		t.Fatalf("addr = %#04x, want $0523 (SCROLL and ADDR share one latch)", p.addr)
	}
}

func TestScrollFirstWriteIsX(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegSCROLL, 0x7D)
	p.WriteRegister(RegSCROLL, 0x20)
	if p.scrollX != 0x7D || p.scrollY != 0x20 {
		t.Fatalf("scrollX=%#02x scrollY=%#02x, want x=$7D y=$20", p.scrollX, p.scrollY)
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.status |= statusVBlank
	p.writeLatch = true

	val := p.ReadRegister(RegSTATUS)
	if val&statusVBlank == 0 {
		t.Fatalf("status read should return vblank bit as it was before clearing")
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("reading STATUS must clear vblank")
	}
	if p.writeLatch {
		t.Fatalf("reading STATUS must reset the shared write latch")
	}
}

func TestHorizontalMirroring(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	// $2000 and $2400 share a physical page; $2800 and $2C00 share the other.
	if p.mirrorNametable(0x2000) != p.mirrorNametable(0x2400) {
		t.Fatalf("horizontal mirroring: $2000 and $2400 should alias")
	}
	if p.mirrorNametable(0x2800) != p.mirrorNametable(0x2C00) {
		t.Fatalf("horizontal mirroring: $2800 and $2C00 should alias")
	}
	if p.mirrorNametable(0x2000) == p.mirrorNametable(0x2800) {
		t.Fatalf("horizontal mirroring: $2000 and $2800 must be distinct pages")
	}
}

func TestVerticalMirroring(t *testing.T) {
	p, _ := newTestPPU(Vertical)
	if p.mirrorNametable(0x2000) != p.mirrorNametable(0x2800) {
		t.Fatalf("vertical mirroring: $2000 and $2800 should alias")
	}
	if p.mirrorNametable(0x2400) != p.mirrorNametable(0x2C00) {
		t.Fatalf("vertical mirroring: $2400 and $2C00 should alias")
	}
	if p.mirrorNametable(0x2000) == p.mirrorNametable(0x2400) {
		t.Fatalf("vertical mirroring: $2000 and $2400 must be distinct pages")
	}
}

func TestPaletteMirrorAliases(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegADDR, 0x3F)
	p.WriteRegister(RegADDR, 0x00)
	p.WriteRegister(RegDATA, 0x30)

	p.WriteRegister(RegADDR, 0x3F)
	p.WriteRegister(RegADDR, 0x10)
	if got := p.ReadRegister(RegDATA); got != 0x30 {
		t.Fatalf("palette read at $3F10 = %#02x, want $30 (mirrors $3F00)", got)
	}
}

func TestOAMReadWrite(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegOAMADDR, 0x10)
	p.WriteRegister(RegOAMDATA, 0x66)
	p.WriteRegister(RegOAMADDR, 0x10)
	if got := p.ReadRegister(RegOAMDATA); got != 0x66 {
		t.Fatalf("OAM read = %#02x, want $66", got)
	}
}

func expectPanic(t *testing.T, why string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected a panic", why)
		}
	}()
	fn()
}

func TestWriteToCHRSpacePanics(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	expectPanic(t, "write to $0000", func() {
		p.WriteRegister(RegADDR, 0x00)
		p.WriteRegister(RegADDR, 0x00)
		p.WriteRegister(RegDATA, 0x42)
	})
}

func TestAccessToUnusedRegionPanics(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	expectPanic(t, "write to $3000", func() {
		p.WriteRegister(RegADDR, 0x30)
		p.WriteRegister(RegADDR, 0x00)
		p.WriteRegister(RegDATA, 0x42)
	})

	p2, _ := newTestPPU(Horizontal)
	expectPanic(t, "read from $3EFF", func() {
		p2.WriteRegister(RegADDR, 0x3E)
		p2.WriteRegister(RegADDR, 0xFF)
		p2.ReadRegister(RegDATA)
	})
}

func TestOAMDMAWrapsFromOAMAddr(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegOAMADDR, 0x10)

	var data [oamSize]byte
	for i := range data {
		data[i] = uint8(i)
	}
	p.OAMDMA(data)

	if p.oam[0x10] != 0x00 {
		t.Fatalf("oam[0x10] = %#02x, want $00 (DMA starts at OAMADDR)", p.oam[0x10])
	}
	if p.oam[0x0F] != 0xFF {
		t.Fatalf("oam[0x0F] = %#02x, want $FF (DMA wraps mod 256)", p.oam[0x0F])
	}
}

// tickUntil advances p one dot at a time until it reaches (scanline, dot),
// failing the test if that point never arrives within one frame.
func tickUntil(t *testing.T, p *PPU, scanline, dot int) {
	t.Helper()
	for i := 0; i < dotsPerScanline*scanlinesPerFrame+1; i++ {
		if p.scanline == scanline && p.dot == dot {
			return
		}
		p.Tick(1)
	}
	t.Fatalf("never reached scanline %d dot %d", scanline, dot)
}

func TestVBlankSetAtScanline241Dot1(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	p.WriteRegister(RegCTRL, ctrlGenerateNMI)
	tickUntil(t, p, vblankStartScanline, 1)
	p.Tick(1)
	if !p.InVBlank() {
		t.Fatalf("vblank should be set at scanline 241 dot 1")
	}
	if !p.PollNMI() {
		t.Fatalf("NMI should fire alongside vblank when CTRL bit 7 is set")
	}
}

func TestVBlankClearedAtPreRender(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	tickUntil(t, p, vblankStartScanline, 1)
	p.Tick(1)
	if !p.InVBlank() {
		t.Fatalf("setup: expected vblank to be set")
	}
	tickUntil(t, p, preRenderScanline, 1)
	p.Tick(1)
	if p.InVBlank() {
		t.Fatalf("vblank should clear at the pre-render scanline's dot 1")
	}
}

func TestEnablingNMIDuringVBlankFiresImmediately(t *testing.T) {
	p, _ := newTestPPU(Horizontal)
	tickUntil(t, p, vblankStartScanline, 1)
	p.Tick(1)
	p.PollNMI() // drain the one from entering vblank

	p.WriteRegister(RegCTRL, ctrlGenerateNMI)
	if !p.PollNMI() {
		t.Fatalf("turning on NMI-on-vblank while already in vblank should fire immediately")
	}
}
