package console

import (
	"testing"

	"github.com/9Tempest/NES/cartridge"
	"github.com/stretchr/testify/require"
)

func newTestConsole(prg []byte) *Console {
	full := make([]byte, 0x4000)
	copy(full, prg)
	chr := make([]byte, 0x2000)
	cart := cartridge.New(full, chr, cartridge.Horizontal)
	return New(cart)
}

func TestRAMMirroring(t *testing.T) {
	c := newTestConsole(nil)
	c.Write(0x0000, 0x42)
	require.Equal(t, uint8(0x42), c.Read(0x0800), "RAM should mirror at $0800")
	require.Equal(t, uint8(0x42), c.Read(0x1800), "RAM should mirror at $1800")
}

func TestPPURegistersMirrorEveryEightBytes(t *testing.T) {
	c := newTestConsole(nil)
	c.Write(0x2000, 0x80) // CTRL, enable NMI-on-vblank
	c.Write(0x2008, 0x00) // mirrors $2000, clears it
	require.NotEmpty(t, c.PPU.String())
	require.Contains(t, c.PPU.String(), "CTRL:00", "write to $2008 should reach CTRL")
}

func TestPRGMirrorsSixteenKilobytesAcrossThirtyTwo(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xEA
	c := newTestConsole(prg)
	require.Equal(t, uint8(0xEA), c.Read(0x8000))
	require.Equal(t, uint8(0xEA), c.Read(0xC000), "16KiB PRG should mirror at $C000")
}

func TestOAMDMAStallsCPUFor513Or514Cycles(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0xA9 // LDA #$14
	prg[1] = 0x14
	prg[2] = 0x8D // STA $4014
	prg[3] = 0x14
	prg[4] = 0x40
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	c := newTestConsole(prg)

	c.Step() // LDA
	cyclesBeforeDMA := c.totalCycles
	dmaStep := c.Step() // STA $4014 triggers DMA
	_ = cyclesBeforeDMA

	if dmaStep != 4+513 && dmaStep != 4+514 {
		t.Fatalf("STA $4014 cycle count = %d, want base(4)+513 or base(4)+514", dmaStep)
	}
}

func TestOAMDMACopiesFromPageToOAM(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	c := newTestConsole(prg)

	c.ram[0x0010] = 0x99
	c.doOAMDMA(0x00)
	if c.PPU.OAM()[0x10] != 0x99 {
		t.Fatalf("OAM[0x10] after DMA from page $00 = %#02x, want $99", c.PPU.OAM()[0x10])
	}
}
