// Package ppu implements the register file, VRAM/OAM/palette memory and
// dot-clocked timing of the NES Picture Processing Unit. Pixel generation
// and the system palette are a rendering frontend's concern and live
// outside this package; the PPU here is purely the memory-mapped device
// the CPU programs and the timing source that raises NMI at vblank.
package ppu

import (
	"fmt"

	"github.com/9Tempest/NES/internal/bits"
)

// CPU-visible register offsets from $2000.
const (
	RegCTRL = iota
	RegMASK
	RegSTATUS
	RegOAMADDR
	RegOAMDATA
	RegSCROLL
	RegADDR
	RegDATA
)

// PPUCTRL ($2000) bits.
const (
	ctrlNametableMask = 0x03
	ctrlVRAMIncrement = 1 << 2
	ctrlSpriteTable   = 1 << 3
	ctrlBGTable       = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlMasterSlave   = 1 << 6
	ctrlGenerateNMI   = 1 << 7
)

// Bit positions of the same PPUCTRL/PPUSTATUS flags above, for use with
// the internal/bits helpers where a single-bit test or set reads more
// clearly than the raw mask.
const (
	ctrlVRAMIncrementBit = 2
	ctrlGenerateNMIBit   = 7

	statusSpriteOverflowBit = 5
	statusSprite0HitBit     = 6
	statusVBlankBit         = 7
)

// PPUSTATUS ($2002) bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

const (
	dotsPerScanline     = 341
	scanlinesPerFrame   = 262
	vblankStartScanline = 241
	preRenderScanline   = 261
	oamSize             = 256
	vramSize            = 2048
	paletteSize         = 32
)

// CHRMemory is the cartridge's pattern-table storage, read by the PPU for
// every tile fetch. This core treats CHR space as read-only ROM: a $2007
// write landing in $0000-$1FFF is a fatal bug signal rather than a write
// routed through this interface, so no CHRWrite exists here.
type CHRMemory interface {
	CHRRead(addr uint16) uint8
}

// Mirroring selects how the four logical 1KiB nametables are folded onto
// the two physical 1KiB pages actually present in VRAM.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
)

// PPU is the NES Picture Processing Unit's register file, memory and
// timing generator. It owns no cartridge bytes directly; CHR reads are
// routed through a CHRMemory.
type PPU struct {
	chr       CHRMemory
	mirroring Mirroring

	vram    [vramSize]byte
	palette [paletteSize]byte
	oam     [oamSize]byte

	ctrl, mask, status uint8
	oamAddr            uint8

	writeLatch bool // shared by $2005 and $2006, per hardware
	addr       uint16
	scrollX    uint8
	scrollY    uint8
	readBuffer uint8

	scanline int
	dot      int

	nmiPending bool // latched for the CPU's Bus.PollNMI
	frameCount uint64
}

// New constructs a PPU wired to chr for pattern-table access, with the
// given nametable mirroring.
func New(chr CHRMemory, mirroring Mirroring) *PPU {
	return &PPU{chr: chr, mirroring: mirroring}
}

func (p *PPU) String() string {
	return fmt.Sprintf("CTRL:%02X MASK:%02X STATUS:%02X OAMADDR:%02X ADDR:%04X scan:%d dot:%d",
		p.ctrl, p.mask, p.status, p.oamAddr, p.addr, p.scanline, p.dot)
}

// PollNMI reports whether an NMI has been latched since the last call and
// clears it, matching the contract mos6502.Bus requires.
func (p *PPU) PollNMI() bool {
	fired := p.nmiPending
	p.nmiPending = false
	return fired
}

// FrameCount returns the number of frames fully ticked so far, for
// frontends that need to pace themselves against vblank.
func (p *PPU) FrameCount() uint64 {
	return p.frameCount
}

// InVBlank reports the vblank flag held in PPUSTATUS. A CPU read of $2002
// clears that flag, so after such a read this returns false even while
// the vblank scanlines are still running.
func (p *PPU) InVBlank() bool {
	return bits.Bit(p.status, statusVBlankBit)
}

// Tick advances the PPU by n dots (1 dot per PPU clock; callers coupling
// to CPU cycles should pass 3*cpuCycles, since the PPU runs three times
// the CPU's clock rate).
func (p *PPU) Tick(n int) {
	for i := 0; i < n; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	switch {
	case p.scanline == vblankStartScanline && p.dot == 1:
		p.status = bits.SetBit(p.status, statusVBlankBit, true)
		if bits.Bit(p.ctrl, ctrlGenerateNMIBit) {
			p.nmiPending = true
		}
	case p.scanline == preRenderScanline && p.dot == 1:
		p.status = bits.SetBit(p.status, statusVBlankBit, false)
		p.status = bits.SetBit(p.status, statusSprite0HitBit, false)
		p.status = bits.SetBit(p.status, statusSpriteOverflowBit, false)
	}

	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frameCount++
		}
	}
}

// BaseNametableAddr returns the nametable base address selected by
// PPUCTRL's low two bits ($2000, $2400, $2800 or $2C00). A renderer
// walking the nametables would start here; this core only exposes the
// decoded value.
func (p *PPU) BaseNametableAddr() uint16 {
	return 0x2000 + uint16(bits.Range(p.ctrl, 0, 1))*0x0400
}

func (p *PPU) vramIncrement() uint16 {
	if bits.Bit(p.ctrl, ctrlVRAMIncrementBit) {
		return 32
	}
	return 1
}
