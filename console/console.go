// Package console composes the CPU, PPU and cartridge into a running NES:
// it owns internal RAM, decodes the CPU's memory map, and couples CPU
// cycles to PPU dots so the two clocks stay in the hardware's fixed 1:3
// ratio.
package console

import (
	"github.com/9Tempest/NES/cartridge"
	"github.com/9Tempest/NES/mos6502"
	"github.com/9Tempest/NES/ppu"
)

const (
	ramSize       = 0x0800
	ramMirrorEnd  = 0x2000
	ppuRegEnd     = 0x4000
	oamDMARegAddr = 0x4014
	apuIOStart    = 0x4000
	apuIOEnd      = 0x4018
	cartridgeBase = 0x8000
)

// Console is a complete NES: CPU, PPU, cartridge and 2KiB of work RAM,
// wired together exactly as the hardware's address decoder does.
type Console struct {
	CPU *mos6502.CPU
	PPU *ppu.PPU

	cart *cartridge.Cartridge
	ram  [ramSize]byte

	totalCycles      uint64
	pendingDMACycles int
}

// New builds a Console around cart and resets the CPU from its reset
// vector.
func New(cart *cartridge.Cartridge) *Console {
	mirroring := ppu.Horizontal
	if cart.Mirroring() == cartridge.Vertical {
		mirroring = ppu.Vertical
	}

	c := &Console{
		cart: cart,
		PPU:  ppu.New(cart, mirroring),
	}
	c.CPU = mos6502.New(c)
	return c
}

// Step runs one CPU step (one instruction, or the entry into a pending
// NMI), stalls for any OAM DMA the instruction triggered, and ticks the PPU three dots per CPU cycle
// consumed (including DMA stall cycles, since the PPU keeps running while
// the CPU is parked). It returns the number of CPU cycles elapsed.
func (c *Console) Step() int {
	cycles := c.CPU.Step()
	cycles += c.pendingDMACycles
	c.pendingDMACycles = 0

	c.totalCycles += uint64(cycles)
	c.PPU.Tick(cycles * 3)
	return cycles
}

// Reset reproduces a power-on/reset cycle across the whole machine.
func (c *Console) Reset() {
	c.CPU.Reset()
}

// Read implements mos6502.Bus.
func (c *Console) Read(addr uint16) uint8 {
	switch {
	case addr < ramMirrorEnd:
		return c.ram[addr%ramSize]

	case addr < ppuRegEnd:
		return c.PPU.ReadRegister(uint8((addr - 0x2000) % 8))

	case addr == oamDMARegAddr:
		return 0 // write-only

	case addr >= apuIOStart && addr < apuIOEnd:
		// APU registers and the controller ports are out of scope; reads
		// here return 0.
		return 0

	case addr >= cartridgeBase:
		return c.cart.PRGRead(addr)

	default:
		// Cartridge SRAM / expansion ROM space: no mapper in this core
		// populates it.
		return 0
	}
}

// Write implements mos6502.Bus.
func (c *Console) Write(addr uint16, val uint8) {
	switch {
	case addr < ramMirrorEnd:
		c.ram[addr%ramSize] = val

	case addr < ppuRegEnd:
		c.PPU.WriteRegister(uint8((addr-0x2000)%8), val)

	case addr == oamDMARegAddr:
		c.doOAMDMA(val)

	case addr >= apuIOStart && addr < apuIOEnd:
		// no-op: APU and controllers are out of scope.

	case addr >= cartridgeBase:
		c.cart.PRGWrite(addr, val)

	default:
		// no battery RAM in this core.
	}
}

// PollNMI implements mos6502.Bus.
func (c *Console) PollNMI() bool {
	return c.PPU.PollNMI()
}

// doOAMDMA copies the 256-byte page starting at val<<8 from CPU address
// space into OAM. It stalls the CPU for 513 cycles, or 514 if the DMA
// began on an odd CPU cycle. The copy happens synchronously with the
// write that triggered it; the stall is added by the Step call that ran
// that write, after its CPU instruction returns.
func (c *Console) doOAMDMA(page uint8) {
	base := uint16(page) << 8
	var data [256]byte
	for i := 0; i < 256; i++ {
		data[i] = c.Read(base + uint16(i))
	}
	c.PPU.OAMDMA(data)

	stall := 513
	if c.totalCycles%2 == 1 {
		stall = 514
	}
	c.pendingDMACycles += stall
}
