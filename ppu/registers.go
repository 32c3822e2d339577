package ppu

import "github.com/9Tempest/NES/internal/bits"

// WriteRegister handles a CPU write to one of the eight memory-mapped
// registers at $2000-$2007 (reg is already reduced mod 8 by the bus).
// No open-bus latch is kept: $2002 reads return 0 in their unused low
// bits.
func (p *PPU) WriteRegister(reg uint8, val uint8) {
	switch reg {
	case RegCTRL:
		wasGenerating := bits.Bit(p.ctrl, ctrlGenerateNMIBit)
		p.ctrl = val
		// Toggling NMI-on-vblank from off to on while already in vblank
		// fires an NMI immediately rather than waiting for the next
		// vblank edge, a quirk real games rely on.
		if !wasGenerating && bits.Bit(p.ctrl, ctrlGenerateNMIBit) && bits.Bit(p.status, statusVBlankBit) {
			p.nmiPending = true
		}

	case RegMASK:
		p.mask = val

	case RegSTATUS:
		// Not writable; real hardware ignores writes here.

	case RegOAMADDR:
		p.oamAddr = val

	case RegOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++

	case RegSCROLL:
		if !p.writeLatch {
			p.scrollX = val
		} else {
			p.scrollY = val
		}
		p.writeLatch = !p.writeLatch

	case RegADDR:
		if !p.writeLatch {
			p.addr = (p.addr & 0x00FF) | uint16(val)<<8
		} else {
			p.addr = (p.addr & 0xFF00) | uint16(val)
			p.addr &= 0x3FFF
		}
		p.writeLatch = !p.writeLatch

	case RegDATA:
		p.writeData(p.addr, val)
		p.addr = (p.addr + p.vramIncrement()) & 0x3FFF
	}
}

// ReadRegister handles a CPU read from $2000-$2007. Write-only registers
// return 0, matching the common emulator convention of exposing no
// meaningful open-bus behavior beyond what real software depends on.
func (p *PPU) ReadRegister(reg uint8) uint8 {
	switch reg {
	case RegSTATUS:
		val := p.status
		p.status = bits.SetBit(p.status, statusVBlankBit, false)
		p.writeLatch = false
		return val

	case RegOAMDATA:
		return p.oam[p.oamAddr]

	case RegDATA:
		val := p.readData(p.addr)
		p.addr = (p.addr + p.vramIncrement()) & 0x3FFF
		return val

	default:
		return 0
	}
}

// OAMDMA copies all 256 bytes of data into OAM, starting at the current
// OAMADDR and wrapping mod 256, exactly as the real $4014 DMA does. Since
// it writes all 256 entries, OAMADDR ends the transfer back where it
// started.
func (p *PPU) OAMDMA(data [oamSize]byte) {
	for i := 0; i < oamSize; i++ {
		p.oam[uint8(int(p.oamAddr)+i)] = data[i]
	}
}

// OAM returns the raw 256-byte object attribute memory, for OAMDMA
// sourcing and debugging.
func (p *PPU) OAM() *[oamSize]byte {
	return &p.oam
}
