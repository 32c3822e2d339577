package ppu

import "fmt"

// readData and writeData implement the $2007 VRAM address space as seen
// by the PPU: pattern tables (cartridge CHR), nametables (internal VRAM,
// mirrored per the cartridge's wiring) and palette RAM. $3000-$3EFF is
// never legitimately addressed by real software (hardware masks scroll
// and PPUADDR values before they reach the nametables); reaching it here
// means the core or the ROM has a bug, so both operations abort.
func (p *PPU) readData(addr uint16) uint8 {
	addr &= 0x3FFF

	switch {
	case addr < 0x2000:
		// Reads here are buffered: the CPU sees the byte from the
		// *previous* read while this one is latched for next time.
		val := p.readBuffer
		p.readBuffer = p.chr.CHRRead(addr)
		return val

	case addr < 0x3000:
		val := p.readBuffer
		p.readBuffer = p.vram[p.mirrorNametable(addr)]
		return val

	case addr < 0x3F00:
		panic(fmt.Sprintf("ppu: read of unused region $%04X ($3000-$3EFF is never valid)", addr))

	default:
		// Palette reads are not buffered; they return immediately. The
		// buffer is still refreshed from the nametable that would be
		// mirrored at this address, matching the one-read-behind value
		// a subsequent read into nametable space would otherwise see.
		p.readBuffer = p.vram[p.mirrorNametable(addr-0x1000)]
		return p.palette[p.paletteIndex(addr)]
	}
}

func (p *PPU) writeData(addr uint16, val uint8) {
	addr &= 0x3FFF

	switch {
	case addr < 0x2000:
		panic(fmt.Sprintf("ppu: write to CHR-ROM space at $%04X", addr))

	case addr < 0x3000:
		p.vram[p.mirrorNametable(addr)] = val

	case addr < 0x3F00:
		panic(fmt.Sprintf("ppu: write to unused region $%04X ($3000-$3EFF is never valid)", addr))

	default:
		p.palette[p.paletteIndex(addr)] = val
	}
}

// mirrorNametable maps a PPU address in $2000-$2EFF onto one of the two
// physical 1KiB VRAM pages, per the cartridge's mirroring wiring.
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	a := addr - 0x2000
	page := a / 0x0400
	offset := a % 0x0400

	switch p.mirroring {
	case Vertical:
		return (page%2)*0x0400 + offset
	default: // Horizontal
		return (page/2)*0x0400 + offset
	}
}

// paletteIndex resolves a $3F00-$3FFF address to its 32-byte palette
// slot, aliasing the four background-color mirrors the hardware ignores
// writes to independently ($3F10/$3F14/$3F18/$3F1C mirror $3F00 et al).
func (p *PPU) paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) % paletteSize
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		return idx - 0x10
	default:
		return idx
	}
}
