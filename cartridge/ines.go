package cartridge

import (
	"fmt"
	"io"
)

const (
	headerSize  = 16
	trainerSize = 512
	magic0      = 'N'
	magic1      = 'E'
	magic2      = 'S'
	magic3      = 0x1A
)

// LoadINES parses an iNES-format ROM image (the ubiquitous .nes file
// layout: a 16-byte header, an optional 512-byte trainer, then PRG-ROM
// and CHR-ROM banks) into a Cartridge. Only mapper 0 (NROM) is
// supported, matching this core's fixed-mapper Cartridge; any other
// mapper byte in the header is a fatal error.
func LoadINES(r io.Reader) (*Cartridge, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("cartridge: reading iNES header: %w", err)
	}
	if header[0] != magic0 || header[1] != magic1 || header[2] != magic2 || header[3] != magic3 {
		return nil, fmt.Errorf("cartridge: missing iNES magic bytes")
	}

	prgBanks := int(header[4])
	chrBanks := int(header[5])
	flags6 := header[6]
	flags7 := header[7]

	mapper := (flags7 & 0xF0) | (flags6 >> 4)
	if mapper != 0 {
		return nil, fmt.Errorf("cartridge: unsupported mapper %d, only NROM (mapper 0) is implemented", mapper)
	}

	if flags6&0x04 != 0 {
		trainer := make([]byte, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("cartridge: reading trainer: %w", err)
		}
	}

	prg := make([]byte, prgBanks*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("cartridge: reading %d PRG-ROM bank(s): %w", prgBanks, err)
	}

	chr := make([]byte, chrBankSize)
	if chrBanks == 0 {
		// The header declares zero CHR-ROM banks (a CHR-RAM board in
		// real hardware). This core doesn't implement CHR-RAM's write
		// path, so such a cartridge is exposed as a fixed zeroed bank.
	} else {
		chr = make([]byte, chrBanks*chrBankSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("cartridge: reading %d CHR-ROM bank(s): %w", chrBanks, err)
		}
	}
	if len(chr) != chrBankSize {
		// Multi-bank CHR-ROM isn't addressable by this fixed mapper;
		// only the first 8KiB bank is ever visible to the PPU.
		chr = chr[:chrBankSize]
	}

	mirroring := Horizontal
	if flags6&0x01 != 0 {
		mirroring = Vertical
	}

	return New(prg, chr, mirroring), nil
}
