package mappers

import (
	"fmt"

	"nesgo/ines"
	"nesgo/memory"
)

const (
	prgBankSize  = 0x4000
	chrBankSize  = 0x2000
	prgWindow    = 0x8000
	chrOrigin    = 0x0000
)

func init() {
	Register(0, loadMapper0)
}

// loadMapper0 implements mapper 0 (NROM) per §4.D: PRG ROM is written at CPU
// 0x8000, mirrored into 0xC000-0xFFFF when only one 16KiB bank is present;
// CHR ROM is written at PPU 0x0000 and write-protected, since on real NROM
// hardware CHR is mask ROM, not RAM.
func loadMapper0(rom *ines.ROM) (*Console, error) {
	c := &Console{
		CPU: memory.New(CPUSize),
		PPU: memory.New(PPUSize),
	}

	switch len(rom.PRG) {
	case prgBankSize:
		c.CPU.WriteBulk(prgWindow, rom.PRG)
		if err := c.CPU.InstallMirror(memory.MirrorRule{
			Physical: memory.Region{Start: prgWindow, Size: prgBankSize},
			Mirrored: memory.Region{Start: prgWindow + prgBankSize, Size: prgBankSize},
		}); err != nil {
			return nil, fmt.Errorf("mapper0: installing PRG mirror: %w", err)
		}
	case prgBankSize * 2:
		c.CPU.WriteBulk(prgWindow, rom.PRG)
	default:
		return nil, fmt.Errorf("mapper0: PRG ROM size %d is not one or two 16KiB banks", len(rom.PRG))
	}

	if len(rom.CHR) != chrBankSize {
		return nil, fmt.Errorf("mapper0: CHR ROM size %d, want %d", len(rom.CHR), chrBankSize)
	}
	c.PPU.WriteBulk(chrOrigin, rom.CHR)
	c.PPU.InstallProtection(memory.Region{Start: chrOrigin, Size: chrBankSize})

	return c, nil
}
