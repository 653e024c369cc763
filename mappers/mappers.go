// Package mappers installs a parsed cartridge's PRG/CHR data into CPU and
// PPU address spaces according to the cartridge's mapper number, and applies
// the platform-wide mirror post-pass every mapper needs (PPU register
// window, internal RAM, palette RAM).
//
// Only mapper 0 (NROM) is implemented; the spec's non-goals exclude
// additional mappers.
package mappers

import (
	"fmt"

	"nesgo/ines"
	"nesgo/memory"
)

const (
	// CPUSize is the full 64KiB CPU address space, per DESIGN NOTES §9
	// (always 0x10000, never 0xFFFF).
	CPUSize = 0x10000
	// PPUSize is the full 16KiB PPU address space.
	PPUSize = 0x4000
)

// Console is the pair of address spaces a mapper establishes: CPU memory and
// PPU memory.
type Console struct {
	CPU *memory.Space
	PPU *memory.Space
}

// Loader builds a Console from a parsed cartridge. Mapper-specific
// implementations register themselves with Register.
type Loader func(rom *ines.ROM) (*Console, error)

var registry = map[uint16]Loader{}

// Register associates a mapper number with its Loader. Intended to be called
// from each mapper's package-level init().
func Register(mapperNumber uint16, l Loader) {
	if _, exists := registry[mapperNumber]; exists {
		panic(fmt.Sprintf("mappers: mapper %d already registered", mapperNumber))
	}
	registry[mapperNumber] = l
}

// Load builds the console's address spaces for rom using the mapper number
// it declares.
func Load(rom *ines.ROM) (*Console, error) {
	l, ok := registry[rom.Header.MapperNumber]
	if !ok {
		return nil, fmt.Errorf("mappers: unsupported mapper %d", rom.Header.MapperNumber)
	}

	console, err := l(rom)
	if err != nil {
		return nil, err
	}
	installPlatformMirrors(console)
	return console, nil
}

// installPlatformMirrors applies the post-pass every mapper needs per §4.D:
// the PPU register window, internal 2KiB RAM, and PPU palette RAM mirrors,
// plus the atomic cells the PPU worker touches directly across goroutines.
func installPlatformMirrors(c *Console) {
	mustMirror(c.CPU, memory.MirrorRule{
		Physical: memory.Region{Start: 0x2000, Size: 8},
		Mirrored: memory.Region{Start: 0x2008, Size: 0x3FFF - 0x2008 + 1},
	})
	mustMirror(c.CPU, memory.MirrorRule{
		Physical: memory.Region{Start: 0x0000, Size: 0x0800},
		Mirrored: memory.Region{Start: 0x0800, Size: 0x1FFF - 0x0800 + 1},
	})
	mustMirror(c.PPU, memory.MirrorRule{
		Physical: memory.Region{Start: 0x3F00, Size: 0x20},
		Mirrored: memory.Region{Start: 0x3F20, Size: 0x3FFF - 0x3F20 + 1},
	})

	// 0x2002 (PPUSTATUS) is the byte the PPU worker sets/clears directly for
	// VBlank, per §4.B's atomic cross-thread cell expansion. 0x2000
	// (PPUCTRL) is not hook-mediated (the required hook set is 0x2002 read,
	// 0x2006/0x2007 write, 0x2007 read only), yet the PPU worker still has
	// to sample its generate-NMI bit once per frame; backing it with an
	// atomic cell too avoids an unsynchronized cross-goroutine read of a
	// plain byte for the one other address the PPU peeks at.
	c.CPU.InstallAtomicCell(0x2002)
	c.CPU.InstallAtomicCell(0x2000)
}

func mustMirror(s *memory.Space, rule memory.MirrorRule) {
	if err := s.InstallMirror(rule); err != nil {
		panic(fmt.Sprintf("mappers: platform mirror install failed: %v", err))
	}
}

// LoadRaw builds a Console from a byte-exact CPU address space dump (the
// --raw CLI mode of §6), bypassing the iNES header and mapper selection
// entirely. image must be exactly CPUSize bytes; PPU memory starts blank
// since a raw dump carries no CHR data. The platform-wide mirror post-pass
// still applies, since the PPU register window and internal RAM mirrors are
// unconditional regardless of how the cartridge's contents were obtained.
func LoadRaw(image []byte) (*Console, error) {
	if len(image) != CPUSize {
		return nil, fmt.Errorf("mappers: raw image size %d, want %d", len(image), CPUSize)
	}
	c := &Console{
		CPU: memory.New(CPUSize),
		PPU: memory.New(PPUSize),
	}
	c.CPU.WriteBulk(0, image)
	installPlatformMirrors(c)
	return c, nil
}
