package mos6502

import "nesgo/bits"

// Mode identifies one of the 6502's 13 addressing modes.
type Mode uint8

const (
	Implicit Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

var modeNames = [...]string{
	Implicit:    "IMPLICIT",
	Accumulator: "ACCUMULATOR",
	Immediate:   "IMMEDIATE",
	ZeroPage:    "ZERO_PAGE",
	ZeroPageX:   "ZERO_PAGE_X",
	ZeroPageY:   "ZERO_PAGE_Y",
	Relative:    "RELATIVE",
	Absolute:    "ABSOLUTE",
	AbsoluteX:   "ABSOLUTE_X",
	AbsoluteY:   "ABSOLUTE_Y",
	Indirect:    "INDIRECT",
	IndirectX:   "INDIRECT_X",
	IndirectY:   "INDIRECT_Y",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN"
}

// Operand is the resolved addressing-mode record every instruction body
// executes against: either a bare value (Immediate/Accumulator) or a
// memory address the instruction reads/writes itself. Value is populated
// eagerly only for the two no-address modes; memory-addressed modes defer
// the actual read to the instruction body via CPU.readOperand, so that
// store instructions never issue a spurious read of their own destination
// (the destination may be a PPU register whose read side effects must not
// fire for a write-only access).
type Operand struct {
	Mode Mode

	Value uint8

	Address    uint16
	HasAddress bool

	// IndirectBase is the address the indirect vector itself was read
	// from; carried only for trace-log disassembly.
	IndirectBase    uint16
	HasIndirectBase bool
}

// Instruction is a fully decoded instruction as executed by one Step call,
// exposed for trace logging.
type Instruction struct {
	PC       uint16
	Opcode   uint8
	Op1, Op2 uint8
	Length   uint8
	Mnemonic string
	Mode     Mode
	Operand  Operand
}

// readOperand returns the operand's value, reading through memory exactly
// once if the mode is memory-addressed.
func (c *CPU) readOperand(op Operand) uint8 {
	if op.HasAddress {
		return c.Mem.ReadByte(op.Address)
	}
	return op.Value
}

// fetchOperand resolves addr/value for mode, assuming PC points at the
// first operand byte (i.e. one past the opcode byte, not yet advanced past
// the operand). It never advances PC itself.
func (c *CPU) fetchOperand(mode Mode) Operand {
	switch mode {
	case Implicit:
		return Operand{Mode: mode}
	case Accumulator:
		return Operand{Mode: mode, Value: c.A}
	case Immediate:
		return Operand{Mode: mode, Value: c.Mem.ReadByte(c.PC)}
	case ZeroPage:
		addr := uint16(c.Mem.ReadByte(c.PC))
		return Operand{Mode: mode, Address: addr, HasAddress: true}
	case ZeroPageX:
		base := bits.U8(c.Mem.ReadByte(c.PC))
		addr := uint16(base.Add(int(c.X)))
		return Operand{Mode: mode, Address: addr, HasAddress: true}
	case ZeroPageY:
		base := bits.U8(c.Mem.ReadByte(c.PC))
		addr := uint16(base.Add(int(c.Y)))
		return Operand{Mode: mode, Address: addr, HasAddress: true}
	case Relative:
		offset := int8(c.Mem.ReadByte(c.PC))
		addr := uint16(bits.U16(c.PC).Add(1).Add(int(offset)))
		return Operand{Mode: mode, Address: addr, HasAddress: true}
	case Absolute:
		addr := c.Mem.ReadWord(c.PC)
		return Operand{Mode: mode, Address: addr, HasAddress: true}
	case AbsoluteX:
		base := bits.U16(c.Mem.ReadWord(c.PC))
		return Operand{Mode: mode, Address: uint16(base.Add(int(c.X))), HasAddress: true}
	case AbsoluteY:
		base := bits.U16(c.Mem.ReadWord(c.PC))
		return Operand{Mode: mode, Address: uint16(base.Add(int(c.Y))), HasAddress: true}
	case Indirect:
		base := c.Mem.ReadWord(c.PC)
		addr := c.readWordBuggy(base)
		return Operand{Mode: mode, Address: addr, HasAddress: true, IndirectBase: base, HasIndirectBase: true}
	case IndirectX:
		base := bits.U8(c.Mem.ReadByte(c.PC))
		ptr := uint16(base.Add(int(c.X)))
		addr := c.readWordZeroPage(ptr)
		return Operand{Mode: mode, Address: addr, HasAddress: true, IndirectBase: ptr, HasIndirectBase: true}
	case IndirectY:
		base := uint16(c.Mem.ReadByte(c.PC))
		ptr := c.readWordZeroPage(base)
		addr := uint16(bits.U16(ptr).Add(int(c.Y)))
		return Operand{Mode: mode, Address: addr, HasAddress: true, IndirectBase: base, HasIndirectBase: true}
	default:
		panic("mos6502: unsupported addressing mode in dispatch table")
	}
}

// readWordZeroPage reads a little-endian word whose two bytes both lie in
// the zero page, wrapping 0xFF back to 0x00 rather than crossing into page
// one (used by IndirectX/IndirectY).
func (c *CPU) readWordZeroPage(addr uint16) uint16 {
	lo := bits.U8(c.Mem.ReadByte(addr & 0x00FF))
	hi := bits.U8(c.Mem.ReadByte((addr + 1) & 0x00FF))
	return uint16(bits.WordFrom(lo, hi))
}

// readWordBuggy reproduces the indirect-JMP page-wrap bug: when the vector's
// low byte is 0xFF, the high byte is fetched from the start of the same
// page rather than the next page.
func (c *CPU) readWordBuggy(addr uint16) uint16 {
	lo := bits.U8(c.Mem.ReadByte(addr))
	hiAddr := addr + 1
	if !bits.SamePage(bits.U16(addr), bits.U16(hiAddr)) {
		hiAddr = addr & 0xFF00
	}
	hi := bits.U8(c.Mem.ReadByte(hiAddr))
	return uint16(bits.WordFrom(lo, hi))
}
