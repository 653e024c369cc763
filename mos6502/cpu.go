// Package mos6502 implements the MOS Technology 6502 instruction interpreter
// used by the NES: opcode decoding across 13 addressing modes, modular 8/16
// bit arithmetic, stack discipline, and vectored interrupts.
package mos6502

import (
	"errors"
	"fmt"

	"nesgo/memory"
)

// Processor status flags. Bit layout of the assembled status byte is
// N V 1 B D I Z C.
const (
	FlagCarry            uint8 = 1 << 0
	FlagZero             uint8 = 1 << 1
	FlagInterruptDisable uint8 = 1 << 2
	FlagDecimal          uint8 = 1 << 3
	FlagBreak            uint8 = 1 << 4
	FlagUnused           uint8 = 1 << 5
	FlagOverflow         uint8 = 1 << 6
	FlagNegative         uint8 = 1 << 7
)

// Interrupt vectors, per https://www.nesdev.org/wiki/CPU_ALL.xhtml.
const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
)

const stackPage uint16 = 0x0100

// ErrUnknownOpcode is returned by Step when the fetched byte has no entry in
// the opcode table.
var ErrUnknownOpcode = errors.New("mos6502: unknown opcode")

// CPU holds all MOS 6502 machine state. Memory is owned by the caller
// (mapper 0's CPU address space); the CPU only ever reads and writes through
// it, so the platform's mirrors/protection/hooks are honored uniformly.
type CPU struct {
	A, X, Y uint8
	Status  uint8
	SP      uint8
	PC      uint16

	Mem *memory.Space

	pendingNMI bool
	pendingIRQ bool
}

// New constructs a CPU at its documented power-on state and loads PC from
// the reset vector.
// https://nesdev-wiki.nes.science/wikipages/CPU_ALL.xhtml#Power_up_state
func New(mem *memory.Space) *CPU {
	c := &CPU{
		SP:     0xFD,
		Status: FlagUnused | FlagInterruptDisable,
		Mem:    mem,
	}
	c.PC = mem.ReadWord(vectorReset)
	return c
}

// Reset performs the reset-line sequence: sets I, reloads PC from the reset
// vector. The unused flag is only ever touched here and at construction.
func (c *CPU) Reset() {
	c.flagsOn(FlagInterruptDisable | FlagUnused)
	c.PC = c.Mem.ReadWord(vectorReset)
}

// TriggerNMI requests a non-maskable interrupt, serviced before the next
// instruction fetch. NMI is never masked by the I flag.
func (c *CPU) TriggerNMI() {
	c.pendingNMI = true
}

// TriggerIRQ requests a maskable interrupt, serviced before the next
// instruction fetch only if the I flag is clear at that time; otherwise the
// request is dropped, matching real hardware's edge-unaware line sampling
// for this core's purposes.
func (c *CPU) TriggerIRQ() {
	c.pendingIRQ = true
}

// SetEntryPoint overrides PC, used by the -e/--entry-point CLI flag to skip
// the reset vector.
func (c *CPU) SetEntryPoint(pc uint16) {
	c.PC = pc
}

// Step executes exactly one instruction (after first servicing any pending
// interrupt) and returns the decoded Instruction for trace logging.
func (c *CPU) Step() (Instruction, error) {
	c.serviceInterrupts()

	pc := c.PC
	opcodeByte := c.Mem.ReadByte(pc)
	entry := opcodeTable[opcodeByte]
	if entry == nil {
		return Instruction{}, fmt.Errorf("%w: opcode %#02x at PC %#04x", ErrUnknownOpcode, opcodeByte, pc)
	}

	c.PC++
	instr := Instruction{
		PC:     pc,
		Opcode: opcodeByte,
		Mnemonic: entry.mnemonic,
		Mode:     entry.mode,
		Length:   entry.length,
	}
	if entry.length >= 2 {
		instr.Op1 = c.Mem.ReadByte(c.PC)
	}
	if entry.length >= 3 {
		instr.Op2 = c.Mem.ReadByte(c.PC + 1)
	}

	operand := c.fetchOperand(entry.mode)
	instr.Operand = operand

	beforePC := c.PC
	entry.exec(c, operand)
	if c.PC == beforePC {
		c.PC += uint16(entry.length) - 1
	}

	return instr, nil
}

func (c *CPU) serviceInterrupts() {
	if c.pendingNMI {
		c.pendingNMI = false
		c.interrupt(vectorNMI, false)
		return
	}
	if c.pendingIRQ {
		c.pendingIRQ = false
		if c.Status&FlagInterruptDisable == 0 {
			c.interrupt(vectorIRQ, false)
		}
	}
}

func (c *CPU) interrupt(vector uint16, brk bool) {
	c.pushWord(c.PC)
	status := (c.Status &^ FlagBreak) | FlagUnused
	if brk {
		status |= FlagBreak
	}
	c.pushByte(status)
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.Mem.ReadWord(vector)
}

func (c *CPU) flagsOn(mask uint8)  { c.Status |= mask }
func (c *CPU) flagsOff(mask uint8) { c.Status &^= mask }

func (c *CPU) flagSet(mask uint8, on bool) {
	if on {
		c.flagsOn(mask)
	} else {
		c.flagsOff(mask)
	}
}

func (c *CPU) setZN(v uint8) {
	c.flagSet(FlagZero, v == 0)
	c.flagSet(FlagNegative, v&0x80 != 0)
}

func (c *CPU) stackAddr() uint16 {
	return stackPage + uint16(c.SP)
}

func (c *CPU) pushByte(v uint8) {
	c.Mem.WriteByte(c.stackAddr(), v)
	c.SP--
}

func (c *CPU) popByte() uint8 {
	c.SP++
	return c.Mem.ReadByte(c.stackAddr())
}

func (c *CPU) pushWord(v uint16) {
	c.pushByte(uint8(v >> 8))
	c.pushByte(uint8(v & 0x00FF))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.popByte())
	hi := uint16(c.popByte())
	return (hi << 8) | lo
}
