package mos6502

import "fmt"

// State is a snapshot of CPU registers, taken before Step so a Tracer can
// log the machine state the instruction executed against.
type State struct {
	A, X, Y, Status, SP uint8
	PC                  uint16
}

// State captures the CPU's current register values.
func (c *CPU) State() State {
	return State{A: c.A, X: c.X, Y: c.Y, Status: c.Status, SP: c.SP, PC: c.PC}
}

// Tracer formats one Step's (State, Instruction) pair into the trace log
// line format from the external interfaces: PC, raw opcode bytes,
// left-justified disassembly, then register columns.
type Tracer struct{}

// Format renders one trace log line. s must be the state captured
// immediately before the Step call that produced instr.
func (Tracer) Format(s State, instr Instruction) string {
	op1, op2 := "  ", "  "
	if instr.Length >= 2 {
		op1 = fmt.Sprintf("%02X", instr.Op1)
	}
	if instr.Length >= 3 {
		op2 = fmt.Sprintf("%02X", instr.Op2)
	}

	return fmt.Sprintf("%04X  %02X %s %s  %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		instr.PC, instr.Opcode, op1, op2,
		disassemble(instr),
		s.A, s.X, s.Y, s.Status, s.SP)
}

func disassemble(instr Instruction) string {
	abs := uint16(instr.Op1) | uint16(instr.Op2)<<8
	switch instr.Mode {
	case Implicit:
		return instr.Mnemonic
	case Accumulator:
		return instr.Mnemonic + " A"
	case Immediate:
		return fmt.Sprintf("%s #$%02X", instr.Mnemonic, instr.Op1)
	case ZeroPage:
		return fmt.Sprintf("%s $%02X", instr.Mnemonic, instr.Op1)
	case ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", instr.Mnemonic, instr.Op1)
	case ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", instr.Mnemonic, instr.Op1)
	case Relative:
		return fmt.Sprintf("%s $%04X", instr.Mnemonic, instr.Operand.Address)
	case Absolute:
		return fmt.Sprintf("%s $%04X", instr.Mnemonic, abs)
	case AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", instr.Mnemonic, abs)
	case AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", instr.Mnemonic, abs)
	case Indirect:
		return fmt.Sprintf("%s ($%04X)", instr.Mnemonic, abs)
	case IndirectX:
		return fmt.Sprintf("%s ($%02X,X)", instr.Mnemonic, instr.Op1)
	case IndirectY:
		return fmt.Sprintf("%s ($%02X),Y", instr.Mnemonic, instr.Op1)
	default:
		return instr.Mnemonic
	}
}
