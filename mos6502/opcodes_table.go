package mos6502

// opcodeEntry is one row of the dense 256-entry opcode table: mnemonic,
// addressing mode, and instruction length in bytes (including the opcode
// byte itself), paired with the function that executes it. Dispatch is a
// flat array lookup rather than reflection, so Step can hand each
// instruction its already-decoded Operand without re-deriving addressing
// info for the trace log.
type opcodeEntry struct {
	mnemonic string
	mode     Mode
	length   uint8
	exec     instrFunc
}

var opcodeTable [256]*opcodeEntry

func op(code uint8, mnemonic string, mode Mode, length uint8, exec instrFunc) {
	if opcodeTable[code] != nil {
		panic("mos6502: duplicate opcode registration")
	}
	opcodeTable[code] = &opcodeEntry{mnemonic: mnemonic, mode: mode, length: length, exec: exec}
}

func init() {
	op(0x69, "ADC", Immediate, 2, (*CPU).adc)
	op(0x65, "ADC", ZeroPage, 2, (*CPU).adc)
	op(0x75, "ADC", ZeroPageX, 2, (*CPU).adc)
	op(0x6D, "ADC", Absolute, 3, (*CPU).adc)
	op(0x7D, "ADC", AbsoluteX, 3, (*CPU).adc)
	op(0x79, "ADC", AbsoluteY, 3, (*CPU).adc)
	op(0x61, "ADC", IndirectX, 2, (*CPU).adc)
	op(0x71, "ADC", IndirectY, 2, (*CPU).adc)

	op(0x29, "AND", Immediate, 2, (*CPU).and)
	op(0x25, "AND", ZeroPage, 2, (*CPU).and)
	op(0x35, "AND", ZeroPageX, 2, (*CPU).and)
	op(0x2D, "AND", Absolute, 3, (*CPU).and)
	op(0x3D, "AND", AbsoluteX, 3, (*CPU).and)
	op(0x39, "AND", AbsoluteY, 3, (*CPU).and)
	op(0x21, "AND", IndirectX, 2, (*CPU).and)
	op(0x31, "AND", IndirectY, 2, (*CPU).and)

	op(0x0A, "ASL", Accumulator, 1, (*CPU).asl)
	op(0x06, "ASL", ZeroPage, 2, (*CPU).asl)
	op(0x16, "ASL", ZeroPageX, 2, (*CPU).asl)
	op(0x0E, "ASL", Absolute, 3, (*CPU).asl)
	op(0x1E, "ASL", AbsoluteX, 3, (*CPU).asl)

	op(0x90, "BCC", Relative, 2, (*CPU).bcc)
	op(0xB0, "BCS", Relative, 2, (*CPU).bcs)
	op(0xF0, "BEQ", Relative, 2, (*CPU).beq)
	op(0x30, "BMI", Relative, 2, (*CPU).bmi)
	op(0xD0, "BNE", Relative, 2, (*CPU).bne)
	op(0x10, "BPL", Relative, 2, (*CPU).bpl)
	op(0x50, "BVC", Relative, 2, (*CPU).bvc)
	op(0x70, "BVS", Relative, 2, (*CPU).bvs)

	op(0x24, "BIT", ZeroPage, 2, (*CPU).bit)
	op(0x2C, "BIT", Absolute, 3, (*CPU).bit)

	op(0x00, "BRK", Implicit, 1, (*CPU).brk)

	op(0x18, "CLC", Implicit, 1, (*CPU).clc)
	op(0xD8, "CLD", Implicit, 1, (*CPU).cld)
	op(0x58, "CLI", Implicit, 1, (*CPU).cli)
	op(0xB8, "CLV", Implicit, 1, (*CPU).clv)
	op(0x38, "SEC", Implicit, 1, (*CPU).sec)
	op(0xF8, "SED", Implicit, 1, (*CPU).sed)
	op(0x78, "SEI", Implicit, 1, (*CPU).sei)

	op(0xC9, "CMP", Immediate, 2, (*CPU).cmp)
	op(0xC5, "CMP", ZeroPage, 2, (*CPU).cmp)
	op(0xD5, "CMP", ZeroPageX, 2, (*CPU).cmp)
	op(0xCD, "CMP", Absolute, 3, (*CPU).cmp)
	op(0xDD, "CMP", AbsoluteX, 3, (*CPU).cmp)
	op(0xD9, "CMP", AbsoluteY, 3, (*CPU).cmp)
	op(0xC1, "CMP", IndirectX, 2, (*CPU).cmp)
	op(0xD1, "CMP", IndirectY, 2, (*CPU).cmp)

	op(0xE0, "CPX", Immediate, 2, (*CPU).cpx)
	op(0xE4, "CPX", ZeroPage, 2, (*CPU).cpx)
	op(0xEC, "CPX", Absolute, 3, (*CPU).cpx)

	op(0xC0, "CPY", Immediate, 2, (*CPU).cpy)
	op(0xC4, "CPY", ZeroPage, 2, (*CPU).cpy)
	op(0xCC, "CPY", Absolute, 3, (*CPU).cpy)

	op(0xC6, "DEC", ZeroPage, 2, (*CPU).dec)
	op(0xD6, "DEC", ZeroPageX, 2, (*CPU).dec)
	op(0xCE, "DEC", Absolute, 3, (*CPU).dec)
	op(0xDE, "DEC", AbsoluteX, 3, (*CPU).dec)
	op(0xCA, "DEX", Implicit, 1, (*CPU).dex)
	op(0x88, "DEY", Implicit, 1, (*CPU).dey)

	op(0x49, "EOR", Immediate, 2, (*CPU).eor)
	op(0x45, "EOR", ZeroPage, 2, (*CPU).eor)
	op(0x55, "EOR", ZeroPageX, 2, (*CPU).eor)
	op(0x4D, "EOR", Absolute, 3, (*CPU).eor)
	op(0x5D, "EOR", AbsoluteX, 3, (*CPU).eor)
	op(0x59, "EOR", AbsoluteY, 3, (*CPU).eor)
	op(0x41, "EOR", IndirectX, 2, (*CPU).eor)
	op(0x51, "EOR", IndirectY, 2, (*CPU).eor)

	op(0xE6, "INC", ZeroPage, 2, (*CPU).inc)
	op(0xF6, "INC", ZeroPageX, 2, (*CPU).inc)
	op(0xEE, "INC", Absolute, 3, (*CPU).inc)
	op(0xFE, "INC", AbsoluteX, 3, (*CPU).inc)
	op(0xE8, "INX", Implicit, 1, (*CPU).inx)
	op(0xC8, "INY", Implicit, 1, (*CPU).iny)

	op(0x4C, "JMP", Absolute, 3, (*CPU).jmp)
	op(0x6C, "JMP", Indirect, 3, (*CPU).jmp)
	op(0x20, "JSR", Absolute, 3, (*CPU).jsr)

	op(0xA9, "LDA", Immediate, 2, (*CPU).lda)
	op(0xA5, "LDA", ZeroPage, 2, (*CPU).lda)
	op(0xB5, "LDA", ZeroPageX, 2, (*CPU).lda)
	op(0xAD, "LDA", Absolute, 3, (*CPU).lda)
	op(0xBD, "LDA", AbsoluteX, 3, (*CPU).lda)
	op(0xB9, "LDA", AbsoluteY, 3, (*CPU).lda)
	op(0xA1, "LDA", IndirectX, 2, (*CPU).lda)
	op(0xB1, "LDA", IndirectY, 2, (*CPU).lda)

	op(0xA2, "LDX", Immediate, 2, (*CPU).ldx)
	op(0xA6, "LDX", ZeroPage, 2, (*CPU).ldx)
	op(0xB6, "LDX", ZeroPageY, 2, (*CPU).ldx)
	op(0xAE, "LDX", Absolute, 3, (*CPU).ldx)
	op(0xBE, "LDX", AbsoluteY, 3, (*CPU).ldx)

	op(0xA0, "LDY", Immediate, 2, (*CPU).ldy)
	op(0xA4, "LDY", ZeroPage, 2, (*CPU).ldy)
	op(0xB4, "LDY", ZeroPageX, 2, (*CPU).ldy)
	op(0xAC, "LDY", Absolute, 3, (*CPU).ldy)
	op(0xBC, "LDY", AbsoluteX, 3, (*CPU).ldy)

	op(0x4A, "LSR", Accumulator, 1, (*CPU).lsr)
	op(0x46, "LSR", ZeroPage, 2, (*CPU).lsr)
	op(0x56, "LSR", ZeroPageX, 2, (*CPU).lsr)
	op(0x4E, "LSR", Absolute, 3, (*CPU).lsr)
	op(0x5E, "LSR", AbsoluteX, 3, (*CPU).lsr)

	op(0xEA, "NOP", Implicit, 1, (*CPU).nop)

	op(0x09, "ORA", Immediate, 2, (*CPU).ora)
	op(0x05, "ORA", ZeroPage, 2, (*CPU).ora)
	op(0x15, "ORA", ZeroPageX, 2, (*CPU).ora)
	op(0x0D, "ORA", Absolute, 3, (*CPU).ora)
	op(0x1D, "ORA", AbsoluteX, 3, (*CPU).ora)
	op(0x19, "ORA", AbsoluteY, 3, (*CPU).ora)
	op(0x01, "ORA", IndirectX, 2, (*CPU).ora)
	op(0x11, "ORA", IndirectY, 2, (*CPU).ora)

	op(0x48, "PHA", Implicit, 1, (*CPU).pha)
	op(0x08, "PHP", Implicit, 1, (*CPU).php)
	op(0x68, "PLA", Implicit, 1, (*CPU).pla)
	op(0x28, "PLP", Implicit, 1, (*CPU).plp)

	op(0x2A, "ROL", Accumulator, 1, (*CPU).rol)
	op(0x26, "ROL", ZeroPage, 2, (*CPU).rol)
	op(0x36, "ROL", ZeroPageX, 2, (*CPU).rol)
	op(0x2E, "ROL", Absolute, 3, (*CPU).rol)
	op(0x3E, "ROL", AbsoluteX, 3, (*CPU).rol)

	op(0x6A, "ROR", Accumulator, 1, (*CPU).ror)
	op(0x66, "ROR", ZeroPage, 2, (*CPU).ror)
	op(0x76, "ROR", ZeroPageX, 2, (*CPU).ror)
	op(0x6E, "ROR", Absolute, 3, (*CPU).ror)
	op(0x7E, "ROR", AbsoluteX, 3, (*CPU).ror)

	op(0x40, "RTI", Implicit, 1, (*CPU).rti)
	op(0x60, "RTS", Implicit, 1, (*CPU).rts)

	op(0xE9, "SBC", Immediate, 2, (*CPU).sbc)
	op(0xE5, "SBC", ZeroPage, 2, (*CPU).sbc)
	op(0xF5, "SBC", ZeroPageX, 2, (*CPU).sbc)
	op(0xED, "SBC", Absolute, 3, (*CPU).sbc)
	op(0xFD, "SBC", AbsoluteX, 3, (*CPU).sbc)
	op(0xF9, "SBC", AbsoluteY, 3, (*CPU).sbc)
	op(0xE1, "SBC", IndirectX, 2, (*CPU).sbc)
	op(0xF1, "SBC", IndirectY, 2, (*CPU).sbc)

	op(0x85, "STA", ZeroPage, 2, (*CPU).sta)
	op(0x95, "STA", ZeroPageX, 2, (*CPU).sta)
	op(0x8D, "STA", Absolute, 3, (*CPU).sta)
	op(0x9D, "STA", AbsoluteX, 3, (*CPU).sta)
	op(0x99, "STA", AbsoluteY, 3, (*CPU).sta)
	op(0x81, "STA", IndirectX, 2, (*CPU).sta)
	op(0x91, "STA", IndirectY, 2, (*CPU).sta)

	op(0x86, "STX", ZeroPage, 2, (*CPU).stx)
	op(0x96, "STX", ZeroPageY, 2, (*CPU).stx)
	op(0x8E, "STX", Absolute, 3, (*CPU).stx)

	op(0x84, "STY", ZeroPage, 2, (*CPU).sty)
	op(0x94, "STY", ZeroPageX, 2, (*CPU).sty)
	op(0x8C, "STY", Absolute, 3, (*CPU).sty)

	op(0xAA, "TAX", Implicit, 1, (*CPU).tax)
	op(0xA8, "TAY", Implicit, 1, (*CPU).tay)
	op(0xBA, "TSX", Implicit, 1, (*CPU).tsx)
	op(0x8A, "TXA", Implicit, 1, (*CPU).txa)
	op(0x9A, "TXS", Implicit, 1, (*CPU).txs)
	op(0x98, "TYA", Implicit, 1, (*CPU).tya)
}
