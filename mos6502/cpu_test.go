package mos6502

import (
	"strings"
	"testing"

	"nesgo/memory"
)

func newTestCPU(t *testing.T) *CPU {
	t.Helper()
	mem := memory.New(0x10000)
	mem.WriteWord(0xFFFC, 0x0200) // arbitrary reset vector for most tests
	return New(mem)
}

func TestResetVectorScenario(t *testing.T) {
	mem := memory.New(0x10000)
	mem.WriteByte(0xFFFC, 0x34)
	mem.WriteByte(0xFFFD, 0x12)

	c := New(mem)
	if c.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if c.Status&FlagInterruptDisable == 0 {
		t.Errorf("I flag not set at power-on")
	}
}

func TestLDAImmediate(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xA9)
	c.Mem.WriteByte(0xC001, 0x80)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x80 {
		t.Errorf("A = %#02x, want 0x80", c.A)
	}
	if c.Status&FlagNegative == 0 {
		t.Errorf("N flag not set")
	}
	if c.Status&FlagZero != 0 {
		t.Errorf("Z flag unexpectedly set")
	}
	if c.PC != 0xC002 {
		t.Errorf("PC = %#04x, want 0xC002", c.PC)
	}
}

func TestZeroPageXWraps(t *testing.T) {
	c := newTestCPU(t)
	c.X = 0x10
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xB5) // LDA zp,X
	c.Mem.WriteByte(0xC001, 0xF5)
	c.Mem.WriteByte(0x0005, 0x42)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
}

func TestZeroPageIndexWrapBoundary(t *testing.T) {
	c := newTestCPU(t)
	c.X = 1
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xB5) // LDA zp,X with base 0xFF
	c.Mem.WriteByte(0xC001, 0xFF)
	c.Mem.WriteByte(0x0000, 0x99)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x99 {
		t.Errorf("A = %#02x, want 0x99 (zero-page wrap to 0x00)", c.A)
	}
}

func TestAbsoluteYWrapsAroundAddressSpace(t *testing.T) {
	c := newTestCPU(t)
	c.Y = 1
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xB9) // LDA abs,Y
	c.Mem.WriteWord(0xC001, 0xFFFF)
	c.Mem.WriteByte(0x0000, 0x77)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x77 {
		t.Errorf("A = %#02x, want 0x77 (address wraps to 0x0000)", c.A)
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x7F
	c.Status &^= FlagCarry
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x69) // ADC #1
	c.Mem.WriteByte(0xC001, 0x01)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x80 {
		t.Errorf("A = %#02x, want 0x80", c.A)
	}
	if c.Status&FlagCarry != 0 {
		t.Errorf("C flag unexpectedly set")
	}
	if c.Status&FlagOverflow == 0 {
		t.Errorf("V flag not set")
	}
	if c.Status&FlagNegative == 0 {
		t.Errorf("N flag not set")
	}
}

func TestJSRRTS(t *testing.T) {
	c := newTestCPU(t)
	c.SP = 0xFD
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x20) // JSR $D000
	c.Mem.WriteWord(0xC001, 0xD000)
	c.Mem.WriteByte(0xD000, 0x60) // RTS

	if _, err := c.Step(); err != nil {
		t.Fatalf("JSR step: %v", err)
	}
	if c.PC != 0xD000 {
		t.Errorf("PC after JSR = %#04x, want 0xD000", c.PC)
	}
	if got := c.Mem.ReadByte(0x01FC); got != 0x02 {
		t.Errorf("stack[0x01FC] = %#02x, want 0x02", got)
	}
	if got := c.Mem.ReadByte(0x01FD); got != 0xC0 {
		t.Errorf("stack[0x01FD] = %#02x, want 0xC0", got)
	}
	if c.SP != 0xFB {
		t.Errorf("SP after JSR = %#02x, want 0xFB", c.SP)
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("RTS step: %v", err)
	}
	if c.PC != 0xC003 {
		t.Errorf("PC after RTS = %#04x, want 0xC003", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after RTS = %#02x, want 0xFD", c.SP)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x6C) // JMP (ind)
	c.Mem.WriteWord(0xC001, 0x02FF)
	c.Mem.WriteByte(0x02FF, 0x34) // PCL
	c.Mem.WriteByte(0x0200, 0x12) // PCH, fetched from start of same page
	c.Mem.WriteByte(0x0300, 0x99) // if the bug were absent, this would be read instead

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234 (page-wrap bug)", c.PC)
	}
}

func TestBranchNegativeOffset(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC100
	c.Status |= FlagZero
	c.Mem.WriteByte(0xC100, 0xF0) // BEQ -128
	c.Mem.WriteByte(0xC101, 0x80)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if want := uint16(0xC100 + 2 - 128); c.PC != want {
		t.Errorf("PC = %#04x, want %#04x", c.PC, want)
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	c := newTestCPU(t)
	sp := c.SP
	c.pushByte(0x42)
	if got := c.popByte(); got != 0x42 {
		t.Errorf("popByte = %#02x, want 0x42", got)
	}
	if c.SP != sp {
		t.Errorf("SP not restored: got %#02x, want %#02x", c.SP, sp)
	}
}

func TestPLPPreservesBreakAndUnusedFromPriorStatus(t *testing.T) {
	c := newTestCPU(t)
	c.Status = FlagBreak | FlagUnused | FlagCarry
	c.pushByte(0x00) // pulled byte has every flag clear, including B/unused
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x28) // PLP

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Status&FlagBreak == 0 || c.Status&FlagUnused == 0 {
		t.Errorf("PLP did not preserve B/unused from prior status: %#02x", c.Status)
	}
	if c.Status&FlagCarry != 0 {
		t.Errorf("PLP did not take pulled carry bit: %#02x", c.Status)
	}
}

func TestRTIDoesNotAddOne(t *testing.T) {
	c := newTestCPU(t)
	c.SP = 0xFD
	c.pushWord(0xC123)
	c.pushByte(FlagUnused)
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x40) // RTI

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0xC123 {
		t.Errorf("PC = %#04x, want 0xC123 (RTI does not add 1)", c.PC)
	}
}

func TestCMPFlags(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x10
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xC9) // CMP #$10
	c.Mem.WriteByte(0xC001, 0x10)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Status&FlagZero == 0 {
		t.Errorf("Z flag not set for equal comparison")
	}
	if c.Status&FlagCarry == 0 {
		t.Errorf("C flag not set for A >= M")
	}
	if c.A != 0x10 {
		t.Errorf("CMP modified A: got %#02x", c.A)
	}
}

func TestROLRotatesThroughCarryNotSelf(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x80
	c.Status |= FlagCarry
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x2A) // ROL A

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x01 {
		t.Errorf("A = %#02x, want 0x01 (old bit7 dropped into carry, old carry into bit0)", c.A)
	}
	if c.Status&FlagCarry == 0 {
		t.Errorf("C flag not set from old bit7")
	}
}

func TestSTADoesNotReadBeforeWrite(t *testing.T) {
	// STA to a PPUSTATUS-like hooked Read address must not itself trigger
	// the read hook: absolute-mode operand resolution only computes the
	// address, it never pre-fetches the destination's value.
	c := newTestCPU(t)
	ch := memory.NewEventChannel()
	c.Mem.InstallHook(memory.Hook{Op: memory.Read, Range: memory.Region{Start: 0x2002, Size: 1}, Sink: ch})

	c.A = 0x55
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x8D) // STA $2002
	c.Mem.WriteWord(0xC001, 0x2002)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	select {
	case e := <-ch:
		t.Errorf("STA triggered a spurious read hook: %+v", e)
	default:
	}
}

func TestTriggerNMIServicedBeforeNextInstruction(t *testing.T) {
	c := newTestCPU(t)
	c.Mem.WriteWord(0xFFFA, 0x9000)
	c.SP = 0xFD
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xEA) // NOP, never reached this Step

	c.TriggerNMI()
	instr, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if instr.PC != 0x9000 {
		t.Errorf("instruction fetched at %#04x after NMI, want 0x9000", instr.PC)
	}
	if c.PC == 0xC001 {
		t.Errorf("NOP executed instead of NMI being serviced first")
	}
}

func TestTriggerIRQIgnoredWhenInterruptsDisabled(t *testing.T) {
	c := newTestCPU(t)
	c.Status |= FlagInterruptDisable
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xEA) // NOP

	c.TriggerIRQ()
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0xC001 {
		t.Errorf("PC = %#04x, want 0xC001 (IRQ should have been dropped while I set)", c.PC)
	}
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0x02) // unused/undocumented opcode

	if _, err := c.Step(); err == nil {
		t.Errorf("expected ErrUnknownOpcode")
	}
}

func TestTracerFormat(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC000
	c.Mem.WriteByte(0xC000, 0xA9)
	c.Mem.WriteByte(0xC001, 0x80)

	s := c.State()
	instr, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	line := (Tracer{}).Format(s, instr)
	if !strings.HasPrefix(line, "C000  A9 80") {
		t.Errorf("Format() = %q, want prefix with PC/opcode/operand columns", line)
	}
	if !strings.Contains(line, "LDA #$80") {
		t.Errorf("Format() = %q, want disassembly to contain %q", line, "LDA #$80")
	}
	if !strings.HasSuffix(line, "A:00 X:00 Y:00 P:24 SP:FD") {
		t.Errorf("Format() = %q, want register columns suffix", line)
	}
}
