// Package bits implements fixed-width wrapping integers for the 6502 core.
//
// The interpreter leans on modular 8-bit and 16-bit arithmetic everywhere:
// register increments, stack pointer movement, effective address math. U8
// and U16 make that wraparound explicit in the type instead of depending on
// Go's native unsigned overflow, per the core's no-mixed-width rule.
package bits

// U8 is an 8-bit value that wraps modulo 256 on arithmetic.
type U8 uint8

// U16 is a 16-bit value that wraps modulo 65536 on arithmetic.
type U16 uint16

// Add returns u+n wrapped modulo 256.
func (u U8) Add(n int) U8 {
	return U8(int(u) + n)
}

// Sub returns u-n wrapped modulo 256.
func (u U8) Sub(n int) U8 {
	return U8(int(u) - n)
}

// Bit reports whether bit i (0-7) is set.
func (u U8) Bit(i uint) bool {
	return u&(1<<i) != 0
}

// Add returns u+n wrapped modulo 65536.
func (u U16) Add(n int) U16 {
	return U16(int(u) + n)
}

// Sub returns u-n wrapped modulo 65536.
func (u U16) Sub(n int) U16 {
	return U16(int(u) - n)
}

// Lo returns the low byte.
func (u U16) Lo() U8 {
	return U8(u & 0x00FF)
}

// Hi returns the high byte.
func (u U16) Hi() U8 {
	return U8((u >> 8) & 0x00FF)
}

// WordFrom combines lo/hi bytes into a 16-bit little-endian word.
func WordFrom(lo, hi U8) U16 {
	return U16(hi)<<8 | U16(lo)
}

// SamePage reports whether a and b lie in the same 256-byte page.
func SamePage(a, b U16) bool {
	return a&0xFF00 == b&0xFF00
}
