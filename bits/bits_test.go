package bits

import "testing"

func TestU8Wrap(t *testing.T) {
	cases := []struct {
		name string
		in   U8
		n    int
		want U8
	}{
		{"add wraps at 256", U8(0xFF), 1, U8(0x00)},
		{"sub wraps at 0", U8(0x00), 1, U8(0xFF)},
		{"add no wrap", U8(0x10), 1, U8(0x11)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.n > 0 {
				if got := tc.in.Add(tc.n); got != tc.want {
					t.Errorf("Add(%d) = %#x, want %#x", tc.n, got, tc.want)
				}
			}
		})
	}

	if got := U8(0x00).Sub(1); got != U8(0xFF) {
		t.Errorf("Sub underflow = %#x, want 0xFF", got)
	}
}

func TestU16Wrap(t *testing.T) {
	if got := U16(0xFFFF).Add(1); got != U16(0x0000) {
		t.Errorf("U16 add wrap = %#x, want 0x0000", got)
	}
	if got := U16(0x0000).Sub(1); got != U16(0xFFFF) {
		t.Errorf("U16 sub wrap = %#x, want 0xFFFF", got)
	}
}

func TestLoHi(t *testing.T) {
	w := U16(0x1234)
	if w.Lo() != U8(0x34) {
		t.Errorf("Lo() = %#x, want 0x34", w.Lo())
	}
	if w.Hi() != U8(0x12) {
		t.Errorf("Hi() = %#x, want 0x12", w.Hi())
	}
}

func TestWordFrom(t *testing.T) {
	if got := WordFrom(0x34, 0x12); got != U16(0x1234) {
		t.Errorf("WordFrom = %#x, want 0x1234", got)
	}
}

func TestSamePage(t *testing.T) {
	if !SamePage(0x1200, 0x12FF) {
		t.Errorf("expected same page")
	}
	if SamePage(0x12FF, 0x1300) {
		t.Errorf("expected different page")
	}
}

func TestBit(t *testing.T) {
	v := U8(0x80)
	if !v.Bit(7) {
		t.Errorf("expected bit 7 set")
	}
	if v.Bit(0) {
		t.Errorf("expected bit 0 clear")
	}
}
