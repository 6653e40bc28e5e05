package tms57070

import "testing"

func TestI24SignExtend(t *testing.T) {
	cases := []struct {
		name string
		in   uint32
		want int32
	}{
		{"zero", 0, 0},
		{"max-positive", 0x7FFFFF, 0x7FFFFF},
		{"min-negative", 0x800000, -0x800000},
		{"minus-one", 0xFFFFFF, -1},
		{"truncates-wide-input", 0x1000001, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := i24(tc.in); got != tc.want {
				t.Errorf("i24(%#x) = %#x, want %#x", tc.in, got, tc.want)
			}
		})
	}
}

// TestI24RoundTrip checks the invariant from §8: for all writes of value
// v to an i24 field, read-back equals sign-extend(v & 0xFFFFFF, 24).
func TestI24RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 0x7FFFFF, -0x800000, 12345, -54321} {
		bits := i24ToBits(v)
		got := i24(bits)
		if got != v {
			t.Errorf("round-trip %d: got %d via bits %#x", v, got, bits)
		}
	}
}

func TestClampI24(t *testing.T) {
	if v, sat := clampI24(0x800000); v != 0x7FFFFF || !sat {
		t.Errorf("clampI24(overflow-positive) = (%d,%v), want (0x7FFFFF,true)", v, sat)
	}
	if v, sat := clampI24(-0x800001); v != -0x800000 || !sat {
		t.Errorf("clampI24(overflow-negative) = (%d,%v), want (-0x800000,true)", v, sat)
	}
	if v, sat := clampI24(42); v != 42 || sat {
		t.Errorf("clampI24(in-range) = (%d,%v), want (42,false)", v, sat)
	}
}

func TestU12Truncates(t *testing.T) {
	if got := u12(0x1FFF); got != 0xFFF {
		t.Errorf("u12(0x1FFF) = %#x, want 0xFFF", got)
	}
}

func TestI52SignExtend(t *testing.T) {
	if got := i52(0xFFFFFFFFFFFFF); got != -1 {
		t.Errorf("i52(all-ones-52-bit) = %d, want -1", got)
	}
	half := uint64(1) << 51
	if got := i52(half); got != -(1 << 51) {
		t.Errorf("i52(sign-bit only) = %d, want %d", got, -(int64(1) << 51))
	}
}
