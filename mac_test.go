package tms57070

import "testing"

func TestMACMultiplySignedSigned(t *testing.T) {
	var m MAC
	// Both operands hold 2^22 (half of the i24 positive range). The raw
	// 24x24 product is 2^44; mult_internal's bit-24 operand alignment
	// doubles that to 2^45, and GetUpper's plain >>24 readout (no output
	// shift, no rounding) yields 2^21.
	half := uint32(1) << 22
	m.Multiply(half, half, macSS, false)

	if got := m.Raw(); got != uint64(1)<<45 {
		t.Fatalf("Raw() = %#x, want %#x", got, uint64(1)<<45)
	}

	upper, overflowed := m.GetUpper(0, 0, false)
	if overflowed {
		t.Fatalf("unexpected overflow: raw=%#x", m.Raw())
	}
	want := int32(1) << 21
	if upper != want {
		t.Errorf("GetUpper() = %#x, want %#x (raw=%#x)", upper, want, m.Raw())
	}
}

// TestMACMultiplyNegate checks that negate flips the sign of the raw
// accumulator: multiplying the same two operands with and without negate
// produces values that sum to zero once both are read back as signed
// 52-bit integers.
func TestMACMultiplyNegate(t *testing.T) {
	var a, b MAC
	one := uint32(1) << 22
	a.Multiply(one, one, macSS, false)
	b.Multiply(one, one, macSS, true)

	sum := i52(a.Raw()) + i52(b.Raw())
	if sum != 0 {
		t.Errorf("negated product did not cancel: a=%#x b=%#x sum=%d", a.Raw(), b.Raw(), sum)
	}
}

func TestMACSetGetUpperLowerRoundTrip(t *testing.T) {
	var m MAC
	m.SetUpper(0x123456)
	m.SetLower(0xABCDEF)

	upper, overflowed := m.GetUpper(0, 0, false)
	if overflowed {
		t.Fatalf("unexpected overflow on plain set/get round-trip")
	}
	if upper != i24(0x123456) {
		t.Errorf("GetUpper() = %#x, want %#x", upper, i24(0x123456))
	}
	lower := m.GetLower(0, false, false, false)
	if lower != 0xABCDEF {
		t.Errorf("GetLower() = %#x, want 0xABCDEF", lower)
	}
}

func TestMACClearUpperLeavesLower(t *testing.T) {
	var m MAC
	m.SetUpper(0x111111)
	m.SetLower(0x222222)
	m.ClearUpper()

	upper, _ := m.GetUpper(0, 0, false)
	if upper != 0 {
		t.Errorf("upper after ClearUpper = %#x, want 0", upper)
	}
	if lower := m.GetLower(0, false, false, false); lower != 0x222222 {
		t.Errorf("lower after ClearUpper = %#x, want 0x222222", lower)
	}
}

func TestMACGetUpperSaturatesWhenMOVM(t *testing.T) {
	var m MAC
	// Force the extended guard bits to disagree with the sign of the
	// upper field, simulating accumulation overflow past bit 47.
	m.raw = u52(uint64(1) << 48)

	upper, overflowed := m.GetUpper(0, 0, true)
	if !overflowed {
		t.Fatal("expected overflow from a set guard bit with zero upper")
	}
	if upper != clampI24Max {
		t.Errorf("GetUpper() = %#x, want clampI24Max", upper)
	}
}

// TestMACShadowAdvanceOncePerStep checks the §8 invariant: for a step
// that does not execute a MAC-writing opcode, the delayed1 shadow
// before the step equals the current MAC before the step, and the
// delayed2 shadow after the step equals the delayed1 shadow from
// before.
func TestMACShadowAdvanceOncePerStep(t *testing.T) {
	e := newTestEmulator()
	e.MACC1.SetUpper(0x010203)
	e.loadProgram(0x00000000, 0x00000000, 0x00000000) // NOPs

	beforeDelayed1 := e.macc1Delayed1
	if beforeDelayed1 != (MAC{}) {
		t.Fatalf("precondition: delayed1 should start zeroed, got %#x", beforeDelayed1.Raw())
	}

	stepN(t, e, 1)
	if e.macc1Delayed1 != e.MACC1 {
		t.Errorf("delayed1 after step = %#x, want current MAC %#x", e.macc1Delayed1.Raw(), e.MACC1.Raw())
	}

	beforeDelayed1 = e.macc1Delayed1
	stepN(t, e, 1)
	if e.macc1Delayed2 != beforeDelayed1 {
		t.Errorf("delayed2 after second step = %#x, want prior delayed1 %#x", e.macc1Delayed2.Raw(), beforeDelayed1.Raw())
	}
}

func TestMACModesFromCR1(t *testing.T) {
	cases := []struct {
		mosm, mrdm, masm uint32
		wantShift        int8
		wantBitCount     uint8
		wantAccShift     int8
	}{
		{0, 0, 0, 0, 0, 0},
		{1, 1, 1, 2, 24, 2},
		{2, 4, 2, 4, 32, 4},
		{3, 7, 3, -8, 30, -24},
	}
	for _, tc := range cases {
		e := newTestEmulator()
		e.CR1 = setField(0, cr1MOSMLo, 2, tc.mosm)
		e.CR1 = setField(e.CR1, cr1MRDMLo, 3, tc.mrdm)
		e.CR1 = setField(e.CR1, cr1MASMLo, 2, tc.masm)
		e.recomputeMACModes()

		if e.macOutputShift != tc.wantShift {
			t.Errorf("MOSM=%d: outputShift = %d, want %d", tc.mosm, e.macOutputShift, tc.wantShift)
		}
		if e.macBitCount != tc.wantBitCount {
			t.Errorf("MRDM=%d: bitCount = %d, want %d", tc.mrdm, e.macBitCount, tc.wantBitCount)
		}
		if e.macAccShift != tc.wantAccShift {
			t.Errorf("MASM=%d: accShift = %d, want %d", tc.masm, e.macAccShift, tc.wantAccShift)
		}
	}
}
