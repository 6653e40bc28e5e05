package tms57070

import "testing"

// TestLoadImmediateThenReadBack is seed scenario 1 from spec.md §8:
// load ACC1 from an explicit 24-bit immediate and read it back.
func TestLoadImmediateThenReadBack(t *testing.T) {
	e := newTestEmulator()
	e.loadProgram(0xCA123456)

	stepN(t, e, 1)

	if e.ACC1 != 0x123456 {
		t.Errorf("ACC1 = %#x, want 0x123456", e.ACC1)
	}
	if e.cr1ACCZSet() {
		t.Error("ACCZ set, want clear")
	}
	if e.cr1ACCNSet() {
		t.Error("ACCN set, want clear")
	}
	if e.PC != 1 {
		t.Errorf("PC = %d, want 1", e.PC)
	}
}

// TestSignedSaturationOnAdd is seed scenario 2 from spec.md §8: with
// CR1.AOVM set, an ALU add that escapes the i24 range saturates rather
// than wraps, and AOV is set.
func TestSignedSaturationOnAdd(t *testing.T) {
	e := newTestEmulator()
	e.CR1 = setBit(e.CR1, cr1AOVM, true)
	e.ACC1 = 0x7FFFFF
	e.DMEM[0] = 1
	// opcode1 0x20 (add), source-select 0 (DMEM lhs, ACCx rhs), dest
	// ACC1 (flag4=0), addressing mode 2 (DMEM[DA.one], and DA.one is 0
	// after reset).
	e.loadProgram(0x20<<24 | 2<<12)

	stepN(t, e, 1)

	if e.ACC1 != 0x7FFFFF {
		t.Errorf("ACC1 = %#x, want 0x7FFFFF (clamped)", e.ACC1)
	}
	if !e.cr1AOVSet() {
		t.Error("AOV clear, want set")
	}
	if e.cr1ACCNSet() {
		t.Error("ACCN set, want clear")
	}
	if e.cr1ACCZSet() {
		t.Error("ACCZ set, want clear")
	}
}

// TestUnsaturatedAddTruncates mirrors the same path with AOVM clear:
// the overflowing result truncates (wraps) instead of clamping, per
// §3's invariant, and AOV is still raised.
func TestUnsaturatedAddTruncates(t *testing.T) {
	e := newTestEmulator()
	e.ACC1 = 0x7FFFFF
	e.DMEM[0] = 1
	e.loadProgram(0x20<<24 | 2<<12)

	stepN(t, e, 1)

	if e.ACC1 != -0x800000 {
		t.Errorf("ACC1 = %#x, want -0x800000 (wrapped)", e.ACC1)
	}
	if !e.cr1AOVSet() {
		t.Error("AOV clear, want set")
	}
}

// TestCompareLeavesACCUnchanged checks the §8 invariant: 0x34-0x37
// compute flags only and never write back to either accumulator.
func TestCompareLeavesACCUnchanged(t *testing.T) {
	e := newTestEmulator()
	e.ACC1 = 5
	e.ACC2 = -7
	e.DMEM[0] = 5
	// opcode1 0x34 (compare), source-select 0, addressing mode 2
	// (DMEM[DA.one], and DA.one is 0 after reset).
	e.loadProgram(0x34<<24 | 2<<12)

	stepN(t, e, 1)

	if e.ACC1 != 5 {
		t.Errorf("ACC1 = %d, want unchanged 5", e.ACC1)
	}
	if e.ACC2 != -7 {
		t.Errorf("ACC2 = %d, want unchanged -7", e.ACC2)
	}
	if !e.cr1ACCZSet() {
		t.Error("ACCZ clear, want set (5-5==0)")
	}
}

// TestNormalizeShiftsWhenInsideHalfRange covers opcode 0x38: a MACC
// upper half inside [-0x400000, 0x400000) is still denormalized, so the
// instruction shifts it left one bit and decrements ACC1.
func TestNormalizeShiftsWhenInsideHalfRange(t *testing.T) {
	e := newTestEmulator()
	e.MACC1.SetUpper(0x1000)
	e.ACC1 = 10
	e.loadProgram(0x38 << 24)

	stepN(t, e, 1)

	upper, _ := e.MACC1.GetUpper(0, 0, false)
	if upper != 0x2000 {
		t.Errorf("MACC1 upper = %#x, want 0x2000 (shifted left once)", upper)
	}
	if e.ACC1 != 9 {
		t.Errorf("ACC1 = %d, want 9 (decremented)", e.ACC1)
	}
}

// TestNormalizeNoOpWhenOutsideHalfRange covers opcode 0x38's other
// branch: a MACC upper half already outside the half-range is left
// untouched.
func TestNormalizeNoOpWhenOutsideHalfRange(t *testing.T) {
	e := newTestEmulator()
	e.MACC1.SetUpper(0x500000)
	e.ACC1 = 10
	e.loadProgram(0x38 << 24)

	stepN(t, e, 1)

	upper, _ := e.MACC1.GetUpper(0, 0, false)
	if upper != 0x500000 {
		t.Errorf("MACC1 upper = %#x, want unchanged 0x500000", upper)
	}
	if e.ACC1 != 10 {
		t.Errorf("ACC1 = %d, want unchanged 10", e.ACC1)
	}
}

// TestAOVLIsSticky checks §4.2: AOVL latches on overflow and is only
// cleared by the explicit 0x2C mnemonic, never by a subsequent
// non-overflowing result.
func TestAOVLIsSticky(t *testing.T) {
	e := newTestEmulator()
	e.ACC1 = 0x7FFFFF
	e.DMEM[0] = 1
	e.DMEM[1] = 0
	e.loadProgram(
		0x20<<24|2<<12,   // overflow: ACC1 += DMEM[0] (=1)
		0x20<<24|1<<12|1, // non-overflowing add from DMEM[1] (=0)
	)

	stepN(t, e, 2)

	if !e.cr1AOVLSet() {
		t.Error("AOVL clear after a prior overflow, want sticky set")
	}
	if e.cr1AOVSet() {
		t.Error("AOV set after a non-overflowing result, want clear")
	}
}
