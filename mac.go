// mac.go - 52-bit multiply-accumulate unit

package tms57070

// MAC is one 52-bit signed multiply-accumulator. The 52 bits are laid out,
// as in the source, as a 24-bit lower field (bits 0..23), a 24-bit upper
// field (bits 24..47), and 4 extended/guard bits (48..51) that catch
// accumulation overflow before getUpper's saturation check fires.
type MAC struct {
	raw uint64
}

// macSigns selects the signed/unsigned treatment of the two operands to
// Multiply and MulAcc: the first letter is the lhs treatment, the second
// the rhs treatment, matching the source's SS/SU/US/UU naming.
type macSigns int

const (
	macSS macSigns = iota
	macSU
	macUS
	macUU
)

// widen24 reinterprets a 24-bit register value either as a sign-extended
// i24 (signed) or as its raw unsigned magnitude (unsigned), per the
// operand-sign table used by Multiply/MulAcc.
func widen24(raw uint32, signed bool) int64 {
	if signed {
		return int64(i24(raw))
	}
	return int64(raw & mask24)
}

// product computes the widening 24x24 integer product of two operands,
// honoring signs, and optionally negating - the non-floating-point
// replacement for the source's double-precision mult_internal stand-in.
// mult_internal aligns each Q0.23 operand to bit 24 of its 48-bit field
// before multiplying and rescales the 96-bit intermediate back down by
// >>47, which works out to exactly double the raw 24x24 product; the
// doubling is applied directly here rather than carrying the wider
// intermediate through an extra shift.
func product(a, b uint32, signs macSigns, negate bool) int64 {
	var lhsSigned, rhsSigned bool
	switch signs {
	case macSS:
		lhsSigned, rhsSigned = true, true
	case macSU:
		lhsSigned, rhsSigned = true, false
	case macUS:
		lhsSigned, rhsSigned = false, true
	case macUU:
		lhsSigned, rhsSigned = false, false
	}
	p := 2 * widen24(a, lhsSigned) * widen24(b, rhsSigned)
	if negate {
		p = -p
	}
	return p
}

// shift52 applies an arithmetic shift of amount bits (left if positive,
// right if negative) to a 52-bit signed accumulator value.
func shift52(raw uint64, amount int8) uint64 {
	v := i52(raw)
	switch {
	case amount > 0:
		v = v << uint(amount)
	case amount < 0:
		v = v >> uint(-amount)
	}
	return u52(uint64(v))
}

// Multiply writes the product of a and b into the accumulator, discarding
// whatever value was previously held.
func (m *MAC) Multiply(a, b uint32, signs macSigns, negate bool) {
	m.raw = u52(uint64(product(a, b, signs, negate)))
}

// MulAcc snapshots the current accumulator, applies the MASM-derived
// accumulation shift to the snapshot, computes the product of a and b,
// and adds the shifted snapshot back in - the source's mac() primitive.
func (m *MAC) MulAcc(a, b uint32, signs macSigns, negate bool, accShift int8) {
	snapshot := i52(shift52(m.raw, accShift))
	p := product(a, b, signs, negate)
	m.raw = u52(uint64(snapshot + p))
}

// Shift applies an explicit arithmetic shift to the raw accumulator
// (opcode 0x72).
func (m *MAC) Shift(amount int8) {
	m.raw = shift52(m.raw, amount)
}

// Clear zeroes the whole accumulator.
func (m *MAC) Clear() { m.raw = 0 }

// ClearUpper zeroes the upper 24 bits and the 4 extended bits, leaving
// the lower 24 bits untouched.
func (m *MAC) ClearUpper() {
	m.raw &^= (uint64(mask24) << 24) | (uint64(0xF) << 48)
}

// ClearLower zeroes the lower 24 bits, leaving upper/extended untouched.
func (m *MAC) ClearLower() {
	m.raw &^= uint64(mask24)
}

// SetUpper writes v into the upper 24-bit field and clears the 4
// extended bits, per §4.3's setUpper semantics.
func (m *MAC) SetUpper(v int32) {
	m.raw &^= (uint64(mask24) << 24) | (uint64(0xF) << 48)
	m.raw |= uint64(i24ToBits(v)) << 24
}

// SetLower writes v into the lower 24-bit field.
func (m *MAC) SetLower(v uint32) {
	m.raw = (m.raw &^ uint64(mask24)) | uint64(v&mask24)
}

// CopyFrom overwrites the accumulator with another MAC's raw value,
// supplementing the source's set(MAC) primitive (named in §4.3 but not
// otherwise spelled out by the distilled spec); used by the 0x78-0x7D
// load opcodes and by test fixtures.
func (m *MAC) CopyFrom(src MAC) { m.raw = src.raw }

// Raw returns the 52-bit two's-complement accumulator value, for state
// reporting and tests.
func (m MAC) Raw() uint64 { return m.raw }

// GetUpper conditions the accumulator for readout: apply output_shift,
// add the round carry taken from the bit below the 24-bit boundary after
// rounding-mask adjustment, optionally saturate to i24 if MOVM is set,
// and mask off the bits the rounding mode already accounted for.
func (m MAC) GetUpper(outputShift int8, bitCount uint8, movm bool) (value int32, overflowed bool) {
	shifted := shift52(m.raw, outputShift)
	if bitCount > 0 {
		carry := shifted & (1 << (bitCount - 1))
		shifted = u52(shifted + (carry << 1))
	}

	upperRaw := uint32((shifted >> 24) & mask24)
	ext := uint32((shifted >> 48) & 0xF)
	signedUpper := i24(upperRaw)

	wantExt := uint32(0)
	if signedUpper < 0 {
		wantExt = 0xF
	}
	overflowed = ext != wantExt

	if bitCount > 24 {
		roundBits := bitCount - 24
		clearMask := uint32(1<<roundBits - 1)
		upperRaw &^= clearMask
		signedUpper = i24(upperRaw)
	}

	if movm && overflowed {
		if i52(shift52(m.raw, outputShift)) < 0 {
			return clampI24Min, true
		}
		return clampI24Max, true
	}
	return signedUpper, overflowed
}

const (
	clampI24Max = 1<<23 - 1
	clampI24Min = -(1 << 23)
)

// GetLower conditions the lower half for readout: apply output_shift,
// extract bits 23..0, and saturate to 0 or UINT24_MAX when MOVM is set
// and the upper half has already saturated.
func (m MAC) GetLower(outputShift int8, movm, upperOverflowed, upperNegative bool) uint32 {
	shifted := shift52(m.raw, outputShift)
	lower := uint32(shifted & mask24)
	if movm && upperOverflowed {
		if upperNegative {
			return 0
		}
		return mask24
	}
	return lower
}
