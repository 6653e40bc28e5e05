// alu.go - primary opcode dispatch and the ALU/load path (§4.2)

package tms57070

// execPrimary dispatches a primary (top-byte) opcode. Ranges 0x00-0x3F
// are the ALU/load path, 0x40-0x7D are the MAC matrix (mac_ops.go),
// 0xC0-0xFF are explicit register loads, repeat control, jumps, calls,
// and returns (control_flow.go / loadregs.go). Everything else is
// unknown.
func (e *Emulator) execPrimary(insn uint32) error {
	op := insn >> 24
	switch {
	case op <= 0x3F:
		return e.aluPrimary(insn, op)
	case op <= 0x7D:
		return e.macPrimary(insn, op)
	case op >= 0xC0:
		return e.controlPrimary(insn, op)
	default:
		return e.unknownOpcode("primary", op)
	}
}

// unknownOpcode implements §7's two unknown-opcode policies: fatal in
// strict mode, logged-and-NOP otherwise.
func (e *Emulator) unknownOpcode(where string, op uint32) error {
	if e.StrictUnknownOpcode {
		return ErrUnknownOpcode
	}
	e.log("%s: unknown opcode %#02x treated as NOP", where, op)
	return nil
}

// aluSource resolves the lhs/rhs operand pair selected by the low 2 bits
// of opcode1, per §4.2's source-selection table. flag8 picks ACC1/ACC2
// when an ACCx is wanted as the rhs.
func (e *Emulator) aluSource(insn uint32, flag8 bool) (lhs, rhs int32) {
	accx := e.ACC1
	if flag8 {
		accx = e.ACC2
	}
	var macUpper int32
	if flag8 {
		macUpper, _ = e.macc2Delayed2.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
	} else {
		macUpper, _ = e.macc1Delayed2.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
	}
	switch insn >> 24 & 3 {
	case 0:
		return e.DMEM[e.resolveDMEM(insn)], accx
	case 1:
		return e.DMEM[e.resolveDMEM(insn)], macUpper
	case 2:
		return e.CMEM[e.resolveCMEM(insn)], accx
	default:
		return e.CMEM[e.resolveCMEM(insn)], macUpper
	}
}

// destACC returns a pointer to the ACC selected by flag4 (bit 22).
func (e *Emulator) destACC(flag4 bool) *int32 {
	if flag4 {
		return &e.ACC2
	}
	return &e.ACC1
}

// storeACC applies AOVM-conditioned saturation/truncation, updates the
// CR1 flag bits, and writes the result to dst - the shared tail of every
// ALU operation that produces a new ACC value.
func (e *Emulator) storeACC(dst *int32, result int32, overflow bool) {
	aov := overflow
	if e.cr1AOVM() && overflow {
		clamped, _ := clampI24(result)
		result = clamped
	} else {
		result = i24(i24ToBits(result))
	}
	*dst = result
	e.setCR1Flags(aov, aov, result == 0, result < 0, e.cr1MOVSet(), e.cr1MOVLSet(), bit(e.CR1, cr1MOVR))
}

// i24Overflowing takes a result computed in a 32-bit intermediate and
// reports whether the true result escapes the i24 range, per the
// invariant in §3.
func i24Overflowing(v int32) (int32, bool) {
	_, sat := clampI24(v)
	return v, sat
}

func (e *Emulator) aluPrimary(insn uint32, op uint32) error {
	flag4 := insn&(1<<22) != 0
	flag8 := insn&(1<<23) != 0
	dst := e.destACC(flag4)

	switch {
	case op <= 0x03:
		return nil // NOP

	case op >= 0x04 && op <= 0x07:
		lhs, _ := e.aluSource(insn, flag8)
		v := lhs
		if v < 0 {
			v = -v
		}
		res, ov := i24Overflowing(v)
		e.storeACC(dst, res, ov)

	case op >= 0x08 && op <= 0x0B:
		lhs, _ := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(-lhs)
		e.storeACC(dst, res, ov)

	case op >= 0x0C && op <= 0x0F:
		lhs, _ := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(^lhs)
		e.storeACC(dst, res, ov)

	case op >= 0x10 && op <= 0x13:
		lhs, _ := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs)
		e.storeACC(dst, res, ov)

	case op >= 0x14 && op <= 0x17:
		lhs, _ := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs + 1)
		e.storeACC(dst, res, ov)

	case op >= 0x18 && op <= 0x1B:
		lhs, _ := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs - 1)
		e.storeACC(dst, res, ov)

	case op == 0x1C:
		cur := *dst
		var res int32
		if flag8 {
			res = cur << 1
		} else {
			res = cur >> 1
		}
		rv, ov := i24Overflowing(res)
		e.storeACC(dst, rv, ov)

	case op == 0x1D:
		// Opcode 0x1D with flag8 set is marked unknown by the source
		// (§9 Open Questions); only the plain zero-one-ACC behavior is
		// implemented.
		*dst = 0
		e.setCR1Flags(false, e.cr1AOVLSet(), true, false, e.cr1MOVSet(), e.cr1MOVLSet(), bit(e.CR1, cr1MOVR))

	case op == 0x1E:
		u1, _ := e.MACC1.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
		u2, _ := e.MACC2.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
		e.ACC1, e.ACC2 = u1, u2

	case op == 0x1F:
		e.ACC1, e.ACC2 = 0, 0
		e.setCR1Flags(false, e.cr1AOVLSet(), true, false, e.cr1MOVSet(), e.cr1MOVLSet(), bit(e.CR1, cr1MOVR))

	case op >= 0x20 && op <= 0x23:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs + rhs)
		e.storeACC(dst, res, ov)

	case op >= 0x24 && op <= 0x27:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs - rhs)
		e.storeACC(dst, res, ov)

	case op >= 0x28 && op <= 0x2B:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs & rhs)
		e.storeACC(dst, res, ov)

	case op >= 0x2C && op <= 0x2F:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs | rhs)
		e.storeACC(dst, res, ov)

	case op >= 0x30 && op <= 0x33:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs ^ rhs)
		e.storeACC(dst, res, ov)

	case op >= 0x34 && op <= 0x37:
		lhs, rhs := e.aluSource(insn, flag8)
		res, ov := i24Overflowing(lhs - rhs)
		e.setCR1Flags(ov, ov, res == 0, res < 0, e.cr1MOVSet(), e.cr1MOVLSet(), bit(e.CR1, cr1MOVR))

	case op == 0x38:
		// Normalize: if the MAC upper half is already outside the
		// half-range [-0x400000, 0x400000), it's normalized and this is
		// a no-op; otherwise shift it left one bit and decrement the
		// exponent counter in ACC1.
		upper, _ := e.MACC1.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
		if upper >= -0x400000 && upper < 0x400000 {
			e.MACC1.Shift(1)
			e.ACC1, _ = i24Overflowing(e.ACC1 - 1)
		}

	case op == 0x39:
		if flag4 {
			e.execExternalBusWrite(insn)
		} else {
			e.queueExternalRead(insn)
		}

	case op == 0x3A || op == 0x3B || op == 0x3F:
		return nil // NOP

	case op == 0x3C:
		d := e.DMEM[e.resolveDMEM(insn)]
		c := e.CMEM[e.resolveCMEM(insn)]
		var res int32
		if flag8 {
			res = d - c
		} else {
			res = d + c
		}
		rv, ov := i24Overflowing(res)
		e.storeACC(dst, rv, ov)

	case op == 0x3D:
		d := e.DMEM[e.resolveDMEM(insn)]
		c := e.CMEM[e.resolveCMEM(insn)]
		var res int32
		if flag8 {
			res = d | c
		} else {
			res = d & c
		}
		rv, ov := i24Overflowing(res)
		e.storeACC(dst, rv, ov)

	case op == 0x3E:
		d := e.DMEM[e.resolveDMEM(insn)]
		c := e.CMEM[e.resolveCMEM(insn)]
		rv, ov := i24Overflowing(d ^ c)
		e.storeACC(dst, rv, ov)

	default:
		return e.unknownOpcode("primary-alu", op)
	}
	return nil
}
