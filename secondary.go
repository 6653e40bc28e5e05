// secondary.go - secondary (dual-issue B) opcode dispatch (§4.4)

package tms57070

// elementPtr returns a pointer to the .one or .two element of an
// addressing-register pair, selected by two.
func elementPtr(p *addrPair, two bool) *uint16 {
	if two {
		return &p.two
	}
	return &p.one
}

// execSecondary dispatches the 6-bit secondary opcode (opcode2, the
// instruction's bits 21..16) that rides alongside a primary instruction
// on a class-1 word, or the translated secondary half of a class-2 word.
// On a class-1 word it runs before the primary half, per §4.1 step 4; on
// a class-2 word it runs after the translated primary (see Step).
//
// opcode2_flag4/opcode2_flag8 are bits 14/15; opcode2_args packs both as
// a 2-bit value, used by the opcodes that select one of four targets
// (0x06/0x07/0x22/0x23) or a 2-bit field value (0x28/0x29/0x2A).
func (e *Emulator) execSecondary(insn uint32) error {
	op := (insn >> 16) & 0x3F
	flag4 := insn&(1<<14) != 0
	flag8 := insn&(1<<15) != 0
	args := (insn >> 14) & 3

	switch op {
	case 0x00:
		return nil

	case 0x01:
		// Store ACCx to DMEM or CMEM: flag4 selects ACC1/ACC2, flag8
		// selects the destination bank.
		accx := e.ACC1
		if flag4 {
			accx = e.ACC2
		}
		if flag8 {
			e.CMEM[e.resolveCMEM(insn)] = accx
		} else {
			e.DMEM[e.resolveDMEM(insn)] = accx
		}

	case 0x02:
		// Store MACCx upper (via the delayed2 shadow) to DMEM/CMEM.
		upper, _ := bankDelayed2(e, flag4).GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
		if flag8 {
			e.CMEM[e.resolveCMEM(insn)] = upper
		} else {
			e.DMEM[e.resolveDMEM(insn)] = upper
		}

	case 0x03:
		// Store MACCx lower (via the delayed2 shadow) to DMEM/CMEM.
		bank := bankDelayed2(e, flag4)
		upper, ov := bank.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
		lower := bank.GetLower(e.macOutputShift, e.cr1MOVM(), ov, upper < 0)
		v := i24(lower)
		if flag8 {
			e.CMEM[e.resolveCMEM(insn)] = v
		} else {
			e.DMEM[e.resolveDMEM(insn)] = v
		}

	case 0x04:
		// Load DA.one or DA.two (flag4 selects the element) from ACC1 or
		// ACC2 (flag8 selects the source).
		src := e.ACC1
		if flag8 {
			src = e.ACC2
		}
		*elementPtr(&e.DA, flag4) = u12(uint32(src))

	case 0x05:
		// Load CA.one or CA.two analogously.
		src := e.ACC1
		if flag8 {
			src = e.ACC2
		}
		*elementPtr(&e.CA, flag4) = u12(uint32(src))

	case 0x06:
		// Load one addressing pair from one CMEM word: low 12 bits ->
		// .one, high 12 bits -> .two. args selects which pair, in the
		// order spec.md lists them: DA, DIR, CA, CIR.
		v := uint32(e.CMEM[e.resolveCMEM(insn)])
		pair := addrPair{one: u12(v), two: u12(v >> 12)}
		switch args {
		case 0:
			e.DA = pair
		case 1:
			e.DIR = pair
		case 2:
			e.CA = pair
		case 3:
			e.CIR = pair
		}

	case 0x07:
		// Store one addressing pair to one CMEM word - the inverse of
		// 0x06.
		var pair addrPair
		switch args {
		case 0:
			pair = e.DA
		case 1:
			pair = e.DIR
		case 2:
			pair = e.CA
		case 3:
			pair = e.CIR
		}
		e.CMEM[e.resolveCMEM(insn)] = i24(uint32(pair.two)<<12 | uint32(pair.one))

	case 0x08:
		// CMEM[addr] -> DA or DIR (flag4 selects DIR) element (flag8
		// selects .two).
		v := u12(uint32(e.CMEM[e.resolveCMEM(insn)]))
		target := &e.DA
		if flag4 {
			target = &e.DIR
		}
		*elementPtr(target, flag8) = v

	case 0x09:
		// CMEM[addr] -> CA or CIR analogously.
		v := u12(uint32(e.CMEM[e.resolveCMEM(insn)]))
		target := &e.CA
		if flag4 {
			target = &e.CIR
		}
		*elementPtr(target, flag8) = v

	case 0x0A:
		// Save a single DA/DIR element to CMEM - the inverse of 0x08.
		target := &e.DA
		if flag4 {
			target = &e.DIR
		}
		v := *elementPtr(target, flag8)
		e.CMEM[e.resolveCMEM(insn)] = i24(uint32(v))

	case 0x0B:
		// Save a single CA/CIR element to CMEM - the inverse of 0x09.
		target := &e.CA
		if flag4 {
			target = &e.CIR
		}
		v := *elementPtr(target, flag8)
		e.CMEM[e.resolveCMEM(insn)] = i24(uint32(v))

	case 0x0C:
		v := e.AR1L
		if flag8 {
			v = e.AR1R
		}
		e.DMEM[e.resolveDMEM(insn)] = v

	case 0x0D:
		v := e.AR2L
		if flag8 {
			v = e.AR2R
		}
		e.DMEM[e.resolveDMEM(insn)] = v

	case 0x0E, 0x0F:
		// Zero-write DMEM for the non-existent third/fourth input
		// channels.
		e.DMEM[e.resolveDMEM(insn)] = 0

	case 0x18:
		e.sampleOut(flag4, flag8, ChanOut1L, ChanOut1R, &e.AX1L, &e.AX1R)
	case 0x19:
		e.sampleOut(flag4, flag8, ChanOut2L, ChanOut2R, &e.AX2L, &e.AX2R)
	case 0x1A:
		e.sampleOut(flag4, flag8, ChanOut3L, ChanOut3R, &e.AX3L, &e.AX3R)

	case 0x20:
		switch args {
		case 0:
			e.t = e.DMEM[e.resolveDMEM(insn)]
		case 1:
			e.DMEM[e.resolveDMEM(insn)] = e.t
		case 2:
			e.GMEM[e.GOFF&0xFF] = e.t
		case 3:
			e.DMEM[e.resolveDMEM(insn)] = e.XRD
		}

	case 0x21:
		switch args {
		case 0:
			e.DOFF = u12(uint32(e.DOFF) - 1)
			e.GOFF = u12(uint32(e.GOFF) + 1)
		case 1:
			e.queueExternalRead(insn)
		case 2:
			e.GOFF = 0
		case 3:
			// DRAM refresh: no externally observable state change.
		}

	case 0x22:
		// CMEM -> CRn, n = args; writing CR1 recomputes MAC modes.
		v := u24(uint32(e.CMEM[e.resolveCMEM(insn)]))
		switch args {
		case 0:
			e.CR0 = v
		case 1:
			e.writeCR1(v)
		case 2:
			e.writeCR2(v)
		case 3:
			e.CR3 = v
		}

	case 0x23:
		// CRn -> CMEM, the inverse of 0x22.
		var v uint32
		switch args {
		case 0:
			v = e.CR0
		case 1:
			v = e.CR1
		case 2:
			v = e.CR2
		case 3:
			v = e.CR3
		}
		e.CMEM[e.resolveCMEM(insn)] = i24(v)

	case 0x26:
		if flag8 {
			e.HIR = u24(uint32(e.CMEM[e.resolveCMEM(insn)]))
		} else {
			e.HIR = u24(uint32(e.DMEM[e.resolveDMEM(insn)]))
		}

	case 0x27:
		e.execCircularRotate()

	case 0x28:
		e.CR1 = setField(e.CR1, cr1MASMLo, 2, uint32(args))
		e.recomputeMACModes()
	case 0x29:
		e.CR1 = setField(e.CR1, cr1MOSMLo, 2, uint32(args))
		e.recomputeMACModes()
	case 0x2A:
		// MRDM's low two bits; 0x2B carries the high bit, since args is
		// only 2 bits wide but MRDM is 3.
		e.CR1 = setField(e.CR1, cr1MRDMLo, 2, uint32(args))
		e.recomputeMACModes()
	case 0x2B:
		e.CR1 = setBit(e.CR1, cr1MRDMLo+2, flag4)
		e.recomputeMACModes()

	case 0x2C:
		switch {
		case flag4:
			e.CR2 = setBit(e.CR2, cr2FREE, true)
		case flag8:
			e.CR1 = setBit(e.CR1, cr1MOVL, false)
		default:
			e.CR1 = setBit(e.CR1, cr1AOVL, false)
		}

	case 0x2D:
		pos := uint(cr1AOVM)
		if flag4 {
			pos = cr1MOVM
		}
		e.CR1 = setBit(e.CR1, pos, flag8)

	case 0x2E:
		pos := uint(cr1LDMEM)
		if flag4 {
			pos = cr1LCMEM
		}
		e.CR1 = setBit(e.CR1, pos, flag8)

	case 0x30, 0x31, 0x32, 0x33:
		if e.extBusInCB != nil {
			e.XRD = e.extBusInCB(e.resolveXMEM(0))
		}
		e.DMEM[e.resolveDMEM(insn)] = e.XRD

	case 0x38, 0x39, 0x3A, 0x3B:
		if e.extBusOutCB != nil {
			e.extBusOutCB(e.DMEM[e.resolveDMEM(insn)], e.resolveXMEM(0))
		}

	default:
		return e.unknownOpcode("secondary", op)
	}
	return nil
}

// sampleOut implements the 0x18/0x19/0x1A group: write the MAC upper
// half (current, not delayed) of the bank selected by flag4 into the L
// or R output register selected by flag8, and invoke the sample-out
// callback if one is registered.
func (e *Emulator) sampleOut(flag4, flag8 bool, chanL, chanR Channel, axL, axR *int32) {
	bank := macBank(e, flag4)
	v, _ := bank.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
	if flag8 {
		*axR = v
		if e.sampleOutCB != nil {
			e.sampleOutCB(chanR, v)
		}
		return
	}
	*axL = v
	if e.sampleOutCB != nil {
		e.sampleOutCB(chanL, v)
	}
}

// execCircularRotate implements secondary opcode 0x27: copy the top
// word of the configured XMEM span down to address 0, then decrement
// XOFF unless CR3.LXMEM is set. The decrement's gating is this
// rewrite's resolution of the Open Question in spec.md §9 ("source
// toggles this across revisions"): CR3.LXMEM is treated the same way
// CR1.LCMEM/LDMEM already are - set means the bank's offset arithmetic
// is disabled.
func (e *Emulator) execCircularRotate() {
	e.ensureXMEM()
	size := e.xmemSize()
	e.XMEM[0] = e.XMEM[size-1]
	if !e.cr3LXMEM() {
		e.XOFF--
	}
}
