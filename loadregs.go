// loadregs.go - explicit register-immediate loads, primary range 0xC0-0xFF

package tms57070

// elementTargets maps the 8 selector values used by opcode 0xC1 (and its
// 0xC6 counterpart, which the source left as unfinished "LIRAE" variants
// and which is decoded exactly like 0xC1 here) to a single addressing-
// register element.
var elementTargets = [8]struct {
	target  pipelineTarget
	element int
}{
	{targetDA, 0}, {targetDA, 1},
	{targetDIR, 0}, {targetDIR, 1},
	{targetCA, 0}, {targetCA, 1},
	{targetCIR, 0}, {targetCIR, 1},
}

// controlPrimary dispatches primary-only opcodes 0xC0-0xFF: addressing-
// register loads (0xC1-0xC6, two-cycle pipelined per §4.6), direct ACC
// and control-register loads (0xCA-0xCF), repeat control (0xE0-0xE4),
// return (0xEC/0xEE), and jump/call (0xF0-0xFF).
func (e *Emulator) controlPrimary(insn uint32, op uint32) error {
	switch op {
	case 0xC1, 0xC6:
		sel := (insn >> 16) & 0xFF & 7
		t := elementTargets[sel]
		e.stageElementWrite(t.target, t.element, u12(insn))
		return nil

	case 0xC2:
		e.stagePairWrite(targetDA, addrPair{one: u12(insn >> 12), two: u12(insn)})
		return nil
	case 0xC3:
		e.stagePairWrite(targetCA, addrPair{one: u12(insn >> 12), two: u12(insn)})
		return nil
	case 0xC4:
		e.stagePairWrite(targetCIR, addrPair{one: u12(insn >> 12), two: u12(insn)})
		return nil
	case 0xC5:
		e.stagePairWrite(targetDIR, addrPair{one: u12(insn >> 12), two: u12(insn)})
		return nil

	case 0xCA:
		e.ACC1 = i24(insn)
		return nil
	case 0xCB:
		e.ACC2 = i24(insn)
		return nil

	case 0xCC:
		e.CR0 = u24(insn)
		return nil
	case 0xCD:
		e.writeCR1(insn)
		return nil
	case 0xCE:
		e.writeCR2(insn)
		return nil
	case 0xCF:
		e.CR3 = u24(insn)
		return nil

	case 0xE0:
		return e.execRPTK(insn)
	case 0xE2:
		e.RPTC = uint8(e.ACC1)
		return nil
	case 0xE3:
		e.RPTC = uint8(e.ACC2)
		return nil
	case 0xE4:
		return e.execRPTB(insn)

	case 0xEC:
		return e.execRET()
	case 0xEE:
		return e.execRETI()
	}

	if op >= 0xF0 {
		return e.execJumpOrCall(insn, op)
	}
	return e.unknownOpcode("primary-control", op)
}
