// pipeline.go - post-increment unit and the addressing-register write pipeline

package tms57070

// applyNibblePostIncrement implements the nibble-encoded post-increment
// rule shared by the DA/DIR and CA/CIR families (§4.5): bit 3 of the
// nibble selects .one vs .two; bit 2 set means add a register (bit 1
// then chooses which DIR/CIR element); bit 2 clear and bit 1 set means
// add a plain 1; otherwise the register is untouched.
func applyNibblePostIncrement(target *addrPair, dir addrPair, nibble uint32) {
	selectTwo := nibble&8 != 0
	cur := target.one
	if selectTwo {
		cur = target.two
	}
	switch {
	case nibble&4 != 0:
		inc := dir.one
		if nibble&2 != 0 {
			inc = dir.two
		}
		cur = u12(uint32(cur) + uint32(inc))
	case nibble&2 != 0:
		cur = u12(uint32(cur) + 1)
	}
	if selectTwo {
		target.two = cur
	} else {
		target.one = cur
	}
}

// postIncrement mutates CA/DA per the instruction's addressing mode and
// nibble fields [11:8] (i) and [7:4] (z), run once after primary
// execution on class-1/class-2 instructions, per §4.1 step 4 and §4.5.
//
// Mode 2 drives DA via the i-nibble rule. Mode 1 drives CA via the same
// rule. Mode 3 drives DA via the i-nibble rule and separately drives one
// CA bank - selected by i&1 - using the z-nibble's bits 8/4 to choose
// between adding a CIR element and adding a plain 1.
func (e *Emulator) postIncrement(insn uint32) {
	mode := addressingMode(insn)
	i := (insn >> 8) & 0xF
	z := (insn >> 4) & 0xF

	switch mode {
	case 1:
		applyNibblePostIncrement(&e.CA, e.CIR, i)
	case 2:
		applyNibblePostIncrement(&e.DA, e.DIR, i)
	case 3:
		applyNibblePostIncrement(&e.DA, e.DIR, i)
		target := &e.CA.one
		if i&1 != 0 {
			target = &e.CA.two
		}
		switch {
		case z&8 != 0:
			inc := e.CIR.one
			if z&4 != 0 {
				inc = e.CIR.two
			}
			*target = u12(uint32(*target) + uint32(inc))
		case z&4 != 0:
			*target = u12(uint32(*target) + 1)
		}
	}
}

// pipelineTarget names which addressing-register pair a deferred write
// lands on.
type pipelineTarget int

const (
	targetNone pipelineTarget = iota
	targetCA
	targetDA
	targetCIR
	targetDIR
)

type dualSlot struct {
	target pipelineTarget
	value  addrPair
	active bool
}

type singleSlot struct {
	target  pipelineTarget
	element int // 0 selects .one, 1 selects .two
	value   uint16
	active  bool
}

// writePipeline holds the two-stage (pending, delayed) slot banks
// described in §4.6: one bank for writes to an addressing-register pair,
// one for writes to a single element.
type writePipeline struct {
	pendingDual, delayedDual     dualSlot
	pendingSingle, delayedSingle singleSlot
}

func (e *Emulator) pairFor(target pipelineTarget) *addrPair {
	switch target {
	case targetCA:
		return &e.CA
	case targetDA:
		return &e.DA
	case targetCIR:
		return &e.CIR
	case targetDIR:
		return &e.DIR
	default:
		return nil
	}
}

// tickPipeline advances the write pipeline one step, per §4.6: apply any
// delayed writes to their targets, then promote pending writes into the
// delayed slots and clear pending. Called before decoding the current
// instruction, so a write staged this step becomes visible at the start
// of step N+2.
func (e *Emulator) tickPipeline() {
	p := &e.pipeline

	if p.delayedDual.active {
		if dst := e.pairFor(p.delayedDual.target); dst != nil {
			*dst = p.delayedDual.value
		}
	}
	if p.delayedSingle.active {
		if dst := e.pairFor(p.delayedSingle.target); dst != nil {
			if p.delayedSingle.element == 1 {
				dst.two = p.delayedSingle.value
			} else {
				dst.one = p.delayedSingle.value
			}
		}
	}

	p.delayedDual = p.pendingDual
	p.delayedSingle = p.pendingSingle
	p.pendingDual = dualSlot{}
	p.pendingSingle = singleSlot{}
}

// stagePairWrite schedules a two-cycle-delayed write to an entire
// addressing-register pair (opcodes 0xC2-0xC5).
func (e *Emulator) stagePairWrite(target pipelineTarget, value addrPair) {
	e.pipeline.pendingDual = dualSlot{target: target, value: value, active: true}
}

// stageElementWrite schedules a two-cycle-delayed write to one element
// of an addressing-register pair (opcode 0xC1's per-register variants).
func (e *Emulator) stageElementWrite(target pipelineTarget, element int, value uint16) {
	e.pipeline.pendingSingle = singleSlot{target: target, element: element, value: value, active: true}
}
