// memory.go - memory banks and the CMEM/DMEM/XMEM addressing unit

package tms57070

// addressingMode extracts the 2-bit addressing mode from instruction bits
// [13:12], shared by the CMEM and DMEM resolvers.
func addressingMode(insn uint32) uint32 {
	return (insn >> 12) & 3
}

// resolveCMEM computes the CMEM word address selected by the current
// instruction, per §4.5: mode 1 picks CA.one/CA.two by bit 11, mode 2
// takes an immediate from bits [8:0], mode 3 picks CA by bit 8; the
// current-offset register COFF is then added unless CR1.LCMEM is set,
// and the result is masked to the active coefficient-memory span.
func (e *Emulator) resolveCMEM(insn uint32) uint32 {
	var addr uint32
	switch addressingMode(insn) {
	case 1:
		if insn&(1<<11) != 0 {
			addr = uint32(e.CA.two)
		} else {
			addr = uint32(e.CA.one)
		}
	case 2:
		addr = insn & 0x1FF
	case 3:
		if insn&(1<<8) != 0 {
			addr = uint32(e.CA.two)
		} else {
			addr = uint32(e.CA.one)
		}
	default:
		addr = uint32(e.CA.one)
	}
	if !e.cr1LCMEM() {
		addr += uint32(e.COFF)
	}
	mask := uint32(0xFF)
	if e.cr1EXT() && e.cr1EXTMEM() {
		mask = 0x1FF
	}
	return addr & mask
}

// resolveDMEM computes the DMEM word address selected by the current
// instruction: mode 1 takes an immediate from bits [8:0], modes 2 and 3
// pick DA.one/DA.two by bit 11; DOFF is added unless CR1.LDMEM is set,
// masked to the active data-memory span.
func (e *Emulator) resolveDMEM(insn uint32) uint32 {
	var addr uint32
	switch addressingMode(insn) {
	case 1:
		addr = insn & 0x1FF
	case 2, 3:
		if insn&(1<<11) != 0 {
			addr = uint32(e.DA.two)
		} else {
			addr = uint32(e.DA.one)
		}
	default:
		addr = uint32(e.DA.one)
	}
	if !e.cr1LDMEM() {
		addr += uint32(e.DOFF)
	}
	mask := uint32(0xFF)
	if e.cr1EXT() && !e.cr1EXTMEM() {
		mask = 0x1FF
	}
	return addr & mask
}

// xbusSpans is the XMEM span in words for CR3.XBUS values 0..3, before
// the CR3.XWORD halving.
var xbusSpans = [4]uint32{0x4000, 0x8000, 0x10000, 0x10000}

// xmemSize returns the currently configured XMEM span, derived from
// CR3.XBUS and halved when CR3.XWORD is set.
func (e *Emulator) xmemSize() uint32 {
	size := xbusSpans[e.cr3XBUS()]
	if e.cr3XWORD() {
		size /= 2
	}
	return size
}

// resolveXMEM adds the current XOFF to addr and masks to the configured
// span, per §4.5.
func (e *Emulator) resolveXMEM(addr uint32) uint32 {
	size := e.xmemSize()
	return (addr + e.XOFF) & (size - 1)
}

// ensureXMEM grows the backing slice lazily to the configured span. The
// emulator never eagerly allocates the architecturally maximum 16M-word
// bank; it grows to whatever CR3 currently configures.
func (e *Emulator) ensureXMEM() {
	size := e.xmemSize()
	if uint32(len(e.XMEM)) >= size {
		return
	}
	grown := make([]int32, size)
	copy(grown, e.XMEM)
	e.XMEM = grown
}

// readXMEM returns the XMEM word at the resolved address, growing the
// backing slice first if needed.
func (e *Emulator) readXMEM(addr uint32) int32 {
	e.ensureXMEM()
	return e.XMEM[e.resolveXMEM(addr)]
}

// writeXMEM stores v at the resolved address, growing the backing slice
// first if needed.
func (e *Emulator) writeXMEM(addr uint32, v int32) {
	e.ensureXMEM()
	e.XMEM[e.resolveXMEM(addr)] = v
}
