// mac_modes.go - CR1-derived MAC output/round/accumulation modes

package tms57070

// recomputeMACModes re-derives output_shift, the round bit_count, and the
// accumulation shift from the current CR1 fields. It runs whenever CR1 is
// written - opcode 0xCD (direct CR1 load), 0x22 with args selecting CR1,
// and the individual mode setters 0x28-0x2B - per §4.3.
func (e *Emulator) recomputeMACModes() {
	e.macOutputShift = mosmShift(e.cr1MOSM())
	e.macBitCount = mrdmBitCount(e.cr1MRDM())
	e.macAccShift = masmShift(e.cr1MASM())
}

// mosmShift maps CR1.MOSM to the MAC output shift: 0->0, 1->+2, 2->+4, 3->-8.
func mosmShift(mosm uint32) int8 {
	switch mosm {
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return -8
	default:
		return 0
	}
}

// masmShift maps CR1.MASM to the accumulation shift applied to the prior
// accumulator value during MAC operations: 0->0, 1->+2, 2->+4, 3->-24.
func masmShift(masm uint32) int8 {
	switch masm {
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return -24
	default:
		return 0
	}
}

// mrdmBitCount maps CR1.MRDM to the number of low bits rounded off below
// the 52-bit boundary: {0,24,28,30,32,32,28,30} for MRDM 0..7.
func mrdmBitCount(mrdm uint32) uint8 {
	table := [8]uint8{0, 24, 28, 30, 32, 32, 28, 30}
	return table[mrdm&7]
}
