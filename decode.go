// decode.go - step cycle, instruction classification and dispatch

package tms57070

// Step advances the DSP by one clock, executing the sequence from §4.1:
// fetch, PC/repeat advance, write-pipeline tick, classify and execute,
// MAC shadow advance, external-read-latency service, interrupt dispatch.
//
// Step is not re-entrant: a callback it invokes must not call Step. Step
// holds the instance's mutex for its whole duration, as do the host-
// facing setters, so calls from separate goroutines are serialized (see
// the package doc comment). It returns a non-nil *EmulatorError only for
// a fatal condition; the stages after the faulting one are skipped, the
// instance is marked faulted, and it must not be stepped again without a
// Reset.
func (e *Emulator) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.faulted {
		return newFault("step", "instance faulted; call Reset before stepping again")
	}

	insn := e.PMEM[e.PC]
	fetchPC := e.PC

	if e.RPTC > 0 && e.PC == e.repEndPC {
		e.PC = e.repStartPC
		e.RPTC--
	} else {
		e.PC = u9(uint32(e.PC) + 1)
	}

	e.tickPipeline()

	op := insn >> 24
	var err error
	switch {
	case op >= 0xC0:
		err = e.execPrimary(insn)
	case op >= 0x80:
		// §4.1's "Class-2 translation" paragraph is explicit: the
		// translated primary runs first, then the raw secondary.
		translated, secondary := translateClass2(insn)
		err = e.execPrimary(translated)
		if err == nil {
			err = e.execSecondary(secondary)
		}
		if err == nil {
			e.postIncrement(insn)
		}
	default:
		err = e.execSecondary(insn)
		if err == nil {
			err = e.execPrimary(insn)
		}
		if err == nil {
			e.postIncrement(insn)
		}
	}

	if err != nil {
		e.faulted = true
		return err
	}

	e.macc1Delayed2 = e.macc1Delayed1
	e.macc2Delayed2 = e.macc2Delayed1
	e.macc1Delayed1 = e.MACC1
	e.macc2Delayed1 = e.MACC2

	e.tickXMEMRead()

	if err == nil {
		err = e.serviceInterrupts(fetchPC)
	}

	if err != nil {
		e.faulted = true
	}
	return err
}

// translateClass2 decodes a class-2 (dual-issue B) word into the primary
// instruction it encodes (top byte replaced by 0x40 plus the 8-bit
// argument at bits 21..14, everything else unchanged) and the secondary
// instruction it encodes (the low 6 bits become opcode2, with the
// argument/flag bits forced to zero - "cleared" per §4.1). The source
// never implemented class-2 translation; this mapping is this rewrite's
// resolution, recorded in DESIGN.md.
func translateClass2(insn uint32) (primary, secondary uint32) {
	argByte := (insn >> 14) & 0xFF
	primary = ((0x40 + argByte) << 24) | (insn & 0x00FFFFFF)
	secondary = (insn & 0x3F) << 16
	return primary, secondary
}
