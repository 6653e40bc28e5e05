// emulator.go - Emulator instance state and lifecycle

/*
Package tms57070 implements a cycle-stepped software emulator of a
fixed-point audio DSP: 32-bit dual-issue instructions over 24-bit signed
data, a pair of 52-bit multiply-accumulate units, four addressed memory
banks, pipelined addressing registers, and interrupt-driven audio/host
I/O. It exists to reproduce the processor's per-cycle observable state
closely enough to serve as a reference for firmware reverse engineering.

The core is single-threaded and synchronous: Step is the only state-
advancing call. Step and the setter methods (SampleIn, HirInterrupt,
ExtInterrupt, SetBIO) each hold the instance's mutex for their whole
duration, so calls from different goroutines on the same instance are
serialized: a setter called while a Step is running takes effect after
that Step returns. Callbacks run inside Step and must not call Step.
Every Emulator is independent; running several on separate goroutines
is safe as long as none of them share state or callbacks.
*/
package tms57070

import (
	"fmt"
	"sync"
)

const (
	pmemSize = 512
	cmemSize = 512
	dmemSize = 512
	gmemSize = 256

	stackDepth = 4
)

// Channel identifies an audio input or output port.
type Channel int

// Input and output channels, matching the source's Channel enumeration.
const (
	ChanIn1L Channel = iota
	ChanIn1R
	ChanIn2L
	ChanIn2R

	ChanOut1L
	ChanOut1R
	ChanOut2L
	ChanOut2R
	ChanOut3L
	ChanOut3R
)

// SampleOutFunc is invoked synchronously from Step when opcodes
// 0x18/0x19/0x1A write an audio output register. It must not call Step.
type SampleOutFunc func(channel Channel, value int32)

// ExternalBusInFunc is invoked synchronously from Step for opcodes
// 0x30-0x33; it must return the word at the given external address.
type ExternalBusInFunc func(address uint32) int32

// ExternalBusOutFunc is invoked synchronously from Step for opcodes
// 0x38-0x3B.
type ExternalBusOutFunc func(value int32, address uint32)

// Emulator holds one complete DSP instance: all memory banks, registers,
// and pipeline state, plus the host-registered callbacks. The zero value
// is not ready for use; call NewEmulator.
type Emulator struct {
	mu sync.Mutex // guards host-facing setters against a concurrent Step

	// Logger receives one line per unknown opcode that is treated as a
	// NOP in non-strict mode; fatal conditions are only returned as
	// errors. Defaults to a no-op; a library must not write to stdout on
	// its own.
	Logger func(string)

	// StrictUnknownOpcode selects whether an undefined opcode is a fatal
	// EmulatorError (true, matching UNKNOWN_STRICT in the source) or a
	// logged NOP (false).
	StrictUnknownOpcode bool

	PMEM [pmemSize]uint32
	CMEM [cmemSize]int32
	DMEM [dmemSize]int32
	GMEM [gmemSize]int32
	XMEM []int32 // sized lazily from CR3.XBUS/XWORD; see memory.go

	CR0, CR1, CR2, CR3 uint32

	PC    uint16
	stack [stackDepth]uint16
	sp    uint8

	RPTC       uint8
	repStartPC uint16
	repEndPC   uint16

	MACC1, MACC2                 MAC
	macc1Delayed1, macc2Delayed1 MAC
	macc1Delayed2, macc2Delayed2 MAC

	macOutputShift int8
	macBitCount    uint8
	macAccShift    int8

	ACC1, ACC2 int32
	HIR        uint32
	XRD        int32
	t          int32 // scratch register T

	AR1L, AR1R, AR2L, AR2R int32
	AX1L, AX1R             int32
	AX2L, AX2R             int32
	AX3L, AX3R             int32

	CA, DA, CIR, DIR addrPair

	COFF, CCIRC uint16
	DOFF, DCIRC uint16
	XOFF        uint32
	GOFF        uint16

	BIO bool

	pipeline writePipeline

	xmemReadAddr   uint32
	xmemReadCycles uint32
	xmemPending    bool

	sampleOutCB     SampleOutFunc
	extBusInCB      ExternalBusInFunc
	extBusOutCB     ExternalBusOutFunc

	faulted bool
}

// addrPair is the {one,two} register pair used for CA/DA/CIR/DIR, each
// element a u12.
type addrPair struct {
	one, two uint16
}

// NewEmulator constructs an Emulator and resets it to its post-reset
// state, exactly as a host would after power-on.
func NewEmulator() *Emulator {
	e := &Emulator{
		Logger:              func(string) {},
		StrictUnknownOpcode: true,
	}
	e.Reset()
	return e
}

func (e *Emulator) log(format string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger(fmt.Sprintf(format, args...))
}

// Reset initializes the register state: PC=0, SP=0, RPTC=0, both
// pipeline ranks cleared, and CR0..CR3 seeded with architecturally
// defined post-reset values (all zero, matching the source's all-zero
// static init). The memory banks (PMEM, CMEM, DMEM, GMEM, XMEM) and the
// registered callbacks are left as they are.
func (e *Emulator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.PC = 0
	e.sp = 0
	e.RPTC = 0
	e.repStartPC = 0
	e.repEndPC = 0

	e.CR0, e.CR1, e.CR2, e.CR3 = 0, 0, 0, 0

	e.ACC1, e.ACC2 = 0, 0
	e.HIR, e.XRD, e.t = 0, 0, 0

	e.AR1L, e.AR1R, e.AR2L, e.AR2R = 0, 0, 0, 0
	e.AX1L, e.AX1R, e.AX2L, e.AX2R, e.AX3L, e.AX3R = 0, 0, 0, 0, 0, 0

	e.CA, e.DA, e.CIR, e.DIR = addrPair{}, addrPair{}, addrPair{}, addrPair{}
	e.COFF, e.CCIRC, e.DOFF, e.DCIRC, e.XOFF, e.GOFF = 0, 0, 0, 0, 0, 0
	e.BIO = false

	e.MACC1, e.MACC2 = MAC{}, MAC{}
	e.macc1Delayed1, e.macc2Delayed1 = MAC{}, MAC{}
	e.macc1Delayed2, e.macc2Delayed2 = MAC{}, MAC{}
	e.recomputeMACModes()

	e.pipeline = writePipeline{}

	e.xmemReadAddr, e.xmemReadCycles, e.xmemPending = 0, 0, false

	e.faulted = false
}

// Faulted reports whether a prior Step returned a fatal EmulatorError.
// Once true, the instance must not be stepped again without a Reset.
func (e *Emulator) Faulted() bool {
	return e.faulted
}
