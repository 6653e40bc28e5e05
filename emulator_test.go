// emulator_test.go - shared test rig, mirroring the teacher's
// newIE32TestRig / ie32TestRig pattern.

package tms57070

import "testing"

// newTestEmulator returns a fresh, reset Emulator with strict-unknown-
// opcode mode disabled, so a test word that decodes to an undefined
// opcode is logged and treated as a NOP instead of faulting the step.
// (PMEM's zero-valued words decode as NOP/NOP in either mode.)
func newTestEmulator() *Emulator {
	e := NewEmulator()
	e.StrictUnknownOpcode = false
	return e
}

// loadProgram copies words into PMEM starting at address 0.
func (e *Emulator) loadProgram(words ...uint32) {
	for i, w := range words {
		e.PMEM[i] = w
	}
}

// stepN calls Step n times, failing the test immediately on any error.
func stepN(t *testing.T, e *Emulator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
	}
}
