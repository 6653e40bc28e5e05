// controlregs_test.go - CR1/CR2/CR3 field accessor and write-rule tests

package tms57070

import "testing"

// TestWriteCR2CannotReraise covers §4.8's "cannot-reraise" rule: a flag
// bit already pending is cleared by writing a 1 to it, and a flag bit
// that is clear cannot be raised by the same write - the incoming
// value's flag bits can only narrow what's pending, never widen it.
func TestWriteCR2CannotReraise(t *testing.T) {
	e := newTestEmulator()
	e.CR2 = setBit(e.CR2, cr2ARI1IF, true) // ARI1_IF pending, HIR_IF clear.

	// Incoming value asks to "set" both ARI1_IF and HIR_IF.
	e.writeCR2(1<<cr2ARI1IF | 1<<cr2HIRIF)

	if bit(e.CR2, cr2ARI1IF) {
		t.Error("ARI1_IF still set after writing 1 to a pending flag, want cleared")
	}
	if bit(e.CR2, cr2HIRIF) {
		t.Error("HIR_IF raised by a write, want a clear flag never raised by CR2 writes")
	}
}

// TestWriteCR2OverwritesHighBits checks that FREE/VOL/LVOL and the enable
// byte come from the incoming value unconditionally, not OR-accumulated
// with whatever was already set.
func TestWriteCR2OverwritesHighBits(t *testing.T) {
	e := newTestEmulator()
	e.CR2 = setBit(e.CR2, cr2FREE, true)
	e.CR2 |= 0xFF00 // every enable bit disabled

	e.writeCR2(0) // incoming: FREE clear, every enable bit re-enabled (0)

	if e.cr2FREE() {
		t.Error("FREE still set after writing 0, want overwritten to clear")
	}
	if e.cr2Enables() != 0 {
		t.Errorf("enables = %#x, want 0 (overwritten, not OR-accumulated)", e.cr2Enables())
	}
}
