// harness.go - reference sample-loop driver
//
// This package is not part of the emulator core; it demonstrates the
// host-side contract spec.md §5 describes ("host threads may call
// sample_in ... between steps") with a step-loop goroutine running
// concurrently with a sample-feeding goroutine, coordinated the way a
// real host driving original_source/Emulator/main.cpp's fixed-rate
// sample loop would. It synthesises its own input samples in-process
// and implements none of the Non-goal surfaces (WAV I/O, file loading,
// a GUI).
package harness

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zotley/tms57070"
)

// SampleSource produces the stereo input pair for in_1L/in_1R at sample
// index i.
type SampleSource func(i int) (left, right int32)

// Run drives emu for n DSP clocks: one goroutine feeds n stereo samples
// through SampleIn, a second goroutine calls Step n times, and Run
// returns the first error either goroutine produces. The two goroutines
// are not otherwise synchronized with each other - SampleIn and Step are
// each safe to call concurrently on the same Emulator (see the package
// doc comment on tms57070.Emulator), so this mirrors a host whose audio
// callback and DSP clock run on independent threads.
func Run(ctx context.Context, emu *tms57070.Emulator, n int, src SampleSource) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, r := src(i)
			if err := emu.SampleIn(tms57070.ChanIn1L, l); err != nil {
				return err
			}
			if err := emu.SampleIn(tms57070.ChanIn1R, r); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emu.Step(); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}
