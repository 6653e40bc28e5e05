// state.go - diagnostic state reporting (§6)

package tms57070

import (
	"encoding/json"
	"fmt"
)

// hex6 formats v as a 6-hex-digit string, matching the original's
// jsonValue helper (see SPEC_FULL.md's supplemented-features note).
func hex6(v uint32) string {
	return fmt.Sprintf("%06X", v&mask24)
}

// emulatorState is the JSON shape returned by ReportState: every
// visible register, plus the first 256 words of CMEM/DMEM, each
// rendered as a 6-hex-digit string for diagnostic comparison against a
// reference trace.
type emulatorState struct {
	ACC1 string `json:"ACC1"`
	ACC2 string `json:"ACC2"`

	MAC1  string `json:"MAC1"`
	MAC2  string `json:"MAC2"`
	MAC1L string `json:"MAC1L"`
	MAC2L string `json:"MAC2L"`

	CA1 string `json:"CA1"`
	CA2 string `json:"CA2"`
	DA1 string `json:"DA1"`
	DA2 string `json:"DA2"`

	CIR1 string `json:"CIR1"`
	CIR2 string `json:"CIR2"`
	DIR1 string `json:"DIR1"`
	DIR2 string `json:"DIR2"`

	XRD string `json:"XRD"`

	CR0 string `json:"CR0"`
	CR1 string `json:"CR1"`
	CR2 string `json:"CR2"`
	CR3 string `json:"CR3"`

	CMEM []string `json:"CMEM"`
	DMEM []string `json:"DMEM"`
}

// reportStateWords is the number of leading CMEM/DMEM words included in
// ReportState's output, per §6.
const reportStateWords = 256

// ReportState returns a JSON dump of every visible register plus the
// first 256 words of CMEM/DMEM, each as a 6-hex-digit string - a
// reference-comparable snapshot for firmware reverse-engineering, not
// part of the instruction-execution surface itself.
func (e *Emulator) ReportState() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	mac1Upper, mac1Ov := e.MACC1.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
	mac2Upper, mac2Ov := e.MACC2.GetUpper(e.macOutputShift, e.macBitCount, e.cr1MOVM())
	mac1Lower := e.MACC1.GetLower(e.macOutputShift, e.cr1MOVM(), mac1Ov, mac1Upper < 0)
	mac2Lower := e.MACC2.GetLower(e.macOutputShift, e.cr1MOVM(), mac2Ov, mac2Upper < 0)

	state := emulatorState{
		ACC1: hex6(uint32(e.ACC1)),
		ACC2: hex6(uint32(e.ACC2)),

		MAC1:  hex6(uint32(mac1Upper)),
		MAC2:  hex6(uint32(mac2Upper)),
		MAC1L: hex6(mac1Lower),
		MAC2L: hex6(mac2Lower),

		CA1: hex6(uint32(e.CA.one)),
		CA2: hex6(uint32(e.CA.two)),
		DA1: hex6(uint32(e.DA.one)),
		DA2: hex6(uint32(e.DA.two)),

		CIR1: hex6(uint32(e.CIR.one)),
		CIR2: hex6(uint32(e.CIR.two)),
		DIR1: hex6(uint32(e.DIR.one)),
		DIR2: hex6(uint32(e.DIR.two)),

		XRD: hex6(uint32(e.XRD)),

		CR0: hex6(e.CR0),
		CR1: hex6(e.CR1),
		CR2: hex6(e.CR2),
		CR3: hex6(e.CR3),

		CMEM: make([]string, reportStateWords),
		DMEM: make([]string, reportStateWords),
	}
	for i := 0; i < reportStateWords; i++ {
		state.CMEM[i] = hex6(uint32(e.CMEM[i]))
		state.DMEM[i] = hex6(uint32(e.DMEM[i]))
	}

	data, _ := json.Marshal(state)
	return string(data)
}
