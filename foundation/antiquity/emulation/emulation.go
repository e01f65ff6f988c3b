// Package emulation implements the shallow anti-emulation verifier that runs
// inline during proof submission for low-latency rejection.
package emulation

import (
	"errors"
	"fmt"

	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
)

// ErrSuspiciousHardware is returned when reported characteristics don't
// match the signature for the claimed CPU family.
var ErrSuspiciousHardware = errors.New("suspicious hardware")

// ErrEmulationDetected is returned when a reported instruction timing falls
// outside the baseline range for that instruction.
var ErrEmulationDetected = errors.New("emulation detected")

// =============================================================================

// cacheRanges represents the expected L1/L2 cache sizes for a CPU family.
type cacheRanges struct {
	l1Min uint
	l1Max uint
	l2Min uint
	l2Max uint
}

// cpuSignature represents the expected characteristics for a CPU family.
type cpuSignature struct {
	family        uint
	expectedFlags []string
	cacheRanges   cacheRanges
}

// timingBaseline represents the acceptable cycle range for an instruction
// across all reference hardware. Timings outside the envelope can't come
// from any cataloged machine.
type timingBaseline struct {
	minCycles uint64
	maxCycles uint64
}

// Verifier validates reported hardware characteristics against per-family
// signatures and instruction timing baselines. Unknown CPU families pass
// through; the deep entropy verifier covers them.
type Verifier struct {
	cpuSignatures   map[uint]cpuSignature
	timingBaselines map[string]timingBaseline
}

// NewVerifier constructs a verifier with the known CPU family signatures.
func NewVerifier() *Verifier {
	v := Verifier{
		cpuSignatures:   make(map[uint]cpuSignature),
		timingBaselines: make(map[string]timingBaseline),
	}
	v.loadSignatures()
	v.loadBaselines()

	return &v
}

// Verify checks the reported characteristics. A nil error means the
// characteristics are consistent with real hardware of the claimed family.
func (v *Verifier) Verify(chars hardware.Characteristics) error {
	if sig, exists := v.cpuSignatures[chars.CPUFamily]; exists {
		if chars.CacheSizes.L1Data < sig.cacheRanges.l1Min || chars.CacheSizes.L1Data > sig.cacheRanges.l1Max {
			return fmt.Errorf("%w: L1 cache size mismatch", ErrSuspiciousHardware)
		}

		for _, flag := range sig.expectedFlags {
			if !chars.HasFlag(flag) {
				return fmt.Errorf("%w: missing expected CPU flags", ErrSuspiciousHardware)
			}
		}
	}

	for instruction, cycles := range chars.InstructionTimings {
		baseline, exists := v.timingBaselines[instruction]
		if !exists {
			continue
		}
		if cycles < baseline.minCycles || cycles > baseline.maxCycles {
			return fmt.Errorf("%w: %s measured at %d cycles", ErrEmulationDetected, instruction, cycles)
		}
	}

	return nil
}

// loadSignatures installs the per-family signature table.
func (v *Verifier) loadSignatures() {

	// PowerPC G4 (family 74 = 0x4A).
	v.cpuSignatures[74] = cpuSignature{
		family:        74,
		expectedFlags: []string{"altivec", "ppc"},
		cacheRanges:   cacheRanges{l1Min: 32, l1Max: 64, l2Min: 256, l2Max: 2048},
	}

	// Intel 486 (family 4).
	v.cpuSignatures[4] = cpuSignature{
		family:        4,
		expectedFlags: []string{"fpu"},
		cacheRanges:   cacheRanges{l1Min: 8, l1Max: 16, l2Min: 0, l2Max: 512},
	}

	// Intel Pentium (family 5).
	v.cpuSignatures[5] = cpuSignature{
		family:        5,
		expectedFlags: []string{"fpu", "vme", "de"},
		cacheRanges:   cacheRanges{l1Min: 16, l1Max: 32, l2Min: 256, l2Max: 512},
	}

	// Intel P6 family, Pentium Pro/II/III (family 6).
	v.cpuSignatures[6] = cpuSignature{
		family:        6,
		expectedFlags: []string{"fpu", "vme", "de", "pse"},
		cacheRanges:   cacheRanges{l1Min: 16, l1Max: 32, l2Min: 256, l2Max: 2048},
	}
}

// loadBaselines installs the per-instruction timing envelopes. Each range is
// the union of the cycle counts across the reference catalog, so any
// cataloged machine passes while single-cycle timings from a modern host
// running an emulator do not.
func (v *Verifier) loadBaselines() {
	v.timingBaselines["mul"] = timingBaseline{minCycles: 3, maxCycles: 42}
	v.timingBaselines["div"] = timingBaseline{minCycles: 17, maxCycles: 44}
	v.timingBaselines["fadd"] = timingBaseline{minCycles: 3, maxCycles: 20}
	v.timingBaselines["fmul"] = timingBaseline{minCycles: 3, maxCycles: 27}
}
