package entropy

import (
	"fmt"

	"github.com/rustchain/blockchain/foundation/antiquity/profile"
)

// Layer weights for the total score.
const (
	weightInstruction = 0.25
	weightMemory      = 0.20
	weightBus         = 0.20
	weightThermal     = 0.15
	weightQuirks      = 0.20
)

// Thresholds represents the per-layer and total score floors a proof must
// clear to be considered valid.
type Thresholds struct {
	MinInstruction float64
	MinMemory      float64
	MinBus         float64
	MinThermal     float64
	MinQuirks      float64
	TotalMin       float64
}

// DefaultThresholds returns the consensus score floors.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinInstruction: 0.15,
		MinMemory:      0.10,
		MinBus:         0.15,
		MinThermal:     0.05,
		MinQuirks:      0.20,
		TotalMin:       0.65,
	}
}

// Scores represents the per-layer score breakdown.
type Scores struct {
	Instruction float64 `json:"instruction"`
	Memory      float64 `json:"memory"`
	Bus         float64 `json:"bus"`
	Thermal     float64 `json:"thermal"`
	Quirks      float64 `json:"quirks"`
	Total       float64 `json:"total"`
}

// Result represents the outcome of scoring a proof.
type Result struct {
	Valid      bool     `json:"valid"`
	TotalScore float64  `json:"total_score"`
	Scores     Scores   `json:"scores"`
	Issues     []string `json:"issues"`

	// Probability the proof came from an emulator. 0.0 is definitely real
	// hardware, 1.0 is definitely fake.
	EmulationProbability float64 `json:"emulation_probability"`
}

// Verifier scores entropy proofs against the reference hardware catalog.
// Verification is pure; a verifier may score distinct proofs concurrently.
type Verifier struct {
	registry   *profile.Registry
	thresholds Thresholds
}

// NewVerifier constructs a verifier over the specified registry.
func NewVerifier(registry *profile.Registry) *Verifier {
	return &Verifier{
		registry:   registry,
		thresholds: DefaultThresholds(),
	}
}

// Verify scores the proof against the profile for the claimed hardware id.
// Verify never fails; an unknown hardware claim degrades to an invalid
// result with maximal emulation probability.
func (v *Verifier) Verify(proof Proof, claimedHardwareID string) Result {
	prof, err := v.registry.Lookup(claimedHardwareID)
	if err != nil {
		return Result{
			Valid:                false,
			Issues:               []string{"unknown hardware profile"},
			EmulationProbability: 1.0,
		}
	}

	var scores Scores
	var issues []string

	scores.Instruction = v.scoreInstructionLayer(proof.InstructionLayer, prof)
	if scores.Instruction < v.thresholds.MinInstruction {
		issues = append(issues, fmt.Sprintf("instruction timing entropy too low: %.2f < %.2f", scores.Instruction, v.thresholds.MinInstruction))
	}

	scores.Memory = v.scoreMemoryLayer(proof.MemoryLayer)
	if scores.Memory < v.thresholds.MinMemory {
		issues = append(issues, fmt.Sprintf("memory pattern entropy too low: %.2f < %.2f", scores.Memory, v.thresholds.MinMemory))
	}

	scores.Bus = v.scoreBusLayer(proof.BusLayer, prof)
	if scores.Bus < v.thresholds.MinBus {
		issues = append(issues, fmt.Sprintf("bus timing entropy too low: %.2f < %.2f", scores.Bus, v.thresholds.MinBus))
	}

	scores.Thermal = v.scoreThermalLayer(proof.ThermalLayer)
	if scores.Thermal < v.thresholds.MinThermal {
		issues = append(issues, fmt.Sprintf("thermal entropy suspicious: %.2f", scores.Thermal))
	}

	scores.Quirks = v.scoreQuirkLayer(proof.QuirkLayer, prof)
	if scores.Quirks < v.thresholds.MinQuirks {
		issues = append(issues, fmt.Sprintf("expected hardware quirks not detected: %.2f", scores.Quirks))
	}

	total := scores.Instruction*weightInstruction +
		scores.Memory*weightMemory +
		scores.Bus*weightBus +
		scores.Thermal*weightThermal +
		scores.Quirks*weightQuirks

	scores.Total = total

	// A profile that is intrinsically hard to emulate drives the probability
	// toward zero faster for the same score.
	emulationProb := 1.0 - (total * prof.EmulationDifficulty)
	if emulationProb < 0 {
		emulationProb = 0
	}

	return Result{
		Valid:                total >= v.thresholds.TotalMin && len(issues) == 0,
		TotalScore:           total,
		Scores:               scores,
		Issues:               issues,
		EmulationProbability: emulationProb,
	}
}

// scoreInstructionLayer awards half credit per checkable instruction for a
// mean inside the expected range and half for natural jitter.
func (v *Verifier) scoreInstructionLayer(layer InstructionTimingLayer, prof profile.Profile) float64 {
	var score float64
	var checks int

	for instruction, expected := range prof.ExpectedTiming {
		measured, exists := layer.InstructionTimings[instruction]
		if !exists {
			continue
		}
		checks++

		if measured.Mean >= expected.Min && measured.Mean <= expected.Max {
			score += 0.5
		}

		if measured.StdDev > 0 && measured.StdDev < measured.Mean*0.5 {
			score += 0.5
		}
	}

	if checks == 0 {
		return 0
	}

	return score / float64(checks)
}

// scoreMemoryLayer scores the cache-tier stride signature, page crossing
// penalty, and DRAM refresh interference.
func (v *Verifier) scoreMemoryLayer(layer MemoryPatternLayer) float64 {
	var score float64

	if layer.SequentialRead.Stride1 > 0 {
		if layer.SequentialRead.Stride64/layer.SequentialRead.Stride1 > 1.5 {
			score += 0.3
		}
	}

	if layer.PageCrossingPenalty > 10 {
		score += 0.3
	}

	if layer.RefreshInterference.Detectable {
		score += 0.4
	}

	return score
}

// scoreBusLayer scores bus type match, I/O port timing, and interrupt
// latency appropriate to the bus era.
func (v *Verifier) scoreBusLayer(layer BusTimingLayer, prof profile.Profile) float64 {
	var score float64

	if layer.BusType == prof.ExpectedBusType {
		score += 0.5
	}

	minIO, maxIO := prof.ExpectedBusType.IOTimingRange()
	if layer.IOTiming.PortReadNS >= minIO && layer.IOTiming.PortReadNS <= maxIO {
		score += 0.3
	}

	if layer.InterruptLatency.HWLatencyUS > 1 {
		score += 0.2
	}

	return score
}

// scoreThermalLayer scores the absence of dynamic frequency and power state
// behavior. DVFS on claimed vintage silicon is a strong emulation signal.
func (v *Verifier) scoreThermalLayer(layer ThermalLayer) float64 {
	var score float64

	if !layer.ClockStability.FrequencyChanged {
		score += 0.4
	}

	if len(layer.PowerStates.CStates) == 0 {
		score += 0.3
	}

	if len(layer.PowerStates.PStates) == 0 {
		score += 0.3
	}

	return score
}

// scoreQuirkLayer awards equal credit for each expected quirk detected with
// high confidence. A profile expecting no quirks scores fully.
func (v *Verifier) scoreQuirkLayer(layer QuirkLayer, prof profile.Profile) float64 {
	expected := len(prof.ExpectedQuirks)
	if expected == 0 {
		return 1.0
	}

	var score float64
	for _, quirk := range prof.ExpectedQuirks {
		result, exists := layer.QuirkTestResults[quirk]
		if !exists {
			continue
		}
		if result.Detected && result.Confidence > 0.8 {
			score += 1.0 / float64(expected)
		}
	}

	return score
}
