package entropy_test

import (
	"testing"
	"time"

	"github.com/rustchain/blockchain/foundation/antiquity/entropy"
	"github.com/rustchain/blockchain/foundation/antiquity/profile"
)

// good486Proof returns a proof that matches the 486DX2 reference profile on
// all five layers.
func good486Proof() entropy.Proof {
	return entropy.Proof{
		InstructionLayer: entropy.InstructionTimingLayer{
			InstructionTimings: map[string]entropy.TimingMeasurement{
				"mul":  {Mean: 26, StdDev: 3.1, Min: 13, Max: 42, Samples: 1000},
				"div":  {Mean: 42, StdDev: 1.2, Min: 40, Max: 44, Samples: 1000},
				"fadd": {Mean: 12, StdDev: 2.0, Min: 8, Max: 20, Samples: 1000},
				"fmul": {Mean: 20, StdDev: 2.5, Min: 16, Max: 27, Samples: 1000},
			},
		},
		MemoryLayer: entropy.MemoryPatternLayer{
			SequentialRead: entropy.AccessPattern{
				Stride1:  1_000_000,
				Stride64: 2_000_000,
			},
			PageCrossingPenalty: 18,
			RefreshInterference: entropy.RefreshPattern{IntervalUS: 15.6, Jitter: 0.8, Detectable: true},
		},
		BusLayer: entropy.BusTimingLayer{
			BusType:          profile.BusISA,
			IOTiming:         entropy.IOTiming{PortReadNS: 1500, PortWriteNS: 1600, Variance: 50},
			InterruptLatency: entropy.InterruptLatency{HWLatencyUS: 12, SWLatencyUS: 4},
		},
		ThermalLayer: entropy.ThermalLayer{
			ClockStability: entropy.ClockStability{MeanFrequencyMHZ: 66, Variance: 0.01, FrequencyChanged: false},
		},
		QuirkLayer: entropy.QuirkLayer{
			QuirkTestResults: map[string]entropy.QuirkTestResult{
				"no_rdtsc": {Detected: true, Confidence: 0.99},
				"a20_gate": {Detected: true, Confidence: 0.95},
			},
		},
	}
}

func Test_VerifyRealHardware(t *testing.T) {
	v := entropy.NewVerifier(profile.NewRegistry())

	result := v.Verify(good486Proof(), "486DX2")

	if !result.Valid {
		t.Logf("issues: %v", result.Issues)
		t.Fatal("Should validate a proof matching the reference profile.")
	}

	if result.TotalScore != 1.0 {
		t.Logf("got: %v", result.TotalScore)
		t.Logf("exp: %v", 1.0)
		t.Fatal("Should have a perfect total score.")
	}

	// 1 - (1.0 * 0.95) within float tolerance.
	if result.EmulationProbability > 0.051 {
		t.Fatalf("Should have a near-zero emulation probability, got %v.", result.EmulationProbability)
	}
}

func Test_VerifyUnknownHardwareFailsClosed(t *testing.T) {
	v := entropy.NewVerifier(profile.NewRegistry())

	result := v.Verify(good486Proof(), "EMU9000")

	if result.Valid {
		t.Fatal("Should not validate an unknown hardware claim.")
	}
	if result.EmulationProbability != 1.0 {
		t.Fatalf("Should have maximal emulation probability, got %v.", result.EmulationProbability)
	}
}

func Test_VerifyFlatTimingsFailInstructionFloor(t *testing.T) {
	v := entropy.NewVerifier(profile.NewRegistry())

	// All means outside the expected ranges with zero jitter: the
	// instruction layer scores 0 and breaches its floor regardless of the
	// other layers.
	proof := good486Proof()
	proof.InstructionLayer.InstructionTimings = map[string]entropy.TimingMeasurement{
		"mul":  {Mean: 1, StdDev: 0},
		"div":  {Mean: 2, StdDev: 0},
		"fadd": {Mean: 1, StdDev: 0},
		"fmul": {Mean: 1, StdDev: 0},
	}

	result := v.Verify(proof, "486DX2")

	if result.Scores.Instruction != 0 {
		t.Fatalf("Should have a zero instruction score, got %v.", result.Scores.Instruction)
	}
	if result.Valid {
		t.Fatal("Should not validate with a breached instruction floor.")
	}
	if len(result.Issues) == 0 {
		t.Fatal("Should report the breached floor as an issue.")
	}
}

func Test_VerifyDVFSPenalized(t *testing.T) {
	v := entropy.NewVerifier(profile.NewRegistry())

	proof := good486Proof()
	proof.ThermalLayer.ClockStability.FrequencyChanged = true
	proof.ThermalLayer.PowerStates.CStates = []string{"C1", "C3"}
	proof.ThermalLayer.PowerStates.PStates = []string{"P0", "P1"}

	result := v.Verify(proof, "486DX2")

	if result.Scores.Thermal != 0 {
		t.Fatalf("Should have a zero thermal score with full DVFS, got %v.", result.Scores.Thermal)
	}
	if result.Valid {
		t.Fatal("Should not validate claimed vintage silicon showing DVFS.")
	}
}

func Test_VerifyLayerMonotonicity(t *testing.T) {
	v := entropy.NewVerifier(profile.NewRegistry())

	// Moving one timing mean into the expected range must never decrease
	// the instruction score.
	proof := good486Proof()
	proof.InstructionLayer.InstructionTimings["mul"] = entropy.TimingMeasurement{Mean: 500, StdDev: 3}
	before := v.Verify(proof, "486DX2").Scores.Instruction

	proof.InstructionLayer.InstructionTimings["mul"] = entropy.TimingMeasurement{Mean: 26, StdDev: 3}
	after := v.Verify(proof, "486DX2").Scores.Instruction

	if after < before {
		t.Logf("got: before %v, after %v", before, after)
		t.Fatal("Should never decrease a layer score by improving a measurement.")
	}
}

func Test_ChallengeGeneration(t *testing.T) {
	now := func() time.Time { return time.Unix(1700000000, 0) }
	seed := [32]byte{1, 2, 3}

	c1 := entropy.NewChallenger(seed, now).Generate()
	c2 := entropy.NewChallenger(seed, now).Generate()

	if len(c1.Operations) != 100 {
		t.Fatalf("Should generate 100 operations, got %d.", len(c1.Operations))
	}

	// The sequence cycles through the five operation kinds.
	for i, op := range c1.Operations {
		if op.Kind != entropy.OpKind(i%5) {
			t.Fatalf("Should cycle operation kinds, op %d has kind %v.", i, op.Kind)
		}
	}

	// An identical seed reproduces the identical challenge.
	if c1.Nonce != c2.Nonce {
		t.Fatal("Should reproduce the nonce for the same seed.")
	}
	for i := range c1.Operations {
		if c1.Operations[i] != c2.Operations[i] {
			t.Fatalf("Should reproduce operation %d for the same seed.", i)
		}
	}

	if c1.ExpectedTimeMinUS != 1_000 || c1.ExpectedTimeMaxUS != 100_000 {
		t.Fatal("Should have the 1ms to 100ms expected completion window.")
	}
}
