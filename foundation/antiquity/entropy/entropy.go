// Package entropy implements the deep multi-layer statistical verifier that
// distinguishes real vintage hardware from software emulation using only
// externally reported timing and architectural measurements.
package entropy

import (
	"github.com/rustchain/blockchain/foundation/antiquity/profile"
)

// TimingMeasurement represents the sampled cycle counts for one
// instruction. Real hardware exhibits natural jitter, so a perfectly flat
// signal is itself a signal.
type TimingMeasurement struct {
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     uint64  `json:"min"`
	Max     uint64  `json:"max"`
	Samples uint64  `json:"samples"`
}

// CacheMissPenalty represents measured cache miss costs in cycles.
type CacheMissPenalty struct {
	L1Miss        float64 `json:"l1_miss"`
	L2Miss        float64 `json:"l2_miss,omitempty"`
	MemoryLatency float64 `json:"memory_latency"`
}

// BranchMisprediction represents measured branch predictor behavior.
type BranchMisprediction struct {
	PenaltyCycles float64 `json:"penalty_cycles"`
	Accuracy      float64 `json:"accuracy"`
}

// FPUTimings represents floating point unit timings, which are highly
// architecture specific.
type FPUTimings struct {
	FAdd  float64 `json:"fadd"`
	FMul  float64 `json:"fmul"`
	FDiv  float64 `json:"fdiv"`
	FSqrt float64 `json:"fsqrt,omitempty"`
}

// InstructionTimingLayer is layer 1: per-instruction timing statistics.
type InstructionTimingLayer struct {
	InstructionTimings  map[string]TimingMeasurement `json:"instruction_timings"`
	CacheMissPenalty    CacheMissPenalty             `json:"cache_miss_penalty"`
	BranchMisprediction BranchMisprediction          `json:"branch_misprediction"`
	FPUTimings          FPUTimings                   `json:"fpu_timings"`
}

// AccessPattern represents throughput in bytes per second at different
// memory strides.
type AccessPattern struct {
	Stride1   float64 `json:"stride_1"`
	Stride4   float64 `json:"stride_4"`
	Stride16  float64 `json:"stride_16"`
	Stride64  float64 `json:"stride_64"`
	Stride256 float64 `json:"stride_256"`
	Variance  float64 `json:"variance"`
}

// RefreshPattern represents DRAM refresh interference measurements. Refresh
// interference is a strong signal of real DRAM.
type RefreshPattern struct {
	IntervalUS float64 `json:"interval_us"`
	Jitter     float64 `json:"jitter"`
	Detectable bool    `json:"detectable"`
}

// MemoryPatternLayer is layer 2: memory controller timing patterns.
type MemoryPatternLayer struct {
	SequentialRead      AccessPattern  `json:"sequential_read"`
	RandomRead          AccessPattern  `json:"random_read"`
	WritePattern        AccessPattern  `json:"write_pattern"`
	PageCrossingPenalty float64        `json:"page_crossing_penalty"`
	BankConflict        float64        `json:"bank_conflict,omitempty"`
	RefreshInterference RefreshPattern `json:"refresh_interference"`
}

// IOTiming represents I/O port access timing in nanoseconds.
type IOTiming struct {
	PortReadNS  float64 `json:"port_read_ns"`
	PortWriteNS float64 `json:"port_write_ns"`
	Variance    float64 `json:"variance"`
}

// DMACharacteristics represents measured DMA behavior, when present.
type DMACharacteristics struct {
	TransferRate   float64 `json:"transfer_rate"`
	SetupLatencyUS float64 `json:"setup_latency_us"`
}

// InterruptLatency represents interrupt response times in microseconds.
type InterruptLatency struct {
	HWLatencyUS float64 `json:"hw_latency_us"`
	SWLatencyUS float64 `json:"sw_latency_us"`
}

// BusTimingLayer is layer 3: system bus timing signatures.
type BusTimingLayer struct {
	BusType          profile.BusType     `json:"bus_type"`
	IOTiming         IOTiming            `json:"io_timing"`
	DMA              *DMACharacteristics `json:"dma_characteristics,omitempty"`
	InterruptLatency InterruptLatency    `json:"interrupt_latency"`
}

// ClockStability represents clock frequency behavior during measurement.
// Vintage silicon runs at a constant speed.
type ClockStability struct {
	MeanFrequencyMHZ float64 `json:"mean_frequency_mhz"`
	Variance         float64 `json:"variance"`
	FrequencyChanged bool    `json:"frequency_changed"`
}

// ThermalVariance represents timing variance correlated with temperature.
type ThermalVariance struct {
	TimingVariance   float64 `json:"timing_variance"`
	ExpectedVariance float64 `json:"expected_variance"`
}

// PowerStateInfo represents detected power states. C-states and P-states
// don't exist on vintage hardware.
type PowerStateInfo struct {
	StateCount uint     `json:"state_count"`
	CStates    []string `json:"c_states"`
	PStates    []string `json:"p_states"`
}

// ThermalLayer is layer 4: thermal and DVFS behavior.
type ThermalLayer struct {
	ClockStability  ClockStability  `json:"clock_stability"`
	ThermalVariance ThermalVariance `json:"thermal_variance"`
	PowerStates     PowerStateInfo  `json:"power_states"`
}

// QuirkTestResult represents the outcome of probing for one architectural
// quirk.
type QuirkTestResult struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
	RawData    []byte  `json:"raw_data,omitempty"`
}

// HardwareQuirk describes a known quirk detected on the machine.
type HardwareQuirk struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	CPUFamily   uint    `json:"cpu_family"`
	YearRange   [2]uint `json:"year_range"`
}

// QuirkLayer is layer 5: architectural quirk probes such as the 486's A20
// gate or the Pentium FDIV bug.
type QuirkLayer struct {
	DetectedQuirks   []HardwareQuirk            `json:"detected_quirks"`
	QuirkTestResults map[string]QuirkTestResult `json:"quirk_test_results"`
}

// ChallengeResponse records the live-response half of the authenticity
// check. Expiry of the challenge window is enforced by the caller.
type ChallengeResponse struct {
	ChallengeNonce    [32]byte `json:"challenge_nonce"`
	Response          [32]byte `json:"response"`
	ComputationTimeUS uint64   `json:"computation_time_us"`
	EntropySamples    []byte   `json:"entropy_samples"`
}

// Proof bundles the five measurement layers plus the challenge response for
// one verification attempt. A proof is stateless after scoring.
type Proof struct {
	InstructionLayer  InstructionTimingLayer `json:"instruction_layer"`
	MemoryLayer       MemoryPatternLayer     `json:"memory_layer"`
	BusLayer          BusTimingLayer         `json:"bus_layer"`
	ThermalLayer      ThermalLayer           `json:"thermal_layer"`
	QuirkLayer        QuirkLayer             `json:"quirk_layer"`
	ChallengeResponse ChallengeResponse      `json:"challenge_response"`
	Timestamp         uint64                 `json:"timestamp"`
	SignatureHash     [32]byte               `json:"signature_hash"`
}
