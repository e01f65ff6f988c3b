// Package hardware defines the hardware tier classification and the value
// types a miner submits to describe the machine backing a proof.
package hardware

import "math"

// Tier classifies hardware by age. Older tiers carry larger reward
// multipliers.
type Tier int

// The set of tiers from oldest to newest.
const (
	TierAncient Tier = iota // 30+ years
	TierSacred              // 25-29 years
	TierVintage             // 20-24 years
	TierClassic             // 15-19 years
	TierRetro               // 10-14 years
	TierModern              // 5-9 years
	TierRecent              // 0-4 years
)

// TierFromAge determines the tier for a hardware age in years. The bins are
// half-open so boundary ages resolve to the older tier.
func TierFromAge(years uint) Tier {
	switch {
	case years >= 30:
		return TierAncient
	case years >= 25:
		return TierSacred
	case years >= 20:
		return TierVintage
	case years >= 15:
		return TierClassic
	case years >= 10:
		return TierRetro
	case years >= 5:
		return TierModern
	default:
		return TierRecent
	}
}

// Multiplier returns the fixed block-reward multiplier for the tier.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierAncient:
		return 3.5
	case TierSacred:
		return 3.0
	case TierVintage:
		return 2.5
	case TierClassic:
		return 2.0
	case TierRetro:
		return 1.5
	case TierModern:
		return 1.0
	default:
		return 0.5
	}
}

// Name returns the display name for the tier.
func (t Tier) Name() string {
	switch t {
	case TierAncient:
		return "Ancient Silicon"
	case TierSacred:
		return "Sacred Silicon"
	case TierVintage:
		return "Vintage Era"
	case TierClassic:
		return "Classic Era"
	case TierRetro:
		return "Retro Tech"
	case TierModern:
		return "Modern Hardware"
	default:
		return "Recent Hardware"
	}
}

// String implements the fmt.Stringer interface.
func (t Tier) String() string {
	return t.Name()
}

// =============================================================================

// CurrentYear anchors the antiquity score calculation.
const CurrentYear = 2025

// AntiquityScore computes the authenticity/age score for hardware with the
// specified release year and measured uptime in days. The score is the
// hardware age scaled by the log of its uptime.
func AntiquityScore(releaseYear uint, uptimeDays uint64) float64 {
	var age float64
	if releaseYear < CurrentYear {
		age = float64(CurrentYear - releaseYear)
	}

	return age * math.Log10(float64(uptimeDays+1))
}

// =============================================================================

// CacheSizes represents reported cache sizes in KB.
type CacheSizes struct {
	L1Data        uint `json:"l1_data"`
	L1Instruction uint `json:"l1_instruction"`
	L2            uint `json:"l2"`
	L3            uint `json:"l3,omitempty"`
}

// Characteristics represents the detailed, externally measured description
// of a machine used for anti-emulation checks.
type Characteristics struct {
	CPUModel           string            `json:"cpu_model"`
	CPUFamily          uint              `json:"cpu_family"`
	CPUFlags           []string          `json:"cpu_flags"`
	CacheSizes         CacheSizes        `json:"cache_sizes"`
	InstructionTimings map[string]uint64 `json:"instruction_timings"`
	UniqueID           string            `json:"unique_id"`
}

// HasFlag reports whether the specified CPU flag was reported.
func (c Characteristics) HasFlag(flag string) bool {
	for _, f := range c.CPUFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// Info represents the hardware description carried by a mining proof.
type Info struct {
	Model           string           `json:"model"`
	Generation      string           `json:"generation"`
	AgeYears        uint             `json:"age_years"`
	Tier            Tier             `json:"tier"`
	Multiplier      float64          `json:"multiplier"`
	Characteristics *Characteristics `json:"characteristics,omitempty"`
}

// NewInfo constructs an Info with the tier and multiplier derived from the
// specified age.
func NewInfo(model string, generation string, ageYears uint) Info {
	tier := TierFromAge(ageYears)

	return Info{
		Model:      model,
		Generation: generation,
		AgeYears:   ageYears,
		Tier:       tier,
		Multiplier: tier.Multiplier(),
	}
}

// WithFounderBonus applies the founder bonus to the multiplier.
func (i Info) WithFounderBonus() Info {
	i.Multiplier *= 1.1
	return i
}
