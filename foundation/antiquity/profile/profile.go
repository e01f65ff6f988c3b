// Package profile maintains the read-only catalog of known reference
// hardware that the verifiers score proofs against.
package profile

import (
	"fmt"
	"math"
)

// BusType identifies the system bus family a machine reports.
type BusType int

// The set of known bus types from oldest to newest.
const (
	BusISA BusType = iota
	BusEISA
	BusVLB
	BusPCI
	BusAGP
	BusPCIe
	BusUnknown
)

// String implements the fmt.Stringer interface.
func (b BusType) String() string {
	switch b {
	case BusISA:
		return "ISA"
	case BusEISA:
		return "EISA"
	case BusVLB:
		return "VLB"
	case BusPCI:
		return "PCI"
	case BusAGP:
		return "AGP"
	case BusPCIe:
		return "PCIe"
	default:
		return "Unknown"
	}
}

// IOTimingRange returns the expected I/O port timing range in nanoseconds
// for the bus type. Older buses are monotonically slower.
func (b BusType) IOTimingRange() (min float64, max float64) {
	switch b {
	case BusISA:
		return 1000, 2500
	case BusEISA:
		return 500, 1500
	case BusVLB:
		return 100, 500
	case BusPCI:
		return 50, 200
	case BusAGP:
		return 30, 150
	case BusPCIe:
		return 5, 50
	default:
		return 0, math.MaxFloat64
	}
}

// =============================================================================

// TimingRange represents an expected (min,max) cycle range for an
// instruction on a given reference machine.
type TimingRange struct {
	Min float64
	Max float64
}

// Profile represents a reference hardware entry in the catalog.
type Profile struct {
	Name                string
	CPUFamily           uint
	YearIntroduced      uint
	ExpectedTiming      map[string]TimingRange
	ExpectedBusType     BusType
	ExpectedQuirks      []string
	EmulationDifficulty float64 // 0.0-1.0, how hard this silicon is to emulate.
}

// Registry provides access to the catalog of known reference hardware.
// The catalog is immutable after construction.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry constructs a registry with the known reference hardware.
func NewRegistry() *Registry {
	r := Registry{
		profiles: make(map[string]Profile),
	}
	r.loadProfiles()

	return &r
}

// Lookup returns the profile registered under the specified hardware id.
func (r *Registry) Lookup(hardwareID string) (Profile, error) {
	p, exists := r.profiles[hardwareID]
	if !exists {
		return Profile{}, fmt.Errorf("hardware id %q is not in the registry", hardwareID)
	}

	return p, nil
}

// LookupFamily returns the first profile registered for the specified CPU
// family.
func (r *Registry) LookupFamily(family uint) (Profile, bool) {
	for _, p := range r.profiles {
		if p.CPUFamily == family {
			return p, true
		}
	}

	return Profile{}, false
}

// IDs returns the set of registered hardware ids.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}

	return ids
}

// loadProfiles installs the reference catalog. Timing ranges come from the
// published cycle tables for each part.
func (r *Registry) loadProfiles() {
	r.profiles["486DX2"] = Profile{
		Name:           "Intel 486 DX2-66",
		CPUFamily:      4,
		YearIntroduced: 1992,
		ExpectedTiming: map[string]TimingRange{
			"mul":  {Min: 13, Max: 42},
			"div":  {Min: 40, Max: 44},
			"fadd": {Min: 8, Max: 20},
			"fmul": {Min: 16, Max: 27},
		},
		ExpectedBusType:     BusISA,
		ExpectedQuirks:      []string{"no_rdtsc", "a20_gate"},
		EmulationDifficulty: 0.95,
	}

	r.profiles["Pentium"] = Profile{
		Name:           "Intel Pentium 100",
		CPUFamily:      5,
		YearIntroduced: 1994,
		ExpectedTiming: map[string]TimingRange{
			"mul":  {Min: 10, Max: 11},
			"div":  {Min: 17, Max: 41},
			"fadd": {Min: 3, Max: 3},
			"fmul": {Min: 3, Max: 3},
		},
		ExpectedBusType:     BusPCI,
		ExpectedQuirks:      []string{"fdiv_bug"},
		EmulationDifficulty: 0.90,
	}

	r.profiles["G4"] = Profile{
		Name:           "PowerPC G4",
		CPUFamily:      74,
		YearIntroduced: 1999,
		ExpectedTiming: map[string]TimingRange{
			"mul":  {Min: 3, Max: 4},
			"div":  {Min: 20, Max: 35},
			"fadd": {Min: 5, Max: 5},
			"fmul": {Min: 5, Max: 5},
		},
		ExpectedBusType:     BusPCI,
		ExpectedQuirks:      []string{"altivec", "big_endian"},
		EmulationDifficulty: 0.85,
	}
}
