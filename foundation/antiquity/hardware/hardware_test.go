package hardware_test

import (
	"testing"

	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
)

func Test_TierFromAge(t *testing.T) {
	type table struct {
		name string
		age  uint
		tier hardware.Tier
	}

	tt := []table{
		{name: "ancient", age: 35, tier: hardware.TierAncient},
		{name: "ancient-boundary", age: 30, tier: hardware.TierAncient},
		{name: "sacred", age: 27, tier: hardware.TierSacred},
		{name: "sacred-boundary", age: 25, tier: hardware.TierSacred},
		{name: "vintage", age: 22, tier: hardware.TierVintage},
		{name: "vintage-boundary", age: 20, tier: hardware.TierVintage},
		{name: "classic", age: 17, tier: hardware.TierClassic},
		{name: "classic-boundary", age: 15, tier: hardware.TierClassic},
		{name: "retro", age: 12, tier: hardware.TierRetro},
		{name: "retro-boundary", age: 10, tier: hardware.TierRetro},
		{name: "modern", age: 7, tier: hardware.TierModern},
		{name: "modern-boundary", age: 5, tier: hardware.TierModern},
		{name: "recent", age: 2, tier: hardware.TierRecent},
		{name: "recent-zero", age: 0, tier: hardware.TierRecent},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			tier := hardware.TierFromAge(tst.age)
			if tier != tst.tier {
				t.Logf("Test %s:\tgot: %v", tst.name, tier)
				t.Logf("Test %s:\texp: %v", tst.name, tst.tier)
				t.Fatalf("Test %s:\tShould classify age %d into the right tier.", tst.name, tst.age)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_MultipliersPartitionAges(t *testing.T) {

	// Walking every age from 0 to 60 the multiplier must never decrease,
	// and every age must land in exactly one tier.
	last := 0.0
	for age := uint(0); age <= 60; age++ {
		mult := hardware.TierFromAge(age).Multiplier()
		if mult < last {
			t.Logf("age: %d", age)
			t.Logf("got: %v", mult)
			t.Logf("exp: >= %v", last)
			t.Fatal("Should have a non-decreasing multiplier as age increases.")
		}
		last = mult
	}

	if got := hardware.TierAncient.Multiplier(); got != 3.5 {
		t.Fatalf("Should have 3.5 for the ancient tier, got %v.", got)
	}
	if got := hardware.TierRecent.Multiplier(); got != 0.5 {
		t.Fatalf("Should have 0.5 for the recent tier, got %v.", got)
	}
}

func Test_AntiquityScore(t *testing.T) {

	// Zero uptime contributes nothing regardless of age.
	if got := hardware.AntiquityScore(1992, 0); got != 0 {
		t.Fatalf("Should have a zero score with zero uptime, got %v.", got)
	}

	// 33 years of age with 9 days of uptime: 33 * log10(10) = 33.
	if got := hardware.AntiquityScore(1992, 9); got != 33 {
		t.Fatalf("Should have 33, got %v.", got)
	}

	// Future release years clamp to zero age.
	if got := hardware.AntiquityScore(2030, 100); got != 0 {
		t.Fatalf("Should have a zero score for a future release year, got %v.", got)
	}
}

func Test_FounderBonus(t *testing.T) {
	info := hardware.NewInfo("PowerPC G4", "G4", 22)

	if info.Tier != hardware.TierVintage {
		t.Fatalf("Should classify age 22 as vintage, got %v.", info.Tier)
	}

	bonus := info.WithFounderBonus()
	exp := 2.5 * 1.1
	if bonus.Multiplier != exp {
		t.Logf("got: %v", bonus.Multiplier)
		t.Logf("exp: %v", exp)
		t.Fatal("Should apply the founder bonus to the multiplier.")
	}
}
