package game

import (
	"time"

	"starfall-gacha/internal/store"
)

// Rules is the full game policy. It is built once at startup and passed into
// the engine; nothing in this package reads configuration globally.
type Rules struct {
	CostPerRoll      int64
	DiscountedBatch  int // batch size that pays one roll less
	MaxRollsPerBatch int
	PityRareFloor    int
	PityUltraFloor   int

	Adventure AdventureRules
	Dive      DiveRules
}

// DefaultRules mirrors the configuration defaults. Tests and tools that do
// not go through the config loader start from here.
func DefaultRules() Rules {
	return Rules{
		CostPerRoll:      160,
		DiscountedBatch:  10,
		MaxRollsPerBatch: 90,
		PityRareFloor:    10,
		PityUltraFloor:   90,
		Adventure: AdventureRules{
			Cooldown:        15 * time.Minute,
			BaseChance:      0.22,
			ScoreMultiplier: 0.08,
			PerMemberBonus:  0.02,
			MaxChance:       0.95,
			MaxPartySize:    3,
			RarityScores:    RarityScores{Common: 1, Rare: 3, Ultra: 6},
			SuccessReward:   60,
			FailureReward:   20,
		},
		Dive: DiveRules{
			Cooldown:    time.Minute,
			MaxScore:    2000,
			RewardRate:  0.15,
			MinScore:    10,
			MinReward:   5,
			MaxReward:   120,
			Multipliers: RarityMultipliers{None: 1, Common: 1.12, Rare: 1.3, Ultra: 1.55},
		},
	}
}

type AdventureRules struct {
	Cooldown        time.Duration
	BaseChance      float64
	ScoreMultiplier float64
	PerMemberBonus  float64
	MaxChance       float64
	MaxPartySize    int
	RarityScores    RarityScores
	SuccessReward   int64
	FailureReward   int64
}

type RarityScores struct {
	Common float64
	Rare   float64
	Ultra  float64
}

func (s RarityScores) Score(r store.Rarity) float64 {
	switch r {
	case store.RarityCommon:
		return s.Common
	case store.RarityRare:
		return s.Rare
	case store.RarityUltra:
		return s.Ultra
	default:
		return 0
	}
}

// DiveRules covers the score-based expedition variant. The reward curve is
// gated by the rarity multiplier of the user's best owned relic.
type DiveRules struct {
	Cooldown    time.Duration
	MaxScore    int
	RewardRate  float64
	MinScore    int
	MinReward   int64
	MaxReward   int64
	Multipliers RarityMultipliers
}

type RarityMultipliers struct {
	None   float64
	Common float64
	Rare   float64
	Ultra  float64
}

func (m RarityMultipliers) For(r store.Rarity) float64 {
	switch r {
	case store.RarityCommon:
		return m.Common
	case store.RarityRare:
		return m.Rare
	case store.RarityUltra:
		return m.Ultra
	default:
		return m.None
	}
}
