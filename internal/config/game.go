package config

import (
	"time"

	"starfall-gacha/internal/game"

	"github.com/caarlos0/env/v11"
)

// GameConfig carries every engine policy knob. Defaults mirror the live
// game; tests and staging override through the environment.
type GameConfig struct {
	CostPerRoll      int64 `env:"COST_PER_ROLL" envDefault:"160"`
	DiscountedBatch  int   `env:"DISCOUNTED_BATCH" envDefault:"10"`
	MaxRollsPerBatch int   `env:"MAX_ROLLS_PER_BATCH" envDefault:"90"`
	PityRareFloor    int   `env:"PITY_RARE_FLOOR" envDefault:"10"`
	PityUltraFloor   int   `env:"PITY_ULTRA_FLOOR" envDefault:"90"`

	AdventureCooldown       time.Duration `env:"ADVENTURE_COOLDOWN" envDefault:"15m"`
	AdventureBaseChance     float64       `env:"ADVENTURE_BASE_CHANCE" envDefault:"0.22"`
	AdventureScoreMult      float64       `env:"ADVENTURE_SCORE_MULTIPLIER" envDefault:"0.08"`
	AdventurePerMemberBonus float64       `env:"ADVENTURE_PER_MEMBER_BONUS" envDefault:"0.02"`
	AdventureMaxChance      float64       `env:"ADVENTURE_MAX_CHANCE" envDefault:"0.95"`
	AdventureMaxParty       int           `env:"ADVENTURE_MAX_PARTY" envDefault:"3"`
	AdventureScoreCommon    float64       `env:"ADVENTURE_SCORE_COMMON" envDefault:"1"`
	AdventureScoreRare      float64       `env:"ADVENTURE_SCORE_RARE" envDefault:"3"`
	AdventureScoreUltra     float64       `env:"ADVENTURE_SCORE_ULTRA" envDefault:"6"`
	AdventureSuccessReward  int64         `env:"ADVENTURE_SUCCESS_REWARD" envDefault:"60"`
	AdventureFailureReward  int64         `env:"ADVENTURE_FAILURE_REWARD" envDefault:"20"`

	DiveCooldown   time.Duration `env:"DIVE_COOLDOWN" envDefault:"60s"`
	DiveMaxScore   int           `env:"DIVE_MAX_SCORE" envDefault:"2000"`
	DiveRewardRate float64       `env:"DIVE_REWARD_RATE" envDefault:"0.15"`
	DiveMinScore   int           `env:"DIVE_MIN_SCORE" envDefault:"10"`
	DiveMinReward  int64         `env:"DIVE_MIN_REWARD" envDefault:"5"`
	DiveMaxReward  int64         `env:"DIVE_MAX_REWARD" envDefault:"120"`
	DiveMultNone   float64       `env:"DIVE_MULT_NONE" envDefault:"1"`
	DiveMultCommon float64       `env:"DIVE_MULT_COMMON" envDefault:"1.12"`
	DiveMultRare   float64       `env:"DIVE_MULT_RARE" envDefault:"1.3"`
	DiveMultUltra  float64       `env:"DIVE_MULT_ULTRA" envDefault:"1.55"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c GameConfig) Rules() game.Rules {
	return game.Rules{
		CostPerRoll:      c.CostPerRoll,
		DiscountedBatch:  c.DiscountedBatch,
		MaxRollsPerBatch: c.MaxRollsPerBatch,
		PityRareFloor:    c.PityRareFloor,
		PityUltraFloor:   c.PityUltraFloor,
		Adventure: game.AdventureRules{
			Cooldown:        c.AdventureCooldown,
			BaseChance:      c.AdventureBaseChance,
			ScoreMultiplier: c.AdventureScoreMult,
			PerMemberBonus:  c.AdventurePerMemberBonus,
			MaxChance:       c.AdventureMaxChance,
			MaxPartySize:    c.AdventureMaxParty,
			RarityScores: game.RarityScores{
				Common: c.AdventureScoreCommon,
				Rare:   c.AdventureScoreRare,
				Ultra:  c.AdventureScoreUltra,
			},
			SuccessReward: c.AdventureSuccessReward,
			FailureReward: c.AdventureFailureReward,
		},
		Dive: game.DiveRules{
			Cooldown:   c.DiveCooldown,
			MaxScore:   c.DiveMaxScore,
			RewardRate: c.DiveRewardRate,
			MinScore:   c.DiveMinScore,
			MinReward:  c.DiveMinReward,
			MaxReward:  c.DiveMaxReward,
			Multipliers: game.RarityMultipliers{
				None:   c.DiveMultNone,
				Common: c.DiveMultCommon,
				Rare:   c.DiveMultRare,
				Ultra:  c.DiveMultUltra,
			},
		},
	}
}
