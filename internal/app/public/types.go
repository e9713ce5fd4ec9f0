package public

import (
	"time"

	"starfall-gacha/internal/store"
)

type BannerItem struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	StartAt time.Time        `json:"start_at"`
	EndAt   time.Time        `json:"end_at"`
	Rates   store.RateTable  `json:"rates"`
	Pool    store.RarityPool `json:"pool"`
}

type BannersResponse struct {
	Items []BannerItem `json:"items"`
}

type ProfileResponse struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Balance            int64      `json:"balance"`
	PityRare           int        `json:"pity_rare"`
	PityUltra          int        `json:"pity_ultra"`
	LastAdventureAt    *time.Time `json:"last_adventure_at,omitempty"`
	BestAdventureScore int        `json:"best_adventure_score"`
	ItemCount          int        `json:"item_count"`
}

type InventoryItem struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Rarity     store.Rarity `json:"rarity"`
	BannerID   string       `json:"banner_id"`
	ObtainedAt time.Time    `json:"obtained_at"`
}

type InventoryResponse struct {
	Items  []InventoryItem `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type AdventureHistoryItem struct {
	ID        string              `json:"id"`
	Success   bool                `json:"success"`
	Reward    int64               `json:"reward"`
	Chance    float64             `json:"chance"`
	Summary   string              `json:"summary"`
	Party     []store.PartyMember `json:"party"`
	CreatedAt time.Time           `json:"created_at"`
}

type AdventureHistoryResponse struct {
	Items []AdventureHistoryItem `json:"items"`
}

type AdventureConfigResponse struct {
	BaseChance      float64            `json:"base_chance"`
	ScoreMultiplier float64            `json:"score_multiplier"`
	PerMemberBonus  float64            `json:"per_member_bonus"`
	MaxChance       float64            `json:"max_chance"`
	MaxPartySize    int                `json:"max_party_size"`
	RarityScores    map[string]float64 `json:"rarity_scores"`
	SuccessReward   int64              `json:"success_reward"`
	FailureReward   int64              `json:"failure_reward"`
	CooldownSeconds int                `json:"cooldown_seconds"`
}
