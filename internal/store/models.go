package store

import "time"

type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityUltra  Rarity = "ultra"
)

// Rank orders rarities by scarcity; unknown rarities rank below common.
func (r Rarity) Rank() int {
	switch r {
	case RarityUltra:
		return 3
	case RarityRare:
		return 2
	case RarityCommon:
		return 1
	default:
		return 0
	}
}

func (r Rarity) Valid() bool {
	return r.Rank() > 0
}

type User struct {
	ID                 string
	Username           string
	APIKeyHash         string
	Balance            int64
	PityRare           int
	PityUltra          int
	LastAdventureAt    *time.Time
	BestAdventureScore int
	CreatedAt          time.Time
}

// RateTable maps rarity to base draw probability. The remainder up to 1 is
// implicitly common.
type RateTable struct {
	Common float64 `json:"common"`
	Rare   float64 `json:"rare"`
	Ultra  float64 `json:"ultra"`
}

// RarityPool holds the candidate item names per rarity, in authored order.
type RarityPool struct {
	Common []string `json:"common"`
	Rare   []string `json:"rare"`
	Ultra  []string `json:"ultra"`
}

func (p RarityPool) Names(r Rarity) []string {
	switch r {
	case RarityCommon:
		return p.Common
	case RarityRare:
		return p.Rare
	case RarityUltra:
		return p.Ultra
	default:
		return nil
	}
}

type Banner struct {
	ID       string
	Name     string
	StartAt  time.Time
	EndAt    time.Time
	Rates    RateTable
	Pool     RarityPool
	IsActive bool
}

type Item struct {
	ID         string
	UserID     string
	Name       string
	Rarity     Rarity
	BannerID   string
	ObtainedAt time.Time
}

type RollRecord struct {
	ID         string
	UserID     string
	BannerID   string
	ResultName string
	Rarity     Rarity
	CreatedAt  time.Time
}

// PartyMember is the immutable snapshot of one item taken into an adventure.
type PartyMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}

type AdventureRecord struct {
	ID        string
	UserID    string
	Success   bool
	Reward    int64
	Chance    float64
	Summary   string
	Party     []PartyMember
	CreatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	UserID    string
	Type      string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}
