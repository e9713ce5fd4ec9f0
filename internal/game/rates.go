package game

import (
	"math"

	"starfall-gacha/internal/store"
)

// PityState carries a user's counters through a batch of draws.
type PityState struct {
	Rare  int
	Ultra int
}

// ResolveDrawRarity resolves one draw. Both counters advance first, hard
// pity floors are checked ultra-before-rare, and only the unforced path
// consumes a uniform value. Resets apply after the rarity for this draw is
// known, so a guaranteed draw clears its own counter.
func ResolveDrawRarity(rates store.RateTable, pity PityState, rules Rules, src Source) (store.Rarity, PityState) {
	pity.Rare++
	pity.Ultra++

	var rarity store.Rarity
	switch {
	case pity.Ultra >= rules.PityUltraFloor:
		rarity = store.RarityUltra
	case pity.Rare >= rules.PityRareFloor:
		rarity = store.RarityRare
	default:
		r := src.Uniform()
		switch {
		case r < rates.Ultra:
			rarity = store.RarityUltra
		case r < rates.Ultra+rates.Rare:
			rarity = store.RarityRare
		default:
			rarity = store.RarityCommon
		}
	}

	switch rarity {
	case store.RarityUltra:
		pity.Ultra = 0
		pity.Rare = 0
	case store.RarityRare:
		pity.Rare = 0
	}
	return rarity, pity
}

// AdventureSuccessChance computes the party's success probability. The
// result is clamped to [0, MaxChance] and degenerate values collapse to 0
// rather than propagating.
func AdventureSuccessChance(party []store.PartyMember, rules AdventureRules) float64 {
	totalScore := 0.0
	for _, m := range party {
		totalScore += rules.RarityScores.Score(m.Rarity)
	}
	size := len(party)
	if size > rules.MaxPartySize {
		size = rules.MaxPartySize
	}
	chance := rules.BaseChance + totalScore*rules.ScoreMultiplier + float64(size)*rules.PerMemberBonus
	return clampChance(chance, rules.MaxChance)
}

func clampChance(v, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
