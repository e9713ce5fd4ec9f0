package game

import (
	"context"
	"errors"
	"math"
	"time"

	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
)

type DiveResult struct {
	Reward           int64
	RemainingBalance int64
	BestScore        int
	NewRecord        bool
	Multiplier       float64
	RarityUsed       string
	FeaturedName     string
	AppliedScore     int
	LastDiveAt       time.Time
	NextAvailableAt  time.Time
}

// PerformDive is the score-based expedition variant. The client-reported
// score maps through a reward curve scaled by the rarity multiplier of the
// user's best owned relic. It shares the cooldown stamp and transaction
// shape with PerformAdventure.
func (e *Engine) PerformDive(ctx context.Context, userID string, score int) (*DiveResult, error) {
	if score < 0 {
		score = 0
	}
	if score > e.rules.Dive.MaxScore {
		score = e.rules.Dive.MaxScore
	}

	var result *DiveResult
	err := e.store.WithTx(ctx, func(q *store.Queries) error {
		user, err := q.GetUserForUpdate(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		now := e.clock.Now()
		if remaining := cooldownRemaining(user.LastAdventureAt, now, e.rules.Dive.Cooldown); remaining > 0 {
			return &CooldownError{Remaining: remaining}
		}

		rarityUsed := "none"
		featured := ""
		multiplier := e.rules.Dive.Multipliers.None
		relic, err := q.GetBestItemByUser(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if relic != nil {
			rarityUsed = string(relic.Rarity)
			featured = relic.Name
			multiplier = e.rules.Dive.Multipliers.For(relic.Rarity)
		}

		reward := e.diveReward(score, multiplier)
		balance := user.Balance + reward
		best := user.BestAdventureScore
		newRecord := score > best
		if newRecord {
			best = score
		}
		if err := q.UpdateUserAdventure(ctx, userID, balance, now, best); err != nil {
			return err
		}
		if reward > 0 {
			// Dives leave no record row, so there is no id to reference.
			if err := q.InsertLedgerEntry(ctx, userID, ledger.EntryDiveReward, reward, ledger.RefDive, ""); err != nil {
				return err
			}
		}

		result = &DiveResult{
			Reward:           reward,
			RemainingBalance: balance,
			BestScore:        best,
			NewRecord:        newRecord,
			Multiplier:       multiplier,
			RarityUsed:       rarityUsed,
			FeaturedName:     featured,
			AppliedScore:     score,
			LastDiveAt:       now,
			NextAvailableAt:  now.Add(e.rules.Dive.Cooldown),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) diveReward(score int, multiplier float64) int64 {
	base := math.Round(float64(score) * e.rules.Dive.RewardRate)
	reward := int64(math.Round(base * multiplier))
	if score < e.rules.Dive.MinScore {
		return 0
	}
	if reward < e.rules.Dive.MinReward {
		reward = e.rules.Dive.MinReward
	}
	if reward > e.rules.Dive.MaxReward {
		reward = e.rules.Dive.MaxReward
	}
	return reward
}
