package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
)

const soloSummary = "Braved the ruins alone"

type AdventureResult struct {
	Success          bool
	Reward           int64
	Chance           float64
	RemainingBalance int64
	Summary          string
	Entry            store.AdventureRecord
	Party            []store.PartyMember
	NextAvailableAt  time.Time
}

// PerformAdventure sends a party of owned items on an expedition. One
// uniform draw decides success; failure still pays the smaller consolation
// reward. The whole attempt is a single transaction gated by the user's
// cooldown stamp.
func (e *Engine) PerformAdventure(ctx context.Context, userID string, partyItemIDs []string) (*AdventureResult, error) {
	ids := uniquePartyIDs(partyItemIDs, e.rules.Adventure.MaxPartySize)
	if len(ids) == 0 {
		return nil, ErrEmptyParty
	}

	var result *AdventureResult
	err := e.store.WithTx(ctx, func(q *store.Queries) error {
		user, err := q.GetUserForUpdate(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		now := e.clock.Now()
		if remaining := cooldownRemaining(user.LastAdventureAt, now, e.rules.Adventure.Cooldown); remaining > 0 {
			return &CooldownError{Remaining: remaining}
		}

		owned, err := q.GetOwnedItems(ctx, userID, ids)
		if err != nil {
			return err
		}
		party := make([]store.PartyMember, 0, len(ids))
		for _, id := range ids {
			it, ok := owned[id]
			if !ok {
				return ErrItemNotOwned
			}
			party = append(party, store.PartyMember{ID: it.ID, Name: it.Name, Rarity: it.Rarity})
		}

		chance := AdventureSuccessChance(party, e.rules.Adventure)
		success := e.rand.Uniform() < chance
		reward := e.rules.Adventure.FailureReward
		if success {
			reward = e.rules.Adventure.SuccessReward
		}

		balance := user.Balance + reward
		if err := q.UpdateUserAdventure(ctx, userID, balance, now, user.BestAdventureScore); err != nil {
			return err
		}

		entry := store.AdventureRecord{
			ID:        store.NewID(),
			UserID:    userID,
			Success:   success,
			Reward:    reward,
			Chance:    chance,
			Summary:   partySummary(party),
			Party:     party,
			CreatedAt: now,
		}
		if err := q.InsertAdventureRecord(ctx, entry); err != nil {
			return err
		}
		if err := q.InsertLedgerEntry(ctx, userID, ledger.EntryAdventureReward, reward, ledger.RefAdventure, entry.ID); err != nil {
			return err
		}

		result = &AdventureResult{
			Success:          success,
			Reward:           reward,
			Chance:           chance,
			RemainingBalance: balance,
			Summary:          entry.Summary,
			Entry:            entry,
			Party:            party,
			NextAvailableAt:  now.Add(e.rules.Adventure.Cooldown),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdventureCooldown reports how long the user must still wait. Zero means
// an expedition may start now.
func (e *Engine) AdventureCooldown(ctx context.Context, userID string) (time.Duration, error) {
	user, err := e.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return cooldownRemaining(user.LastAdventureAt, e.clock.Now(), e.rules.Adventure.Cooldown), nil
}

func cooldownRemaining(last *time.Time, now time.Time, d time.Duration) time.Duration {
	if last == nil {
		return 0
	}
	remaining := last.Add(d).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// uniquePartyIDs keeps the first occurrence of each id in request order,
// then truncates to the party cap. Order matters for the snapshot.
func uniquePartyIDs(ids []string, max int) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, max)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) >= max {
			break
		}
	}
	return out
}

func partySummary(party []store.PartyMember) string {
	if len(party) == 0 {
		return soloSummary
	}
	parts := make([]string, 0, len(party))
	for _, m := range party {
		parts = append(parts, m.Name+" ["+strings.ToUpper(string(m.Rarity))+"]")
	}
	return strings.Join(parts, ", ")
}
