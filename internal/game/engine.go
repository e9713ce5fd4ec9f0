package game

import (
	"context"
	"errors"
	"fmt"

	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
)

// Engine runs the roll and expedition mechanics. All state lives in the
// store; every operation is one transaction with the user row locked, so
// concurrent requests for the same user serialize instead of racing the
// pity counters or the cooldown stamp.
type Engine struct {
	store *store.Store
	rules Rules
	clock Clock
	rand  Source
}

func NewEngine(st *store.Store, rules Rules, clock Clock, src Source) *Engine {
	return &Engine{store: st, rules: rules, clock: clock, rand: src}
}

type DrawResult struct {
	ItemID string       `json:"id"`
	Name   string       `json:"name"`
	Rarity store.Rarity `json:"rarity"`
}

type RollBatch struct {
	Results          []DrawResult
	RemainingBalance int64
	Pity             PityState
	TotalCost        int64
}

// BatchCost applies the standing discount: a full discounted batch pays for
// one roll less.
func (e *Engine) BatchCost(times int) int64 {
	cost := e.rules.CostPerRoll * int64(times)
	if times == e.rules.DiscountedBatch {
		cost -= e.rules.CostPerRoll
	}
	return cost
}

// PerformRolls draws `times` items from the banner as one atomic batch.
// Results keep draw order. On any rejection or failure nothing is written:
// balance, pity and inventory stay exactly as they were.
func (e *Engine) PerformRolls(ctx context.Context, userID, bannerID string, times int) (*RollBatch, error) {
	if times < 1 || times > e.rules.MaxRollsPerBatch {
		return nil, ErrInvalidBatchSize
	}

	var batch *RollBatch
	err := e.store.WithTx(ctx, func(q *store.Queries) error {
		banner, err := q.GetBanner(ctx, bannerID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrBannerNotFound
		}
		if err != nil {
			return err
		}
		if !banner.IsActive {
			return ErrBannerInactive
		}

		user, err := q.GetUserForUpdate(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		cost := e.BatchCost(times)
		if user.Balance < cost {
			return ErrInsufficientFunds
		}
		balance := user.Balance - cost

		now := e.clock.Now()
		pity := PityState{Rare: user.PityRare, Ultra: user.PityUltra}
		results := make([]DrawResult, 0, times)
		for i := 0; i < times; i++ {
			var rarity store.Rarity
			rarity, pity = ResolveDrawRarity(banner.Rates, pity, e.rules, e.rand)

			names := banner.Pool.Names(rarity)
			if len(names) == 0 {
				return fmt.Errorf("banner %s: empty %s pool", banner.ID, rarity)
			}
			name := names[int(e.rand.Uniform()*float64(len(names)))]

			itemID := store.NewID()
			if err := q.InsertItem(ctx, store.Item{
				ID:         itemID,
				UserID:     userID,
				Name:       name,
				Rarity:     rarity,
				BannerID:   bannerID,
				ObtainedAt: now,
			}); err != nil {
				return err
			}
			if err := q.InsertRollRecord(ctx, store.RollRecord{
				ID:         store.NewID(),
				UserID:     userID,
				BannerID:   bannerID,
				ResultName: name,
				Rarity:     rarity,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
			results = append(results, DrawResult{ItemID: itemID, Name: name, Rarity: rarity})
		}

		if err := q.UpdateUserBalancePity(ctx, userID, balance, pity.Rare, pity.Ultra); err != nil {
			return err
		}
		if err := q.InsertLedgerEntry(ctx, userID, ledger.EntryRollDebit, -cost, ledger.RefBanner, bannerID); err != nil {
			return err
		}

		batch = &RollBatch{
			Results:          results,
			RemainingBalance: balance,
			Pity:             pity,
			TotalCost:        cost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
