package ledger

import (
	"context"

	"starfall-gacha/internal/store"
)

// Entry types for every balance mutation. The engines write these inside
// their own transactions; Topup is the standalone admin path.
const (
	EntryRollDebit       = "roll_debit"
	EntryAdventureReward = "adventure_reward"
	EntryDiveReward      = "dive_reward"
	EntryTopup           = "topup"
)

const (
	RefBanner    = "banner"
	RefAdventure = "adventure"
	RefDive      = "dive"
	RefAdmin     = "admin"
)

type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) Topup(ctx context.Context, userID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, userID, amount, EntryTopup, RefAdmin, "topup")
}
