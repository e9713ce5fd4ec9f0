package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
	"starfall-gacha/internal/testutil"
)

func TestDiveRewardCurve(t *testing.T) {
	e := &Engine{rules: DefaultRules()}
	tests := []struct {
		name       string
		score      int
		multiplier float64
		want       int64
	}{
		{"below min score", 9, 1.0, 0},
		{"at min score", 10, 1.0, 5},      // floored to the minimum reward
		{"mid score", 100, 1.0, 15},       // 100 * 0.15
		{"ultra relic", 100, 1.55, 23},    // round(15 * 1.55)
		{"capped reward", 2000, 1.0, 120}, // 300 capped
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.diveReward(tc.score, tc.multiplier); got != tc.want {
				t.Errorf("diveReward(%d, %v) = %d, want %d", tc.score, tc.multiplier, got, tc.want)
			}
		})
	}
}

func TestPerformDive(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	userID := seedUser(t, st, 100)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &stepClock{now: now}
	e := NewEngine(st, DefaultRules(), clock, constSource{0.5})

	result, err := e.PerformDive(ctx, userID, 100)
	if err != nil {
		t.Fatalf("PerformDive: %v", err)
	}
	if result.Reward != 15 || result.RemainingBalance != 115 {
		t.Errorf("reward = %d balance = %d, want 15 / 115", result.Reward, result.RemainingBalance)
	}
	if result.RarityUsed != "none" || result.Multiplier != 1.0 {
		t.Errorf("relic = %s x%v, want none x1", result.RarityUsed, result.Multiplier)
	}
	if result.BestScore != 100 {
		t.Errorf("best = %d, want 100", result.BestScore)
	}
	if !result.NextAvailableAt.Equal(now.Add(time.Minute)) {
		t.Errorf("next = %v, want %v", result.NextAvailableAt, now.Add(time.Minute))
	}

	// The audit row points at the dive ref type with no referenced row.
	entries, err := st.ListLedgerEntries(ctx, store.LedgerFilter{UserID: userID, Type: ledger.EntryDiveReward}, 50, 0)
	if err != nil {
		t.Fatalf("ListLedgerEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Amount != 15 || entries[0].RefType != ledger.RefDive || entries[0].RefID != "" {
		t.Errorf("entry = %+v, want amount 15, ref dive with empty id", entries[0])
	}

	// Second attempt inside the window is rejected.
	clock.now = now.Add(30 * time.Second)
	_, err = e.PerformDive(ctx, userID, 50)
	var cd *CooldownError
	if !errors.As(err, &cd) {
		t.Fatalf("err = %v, want CooldownError", err)
	}
	if cd.Remaining != 30*time.Second {
		t.Errorf("remaining = %v, want 30s", cd.Remaining)
	}

	// A lower later score keeps the recorded best.
	clock.now = now.Add(2 * time.Minute)
	result, err = e.PerformDive(ctx, userID, 40)
	if err != nil {
		t.Fatalf("second dive: %v", err)
	}
	if result.BestScore != 100 {
		t.Errorf("best = %d, want unchanged 100", result.BestScore)
	}
}

func TestPerformDiveRelicMultiplier(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	seedBanner(t, st, true)
	userID := seedUser(t, st, 0)
	ctx := context.Background()

	seedItem(t, st, userID, "Tin Lantern", store.RarityCommon)
	seedItem(t, st, userID, "Starfall Blade", store.RarityUltra)

	e := NewEngine(st, DefaultRules(), SystemClock(), constSource{0.5})
	result, err := e.PerformDive(ctx, userID, 100)
	if err != nil {
		t.Fatalf("PerformDive: %v", err)
	}
	// The best owned relic gates the curve.
	if result.RarityUsed != "ultra" || result.FeaturedName != "Starfall Blade" {
		t.Errorf("relic = %s %q, want ultra Starfall Blade", result.RarityUsed, result.FeaturedName)
	}
	if result.Reward != 23 {
		t.Errorf("reward = %d, want 23", result.Reward)
	}
}

func TestPerformDiveLowScoreNoEntry(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	userID := seedUser(t, st, 50)
	ctx := context.Background()

	e := NewEngine(st, DefaultRules(), SystemClock(), constSource{0.5})
	result, err := e.PerformDive(ctx, userID, 5)
	if err != nil {
		t.Fatalf("PerformDive: %v", err)
	}
	if result.Reward != 0 || result.RemainingBalance != 50 {
		t.Errorf("reward = %d balance = %d, want 0 / 50", result.Reward, result.RemainingBalance)
	}
	// Zero rewards write no audit row, but the attempt still burns the cooldown.
	entries, err := st.ListLedgerEntries(ctx, store.LedgerFilter{UserID: userID, Type: ledger.EntryDiveReward}, 50, 0)
	if err != nil || len(entries) != 0 {
		t.Errorf("ledger entries = %d (err %v), want 0", len(entries), err)
	}
	user, err := st.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.LastAdventureAt == nil {
		t.Error("cooldown stamp not set")
	}
}

func TestPerformDiveClampsScore(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	userID := seedUser(t, st, 0)
	ctx := context.Background()

	e := NewEngine(st, DefaultRules(), SystemClock(), constSource{0.5})
	result, err := e.PerformDive(ctx, userID, 999999)
	if err != nil {
		t.Fatalf("PerformDive: %v", err)
	}
	if result.AppliedScore != 2000 {
		t.Errorf("applied = %d, want clamped 2000", result.AppliedScore)
	}
	if result.Reward != 120 {
		t.Errorf("reward = %d, want capped 120", result.Reward)
	}
	if result.BestScore != 2000 {
		t.Errorf("best = %d, want 2000", result.BestScore)
	}
}

// The two expedition modes share one cooldown stamp.
func TestDiveAndAdventureShareCooldown(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	seedBanner(t, st, true)
	userID := seedUser(t, st, 0)
	ctx := context.Background()
	itemID := seedItem(t, st, userID, "Tin Lantern", store.RarityCommon)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}
	e := NewEngine(st, DefaultRules(), clock, constSource{0.5})

	if _, err := e.PerformAdventure(ctx, userID, []string{itemID}); err != nil {
		t.Fatalf("adventure: %v", err)
	}

	clock.now = start.Add(30 * time.Second)
	var cd *CooldownError
	if _, err := e.PerformDive(ctx, userID, 100); !errors.As(err, &cd) {
		t.Fatalf("dive inside stamp window: err = %v, want CooldownError", err)
	}

	// Dive only needs its own shorter window to have passed.
	clock.now = start.Add(90 * time.Second)
	if _, err := e.PerformDive(ctx, userID, 100); err != nil {
		t.Errorf("dive after its window: %v", err)
	}
}
