package game

import (
	"math"
	"reflect"
	"testing"
	"time"

	"starfall-gacha/internal/store"
)

// scriptedSource replays a fixed sequence of uniforms and fails the test if
// more draws are consumed than scripted.
type scriptedSource struct {
	t      *testing.T
	values []float64
	i      int
}

func (s *scriptedSource) Uniform() float64 {
	if s.i >= len(s.values) {
		s.t.Fatalf("scripted source exhausted after %d values", len(s.values))
	}
	v := s.values[s.i]
	s.i++
	return v
}

type constSource struct{ v float64 }

func (s constSource) Uniform() float64 { return s.v }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testRates = store.RateTable{Common: 0.90, Rare: 0.08, Ultra: 0.02}

func TestResolveDrawRarityThresholds(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name    string
		uniform float64
		want    store.Rarity
	}{
		{"below ultra threshold", 0.01, store.RarityUltra},
		{"at ultra threshold", 0.02, store.RarityRare},
		{"below rare threshold", 0.09, store.RarityRare},
		{"at combined threshold", 0.10, store.RarityCommon},
		{"high roll", 0.95, store.RarityCommon},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := ResolveDrawRarity(testRates, PityState{}, rules, constSource{tc.uniform})
			if got != tc.want {
				t.Errorf("uniform %v: rarity = %s, want %s", tc.uniform, got, tc.want)
			}
		})
	}
}

func TestResolveDrawRarityPityCounters(t *testing.T) {
	rules := DefaultRules()

	// Common draw advances both counters.
	_, pity := ResolveDrawRarity(testRates, PityState{Rare: 3, Ultra: 40}, rules, constSource{0.5})
	if pity.Rare != 4 || pity.Ultra != 41 {
		t.Errorf("after common: pity = %+v, want {4 41}", pity)
	}

	// Rare draw resets only the rare counter.
	rarity, pity := ResolveDrawRarity(testRates, PityState{Rare: 3, Ultra: 40}, rules, constSource{0.05})
	if rarity != store.RarityRare {
		t.Fatalf("rarity = %s, want rare", rarity)
	}
	if pity.Rare != 0 || pity.Ultra != 41 {
		t.Errorf("after rare: pity = %+v, want {0 41}", pity)
	}

	// Ultra draw resets both.
	rarity, pity = ResolveDrawRarity(testRates, PityState{Rare: 3, Ultra: 40}, rules, constSource{0.0})
	if rarity != store.RarityUltra {
		t.Fatalf("rarity = %s, want ultra", rarity)
	}
	if pity.Rare != 0 || pity.Ultra != 0 {
		t.Errorf("after ultra: pity = %+v, want {0 0}", pity)
	}
}

func TestResolveDrawRarityFloors(t *testing.T) {
	rules := DefaultRules()
	src := &scriptedSource{t: t}

	// Ninth miss in a row: the tenth draw forces a rare without consuming a
	// uniform, even if the draw would have rolled a common.
	rarity, pity := ResolveDrawRarity(testRates, PityState{Rare: 9, Ultra: 9}, rules, src)
	if rarity != store.RarityRare {
		t.Fatalf("rarity = %s, want forced rare", rarity)
	}
	if pity.Rare != 0 || pity.Ultra != 10 {
		t.Errorf("pity = %+v, want {0 10}", pity)
	}

	// Both floors reached at once: ultra wins.
	rarity, pity = ResolveDrawRarity(testRates, PityState{Rare: 9, Ultra: 89}, rules, src)
	if rarity != store.RarityUltra {
		t.Fatalf("rarity = %s, want forced ultra", rarity)
	}
	if pity.Rare != 0 || pity.Ultra != 0 {
		t.Errorf("pity = %+v, want {0 0}", pity)
	}
	if src.i != 0 {
		t.Errorf("forced draws consumed %d uniforms, want 0", src.i)
	}
}

func TestAdventureSuccessChance(t *testing.T) {
	rules := DefaultRules().Adventure
	party := []store.PartyMember{
		{ID: "a", Name: "Silver Compass", Rarity: store.RarityRare},
		{ID: "b", Name: "Tin Lantern", Rarity: store.RarityCommon},
	}
	got := AdventureSuccessChance(party, rules)
	want := 0.22 + (3+1)*0.08 + 2*0.02
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("chance = %v, want %v", got, want)
	}
}

func TestAdventureSuccessChanceClamped(t *testing.T) {
	rules := DefaultRules().Adventure
	party := make([]store.PartyMember, 0, 3)
	for i := 0; i < 3; i++ {
		party = append(party, store.PartyMember{Rarity: store.RarityUltra})
	}
	rules.ScoreMultiplier = 10
	if got := AdventureSuccessChance(party, rules); got != rules.MaxChance {
		t.Errorf("chance = %v, want clamped to %v", got, rules.MaxChance)
	}
}

func TestClampChanceDegenerate(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.3} {
		if got := clampChance(v, 0.95); got != 0 {
			t.Errorf("clampChance(%v) = %v, want 0", v, got)
		}
	}
}

func TestUniquePartyIDs(t *testing.T) {
	got := uniquePartyIDs([]string{"c", "", "a", "c", "b", "d"}, 3)
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniquePartyIDs = %v, want %v", got, want)
	}
	if got := uniquePartyIDs([]string{"", ""}, 3); len(got) != 0 {
		t.Errorf("blank-only input: got %v, want empty", got)
	}
}

func TestPartySummary(t *testing.T) {
	party := []store.PartyMember{
		{Name: "Ember Cloak", Rarity: store.RarityRare},
		{Name: "Clay Whistle", Rarity: store.RarityCommon},
	}
	if got := partySummary(party); got != "Ember Cloak [RARE], Clay Whistle [COMMON]" {
		t.Errorf("summary = %q", got)
	}
	if got := partySummary(nil); got != soloSummary {
		t.Errorf("empty summary = %q, want %q", got, soloSummary)
	}
}

func TestFormatCooldown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "a moment"},
		{400 * time.Millisecond, "1s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m 30s"},
		{2 * time.Minute, "2m"},
		{5*time.Minute + 30*time.Second, "5m"},
		{14*time.Minute + 59*time.Second, "14m"},
	}
	for _, tc := range tests {
		if got := formatCooldown(tc.d); got != tc.want {
			t.Errorf("formatCooldown(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestBatchCost(t *testing.T) {
	e := &Engine{rules: DefaultRules()}
	tests := []struct {
		times int
		want  int64
	}{
		{1, 160},
		{9, 9 * 160},
		{10, 9 * 160},
		{11, 11 * 160},
	}
	for _, tc := range tests {
		if got := e.BatchCost(tc.times); got != tc.want {
			t.Errorf("BatchCost(%d) = %d, want %d", tc.times, got, tc.want)
		}
	}
}
