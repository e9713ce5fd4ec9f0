package public

import (
	"context"

	"starfall-gacha/internal/game"
	"starfall-gacha/internal/store"
)

const adventureHistoryLimit = 8

// Service answers the read-only queries around the engines: active banner
// listing, player profile, inventory and expedition history.
type Service struct {
	store *store.Store
	rules game.Rules
}

func NewService(st *store.Store, rules game.Rules) *Service {
	return &Service{store: st, rules: rules}
}

func (s *Service) Banners(ctx context.Context) (*BannersResponse, error) {
	banners, err := s.store.ListActiveBanners(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BannerItem, 0, len(banners))
	for _, b := range banners {
		out = append(out, BannerItem{
			ID:      b.ID,
			Name:    b.Name,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
			Rates:   b.Rates,
			Pool:    b.Pool,
		})
	}
	return &BannersResponse{Items: out}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Balance:            u.Balance,
		PityRare:           u.PityRare,
		PityUltra:          u.PityUltra,
		LastAdventureAt:    u.LastAdventureAt,
		BestAdventureScore: u.BestAdventureScore,
		ItemCount:          count,
	}, nil
}

func (s *Service) Inventory(ctx context.Context, userID string, limit, offset int) (*InventoryResponse, error) {
	items, err := s.store.ListItemsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, InventoryItem{
			ID:         it.ID,
			Name:       it.Name,
			Rarity:     it.Rarity,
			BannerID:   it.BannerID,
			ObtainedAt: it.ObtainedAt,
		})
	}
	return &InventoryResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) AdventureHistory(ctx context.Context, userID string) (*AdventureHistoryResponse, error) {
	records, err := s.store.ListAdventuresByUser(ctx, userID, adventureHistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]AdventureHistoryItem, 0, len(records))
	for _, a := range records {
		out = append(out, AdventureHistoryItem{
			ID:        a.ID,
			Success:   a.Success,
			Reward:    a.Reward,
			Chance:    a.Chance,
			Summary:   a.Summary,
			Party:     a.Party,
			CreatedAt: a.CreatedAt,
		})
	}
	return &AdventureHistoryResponse{Items: out}, nil
}

func (s *Service) AdventureConfig() *AdventureConfigResponse {
	adv := s.rules.Adventure
	return &AdventureConfigResponse{
		BaseChance:      adv.BaseChance,
		ScoreMultiplier: adv.ScoreMultiplier,
		PerMemberBonus:  adv.PerMemberBonus,
		MaxChance:       adv.MaxChance,
		MaxPartySize:    adv.MaxPartySize,
		RarityScores: map[string]float64{
			string(store.RarityCommon): adv.RarityScores.Common,
			string(store.RarityRare):   adv.RarityScores.Rare,
			string(store.RarityUltra):  adv.RarityScores.Ultra,
		},
		SuccessReward:   adv.SuccessReward,
		FailureReward:   adv.FailureReward,
		CooldownSeconds: int(adv.Cooldown.Seconds()),
	}
}
