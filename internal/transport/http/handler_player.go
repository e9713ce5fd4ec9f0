package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"starfall-gacha/internal/announce"
	apppublic "starfall-gacha/internal/app/public"
	"starfall-gacha/internal/game"
	"starfall-gacha/internal/store"
)

type PlayerHandlers struct {
	engine    *game.Engine
	publicSvc *apppublic.Service
	announcer *announce.Announcer
}

func NewPlayerHandlers(engine *game.Engine, publicSvc *apppublic.Service, announcer *announce.Announcer) *PlayerHandlers {
	return &PlayerHandlers{engine: engine, publicSvc: publicSvc, announcer: announcer}
}

type rollRequest struct {
	BannerID string `json:"banner_id"`
	Times    int    `json:"times"`
}

type rollResponse struct {
	Results          []game.DrawResult `json:"results"`
	RemainingBalance int64             `json:"remaining_balance"`
	PityRare         int               `json:"pity_rare"`
	PityUltra        int               `json:"pity_ultra"`
	TotalCost        int64             `json:"total_cost"`
}

func (h *PlayerHandlers) Roll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req rollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BannerID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.Times == 0 {
			req.Times = 1
		}
		batch, err := h.engine.PerformRolls(r.Context(), user.ID, req.BannerID, req.Times)
		if err != nil {
			writeGameError(w, err)
			return
		}
		if h.announcer != nil {
			for _, res := range batch.Results {
				if res.Rarity != store.RarityUltra {
					continue
				}
				h.announcer.Publish(announce.Announcement{
					Kind:     announce.KindUltraDrop,
					Username: user.Username,
					ItemName: res.Name,
					Rarity:   res.Rarity,
					At:       time.Now(),
				})
			}
		}
		_ = json.NewEncoder(w).Encode(rollResponse{
			Results:          batch.Results,
			RemainingBalance: batch.RemainingBalance,
			PityRare:         batch.Pity.Rare,
			PityUltra:        batch.Pity.Ultra,
			TotalCost:        batch.TotalCost,
		})
	}
}

type adventureRequest struct {
	PartyItemIDs []string `json:"party_item_ids"`
}

type adventureResponse struct {
	Success          bool                `json:"success"`
	Reward           int64               `json:"reward"`
	Chance           float64             `json:"chance"`
	RemainingBalance int64               `json:"remaining_balance"`
	Summary          string              `json:"summary"`
	Party            []store.PartyMember `json:"party"`
	NextAvailableAt  time.Time           `json:"next_available_at"`
}

func (h *PlayerHandlers) Adventure() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req adventureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		result, err := h.engine.PerformAdventure(r.Context(), user.ID, req.PartyItemIDs)
		if err != nil {
			writeGameError(w, err)
			return
		}
		if h.announcer != nil && result.Success {
			h.announcer.Publish(announce.Announcement{
				Kind:     announce.KindAdventureClear,
				Username: user.Username,
				Summary:  result.Summary,
				Reward:   result.Reward,
				At:       time.Now(),
			})
		}
		_ = json.NewEncoder(w).Encode(adventureResponse{
			Success:          result.Success,
			Reward:           result.Reward,
			Chance:           result.Chance,
			RemainingBalance: result.RemainingBalance,
			Summary:          result.Summary,
			Party:            result.Party,
			NextAvailableAt:  result.NextAvailableAt,
		})
	}
}

type diveRequest struct {
	Score json.Number `json:"score"`
}

type diveResponse struct {
	Reward           int64     `json:"reward"`
	RemainingBalance int64     `json:"remaining_balance"`
	BestScore        int       `json:"best_score"`
	NewRecord        bool      `json:"new_record"`
	Multiplier       float64   `json:"multiplier"`
	RarityUsed       string    `json:"rarity_used"`
	FeaturedName     string    `json:"featured_name,omitempty"`
	AppliedScore     int       `json:"applied_score"`
	NextAvailableAt  time.Time `json:"next_available_at"`
}

func (h *PlayerHandlers) Dive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req diveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		score, err := req.Score.Int64()
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_score")
			return
		}
		result, err := h.engine.PerformDive(r.Context(), user.ID, int(score))
		if err != nil {
			writeGameError(w, err)
			return
		}
		if h.announcer != nil && result.NewRecord {
			h.announcer.Publish(announce.Announcement{
				Kind:     announce.KindDiveRecord,
				Username: user.Username,
				Score:    result.BestScore,
				Reward:   result.Reward,
				At:       time.Now(),
			})
		}
		_ = json.NewEncoder(w).Encode(diveResponse{
			Reward:           result.Reward,
			RemainingBalance: result.RemainingBalance,
			BestScore:        result.BestScore,
			NewRecord:        result.NewRecord,
			Multiplier:       result.Multiplier,
			RarityUsed:       result.RarityUsed,
			FeaturedName:     result.FeaturedName,
			AppliedScore:     result.AppliedScore,
			NextAvailableAt:  result.NextAvailableAt,
		})
	}
}

func (h *PlayerHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.publicSvc.Profile(r.Context(), user.ID)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Inventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.publicSvc.Inventory(r.Context(), user.ID, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) AdventureHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		resp, err := h.publicSvc.AdventureHistory(r.Context(), user.ID)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// writeGameError translates engine errors to stable response codes. Cooldown
// rejections carry the remaining wait so clients can show a timer.
func writeGameError(w http.ResponseWriter, err error) {
	var cooldown *game.CooldownError
	if errors.As(err, &cooldown) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":        "cooldown",
			"message":      cooldown.Error(),
			"remaining_ms": cooldown.Remaining.Milliseconds(),
		})
		return
	}
	switch {
	case errors.Is(err, game.ErrUserNotFound):
		WriteHTTPError(w, http.StatusNotFound, "user_not_found")
	case errors.Is(err, game.ErrBannerNotFound):
		WriteHTTPError(w, http.StatusNotFound, "banner_not_found")
	case errors.Is(err, game.ErrBannerInactive):
		WriteHTTPError(w, http.StatusBadRequest, "banner_inactive")
	case errors.Is(err, game.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, game.ErrInvalidBatchSize):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_batch_size")
	case errors.Is(err, game.ErrEmptyParty), errors.Is(err, game.ErrItemNotOwned):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_party")
	case errors.Is(err, game.ErrInvalidScore):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_score")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
