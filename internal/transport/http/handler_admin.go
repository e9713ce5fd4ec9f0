package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
)

type AdminHandlers struct {
	st  *store.Store
	led *ledger.Ledger
}

func NewAdminHandlers(st *store.Store, led *ledger.Ledger) *AdminHandlers {
	return &AdminHandlers{st: st, led: led}
}

type topupRequest struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

func (h *AdminHandlers) Topup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req topupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Amount <= 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		balance, err := h.led.Topup(r.Context(), req.UserID, req.Amount)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "user_not_found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": req.UserID, "balance": balance})
	}
}

// validBannerRates accepts any non-negative table whose rates sum to at
// most 1; draw resolution treats the remainder as common.
func validBannerRates(rt store.RateTable) bool {
	if rt.Common < 0 || rt.Rare < 0 || rt.Ultra < 0 {
		return false
	}
	return rt.Common+rt.Rare+rt.Ultra <= 1.0001
}

type bannerRequest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	StartAt  time.Time        `json:"start_at"`
	EndAt    time.Time        `json:"end_at"`
	Rates    store.RateTable  `json:"rates"`
	Pool     store.RarityPool `json:"pool"`
	IsActive bool             `json:"is_active"`
}

func (h *AdminHandlers) UpsertBanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bannerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if !validBannerRates(req.Rates) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_rates")
			return
		}
		if req.ID == "" {
			req.ID = store.NewID()
		}
		b := store.Banner{
			ID:       req.ID,
			Name:     req.Name,
			StartAt:  req.StartAt,
			EndAt:    req.EndAt,
			Rates:    req.Rates,
			Pool:     req.Pool,
			IsActive: req.IsActive,
		}
		if err := h.st.Queries.UpsertBanner(r.Context(), b); err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": b.ID})
	}
}

type bannerActiveRequest struct {
	Active bool `json:"active"`
}

func (h *AdminHandlers) SetBannerActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req bannerActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.st.Queries.SetBannerActive(r.Context(), id, req.Active); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "banner_not_found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "active": req.Active})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.LedgerFilter{
			UserID: r.URL.Query().Get("user_id"),
			Type:   r.URL.Query().Get("type"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		entries, err := h.st.Queries.ListLedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
	}
}
