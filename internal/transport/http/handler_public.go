package httptransport

import (
	"encoding/json"
	"net/http"

	apppublic "starfall-gacha/internal/app/public"
	"starfall-gacha/internal/store"
)

type PublicHandlers struct {
	publicSvc *apppublic.Service
	st        *store.Store
}

func NewPublicHandlers(publicSvc *apppublic.Service, st *store.Store) *PublicHandlers {
	return &PublicHandlers{publicSvc: publicSvc, st: st}
}

func (h *PublicHandlers) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.st.Ping(r.Context()); err != nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "db_unreachable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (h *PublicHandlers) Banners() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.publicSvc.Banners(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) AdventureConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.publicSvc.AdventureConfig())
	}
}
