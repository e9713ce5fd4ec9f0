package httptransport

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"starfall-gacha/internal/announce"
	apppublic "starfall-gacha/internal/app/public"
	"starfall-gacha/internal/game"
	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/store"
)

// NewRouter wires the public, player and admin route groups. Player routes
// require a Bearer API key; admin routes require the configured admin key.
// announcer may be nil.
func NewRouter(st *store.Store, engine *game.Engine, led *ledger.Ledger, publicSvc *apppublic.Service, announcer *announce.Announcer, adminKey string) http.Handler {
	pub := NewPublicHandlers(publicSvc, st)
	player := NewPlayerHandlers(engine, publicSvc, announcer)
	admin := NewAdminHandlers(st, led)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(APILogMiddleware())
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", pub.Healthz())

	r.Route("/api", func(r chi.Router) {
		r.Get("/banners", pub.Banners())
		r.Get("/adventure/config", pub.AdventureConfig())

		r.Group(func(r chi.Router) {
			r.Use(PlayerAuthMiddleware(st))
			r.Get("/me", player.Me())
			r.Get("/inventory", player.Inventory())
			r.Get("/adventure/history", player.AdventureHistory())
			r.Post("/roll", player.Roll())
			r.Post("/adventure", player.Adventure())
			r.Post("/dive", player.Dive())
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminKey))
			r.Post("/topup", admin.Topup())
			r.Post("/banners", admin.UpsertBanner())
			r.Post("/banners/{id}/active", admin.SetBannerActive())
			r.Get("/ledger", admin.Ledger())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}
