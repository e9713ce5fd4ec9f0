package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"starfall-gacha/internal/announce"
	apppublic "starfall-gacha/internal/app/public"
	"starfall-gacha/internal/config"
	"starfall-gacha/internal/game"
	"starfall-gacha/internal/ledger"
	"starfall-gacha/internal/logging"
	"starfall-gacha/internal/store"
	httptransport "starfall-gacha/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.Server.SeedDemo {
		seedDemo(st, cfg.Server)
	}

	rules := cfg.Game.Rules()
	engine := game.NewEngine(st, rules, game.SystemClock(), game.NewSource())
	led := ledger.New(st)
	publicSvc := apppublic.NewService(st, rules)

	announcer := announce.NewAnnouncer(cfg.Announce.AnnouncerConfig())
	announcer.Start(context.Background())

	r := httptransport.NewRouter(st, engine, led, publicSvc, announcer, cfg.Server.AdminAPIKey)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

// seedDemo provisions one playable user and a starter banner so a fresh
// database can be exercised without admin calls.
func seedDemo(st *store.Store, cfg config.ServerConfig) {
	ctx := context.Background()
	if cfg.DemoUserName != "" && cfg.DemoUserKey != "" {
		if err := st.EnsureUser(ctx, cfg.DemoUserName, cfg.DemoUserKey, cfg.DemoBalance); err != nil {
			log.Error().Err(err).Msg("seed demo user failed")
		}
	}
	banner := store.Banner{
		ID:      "banner_starter",
		Name:    "Starfall Debut",
		StartAt: time.Now().Add(-time.Hour),
		EndAt:   time.Now().AddDate(1, 0, 0),
		Rates:   store.RateTable{Common: 0.90, Rare: 0.08, Ultra: 0.02},
		Pool: store.RarityPool{
			Common: []string{"Tin Lantern", "Moss Charm", "Clay Whistle"},
			Rare:   []string{"Silver Compass", "Ember Cloak"},
			Ultra:  []string{"Starfall Blade"},
		},
		IsActive: true,
	}
	if err := st.UpsertBanner(ctx, banner); err != nil {
		log.Error().Err(err).Msg("seed demo banner failed")
	}
}

func logRoutes(h http.Handler) {
	r, ok := h.(chi.Router)
	if !ok {
		return
	}
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
