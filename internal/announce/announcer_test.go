package announce

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"starfall-gacha/internal/store"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestFormatMessageKinds(t *testing.T) {
	msg, ok := FormatMessage(Announcement{
		Kind:       KindUltraDrop,
		Username:   "ada",
		ItemName:   "Starfall Blade",
		Rarity:     store.RarityUltra,
		BannerName: "Debut",
		At:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if !ok {
		t.Fatal("ultra drop should format")
	}
	if !strings.Contains(msg.Description, "Starfall Blade") || !strings.Contains(msg.Description, "ada") {
		t.Errorf("description = %q", msg.Description)
	}
	if msg.Timestamp != "2026-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q", msg.Timestamp)
	}

	msg, ok = FormatMessage(Announcement{Kind: KindAdventureClear, Username: "ada", Reward: 60, Summary: "Ember Cloak [RARE]"})
	if !ok || !strings.Contains(msg.Content, "+60") {
		t.Errorf("adventure clear = %+v ok=%v", msg, ok)
	}

	msg, ok = FormatMessage(Announcement{Kind: KindDiveRecord, Score: 1200, Reward: 120})
	if !ok || !strings.Contains(msg.Content, "1200") {
		t.Errorf("dive record = %+v ok=%v", msg, ok)
	}
	if !strings.Contains(msg.Content, "A traveler") {
		t.Errorf("anonymous fallback missing: %q", msg.Content)
	}

	if _, ok := FormatMessage(Announcement{Kind: "mystery"}); ok {
		t.Error("unknown kind should not format")
	}
}

func TestAnnouncerDeliversToWebhook(t *testing.T) {
	var got atomic.Int64
	var lastBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		lastBody.Store(string(b))
		got.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := NewAnnouncer(Config{
		Enabled: true,
		Targets: []Target{{Platform: "discord", Endpoint: srv.URL}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	a.Publish(Announcement{Kind: KindUltraDrop, Username: "ada", ItemName: "Starfall Blade", Rarity: store.RarityUltra})
	waitFor(t, func() bool { return got.Load() == 1 })

	var payload struct {
		Embeds []struct {
			Title string `json:"title"`
		} `json:"embeds"`
	}
	if err := json.Unmarshal([]byte(lastBody.Load().(string)), &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if len(payload.Embeds) != 1 || !strings.Contains(payload.Embeds[0].Title, "Ultra") {
		t.Errorf("embeds = %+v", payload.Embeds)
	}
}

func TestAnnouncerRetriesThenDrops(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewAnnouncer(Config{
		Enabled:          true,
		Targets:          []Target{{Platform: "discord", Endpoint: srv.URL}},
		RetryMax:         2,
		RetryBase:        5 * time.Millisecond,
		FailureThreshold: 100, // keep the breaker out of this test
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	a.Publish(Announcement{Kind: KindDiveRecord, Score: 500})
	// Initial attempt plus RetryMax retries, then the job is gone.
	waitFor(t, func() bool { return calls.Load() == 3 })
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want exactly 3", calls.Load())
	}
}

func TestAnnouncerDisabledPublishesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disabled announcer must not call out")
	}))
	defer srv.Close()

	a := NewAnnouncer(Config{Enabled: false, Targets: []Target{{Platform: "discord", Endpoint: srv.URL}}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)
	a.Publish(Announcement{Kind: KindUltraDrop, ItemName: "x"})
	time.Sleep(30 * time.Millisecond)
}

func TestAnnouncerUnknownPlatformDropped(t *testing.T) {
	a := NewAnnouncer(Config{
		Enabled: true,
		Targets: []Target{{Platform: "telegraph", Endpoint: "http://127.0.0.1:0"}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)
	a.Publish(Announcement{Kind: KindUltraDrop, ItemName: "x"})
	// Nothing to assert beyond not panicking; the job is dropped in-process.
	time.Sleep(20 * time.Millisecond)
}
