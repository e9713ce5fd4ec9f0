package announce

import (
	"time"

	"starfall-gacha/internal/store"
)

// Kind selects the message template.
const (
	KindUltraDrop      = "ultra_drop"
	KindAdventureClear = "adventure_clear"
	KindDiveRecord     = "dive_record"
)

// Announcement is one game moment worth broadcasting.
type Announcement struct {
	Kind       string
	Username   string
	ItemName   string
	Rarity     store.Rarity
	BannerName string
	Summary    string
	Reward     int64
	Score      int
	At         time.Time
}

// Target is one webhook destination.
type Target struct {
	Platform string `json:"platform"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
}

type Config struct {
	Enabled             bool
	Targets             []Target
	Workers             int
	QueueSize           int
	RequestTimeout      time.Duration
	RetryMax            int
	RetryBase           time.Duration
	FailureThreshold    int
	CircuitOpenDuration time.Duration
}

type pushJob struct {
	Target  Target
	Ann     Announcement
	Attempt int
}

func (j pushJob) key() string {
	return j.Target.Platform + "|" + j.Target.Endpoint
}
