package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"starfall-gacha/internal/announce"
)

// AnnounceConfig drives the webhook announcer. Leaving both webhook URLs
// empty disables it regardless of ANNOUNCE_ENABLED.
type AnnounceConfig struct {
	Enabled        bool          `env:"ANNOUNCE_ENABLED" envDefault:"false"`
	DiscordWebhook string        `env:"ANNOUNCE_DISCORD_WEBHOOK"`
	FeishuWebhook  string        `env:"ANNOUNCE_FEISHU_WEBHOOK"`
	FeishuSecret   string        `env:"ANNOUNCE_FEISHU_SECRET"`
	Workers        int           `env:"ANNOUNCE_WORKERS" envDefault:"2"`
	QueueSize      int           `env:"ANNOUNCE_QUEUE_SIZE" envDefault:"256"`
	RequestTimeout time.Duration `env:"ANNOUNCE_REQUEST_TIMEOUT" envDefault:"5s"`
	RetryMax       int           `env:"ANNOUNCE_RETRY_MAX" envDefault:"3"`
	RetryBase      time.Duration `env:"ANNOUNCE_RETRY_BASE" envDefault:"500ms"`
}

func LoadAnnounce() (AnnounceConfig, error) {
	var cfg AnnounceConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c AnnounceConfig) AnnouncerConfig() announce.Config {
	targets := make([]announce.Target, 0, 2)
	if c.DiscordWebhook != "" {
		targets = append(targets, announce.Target{Platform: "discord", Endpoint: c.DiscordWebhook})
	}
	if c.FeishuWebhook != "" {
		targets = append(targets, announce.Target{Platform: "feishu", Endpoint: c.FeishuWebhook, Secret: c.FeishuSecret})
	}
	return announce.Config{
		Enabled:        c.Enabled && len(targets) > 0,
		Targets:        targets,
		Workers:        c.Workers,
		QueueSize:      c.QueueSize,
		RequestTimeout: c.RequestTimeout,
		RetryMax:       c.RetryMax,
		RetryBase:      c.RetryBase,
	}
}
