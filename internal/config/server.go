package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	SeedDemo     bool   `env:"SEED_DEMO" envDefault:"false"`
	DemoUserName string `env:"DEMO_USER_NAME" envDefault:"traveler"`
	DemoUserKey  string `env:"DEMO_USER_KEY"`
	DemoBalance  int64  `env:"DEMO_BALANCE" envDefault:"1000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
