package infrastructures

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	DatabaseURL    string `env:"DATABASE_URL, required"`
	RedisAddress   string `env:"REDIS_ADDRESS, default=localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	ConnectBaseURL string `env:"CONNECT_BASE_URL, required"`
	Port           int    `env:"PORT, default=8080"`
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	Config = &cfg
	return Config
}
