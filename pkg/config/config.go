package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":12345"`
	OpsPort        string        `envconfig:"OPS_PORT" default:"8080"`
	KafkaBrokers   string        `envconfig:"KAFKA_BROKERS" default:""`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	DeliveryBase   time.Duration `envconfig:"DELIVERY_BASE_DELAY" default:"2s"`
	DeliveryJitter time.Duration `envconfig:"DELIVERY_JITTER" default:"5s"`
	SeedCatalog    bool          `envconfig:"SEED_CATALOG" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
