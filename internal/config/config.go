package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	errorsUtils "github.com/seimple/seimple/pkg/errors"
)

type (
	Config struct {
		App        App
		Log        Log
		PG         PG
		UDP        UDP
		HTTP       HTTP
		Prometheus Prometheus
		Kafka      Kafka
	}

	App struct {
		Name string `env:"APP_NAME" env-default:"seimple"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" env-default:"info"`
	}

	PG struct {
		URL         string `env:"PG_URL" env-required:"true"`
		MaxPoolSize int    `env:"PG_MAX_POOL_SIZE" env-default:"10"`
	}

	UDP struct {
		Addr    string `env:"UDP_ADDR" env-default:"0.0.0.0"`
		Port    string `env:"UDP_PORT" env-default:"5514"`
		Workers int    `env:"UDP_WORKERS" env-default:"100"`
	}

	HTTP struct {
		Port        string   `env:"HTTP_PORT" env-default:"8000"`
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`
	}

	Prometheus struct {
		Port string `env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Kafka struct {
		// Unset brokers disable forwarding.
		Brokers []string `env:"KAFKA_BROKERS"`
		Topic   string   `env:"KAFKA_TOPIC" env-default:"seimple.logs"`
	}
)

func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}
