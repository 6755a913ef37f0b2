package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDatabase       string        `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	StoreBackend        string        `mapstructure:"STORE_BACKEND"`
	Port                string        `mapstructure:"API_PORT"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogPretty           bool          `mapstructure:"LOG_PRETTY"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	DoctorCacheTTL      time.Duration `mapstructure:"DOCTOR_CACHE_TTL"`
	CORSOrigins         []string      `mapstructure:"-"`
	TextbeltAPIKey      string        `mapstructure:"TEXTBELT_API_KEY"`
}

var keys = []string{
	"MONGO_URI", "MONGO_DATABASE", "MONGO_CONNECT_TIMEOUT", "STORE_BACKEND",
	"API_PORT", "LOG_LEVEL", "LOG_PRETTY", "REDIS_ADDR", "REDIS_PASSWORD",
	"DOCTOR_CACHE_TTL", "CORS_ORIGINS", "TEXTBELT_API_KEY",
}

// Load reads .env (when present) into the process environment and then binds
// the environment through viper.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "HCAMS")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("STORE_BACKEND", BackendMongo)
	v.SetDefault("API_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("DOCTOR_CACHE_TTL", "5m")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if cfg.StoreBackend != BackendMongo && cfg.StoreBackend != BackendMemory {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
