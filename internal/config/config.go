package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string
	Port   int

	DBDriver    string
	DatabaseURL string
	RedisURL    string

	CORSOrigins    []string
	MaxBodySize    int64
	StrictSecurity bool

	RateLimitRPS       float64
	RateLimitBurst     int
	RateLimitWindowMax int
	RateLimitWindow    time.Duration

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
	TLSCert         string
	TLSKey          string
}

// Load reads envFiles (missing files are ignored; real env wins) and then
// the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 3000)
	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("MAX_BODY_SIZE", 1<<20)
	v.SetDefault("STRICT_SECURITY", false)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("RATE_LIMIT_WINDOW_MAX", 3000)
	v.SetDefault("RATE_LIMIT_WINDOW", "1h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := Config{
		AppEnv:             strings.ToLower(v.GetString("APP_ENV")),
		Port:               v.GetInt("PORT"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		CORSOrigins:        splitList(v.GetString("CORS_ORIGINS")),
		MaxBodySize:        v.GetInt64("MAX_BODY_SIZE"),
		StrictSecurity:     v.GetBool("STRICT_SECURITY"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		RateLimitWindowMax: v.GetInt("RATE_LIMIT_WINDOW_MAX"),
		RateLimitWindow:    v.GetDuration("RATE_LIMIT_WINDOW"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
		TLSCert:            v.GetString("TLS_CERT"),
		TLSKey:             v.GetString("TLS_KEY"),
	}
	return cfg, nil
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

func (c Config) Production() bool { return c.AppEnv == "production" }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
