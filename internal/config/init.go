package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds everything read from the environment.
type Settings struct {
	AppEnv  string
	AppPort string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TimelineLen   int64

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	BatchSize      int
	FanoutInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	SentryDSN string
}

// Load بارگذاری .env و خواندن تنظیمات از متغیرهای محیطی
func Load() (*Settings, error) {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv reads settings through getenv so tests can supply their own lookup.
func FromEnv(getenv func(string) string) (*Settings, error) {
	s := &Settings{
		AppEnv:        withDefault(getenv("APP_ENV"), "development"),
		AppPort:       withDefault(getenv("APP_PORT"), "8080"),
		DBDriver:      withDefault(getenv("DB_DRIVER"), "mysql"),
		DBDSN:         getenv("DB_DSN"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET"),
		JWTIssuer:     withDefault(getenv("JWT_ISSUER"), "chirp"),
		SentryDSN:     getenv("SENTRY_DSN"),
	}

	if s.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	var err error
	if s.RedisDB, err = intOr(getenv("REDIS_DB"), 0); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	timelineLen, err := intOr(getenv("TIMELINE_MAX_LEN"), 800)
	if err != nil {
		return nil, fmt.Errorf("TIMELINE_MAX_LEN: %w", err)
	}
	s.TimelineLen = int64(timelineLen)
	if s.BatchSize, err = intOr(getenv("BATCH_SIZE"), 100); err != nil || s.BatchSize <= 0 {
		return nil, fmt.Errorf("BATCH_SIZE must be a positive integer")
	}
	if s.JWTTTL, err = durationOr(getenv("JWT_TTL"), 24*time.Hour); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if s.FanoutInterval, err = durationOr(getenv("FANOUT_INTERVAL"), time.Second); err != nil {
		return nil, fmt.Errorf("FANOUT_INTERVAL: %w", err)
	}
	if s.RateLimitRPS, err = floatOr(getenv("RATE_LIMIT_RPS"), 5); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if s.RateLimitBurst, err = intOr(getenv("RATE_LIMIT_BURST"), 20); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	switch s.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}
	return s, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func floatOr(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func durationOr(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
