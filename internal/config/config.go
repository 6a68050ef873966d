package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores intake consumer settings. Empty Brokers disables the
// consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Notify stores notification delivery retry settings.
type Notify struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Donations stores donation housekeeping settings.
type Donations struct {
	ExpireSweepInterval time.Duration
}

// PprofConfig stores profiling endpoint settings. The endpoint listens
// on its own address and is off unless explicitly enabled.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// RateLimit stores per-client HTTP rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Notify    Notify
	Donations Donations
	RateLimit RateLimit
	Pprof     PprofConfig
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Notify:    DefaultNotify(),
		Donations: DefaultDonations(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	readEnv("POSTGRES_HOST", &cfg.DB.Host)
	readEnv("POSTGRES_PORT", &cfg.DB.Port)
	readEnv("POSTGRES_USER", &cfg.DB.User)
	readEnv("POSTGRES_PASSWORD", &cfg.DB.Pass)
	readEnv("POSTGRES_DB", &cfg.DB.Name)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}
	readEnv("KAFKA_TOPIC", &cfg.Kafka.Topic)
	readEnv("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)

	if err := readDuration("DONATION_EXPIRE_SWEEP_INTERVAL", &cfg.Donations.ExpireSweepInterval); err != nil {
		return nil, err
	}
	if err := readDuration("NOTIFY_BASE_DELAY", &cfg.Notify.BaseDelay); err != nil {
		return nil, err
	}
	if err := readDuration("NOTIFY_MAX_DELAY", &cfg.Notify.MaxDelay); err != nil {
		return nil, err
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED: %q", v)
		}
		cfg.RateLimit.Enabled = b
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PPROF_ENABLED: %q", v)
		}
		cfg.Pprof.Enabled = b
	}
	readEnv("PPROF_ADDR", &cfg.Pprof.Addr)
	readEnv("PPROF_USER", &cfg.Pprof.User)
	readEnv("PPROF_PASS", &cfg.Pprof.Pass)

	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %q", cfg.DB.Port)
	}
	if cfg.Donations.ExpireSweepInterval <= 0 {
		return nil, fmt.Errorf("invalid sweep interval: %s", cfg.Donations.ExpireSweepInterval)
	}
	return cfg, nil
}

func readEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func readDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitBrokers(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if b := strings.TrimSpace(part); b != "" {
			out = append(out, b)
		}
	}
	return out
}
